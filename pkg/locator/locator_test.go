package locator

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	testCases := []struct {
		name string
		buf  []byte
		want []Range
	}{
		{
			name: "no marker",
			buf:  []byte("nothing to see here"),
			want: []Range{},
		},
		{
			name: "empty buffer",
			buf:  nil,
			want: []Range{},
		},
		{
			name: "single block",
			buf:  []byte("bplist00abc"),
			want: []Range{{Start: 0, End: 11}},
		},
		{
			name: "leading junk is skipped",
			buf:  []byte("xxbplist00abcbplist00de"),
			want: []Range{{Start: 2, End: 13}, {Start: 13, End: 23}},
		},
		{
			name: "adjacent markers",
			buf:  []byte("bplist00bplist00"),
			want: []Range{{Start: 0, End: 8}, {Start: 8, End: 16}},
		},
		{
			name: "marker inside a payload splits the block",
			buf:  []byte("bplist00 data:xxbplist00yy trailer bplist00next"),
			want: []Range{{Start: 0, End: 16}, {Start: 16, End: 35}, {Start: 35, End: 47}},
		},
		{
			name: "partial marker at end",
			buf:  []byte("bplist00abcbplist0"),
			want: []Range{{Start: 0, End: 18}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Split(tc.buf, BplistMagic)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSplit_RangesCoverTail(t *testing.T) {
	buf := bytes.Repeat([]byte("CHTransaction.payload."), 5)
	ranges := Split(buf, TransactionMarker)
	require.Len(t, ranges, 5)

	for i, r := range ranges {
		assert.True(t, bytes.HasPrefix(r.Bytes(buf), TransactionMarker), "range %d", i)
		if i > 0 {
			assert.Equal(t, ranges[i-1].End, r.Start)
		}
	}
	assert.Equal(t, len(buf), ranges[len(ranges)-1].End)
}

func TestSplit_EmptyMarker(t *testing.T) {
	assert.Empty(t, Split([]byte("abc"), nil))
}

func TestForName(t *testing.T) {
	m, err := ForName("")
	require.NoError(t, err)
	assert.Equal(t, BplistMagic, m)

	m, err = ForName(MarkerTransaction)
	require.NoError(t, err)
	assert.Equal(t, TransactionMarker, m)

	_, err = ForName("xml")
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))

	ranges := []Range{{0, 10}, {10, 40}, {40, 60}}
	s := Summarize(ranges)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, []int{0, 10, 40}, s.FirstOffsets)
	assert.Equal(t, 10, s.Smallest)
	assert.Equal(t, 30, s.Largest)
	assert.Equal(t, 20, s.Average)
	assert.Equal(t, 60, s.Covered)
}

func TestSummarize_CapsOffsets(t *testing.T) {
	var ranges []Range
	for i := 0; i < 25; i++ {
		ranges = append(ranges, Range{Start: i * 4, End: i*4 + 4})
	}
	s := Summarize(ranges)
	assert.Len(t, s.FirstOffsets, previewOffsets)
	assert.Equal(t, 25, s.Count)
}
