package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"5551234567", "+15551234567", true},
		{"15551234567", "+15551234567", true},
		{"25551234567", "+15551234567", true},
		{"123", "", false},
		{"", "", false},
		{"+15551234567", "+15551234567", true},
		{"(555) 123-4567", "+15551234567", true},
		{"555.123.4567", "+15551234567", true},
		{"555 123 4567", "+15551234567", true},
		{"1555123456789", "+15551234567", true},
		{"5551234567890", "+15551234567", true},
		{"555-1234", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, ok := Normalize(tc.input)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDigits(t *testing.T) {
	assert.Equal(t, "15551234567", Digits(`\+1 (555) 123-4567`))
	assert.Equal(t, "", Digits("no digits"))
}
