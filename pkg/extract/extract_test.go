package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/calltrace/pkg/timestamp"
)

const sampleID = "0F5E7C2A-1111-4A4A-9B9B-00AA00AA00AA"

func TestUUID(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"upper", "xx$" + sampleID + "yy", sampleID, true},
		{"lower is canonicalized", "_\x10$0f5e7c2a-1111-4a4a-9b9b-00aa00aa00aa", sampleID, true},
		{"zero groups", "AAAAAAAA-0000-0000-0000-000000000000", "AAAAAAAA-0000-0000-0000-000000000000", true},
		{"short group", "0F5E7C2A-111-4A4A-9B9B-00AA00AA00AA", "", false},
		{"not hex", "0F5E7C2G-1111-4A4A-9B9B-00AA00AA00AA", "", false},
		{"empty", "", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, ok := UUID([]byte(tc.input))
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, m.Value)
		})
	}
}

func TestUUID_Span(t *testing.T) {
	in := []byte("ab" + sampleID)
	m, ok := UUID(in)
	require.True(t, ok)
	assert.Equal(t, 2, m.Start)
	assert.Equal(t, len(in), m.End)
}

func TestPhone(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"escaped plus", `junk\+15551234567Xname`, "+15551234567", true},
		{"literal plus", "tel:+15551234567;", "+15551234567", true},
		{"plus wins over bare", "5559876543 and +15551234567", "+15551234567", true},
		{"bare ten digits", "Z5551234567\x10", "5551234567", true},
		{"bare eleven digits", "[15551234567", "15551234567", true},
		{"parenthesized", "call (555) 123-4567 now", "(555) 123-4567", true},
		{"dashed", "call 555-123-4567 now", "555-123-4567", true},
		{"dotted", "call 555.123.4567 now", "555.123.4567", true},
		{"spaced", "call 555 123 4567 now", "555 123 4567", true},
		{"too short", "call 555-1234", "", false},
		{"nine digits", "123456789", "", false},
		{"uuid zero group", "AAAAAAAA-0000-0000-0000-000000000000", "", false},
		{"digits inside hex", "deadbeef1234567890cafe", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, ok := Phone([]byte(tc.input))
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, m.Value)
		})
	}
}

func TestContactName(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"marker stripped", "\x00ZJOHN SMITH\x10", "JOHN SMITH", true},
		{"trailing marker stripped", "\x00ZJOHN SMITHXcallerId", "JOHN SMITH", true},
		{"long name", "_\x10\x0fWIRELESS CALLER\x00", "WIRELESS CALLER", true},
		{"no marker", "\x00SPAM RISK\x00", "SPAM RISK", true},
		{"too short", "\x00BOB\x00", "", false},
		{"lower case", "\x00John Smith\x00", "", false},
		{"structural", "\x00VNSUUID\x00", "", false},
		{"structural with WNS", "\x00WNSFOO\x00", "", false},
		{"uuid group", "AAAAAAAA-0000-0000-0000-000000000000", "", false},
		{"skips structural then finds name", "\x00NSDATE\x00ZJANE DOE X\x00", "JANE DOE X", true},
		{"single word kept whole", "\x00TOMMY\x00", "TOMMY", true},
		{"single word in text", "caller: TOMMY called", "TOMMY", true},
		{"marker before structural name", "\x00VNSUUID\x00ZJOHN SMITH\x00", "JOHN SMITH", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, ok := ContactName([]byte(tc.input))
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, m.Value)
		})
	}
}

func TestCallService(t *testing.T) {
	m, ok := CallService([]byte("xxcom.apple.FaceTimeyy com.apple.Telephony"))
	require.True(t, ok)
	assert.Equal(t, ServiceFaceTime, m.Value)
	assert.Equal(t, 2, m.Start)

	m, ok = CallService([]byte("com.apple.Telephony"))
	require.True(t, ok)
	assert.Equal(t, ServiceTelephony, m.Value)

	_, ok = CallService([]byte("com.example.Voip"))
	assert.False(t, ok)
}

func TestCallDirection(t *testing.T) {
	testCases := []struct {
		name   string
		input  []byte
		want   Direction
		wantOK bool
	}{
		{"word after field", []byte("callStatus\x00\x00Missed\x00"), DirectionMissed, true},
		{"earliest word in window", []byte("directionXincoming outgoing"), DirectionIncoming, true},
		{"word beyond window", append(append([]byte("callType"), make([]byte, 70)...), "rejected"...), "", false},
		{"word with tag", []byte("xx outgoing\x00\x00\x10\x01"), DirectionOutgoing, true},
		{"word with wrong tag", []byte("xx outgoing\x00\x00\x10\x03"), "", false},
		{"blocked tag", []byte("blocked\x10\x05"), DirectionBlocked, true},
		{"participant field", []byte("\x00outgoingLocalParticipantUUID\x00"), DirectionOutgoing, true},
		{"nothing", []byte("uniqueId duration"), "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, ok := CallDirection(tc.input)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, m.Value)
		})
	}
}

func TestDirectionForTag(t *testing.T) {
	for tag, want := range map[int64]Direction{
		1: DirectionOutgoing,
		2: DirectionIncoming,
		3: DirectionMissed,
		4: DirectionRejected,
		5: DirectionBlocked,
	} {
		got, ok := DirectionForTag(tag)
		assert.True(t, ok, "tag %d", tag)
		assert.Equal(t, want, got, "tag %d", tag)
	}

	for _, tag := range []int64{0, 6, -1} {
		_, ok := DirectionForTag(tag)
		assert.False(t, ok, "tag %d", tag)
	}
}

func TestDuration(t *testing.T) {
	testCases := []struct {
		name   string
		input  []byte
		want   float64
		wantOK bool
	}{
		{"one byte length", []byte("duration\x10\x0242"), 42, true},
		{"two byte length", []byte("duration\x11\x00\x04" + "3600"), 3600, true},
		{"zero", []byte("duration\x10\x010"), 0, true},
		{"one day rejected", []byte("duration\x10\x0586400"), 0, false},
		{"not digits", []byte("duration\x10\x024x"), 0, false},
		{"no length marker", []byte("duration#@E"), 0, false},
		{"truncated", []byte("duration\x10\x0542"), 0, false},
		{"second occurrence", []byte("duration\x23...duration\x10\x0217"), 17, true},
		{"missing", []byte("callType"), 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, ok := Duration(tc.input)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, m.Value)
		})
	}
}

func TestLocation(t *testing.T) {
	testCases := []struct {
		name   string
		input  []byte
		want   string
		wantOK bool
	}{
		{"one byte length", []byte("callerIdLocation\x10\x0dCupertino, CA\x00"), "Cupertino, CA", true},
		{"two byte length", []byte("callerIdLocation\x11\x00\x07Zürich"), "Zürich", true},
		{"trimmed", []byte("callerIdLocation\x10\x07 Boston"), "Boston", true},
		{"binary payload", []byte("callerIdLocation\x10\x03\x00\x01\x02"), "", false},
		{"blank payload", []byte("callerIdLocation\x10\x02  "), "", false},
		{"truncated", []byte("callerIdLocation\x10\x20Cuper"), "", false},
		{"no length marker", []byte("callerIdLocation_\x10\x10Cupertino"), "", false},
		{"second occurrence", []byte("callerIdLocation\x00callerIdLocation\x10\x04Oslo"), "Oslo", true},
		{"missing", []byte("callerId"), "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, ok := Location(tc.input)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, m.Value)
		})
	}
}

func TestJunkConfidence(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		want   int
		wantOK bool
	}{
		{"adjacent", "junkConfidence75", 75, true},
		{"after gap", "junkConfidence\x10\x00: 3x", 3, true},
		{"max", "junkConfidence 100", 100, true},
		{"over max", "junkConfidence 101", 0, false},
		{"too many digits", "junkConfidence 1000", 0, false},
		{"gap too long", "junkConfidence.........5", 0, false},
		{"missing", "confidence 5", 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, ok := JunkConfidence([]byte(tc.input))
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, m.Value)
		})
	}
}

func TestExtract(t *testing.T) {
	when := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

	var b []byte
	b = append(b, "bplist00\x00_\x10$"...)
	b = append(b, sampleID...)
	b = append(b, `\+15551234567`...)
	b = append(b, "ZJANE SMITHXcallerId"...)
	b = append(b, "com.apple.Telephony"...)
	b = append(b, "callStatus\x00incoming"...)
	b = append(b, "duration\x10\x0299"...)
	b = append(b, "callerIdLocation\x10\x0dCupertino, CA"...)
	b = append(b, "junkConfidence\x10\x00 7\x00"...)
	b = append(b, timestamp.DefaultMarker...)
	b = append(b, timestamp.Encode(when)...)

	f := Extract(b)
	assert.Equal(t, sampleID, f.UniqueID)
	assert.Equal(t, "+15551234567", f.PhoneNumber)
	assert.Equal(t, "JANE SMITH", f.ContactName)
	assert.Equal(t, ServiceTelephony, f.Service)
	assert.Equal(t, DirectionIncoming, f.Direction)
	require.NotNil(t, f.DurationSeconds)
	assert.Equal(t, 99.0, *f.DurationSeconds)
	require.NotNil(t, f.JunkConfidence)
	assert.Equal(t, 7, *f.JunkConfidence)
	assert.Equal(t, "Cupertino, CA", f.Location)
	require.NotNil(t, f.Timestamp)
	assert.True(t, when.Equal(*f.Timestamp))
}

func TestExtract_MissesAreIndependent(t *testing.T) {
	f := Extract([]byte("nothing but noise 12 ab"))
	assert.Equal(t, Fields{}, f)

	f = Extract([]byte("duration\x10\x0212"))
	assert.Empty(t, f.UniqueID)
	require.NotNil(t, f.DurationSeconds)
	assert.Equal(t, 12.0, *f.DurationSeconds)
}
