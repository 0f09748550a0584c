package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeSpec(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr error
	}{
		{name: "digit only seconds", input: "45", want: 45.0},
		{name: "zero", input: "0", want: 0.0},
		{name: "large digit only", input: "7200", want: 7200.0},
		{name: "minutes and seconds", input: "1:30", want: 90.0},
		{name: "hours minutes seconds", input: "1:02:03", want: 3723.0},
		{name: "zero padded triple", input: "00:01:30", want: 90.0},
		{name: "fractional seconds", input: "12.5", want: 12.5},
		{name: "fractional in pair", input: "1:30.5", want: 90.5},
		{name: "leading whitespace", input: " 45 ", want: 45.0},
		{name: "empty", input: "", wantErr: ErrInvalidTimeFormat},
		{name: "non numeric parts", input: "bad:format:x", wantErr: ErrInvalidTimeFormat},
		{name: "too many parts", input: "1:2:3:4", wantErr: ErrInvalidTimeFormat},
		{name: "empty part", input: "1::30", wantErr: ErrInvalidTimeFormat},
		{name: "negative bare value", input: "-5", wantErr: ErrInvalidTimeFormat},
		{name: "negative part", input: "1:-30", wantErr: ErrInvalidTimeFormat},
		{name: "plain garbage", input: "abc", wantErr: ErrInvalidTimeFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeSpec(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTimeSpec_DigitStringsEqualFloatValue(t *testing.T) {
	for _, s := range []string{"1", "10", "59", "60", "3600", "86400"} {
		got, err := ParseTimeSpec(s)
		require.NoError(t, err)

		want, err := ParseTimeSpec(s + ".0")
		require.NoError(t, err)
		assert.Equal(t, want, got, "parse(%q) should equal float(%q)", s, s)
	}
}
