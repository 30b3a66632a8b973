package rent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmountToCents(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"1500", 150000},
		{"1500.00", 150000},
		{"1500.5", 150050},
		{"1500.55", 150055},
		{"1500,55", 150055},
		{" 2200 ", 220000},
		{"0.01", 1},
		{".50", 50},
		{"1100.999", 110100}, // 第三位小数进位
		{"1100.994", 110099},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmountToCents(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAmountToCentsInvalid(t *testing.T) {
	inputs := []string{
		"", "   ", "abc", "12a", "1.2.3", "-100", "+100", "0", "0.00",
		"100000000000000000000",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := ParseAmountToCents(input)
			assert.ErrorIs(t, err, ErrInvalidAmount)
		})
	}
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "1500.00", FormatCents(150000))
	assert.Equal(t, "1500.55", FormatCents(150055))
	assert.Equal(t, "0.01", FormatCents(1))
	assert.Equal(t, "0.00", FormatCents(0))
	assert.Equal(t, "-22.50", FormatCents(-2250))
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, s := range []string{"1500.00", "2200.00", "1100.50", "0.01"} {
		cents, err := ParseAmountToCents(s)
		require.NoError(t, err)
		assert.Equal(t, s, FormatCents(cents))
	}
}
