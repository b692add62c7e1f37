package time_parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseDate_WithBlankInput_ReturnsNil(t *testing.T) {
	for _, value := range []string{"", "   "} {
		result, err := ParseDate(value)

		assert.NoError(t, err)
		assert.Nil(t, result)
	}
}

func Test_ParseDate_WithSupportedFormats_ParsesToUTC(t *testing.T) {
	testCases := []struct {
		input    string
		expected time.Time
	}{
		{input: "2026-11-01", expected: time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)},
		{input: "2026-11-01T10:30:00Z", expected: time.Date(2026, 11, 1, 10, 30, 0, 0, time.UTC)},
		{input: "2026-11-01T12:30:00+02:00", expected: time.Date(2026, 11, 1, 10, 30, 0, 0, time.UTC)},
		{input: "2026-11-01T10:30:00.123456789Z", expected: time.Date(2026, 11, 1, 10, 30, 0, 123456789, time.UTC)},
		{input: "2026-11-01T10:30:00", expected: time.Date(2026, 11, 1, 10, 30, 0, 0, time.UTC)},
		{input: "2026-11-01 10:30:00", expected: time.Date(2026, 11, 1, 10, 30, 0, 0, time.UTC)},
		{input: " 2026-11-01 ", expected: time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result, err := ParseDate(tc.input)

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, tc.expected.Equal(*result), "expected %v, got %v", tc.expected, *result)
			assert.Equal(t, time.UTC, result.Location())
		})
	}
}

func Test_ParseDate_WithInvalidInput_ReturnsError(t *testing.T) {
	for _, value := range []string{"tomorrow", "2026-13-01", "01/11/2026", "1730000000"} {
		result, err := ParseDate(value)

		assert.ErrorIs(t, err, ErrInvalidDate, value)
		assert.Nil(t, result)
	}
}
