package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitFields(t *testing.T) {
	testCases := []struct {
		text     string
		expected []string
	}{
		{
			text:     "Symbol\nCompany\nChg %",
			expected: []string{"Symbol", "Company", "Chg %"},
		},
		{
			text:     "\n\nAAPL\n\nApple Inc.\n\n+1.32%\n",
			expected: []string{"AAPL", "Apple Inc.", "+1.32%"},
		},
		{
			text:     "",
			expected: nil,
		},
		{
			text:     "\n\n\n",
			expected: nil,
		},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, SplitFields(test.text))
	}
}

func TestStripLineBreaks(t *testing.T) {
	require.Equal(t, "5 Day", StripLineBreaks("\n5 Day\n"))
	require.Equal(t, "+1.2%", StripLineBreaks("+1.2%"))
}
