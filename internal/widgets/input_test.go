package widgets

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/petrus/internal/terminal"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want int
		msg  string
	}{
		{"5", 5, ""},
		{" 0 ", 0, ""},
		{"60", 60, ""},
		{"", 0, "Please enter a number."},
		{"ten", 0, `"ten" is not a number.`},
		{"61", 0, "Enter a number between 0 and 60."},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, msg := ParseNumber(tt.in, 0, 60)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.msg, msg)
		})
	}
}

func TestReadNumberRepromptsUntilValid(t *testing.T) {
	term := terminal.NewScripted("", "x", "99", "7")
	n, err := ReadNumber(term, 1, 10)
	require.NoError(t, err)
	require.Equal(t, 7, n)
	require.Contains(t, term.Output(), "Enter a number between 1 and 10.")
}

func TestPause(t *testing.T) {
	term := terminal.NewScripted("")
	require.NoError(t, Pause(term))
	require.Contains(t, term.Output(), "Press enter to continue")
	require.Error(t, Pause(term))
}

func TestSuggest(t *testing.T) {
	tokens := []string{"back", "holder", "issuer"}
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"holdr", "holder", true},
		{"bak", "back", true},
		{"ISSUR", "issuer", true},
		{"verifier", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := Suggest(tt.in, tokens)
		require.Equal(t, tt.ok, ok, tt.in)
		require.Equal(t, tt.want, got, tt.in)
	}
}
