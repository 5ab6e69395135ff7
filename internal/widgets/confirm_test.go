package widgets

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/petrus/internal/terminal"
)

func issuerHolderConfirm() *Confirm {
	return &Confirm{
		Show: func(w io.Writer) { fmt.Fprintln(w, "Issuer: uni / Holder: alice") },
		Tokens: map[string]Outcome{
			"back":   Cancelled,
			"issuer": Reselecting,
			"holder": Reselecting,
		},
	}
}

func TestConfirmHandle(t *testing.T) {
	c := issuerHolderConfirm()
	tests := []struct {
		in      string
		outcome Outcome
		token   string
		msg     string
	}{
		{"", Confirmed, "", ""},
		{"  ", Confirmed, "", ""},
		{"back", Cancelled, "back", ""},
		{"Holder", Reselecting, "holder", ""},
		{"issuer", Reselecting, "issuer", ""},
		{"isuer", Idle, "", `Unknown option "isuer". Did you mean 'issuer'?`},
		{"whatever", Idle, "", `Unknown option "whatever".`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, msg := c.Handle(tt.in)
			require.Equal(t, tt.outcome, d.Outcome)
			require.Equal(t, tt.token, d.Token)
			require.Equal(t, tt.msg, msg)
		})
	}
}

func TestConfirmRunRedisplaysUntilDecided(t *testing.T) {
	term := terminal.NewScripted("nope", "holdr", "holder")
	d, err := issuerHolderConfirm().Run(term)
	require.NoError(t, err)
	require.Equal(t, Decision{Outcome: Reselecting, Token: "holder"}, d)
	require.Contains(t, term.Output(), "Did you mean 'holder'?")
	require.Contains(t, term.Output(), "'back' to cancel")
	require.Contains(t, term.Output(), "'issuer' to choose the issuer again")

	_, err = issuerHolderConfirm().Run(terminal.NewScripted("x"))
	require.ErrorIs(t, err, io.EOF)
}

func TestOutcomeString(t *testing.T) {
	require.Equal(t, "idle", Idle.String())
	require.Equal(t, "confirmed", Confirmed.String())
	require.Equal(t, "reselecting", Reselecting.String())
	require.Equal(t, "cancelled", Cancelled.String())
}
