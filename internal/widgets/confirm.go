package widgets

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jask/petrus/internal/terminal"
)

// Outcome is where a confirmation step ends up.
type Outcome int

const (
	Idle Outcome = iota
	Confirmed
	Reselecting
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Confirmed:
		return "confirmed"
	case Reselecting:
		return "reselecting"
	case Cancelled:
		return "cancelled"
	}
	return "idle"
}

// Decision is the outcome of one confirmation plus the token that caused it.
type Decision struct {
	Outcome Outcome
	Token   string
}

// Confirm asks the user to accept a selection with a blank line or type one
// of Tokens. Anything else keeps it Idle and redisplays.
type Confirm struct {
	Show   func(w io.Writer)
	Tokens map[string]Outcome
}

func (c *Confirm) tokens() []string {
	out := make([]string, 0, len(c.Tokens))
	for t := range c.Tokens {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Prompt is the hint printed under the selection.
func (c *Confirm) Prompt() string {
	var parts []string
	for _, t := range c.tokens() {
		parts = append(parts, fmt.Sprintf("'%s' to %s", t, verb(c.Tokens[t], t)))
	}
	return "Press enter to continue, or type " + strings.Join(parts, ", ")
}

func verb(o Outcome, token string) string {
	switch o {
	case Reselecting:
		if token == "back" {
			return "open the selection again"
		}
		return "choose the " + token + " again"
	case Cancelled:
		return "cancel"
	}
	return token
}

// Handle maps one line to a decision. The message is set for unknown input.
func (c *Confirm) Handle(input string) (Decision, string) {
	in := strings.ToLower(strings.TrimSpace(input))
	if in == "" {
		return Decision{Outcome: Confirmed}, ""
	}
	if o, ok := c.Tokens[in]; ok {
		return Decision{Outcome: o, Token: in}, ""
	}
	msg := fmt.Sprintf("Unknown option %q.", strings.TrimSpace(input))
	if s, ok := Suggest(in, c.tokens()); ok {
		msg += fmt.Sprintf(" Did you mean '%s'?", s)
	}
	return Decision{Outcome: Idle}, msg
}

// Run shows the selection until the decision leaves Idle.
func (c *Confirm) Run(term terminal.Terminal) (Decision, error) {
	message := ""
	for {
		if c.Show != nil {
			c.Show(term)
		}
		if message != "" {
			fmt.Fprintln(term, terminal.Error(message))
		}
		fmt.Fprintln(term, terminal.Muted("\n"+c.Prompt()))
		line, err := term.ReadLine()
		if err != nil {
			return Decision{}, err
		}
		d, msg := c.Handle(line)
		if d.Outcome != Idle {
			return d, nil
		}
		message = msg
	}
}
