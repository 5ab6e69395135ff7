// Package screens holds one command per screen state. A command is built
// fresh for every dispatcher iteration, runs its screen to completion and
// reports a single fsm event.
package screens

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jask/petrus/internal/apperr"
	"github.com/jask/petrus/internal/fsm"
	"github.com/jask/petrus/internal/terminal"
	"github.com/jask/petrus/internal/widgets"
)

// Command is the unit of work bound to one screen.
type Command interface {
	// RenderTitle clears the terminal and draws the screen title.
	RenderTitle()
	// Execute runs the screen. The error is reserved for terminal failures
	// that end the session; collaborator failures become Cancel.
	Execute(ctx context.Context) (fsm.Event, error)
}

// New builds the command for state.
func New(state fsm.State, c *Context) (Command, error) {
	switch state {
	case fsm.MainMenu:
		return newMainMenu(c), nil
	case fsm.ListItemsMenu:
		return newListItemsMenu(c), nil
	case fsm.CreateVCMenu:
		return newCreateVCMenu(c), nil
	case fsm.CreateDIDWorkflow:
		return &CreateDID{c: c}, nil
	case fsm.ListDIDsWorkflow:
		return &ListDIDs{c: c}, nil
	case fsm.ListVCsWorkflow:
		return &ListVCs{c: c}, nil
	case fsm.CreateNormalVCWorkflow:
		return &CreateVC{c: c}, nil
	case fsm.CreateSDVCWorkflow:
		return &CreateSDVC{c: c}, nil
	case fsm.VerifyVCWorkflow:
		return &VerifyVC{c: c}, nil
	case fsm.CreateVPWorkflow:
		return &CreateVP{c: c}, nil
	case fsm.ExitAppWorkflow:
		return &ExitApp{c: c}, nil
	}
	return nil, fmt.Errorf("no screen for state %s", state)
}

var (
	errNoDIDs      = apperr.New(apperr.CodeNotFound, "No DIDs found. Please create a DID first.")
	errNoVCs       = apperr.New(apperr.CodeNotFound, "No VCs found. Please create one first.")
	errNoTemplates = apperr.New(apperr.CodeNotFound, "No credential templates found.")
)

func writeTitle(w io.Writer, parts ...string) {
	title := terminal.Title(parts[0])
	for i := 1; i+1 < len(parts); i += 2 {
		title += fmt.Sprintf(" | %s %s", parts[i], terminal.Accent(parts[i+1]))
	}
	fmt.Fprintf(w, "\n%s\n\n", title)
}

func renderTitle(c *Context, parts ...string) {
	c.Term.Clear()
	writeTitle(c.Term, parts...)
}

// fail turns a workflow error into an event. Terminal failures end the
// session, a user cancellation leaves quietly and anything else is shown
// until the user presses enter.
func (c *Context) fail(screen string, err error) (fsm.Event, error) {
	if errors.Is(err, ErrTerminal) {
		return fsm.Cancel, err
	}
	if apperr.HasCode(err, apperr.CodeCancelled) {
		return fsm.Cancel, nil
	}
	c.log().Warn("screen failed", "screen", screen, "error", err)
	terminal.Errorf(c.Term, "Error: %v", err)
	if err := widgets.Pause(c.term()); err != nil {
		return fsm.Cancel, err
	}
	return fsm.Cancel, nil
}

// readName prompts until a non-blank line. "back" cancels.
func (c *Context) readName(prompt string) (string, error) {
	for {
		fmt.Fprintln(c.Term, prompt)
		line, err := c.term().ReadLine()
		if err != nil {
			return "", err
		}
		line = strings.TrimSpace(line)
		switch {
		case strings.EqualFold(line, "back"):
			return "", apperr.Cancelled
		case line == "":
			terminal.Errorf(c.Term, "Name cannot be empty.")
		default:
			return line, nil
		}
	}
}

// askYesNo reads a y/N answer; anything but y or yes is no.
func (c *Context) askYesNo(prompt string) (bool, error) {
	fmt.Fprintf(c.Term, "%s (y/N)\n", prompt)
	line, err := c.term().ReadLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func printJSON(w io.Writer, label string, data []byte) {
	rule := strings.Repeat("-", 38)
	fmt.Fprintf(w, "%s\n%s:\n%s\n%s\n\n", rule, terminal.Success(label), rule, data)
}
