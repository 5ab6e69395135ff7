// Package app runs the screen dispatcher loop over the shared session context.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jask/petrus/internal/fsm"
	"github.com/jask/petrus/internal/screens"
)

// CommandFactory builds the command for a state.
type CommandFactory func(fsm.State) (screens.Command, error)

// App owns the state machine and the shared context.
type App struct {
	session  *screens.Context
	machine  *fsm.Machine
	commands CommandFactory
	log      *slog.Logger
}

type Option func(*App)

// WithCommands replaces the state to command mapping.
func WithCommands(f CommandFactory) Option {
	return func(a *App) { a.commands = f }
}

func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.log = l }
}

func New(session *screens.Context, opts ...Option) *App {
	a := &App{
		session: session,
		machine: fsm.New(),
		log:     session.Log,
	}
	a.commands = func(s fsm.State) (screens.Command, error) { return screens.New(s, a.session) }
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		a.log = slog.New(slog.DiscardHandler)
	}
	return a
}

// State is the current screen state.
func (a *App) State() fsm.State { return a.machine.Current() }

// Run drives screens until the exit screen reports Exit. A command is built
// fresh for every iteration so each screen reads live data. Terminal
// failures and invalid transitions end the loop with an error.
func (a *App) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		state := a.machine.Current()
		cmd, err := a.commands(state)
		if err != nil {
			return err
		}
		event, err := cmd.Execute(ctx)
		if err != nil {
			a.log.Error("screen aborted", "state", state, "error", err)
			return fmt.Errorf("%s: %w", state, err)
		}
		if state == fsm.ExitAppWorkflow && event == fsm.Exit {
			a.log.Info("session ended", "state", state)
			return nil
		}
		next, err := a.machine.Consume(event)
		if err != nil {
			a.log.Error("invalid transition", "state", state, "event", event)
			return err
		}
		a.log.Debug("transition", "state", state, "event", event, "next", next)
	}
}
