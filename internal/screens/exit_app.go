package screens

import (
	"context"
	"fmt"

	"github.com/jask/petrus/internal/fsm"
	"github.com/jask/petrus/internal/terminal"
)

// ExitApp asks for one keypress before the session ends. ESC goes back.
type ExitApp struct{ c *Context }

func (s *ExitApp) RenderTitle() { renderTitle(s.c, "Exit App") }

func (s *ExitApp) Execute(context.Context) (fsm.Event, error) {
	s.RenderTitle()
	fmt.Fprintln(s.c.Term, "It is a shame that we have to part ways. Goodbye!")
	fmt.Fprintln(s.c.Term, terminal.Muted("Press any key to exit (ESC to cancel):"))
	key, err := s.c.term().ReadKey()
	if err != nil {
		return fsm.Cancel, err
	}
	if key == "esc" {
		return fsm.Cancel, nil
	}
	fmt.Fprintln(s.c.Term, "Exiting...")
	return fsm.Exit, nil
}
