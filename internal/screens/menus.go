package screens

import (
	"context"
	"fmt"

	"github.com/jask/petrus/internal/fsm"
	"github.com/jask/petrus/internal/terminal"
	"github.com/jask/petrus/internal/widgets"
)

type option struct {
	label string
	event fsm.Event
}

// Menu shows numbered options and reports the chosen option's event.
type Menu struct {
	c       *Context
	title   string
	options []option
}

func newMainMenu(c *Context) *Menu {
	return &Menu{c: c, title: "Main Menu", options: []option{
		{"List Created Items", fsm.SelectListItems},
		{"Create a new DID", fsm.SelectCreateDID},
		{"Create a new VC", fsm.SelectCreateVC},
		{"Create a new VP", fsm.SelectCreateVP},
		{"Verify a VC", fsm.SelectVerifyVC},
		{"Exit", fsm.Cancel},
	}}
}

func newListItemsMenu(c *Context) *Menu {
	return &Menu{c: c, title: "List Created Items", options: []option{
		{"List DIDs", fsm.SelectListDIDs},
		{"List VCs", fsm.SelectListVCs},
		{"Back", fsm.Cancel},
	}}
}

func newCreateVCMenu(c *Context) *Menu {
	return &Menu{c: c, title: "Create VC", options: []option{
		{"Create VC", fsm.CreateNormalVC},
		{"Create VC with Selective Disclosure", fsm.CreateSDVC},
		{"Back", fsm.Cancel},
	}}
}

func (m *Menu) RenderTitle() { renderTitle(m.c, m.title) }

func (m *Menu) Execute(context.Context) (fsm.Event, error) {
	m.RenderTitle()
	for i, o := range m.options {
		fmt.Fprintf(m.c.Term, "%s %s\n", terminal.Accent(fmt.Sprintf("%d.", i+1)), o.label)
	}
	fmt.Fprintln(m.c.Term, "\nPlease select an option:")
	n, err := widgets.ReadNumber(m.c.term(), 1, len(m.options))
	if err != nil {
		return fsm.Cancel, err
	}
	return m.options[n-1].event, nil
}
