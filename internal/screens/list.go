package screens

import (
	"context"
	"errors"
	"io"

	"github.com/jask/petrus/internal/database/repository"
	"github.com/jask/petrus/internal/fsm"
	"github.com/jask/petrus/internal/widgets"
)

// ListDIDs pages through the stored DIDs.
type ListDIDs struct{ c *Context }

func (s *ListDIDs) RenderTitle() { renderTitle(s.c, "List DIDs") }

func (s *ListDIDs) Execute(ctx context.Context) (fsm.Event, error) {
	s.RenderTitle()
	dids, err := s.c.Store.StoredDIDs(ctx)
	if err != nil {
		return s.c.fail("List DIDs", err)
	}
	sel := &widgets.Selector[repository.DID]{
		Items:    dids,
		PageSize: s.c.didPageSize(),
		Render:   didTable,
		Header:   func(w io.Writer) { writeTitle(w, "List DIDs") },
	}
	if _, err := sel.Run(s.c.term()); err != nil {
		if errors.Is(err, widgets.ErrNoItems) {
			err = errNoDIDs
		}
		return s.c.fail("List DIDs", err)
	}
	return fsm.Success, nil
}

// ListVCs pages through the stored credentials.
type ListVCs struct{ c *Context }

func (s *ListVCs) RenderTitle() { renderTitle(s.c, "List VCs") }

func (s *ListVCs) Execute(ctx context.Context) (fsm.Event, error) {
	s.RenderTitle()
	vcs, err := s.c.Store.StoredVCs(ctx)
	if err != nil {
		return s.c.fail("List VCs", err)
	}
	sel := &widgets.Selector[repository.VC]{
		Items:    vcs,
		PageSize: s.c.vcPageSize(),
		Render:   vcTable,
		Header:   func(w io.Writer) { writeTitle(w, "List VCs") },
	}
	if _, err := sel.Run(s.c.term()); err != nil {
		if errors.Is(err, widgets.ErrNoItems) {
			err = errNoVCs
		}
		return s.c.fail("List VCs", err)
	}
	return fsm.Success, nil
}
