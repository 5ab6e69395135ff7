package screens

import (
	"context"
	"fmt"

	"github.com/jask/petrus/internal/fsm"
	"github.com/jask/petrus/internal/widgets"
)

// CreateDID asks for an owner name, creates a did:jwk and stores it.
type CreateDID struct{ c *Context }

func (s *CreateDID) RenderTitle() { renderTitle(s.c, "Create DID") }

func (s *CreateDID) Execute(ctx context.Context) (fsm.Event, error) {
	s.RenderTitle()
	owner, err := s.c.readName("Enter the name of the DID owner (or 'back' to cancel):")
	if err != nil {
		return s.c.fail("Create DID", err)
	}
	doc, err := s.c.Identities.Create(ctx)
	if err != nil {
		return s.c.fail("Create DID", err)
	}
	row, err := s.c.Store.SaveDIDDocument(ctx, doc, owner)
	if err != nil {
		return s.c.fail("Create DID", err)
	}
	data, err := doc.JSON()
	if err != nil {
		return s.c.fail("Create DID", err)
	}
	s.c.log().Info("did created", "id", row.ID, "did", row.DID, "owner", row.Name)
	fmt.Fprintf(s.c.Term, "DID created for %s at %s\n\n", row.Name, row.CreatedAt.Local().Format(timeLayout))
	printJSON(s.c.Term, "DID Document", data)
	if err := widgets.Pause(s.c.term()); err != nil {
		return fsm.Cancel, err
	}
	return fsm.Success, nil
}
