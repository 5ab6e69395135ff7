package screens

import (
	"context"
	"fmt"

	"github.com/jask/petrus/internal/fsm"
	"github.com/jask/petrus/internal/terminal"
	"github.com/jask/petrus/internal/widgets"
)

// VerifyVC checks a stored credential against a DID the user claims issued it.
type VerifyVC struct{ c *Context }

func (s *VerifyVC) RenderTitle() { renderTitle(s.c, "Verify VC") }

func (s *VerifyVC) Execute(ctx context.Context) (fsm.Event, error) {
	const screen = "Verify VC"
	s.RenderTitle()
	vcs, err := s.c.Store.StoredVCs(ctx)
	if err != nil {
		return s.c.fail(screen, err)
	}
	vc, err := s.c.pickVC(screen, "Choose a VC to verify by entering the row number:", vcs)
	if err != nil {
		return s.c.fail(screen, err)
	}
	dids, err := s.c.Store.StoredDIDs(ctx)
	if err != nil {
		return s.c.fail(screen, err)
	}
	issuer, err := s.c.pickDID(screen, "Choose a DID to verify as the issuer of the credential by entering the row number:", dids)
	if err != nil {
		return s.c.fail(screen, err)
	}
	doc, err := s.c.Resolver.Resolve(ctx, issuer.DID)
	if err != nil {
		return s.c.fail(screen, err)
	}

	s.RenderTitle()
	decoded, err := s.c.Credentials.Validate(ctx, vc.Token, doc)
	if err != nil {
		s.c.log().Info("vc rejected", "id", vc.ID, "issuer", issuer.DID, "error", err)
		terminal.Errorf(s.c.Term, "VC verification failed against %s: %v", issuer.Name, err)
	} else {
		data, err := decoded.JSON()
		if err != nil {
			return s.c.fail(screen, err)
		}
		fmt.Fprintln(s.c.Term, terminal.Success("VC verified successfully:"))
		printJSON(s.c.Term, "Credential", data)
	}
	if err := widgets.Pause(s.c.term()); err != nil {
		return fsm.Cancel, err
	}
	return fsm.Success, nil
}
