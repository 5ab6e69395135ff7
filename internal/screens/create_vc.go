package screens

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/jask/petrus/internal/credential"
	"github.com/jask/petrus/internal/fsm"
	"github.com/jask/petrus/internal/terminal"
	"github.com/jask/petrus/internal/widgets"
)

// CreateVC issues a plain VC-JWT from a template.
type CreateVC struct{ c *Context }

func (s *CreateVC) RenderTitle() { renderTitle(s.c, "Create VC") }

func (s *CreateVC) Execute(ctx context.Context) (fsm.Event, error) {
	const screen = "Create VC"
	s.RenderTitle()
	p, err := s.c.selectParties(ctx, screen)
	if err != nil {
		return s.c.fail(screen, err)
	}
	tpl, subject, err := s.c.chooseSubject(ctx, screen)
	if err != nil {
		return s.c.fail(screen, err)
	}
	req := credential.IssueRequest{
		Issuer:          p.IssuerDoc,
		HolderDID:       p.Holder.DID,
		Type:            tpl.CredentialType(),
		Subject:         subject,
		NonTransferable: true,
	}
	token, err := s.c.Credentials.IssueJWT(ctx, req)
	if err != nil {
		return s.c.fail(screen, err)
	}
	decoded, err := s.c.Credentials.Validate(ctx, token, p.IssuerDoc)
	if err != nil {
		return s.c.fail(screen, err)
	}
	data, err := decoded.JSON()
	if err != nil {
		return s.c.fail(screen, err)
	}
	row, err := s.c.Store.SaveVC(ctx, token, p.Issuer.ID, p.Holder.ID, req.Type, false)
	if err != nil {
		return s.c.fail(screen, err)
	}
	s.c.log().Info("vc created", "id", row.ID, "type", req.Type, "issuer", p.Issuer.DID, "holder", p.Holder.DID)

	s.RenderTitle()
	printJSON(s.c.Term, "VC Created", data)
	fmt.Fprintf(s.c.Term, "JWT:\n%s\n", token)
	if err := widgets.Pause(s.c.term()); err != nil {
		return fsm.Cancel, err
	}
	return fsm.Success, nil
}

// CreateSDVC issues a selective disclosure credential. The user chooses
// which subject claims are concealed behind disclosures.
type CreateSDVC struct{ c *Context }

func (s *CreateSDVC) RenderTitle() { renderTitle(s.c, "Create SD VC") }

func (s *CreateSDVC) Execute(ctx context.Context) (fsm.Event, error) {
	const screen = "Create SD VC"
	s.RenderTitle()
	p, err := s.c.selectParties(ctx, screen)
	if err != nil {
		return s.c.fail(screen, err)
	}
	tpl, subject, err := s.c.chooseSubject(ctx, screen)
	if err != nil {
		return s.c.fail(screen, err)
	}

	names := slices.Sorted(maps.Keys(subject))
	names = slices.DeleteFunc(names, func(n string) bool { return n == "id" })
	toggles := widgets.NewToggleSet(names)
	toggles.Header = func(w io.Writer) {
		writeTitle(w, screen, "Type:", tpl.CredentialType())
		fmt.Fprintln(w, "Select the claims to make selectively disclosable:")
	}
	concealed, err := toggles.Run(s.c.term())
	if err != nil {
		return s.c.fail(screen, err)
	}

	req := credential.IssueRequest{
		Issuer:          p.IssuerDoc,
		HolderDID:       p.Holder.DID,
		Type:            tpl.CredentialType(),
		Subject:         subject,
		NonTransferable: true,
	}
	sd, err := s.c.Credentials.IssueSD(ctx, req, concealed)
	if err != nil {
		return s.c.fail(screen, err)
	}
	token := sd.Token()
	decoded, err := s.c.Credentials.Validate(ctx, token, p.IssuerDoc)
	if err != nil {
		return s.c.fail(screen, err)
	}
	data, err := decoded.JSON()
	if err != nil {
		return s.c.fail(screen, err)
	}
	row, err := s.c.Store.SaveVC(ctx, token, p.Issuer.ID, p.Holder.ID, req.Type, true)
	if err != nil {
		return s.c.fail(screen, err)
	}
	s.c.log().Info("sd vc created", "id", row.ID, "type", req.Type, "disclosures", len(sd.Disclosures))

	s.RenderTitle()
	printJSON(s.c.Term, "SD VC Created", data)
	fmt.Fprintln(s.c.Term, terminal.Success("Disclosures:"))
	for _, d := range sd.Disclosures {
		fmt.Fprintf(s.c.Term, "  %s = %v\n    %s\n", terminal.Accent(d.Name), d.Value, terminal.Muted(d.Raw))
	}
	fmt.Fprintf(s.c.Term, "\nSD-JWT:\n%s\n", token)
	if err := widgets.Pause(s.c.term()); err != nil {
		return fsm.Cancel, err
	}
	return fsm.Success, nil
}
