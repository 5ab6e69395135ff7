package screens

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jask/petrus/internal/apperr"
	"github.com/jask/petrus/internal/credential"
	"github.com/jask/petrus/internal/database/repository"
	"github.com/jask/petrus/internal/fsm"
	"github.com/jask/petrus/internal/terminal"
	"github.com/jask/petrus/internal/widgets"
)

const maxExpiryMinutes = 60

// CreateVP plays both sides of a presentation exchange: the holder signs a
// VP for the chosen verifier, and the verifier checks it step by step.
type CreateVP struct {
	c        *Context
	verifier repository.DID
	vc       repository.VC
}

func (s *CreateVP) RenderTitle() {
	if s.vc.ID == 0 {
		renderTitle(s.c, "Create VP")
		return
	}
	renderTitle(s.c, "Create VP",
		"Verifier:", s.verifier.Name,
		"Holder:", s.vc.Holder.Name,
		"Type:", s.vc.Type)
}

// reselectTokens lets the user pick again or leave the workflow.
var reselectTokens = map[string]widgets.Outcome{
	"back":   widgets.Reselecting,
	"cancel": widgets.Cancelled,
}

func (s *CreateVP) chooseVerifier(dids []repository.DID) error {
	for {
		v, err := s.c.pickDID("Create VP", "Select the DID row to use as the verifier:", dids)
		if err != nil {
			return err
		}
		confirm := &widgets.Confirm{
			Show: func(w io.Writer) {
				s.c.Term.Clear()
				writeTitle(w, "Create VP")
				fmt.Fprintf(w, "%s\n\n", terminal.Warning("Selected verifier"))
				fmt.Fprintf(w, "Name: %s\nDID: %s\n", v.Name, v.DID)
			},
			Tokens: reselectTokens,
		}
		d, err := confirm.Run(s.c.term())
		if err != nil {
			return err
		}
		switch d.Outcome {
		case widgets.Confirmed:
			s.verifier = v
			return nil
		case widgets.Cancelled:
			return apperr.Cancelled
		}
	}
}

func (s *CreateVP) chooseVC(vcs []repository.VC) error {
	for {
		vc, err := s.c.pickVC("Create VP", "Choose a VC to create the VP by entering the row number:", vcs)
		if err != nil {
			return err
		}
		confirm := &widgets.Confirm{
			Show: func(w io.Writer) {
				s.c.Term.Clear()
				writeTitle(w, "Create VP")
				fmt.Fprintf(w, "%s\n\n", terminal.Warning("Selected VC"))
				fmt.Fprintf(w, "Holder: %s\nIssuer: %s\nType: %s\nJWT: %s\nCreated: %s\nId: %d\n",
					vc.Holder.Name, vc.Issuer.Name, vc.Type,
					terminal.Abbreviate(vc.Token, 48), vc.CreatedAt.Local().Format(timeLayout), vc.ID)
			},
			Tokens: reselectTokens,
		}
		d, err := confirm.Run(s.c.term())
		if err != nil {
			return err
		}
		switch d.Outcome {
		case widgets.Confirmed:
			s.vc = vc
			return nil
		case widgets.Cancelled:
			return apperr.Cancelled
		}
	}
}

// reveal asks which disclosures of an SD credential the holder presents.
func (s *CreateVP) reveal() (string, error) {
	if !s.vc.SD {
		return s.vc.Token, nil
	}
	sd, err := credential.ParseSD(s.vc.Token)
	if err != nil {
		return "", err
	}
	toggles := widgets.NewToggleSet(sd.Names())
	toggles.Header = func(w io.Writer) {
		writeTitle(w, "Create VP", "Verifier:", s.verifier.Name, "Holder:", s.vc.Holder.Name, "Type:", s.vc.Type)
		fmt.Fprintln(w, "Select the claims to disclose to the verifier:")
	}
	names, err := toggles.Run(s.c.term())
	if err != nil {
		return "", err
	}
	return sd.Present(names).Token(), nil
}

func (s *CreateVP) Execute(ctx context.Context) (fsm.Event, error) {
	const screen = "Create VP"
	s.RenderTitle()
	dids, err := s.c.Store.StoredDIDs(ctx)
	if err != nil {
		return s.c.fail(screen, err)
	}
	vcs, err := s.c.Store.StoredVCs(ctx)
	if err != nil {
		return s.c.fail(screen, err)
	}
	if len(vcs) == 0 {
		return s.c.fail(screen, errNoVCs)
	}
	if err := s.chooseVerifier(dids); err != nil {
		return s.c.fail(screen, err)
	}
	if err := s.chooseVC(vcs); err != nil {
		return s.c.fail(screen, err)
	}
	holder, err := s.c.Resolver.Resolve(ctx, s.vc.Holder.DID)
	if err != nil {
		return s.c.fail(screen, err)
	}
	token, err := s.reveal()
	if err != nil {
		return s.c.fail(screen, err)
	}

	s.RenderTitle()
	fmt.Fprintln(s.c.Term, "Please enter the expiration time in minutes:")
	minutes, err := widgets.ReadNumber(s.c.term(), 0, maxExpiryMinutes)
	if err != nil {
		return s.c.fail(screen, err)
	}
	fmt.Fprintf(s.c.Term, "Verifier and Holder have agreed upon %d minutes expiration\n\n", minutes)

	fmt.Fprintln(s.c.Term, "Exchanging challenge with verifier and Holder...")
	nonce := s.c.nonce()
	fmt.Fprintf(s.c.Term, "Challenge: %s\n\n", terminal.Accent(nonce))

	fmt.Fprint(s.c.Term, "Holder is signing the VP...")
	vp, err := s.c.Credentials.IssuePresentation(ctx, credential.PresentationRequest{
		Holder:      holder,
		VerifierDID: s.verifier.DID,
		Credentials: []string{token},
		Nonce:       nonce,
		ExpiresIn:   time.Duration(minutes) * time.Minute,
	})
	if err != nil {
		fmt.Fprintln(s.c.Term)
		return s.c.fail(screen, err)
	}
	fmt.Fprintln(s.c.Term, terminal.Success("Ok!"))
	fmt.Fprint(s.c.Term, "Sending presentation (as JWT) to the verifier...")
	fmt.Fprintln(s.c.Term, terminal.Success("Ok!"))

	res, err := s.c.Credentials.ValidatePresentation(ctx, vp, credential.PresentationOptions{
		Nonce:    nonce,
		Audience: s.verifier.DID,
		OnStep: func(step credential.Step, err error) {
			status := terminal.Success("Ok!")
			if err != nil {
				status = terminal.Error("Failed!")
			}
			fmt.Fprintf(s.c.Term, "%s...%s\n", step, status)
		},
	})
	if err != nil {
		return s.c.fail(screen, err)
	}
	s.c.log().Info("vp verified", "holder", res.Holder.ID, "verifier", s.verifier.DID, "credentials", len(res.Credentials))

	fmt.Fprintln(s.c.Term)
	for _, cred := range res.Credentials {
		data, err := cred.JSON()
		if err != nil {
			return s.c.fail(screen, err)
		}
		printJSON(s.c.Term, "Presented VC", data)
	}
	if err := widgets.Pause(s.c.term()); err != nil {
		return fsm.Cancel, err
	}
	return fsm.Success, nil
}
