package credential

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jask/petrus/internal/apperr"
	"github.com/jask/petrus/internal/identity"
)

// PresentationRequest describes a presentation the holder signs for a verifier.
type PresentationRequest struct {
	Holder      identity.Document
	VerifierDID string
	Credentials []string
	Nonce       string
	ExpiresIn   time.Duration // zero means no expiry
}

// IssuePresentation wraps credentials in a holder-signed presentation JWT.
func (e *Engine) IssuePresentation(ctx context.Context, req PresentationRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if req.Holder.ID == "" {
		return "", apperr.New(apperr.CodeInvalidInput, "holder document required")
	}
	if len(req.Credentials) == 0 {
		return "", apperr.New(apperr.CodeInvalidInput, "presentation needs at least one credential")
	}
	now := e.now()
	claims := PresentationClaims{
		VP: PresentationBody{
			Context:              []string{contextCredentialsV1},
			Type:                 []string{typePresentation},
			Holder:               req.Holder.ID,
			VerifiableCredential: req.Credentials,
		},
		Nonce: req.Nonce,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    req.Holder.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	if req.VerifierDID != "" {
		claims.Audience = jwt.ClaimStrings{req.VerifierDID}
	}
	if req.ExpiresIn > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(req.ExpiresIn))
	}
	return e.sign(req.Holder.KeyID(), &claims)
}

// Step names one stage of presentation validation.
type Step int

const (
	StepHolder Step = iota
	StepChallenge
	StepIssuers
	StepCredentials
)

func (s Step) String() string {
	switch s {
	case StepHolder:
		return "Verifying the Holder of the VP"
	case StepChallenge:
		return "Verifying the VP Challenge and Expiration"
	case StepIssuers:
		return "Verifying the Issuer"
	case StepCredentials:
		return "Verifying the credentials and the relationship (Holder<>Subject)"
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

// PresentationOptions are the verifier's expectations.
type PresentationOptions struct {
	Nonce    string
	Audience string
	// OnStep is called after each stage with its outcome.
	OnStep func(step Step, err error)
}

// PresentationResult is a validated presentation.
type PresentationResult struct {
	Holder      identity.Document
	Claims      PresentationClaims
	Credentials []*Decoded
}

// ValidatePresentation verifies the holder signature, challenge, expiry and
// audience, resolves every issuer and validates each credential, which must
// be about the holder.
func (e *Engine) ValidatePresentation(ctx context.Context, token string, opts PresentationOptions) (*PresentationResult, error) {
	report := func(step Step, err error) error {
		if opts.OnStep != nil {
			opts.OnStep(step, err)
		}
		return err
	}

	holder, err := e.presentationHolder(ctx, token)
	if err := report(StepHolder, err); err != nil {
		return nil, err
	}

	claims, err := e.verifyPresentation(token, holder, opts)
	if err := report(StepChallenge, err); err != nil {
		return nil, err
	}

	issuerDIDs := make([]string, 0, len(claims.VP.VerifiableCredential))
	for _, vc := range claims.VP.VerifiableCredential {
		iss, err := IssuerOf(vc)
		if err != nil {
			return nil, report(StepIssuers, err)
		}
		issuerDIDs = append(issuerDIDs, iss)
	}
	issuers, err := e.Resolver.ResolveMany(ctx, issuerDIDs)
	if err := report(StepIssuers, err); err != nil {
		return nil, err
	}

	out := &PresentationResult{Holder: holder, Claims: *claims}
	for i, vc := range claims.VP.VerifiableCredential {
		decoded, err := e.Validate(ctx, vc, issuers[issuerDIDs[i]])
		if err == nil && decoded.Subject[subjectIDClaim] != holder.ID {
			err = fmt.Errorf("%w: credential %d", ErrHolderMismatch, i+1)
		}
		if err != nil {
			return nil, report(StepCredentials, err)
		}
		out.Credentials = append(out.Credentials, decoded)
	}
	report(StepCredentials, nil)
	return out, nil
}

func (e *Engine) presentationHolder(ctx context.Context, token string) (identity.Document, error) {
	claims := new(PresentationClaims)
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return identity.Document{}, fmt.Errorf("%w: %w", ErrInvalidPresentation, err)
	}
	if claims.Issuer == "" {
		return identity.Document{}, fmt.Errorf("%w: missing holder", ErrInvalidPresentation)
	}
	return e.Resolver.Resolve(ctx, claims.Issuer)
}

func (e *Engine) verifyPresentation(token string, holder identity.Document, opts PresentationOptions) (*PresentationClaims, error) {
	var extra []jwt.ParserOption
	if opts.Audience != "" {
		extra = append(extra, jwt.WithAudience(opts.Audience))
	}
	claims := new(PresentationClaims)
	if _, err := jwt.ParseWithClaims(token, claims, keyFunc(holder), e.parserOptions(extra...)...); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPresentation, err)
	}
	if claims.Issuer != holder.ID || claims.VP.Holder != holder.ID {
		return nil, fmt.Errorf("%w: holder mismatch", ErrInvalidPresentation)
	}
	if opts.Nonce != "" && claims.Nonce != opts.Nonce {
		return nil, ErrNonceMismatch
	}
	blank := func(v string) bool { return strings.TrimSpace(v) == "" }
	if len(claims.VP.VerifiableCredential) == 0 || slices.ContainsFunc(claims.VP.VerifiableCredential, blank) {
		return nil, fmt.Errorf("%w: no credentials", ErrInvalidPresentation)
	}
	return claims, nil
}

