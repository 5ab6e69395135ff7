package credential

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"io"
	"maps"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jask/petrus/internal/apperr"
	"github.com/jask/petrus/internal/identity"
)

// KeySource returns signing keys by verification method id.
type KeySource interface {
	Get(kid string) (ed25519.PrivateKey, error)
}

// Resolver turns DIDs into documents.
type Resolver interface {
	Resolve(ctx context.Context, did string) (identity.Document, error)
	ResolveMany(ctx context.Context, dids []string) (map[string]identity.Document, error)
}

// Engine signs and checks credentials and presentations.
type Engine struct {
	Keys     KeySource
	Resolver Resolver
	Now      func() time.Time // nil means time.Now
	Rand     io.Reader        // salt source, nil means crypto/rand
}

// IssueRequest describes a credential to sign.
type IssueRequest struct {
	Issuer          identity.Document
	HolderDID       string
	Type            string
	Subject         map[string]any
	NonTransferable bool
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Engine) claims(req IssueRequest) (CredentialClaims, error) {
	if req.Issuer.ID == "" {
		return CredentialClaims{}, apperr.New(apperr.CodeInvalidInput, "issuer document required")
	}
	if strings.TrimSpace(req.HolderDID) == "" {
		return CredentialClaims{}, apperr.New(apperr.CodeInvalidInput, "holder did required")
	}
	if strings.TrimSpace(req.Type) == "" {
		return CredentialClaims{}, apperr.New(apperr.CodeInvalidInput, "credential type required")
	}
	subject := maps.Clone(req.Subject)
	if subject == nil {
		subject = map[string]any{}
	}
	subject[subjectIDClaim] = req.HolderDID
	now := e.now()
	return CredentialClaims{
		VC: CredentialBody{
			Context:           []string{contextCredentialsV1},
			Type:              []string{typeCredential, req.Type},
			Issuer:            req.Issuer.ID,
			CredentialSubject: subject,
			NonTransferable:   req.NonTransferable,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    req.Issuer.ID,
			Subject:   req.HolderDID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        "urn:uuid:" + uuid.NewString(),
		},
	}, nil
}

// IssueJWT signs a plain credential with the issuer's key.
func (e *Engine) IssueJWT(ctx context.Context, req IssueRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	claims, err := e.claims(req)
	if err != nil {
		return "", err
	}
	return e.sign(req.Issuer.KeyID(), &claims)
}

func (e *Engine) sign(kid string, claims jwt.Claims) (string, error) {
	priv, err := e.Keys.Get(kid)
	if err != nil {
		return "", fmt.Errorf("signing key: %w", err)
	}
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	token.Header["kid"] = kid
	signed, err := token.SignedString(priv)
	if err != nil {
		return "", fmt.Errorf("sign: %w", err)
	}
	return signed, nil
}

// keyFunc picks the verification method named by the kid header from doc.
func keyFunc(doc identity.Document) jwt.Keyfunc {
	return func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid != "" && !strings.HasPrefix(kid, doc.ID+"#") {
			return nil, fmt.Errorf("kid %q not controlled by %s", kid, doc.ID)
		}
		return doc.PublicKey(kid)
	}
}

func (e *Engine) parserOptions(extra ...jwt.ParserOption) []jwt.ParserOption {
	return append([]jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithTimeFunc(e.now),
	}, extra...)
}

// Validate checks a plain or selective disclosure credential against the
// issuer's document.
func (e *Engine) Validate(ctx context.Context, token string, issuer identity.Document) (*Decoded, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.Contains(token, "~") {
		sd, err := ParseSD(token)
		if err != nil {
			return nil, err
		}
		return e.validateSD(sd, issuer)
	}
	claims, err := e.verifyJWS(token, issuer)
	if err != nil {
		return nil, err
	}
	return &Decoded{Claims: *claims, Subject: maps.Clone(claims.VC.CredentialSubject)}, nil
}

func (e *Engine) verifyJWS(jws string, issuer identity.Document) (*CredentialClaims, error) {
	claims := new(CredentialClaims)
	if _, err := jwt.ParseWithClaims(jws, claims, keyFunc(issuer), e.parserOptions()...); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}
	if claims.Issuer != issuer.ID || claims.VC.Issuer != issuer.ID {
		return nil, fmt.Errorf("%w: got %s, want %s", ErrIssuerMismatch, claims.Issuer, issuer.ID)
	}
	return claims, nil
}

// IssuerOf reads the unverified issuer of a credential token.
func IssuerOf(token string) (string, error) {
	jws, _, _ := strings.Cut(token, "~")
	claims := new(CredentialClaims)
	if _, _, err := jwt.NewParser().ParseUnverified(jws, claims); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}
	if claims.Issuer == "" {
		return "", fmt.Errorf("%w: missing iss", ErrInvalidCredential)
	}
	return claims.Issuer, nil
}
