// Package credential issues and validates JWT credentials, selective
// disclosure credentials and presentations signed with Ed25519 DID keys.
package credential

import (
	"encoding/json"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

const (
	contextCredentialsV1 = "https://www.w3.org/2018/credentials/v1"
	typeCredential       = "VerifiableCredential"
	typePresentation     = "VerifiablePresentation"
	sdAlgSHA256          = "sha-256"
	sdClaim              = "_sd"
	subjectIDClaim       = "id"
)

var (
	ErrInvalidCredential   = errors.New("invalid credential")
	ErrIssuerMismatch      = errors.New("credential issuer does not match")
	ErrDisclosureMismatch  = errors.New("disclosure not committed by issuer")
	ErrInvalidPresentation = errors.New("invalid presentation")
	ErrNonceMismatch       = errors.New("presentation challenge does not match")
	ErrHolderMismatch      = errors.New("credential subject is not the presentation holder")
)

// CredentialBody is the vc claim of a credential JWT.
type CredentialBody struct {
	Context           []string       `json:"@context"`
	Type              []string       `json:"type"`
	Issuer            string         `json:"issuer"`
	CredentialSubject map[string]any `json:"credentialSubject"`
	NonTransferable   bool           `json:"nonTransferable,omitempty"`
}

// CredentialClaims are the JWT claims of a credential.
type CredentialClaims struct {
	VC    CredentialBody `json:"vc"`
	SDAlg string         `json:"_sd_alg,omitempty"`
	jwt.RegisteredClaims
}

// CredentialType returns the first non-generic type.
func (c CredentialClaims) CredentialType() string {
	for _, t := range c.VC.Type {
		if t != typeCredential {
			return t
		}
	}
	return typeCredential
}

// PresentationBody is the vp claim of a presentation JWT.
type PresentationBody struct {
	Context              []string `json:"@context"`
	Type                 []string `json:"type"`
	Holder               string   `json:"holder"`
	VerifiableCredential []string `json:"verifiableCredential"`
}

// PresentationClaims are the JWT claims of a presentation.
type PresentationClaims struct {
	VP    PresentationBody `json:"vp"`
	Nonce string           `json:"nonce,omitempty"`
	jwt.RegisteredClaims
}

// Decoded is a validated credential. Subject has every disclosed claim merged
// back in and no digest list.
type Decoded struct {
	Claims    CredentialClaims
	Subject   map[string]any
	Disclosed []string
	SD        bool
}

// JSON renders the credential body with the resolved subject.
func (d *Decoded) JSON() ([]byte, error) {
	body := d.Claims.VC
	body.CredentialSubject = d.Subject
	return json.MarshalIndent(struct {
		Issuer  string         `json:"iss"`
		Subject string         `json:"sub"`
		ID      string         `json:"jti,omitempty"`
		VC      CredentialBody `json:"vc"`
	}{d.Claims.Issuer, d.Claims.Subject, d.Claims.ID, body}, "", "  ")
}
