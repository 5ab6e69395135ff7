// Package identity builds and resolves did:jwk documents backed by Ed25519 keys.
package identity

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jask/petrus/internal/apperr"
)

const (
	MethodPrefix     = "did:jwk:"
	DefaultFragment  = "0"
	VerificationType = "JsonWebKey2020"
	contextDIDv1     = "https://www.w3.org/ns/did/v1"
	contextJWS2020   = "https://w3id.org/security/suites/jws-2020/v1"
	keyTypeOKP       = "OKP"
	curveEd25519     = "Ed25519"
)

// JWK is the public Ed25519 key in JSON Web Key form.
type JWK struct {
	Crv string `json:"crv"`
	Kty string `json:"kty"`
	X   string `json:"x"`
	Kid string `json:"kid,omitempty"`
}

// VerificationMethod binds a JWK to its controller DID.
type VerificationMethod struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Controller   string `json:"controller"`
	PublicKeyJwk JWK    `json:"publicKeyJwk"`
}

// Document is a DID document with a single signing method.
type Document struct {
	Context            []string             `json:"@context"`
	ID                 string               `json:"id"`
	VerificationMethod []VerificationMethod `json:"verificationMethod"`
	Authentication     []string             `json:"authentication"`
	AssertionMethod    []string             `json:"assertionMethod"`
}

// Fragment returns the fragment of the first verification method.
func (d Document) Fragment() string {
	if len(d.VerificationMethod) == 0 {
		return ""
	}
	_, frag, _ := strings.Cut(d.VerificationMethod[0].ID, "#")
	return frag
}

// KeyID is the id of the method used for signing.
func (d Document) KeyID() string {
	if len(d.VerificationMethod) == 0 {
		return ""
	}
	return d.VerificationMethod[0].ID
}

// PublicKey returns the Ed25519 key of the verification method with kid, or
// the first method when kid is empty.
func (d Document) PublicKey(kid string) (ed25519.PublicKey, error) {
	for _, vm := range d.VerificationMethod {
		if kid != "" && vm.ID != kid {
			continue
		}
		return vm.PublicKeyJwk.PublicKey()
	}
	return nil, apperr.New(apperr.CodeNotFound, fmt.Sprintf("verification method %q not in %s", kid, d.ID))
}

// JSON renders the document indented for display and storage.
func (d Document) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// PublicKey decodes the x coordinate.
func (k JWK) PublicKey() (ed25519.PublicKey, error) {
	if k.Kty != keyTypeOKP || k.Crv != curveEd25519 {
		return nil, fmt.Errorf("unsupported jwk %s/%s", k.Kty, k.Crv)
	}
	raw, err := base64.RawURLEncoding.DecodeString(k.X)
	if err != nil {
		return nil, fmt.Errorf("decode jwk x: %w", err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("jwk x has %d bytes", len(raw))
	}
	return ed25519.PublicKey(raw), nil
}

// NewJWK encodes an Ed25519 public key.
func NewJWK(pub ed25519.PublicKey) JWK {
	return JWK{Crv: curveEd25519, Kty: keyTypeOKP, X: base64.RawURLEncoding.EncodeToString(pub)}
}

// DIDFromKey derives the did:jwk identifier of pub.
func DIDFromKey(pub ed25519.PublicKey) (string, error) {
	raw, err := json.Marshal(NewJWK(pub))
	if err != nil {
		return "", err
	}
	return MethodPrefix + base64.RawURLEncoding.EncodeToString(raw), nil
}

// NewDocument builds the document for pub.
func NewDocument(pub ed25519.PublicKey) (Document, error) {
	did, err := DIDFromKey(pub)
	if err != nil {
		return Document{}, err
	}
	kid := did + "#" + DefaultFragment
	jwk := NewJWK(pub)
	jwk.Kid = kid
	return Document{
		Context: []string{contextDIDv1, contextJWS2020},
		ID:      did,
		VerificationMethod: []VerificationMethod{{
			ID:           kid,
			Type:         VerificationType,
			Controller:   did,
			PublicKeyJwk: jwk,
		}},
		Authentication:  []string{kid},
		AssertionMethod: []string{kid},
	}, nil
}

// FromJWKDID derives a document from the identifier alone. A fragment is ignored.
func FromJWKDID(did string) (Document, error) {
	did, _, _ = strings.Cut(did, "#")
	enc, ok := strings.CutPrefix(did, MethodPrefix)
	if !ok {
		return Document{}, apperr.New(apperr.CodeInvalidInput, "not a did:jwk identifier: "+did)
	}
	raw, err := base64.RawURLEncoding.DecodeString(enc)
	if err != nil {
		return Document{}, apperr.Wrap(err, apperr.CodeInvalidInput, "decode did:jwk")
	}
	var jwk JWK
	if err := json.Unmarshal(raw, &jwk); err != nil {
		return Document{}, apperr.Wrap(err, apperr.CodeInvalidInput, "parse did:jwk key")
	}
	pub, err := jwk.PublicKey()
	if err != nil {
		return Document{}, apperr.Wrap(err, apperr.CodeInvalidInput, "did:jwk key")
	}
	return NewDocument(pub)
}

// ParseDocument decodes stored document JSON.
func ParseDocument(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("parse did document: %w", err)
	}
	if d.ID == "" || len(d.VerificationMethod) == 0 {
		return Document{}, apperr.New(apperr.CodeInvalidInput, "did document without id or verification method")
	}
	return d, nil
}
