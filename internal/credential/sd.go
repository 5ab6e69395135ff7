package credential

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/jask/petrus/internal/apperr"
	"github.com/jask/petrus/internal/identity"
)

// Disclosure is one concealed claim of a selective disclosure credential.
type Disclosure struct {
	Raw    string // base64url(JSON[salt, name, value])
	Salt   string
	Name   string
	Value  any
	Digest string
}

// SDCredential is an issuer-signed JWS plus the disclosures the holder may reveal.
type SDCredential struct {
	JWS         string
	Disclosures []Disclosure
}

// Token serializes as <jws>~<d1>~...~<dn>~.
func (c SDCredential) Token() string {
	var b strings.Builder
	b.WriteString(c.JWS)
	b.WriteByte('~')
	for _, d := range c.Disclosures {
		b.WriteString(d.Raw)
		b.WriteByte('~')
	}
	return b.String()
}

// Names lists the concealed claim names in disclosure order.
func (c SDCredential) Names() []string {
	out := make([]string, 0, len(c.Disclosures))
	for _, d := range c.Disclosures {
		out = append(out, d.Name)
	}
	return out
}

// Present keeps only the disclosures for names.
func (c SDCredential) Present(names []string) SDCredential {
	out := SDCredential{JWS: c.JWS}
	for _, d := range c.Disclosures {
		if slices.Contains(names, d.Name) {
			out.Disclosures = append(out.Disclosures, d)
		}
	}
	return out
}

func digest(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

func (e *Engine) newDisclosure(name string, value any) (Disclosure, error) {
	r := e.Rand
	if r == nil {
		r = rand.Reader
	}
	salt := make([]byte, 16)
	if _, err := io.ReadFull(r, salt); err != nil {
		return Disclosure{}, err
	}
	d := Disclosure{Salt: base64.RawURLEncoding.EncodeToString(salt), Name: name, Value: value}
	data, err := json.Marshal([]any{d.Salt, name, value})
	if err != nil {
		return Disclosure{}, fmt.Errorf("encode disclosure %s: %w", name, err)
	}
	d.Raw = base64.RawURLEncoding.EncodeToString(data)
	d.Digest = digest(d.Raw)
	return d, nil
}

// ParseDisclosure decodes one serialized disclosure.
func ParseDisclosure(raw string) (Disclosure, error) {
	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return Disclosure{}, fmt.Errorf("%w: disclosure encoding: %w", ErrInvalidCredential, err)
	}
	var parts []any
	if err := json.Unmarshal(data, &parts); err != nil || len(parts) != 3 {
		return Disclosure{}, fmt.Errorf("%w: disclosure must be [salt, name, value]", ErrInvalidCredential)
	}
	salt, ok1 := parts[0].(string)
	name, ok2 := parts[1].(string)
	if !ok1 || !ok2 {
		return Disclosure{}, fmt.Errorf("%w: disclosure salt and name must be strings", ErrInvalidCredential)
	}
	return Disclosure{Raw: raw, Salt: salt, Name: name, Value: parts[2], Digest: digest(raw)}, nil
}

// ParseSD splits a serialized selective disclosure credential.
func ParseSD(token string) (SDCredential, error) {
	parts := strings.Split(token, "~")
	if len(parts) < 2 || parts[0] == "" {
		return SDCredential{}, fmt.Errorf("%w: not a selective disclosure token", ErrInvalidCredential)
	}
	out := SDCredential{JWS: parts[0]}
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		d, err := ParseDisclosure(p)
		if err != nil {
			return SDCredential{}, err
		}
		out.Disclosures = append(out.Disclosures, d)
	}
	return out, nil
}

// IssueSD signs a credential whose concealed subject claims are replaced by
// digests. The subject id is never concealed.
func (e *Engine) IssueSD(ctx context.Context, req IssueRequest, concealed []string) (SDCredential, error) {
	if err := ctx.Err(); err != nil {
		return SDCredential{}, err
	}
	claims, err := e.claims(req)
	if err != nil {
		return SDCredential{}, err
	}
	subject := claims.VC.CredentialSubject
	var out SDCredential
	var digests []string
	for _, name := range concealed {
		if name == subjectIDClaim {
			continue
		}
		value, ok := subject[name]
		if !ok {
			return SDCredential{}, apperr.New(apperr.CodeInvalidInput, "no claim "+name+" to conceal")
		}
		d, err := e.newDisclosure(name, value)
		if err != nil {
			return SDCredential{}, err
		}
		delete(subject, name)
		out.Disclosures = append(out.Disclosures, d)
		digests = append(digests, d.Digest)
	}
	if len(digests) > 0 {
		slices.Sort(digests)
		subject[sdClaim] = digests
	}
	claims.SDAlg = sdAlgSHA256

	out.JWS, err = e.sign(req.Issuer.KeyID(), &claims)
	if err != nil {
		return SDCredential{}, err
	}
	return out, nil
}

func (e *Engine) validateSD(sd SDCredential, issuer identity.Document) (*Decoded, error) {
	claims, err := e.verifyJWS(sd.JWS, issuer)
	if err != nil {
		return nil, err
	}
	if claims.SDAlg != "" && claims.SDAlg != sdAlgSHA256 {
		return nil, fmt.Errorf("%w: unsupported _sd_alg %s", ErrInvalidCredential, claims.SDAlg)
	}
	subject := maps.Clone(claims.VC.CredentialSubject)
	committed := map[string]bool{}
	if list, ok := subject[sdClaim].([]any); ok {
		for _, v := range list {
			if s, ok := v.(string); ok {
				committed[s] = true
			}
		}
	}
	delete(subject, sdClaim)

	out := &Decoded{Claims: *claims, SD: true}
	for _, d := range sd.Disclosures {
		if !committed[d.Digest] {
			return nil, fmt.Errorf("%w: %s", ErrDisclosureMismatch, d.Name)
		}
		if _, clash := subject[d.Name]; clash {
			return nil, fmt.Errorf("%w: %s already present", ErrDisclosureMismatch, d.Name)
		}
		subject[d.Name] = d.Value
		out.Disclosed = append(out.Disclosed, d.Name)
	}
	out.Subject = subject
	return out, nil
}
