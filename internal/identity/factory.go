package identity

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"io"
)

// KeySink persists private keys under their verification method id.
type KeySink interface {
	Put(kid string, key ed25519.PrivateKey) error
}

// Factory creates fresh DID documents and stores their signing keys.
type Factory struct {
	Keys KeySink
	Rand io.Reader // nil means crypto/rand
}

// Create generates a key pair, stores the private half and returns the document.
func (f *Factory) Create(ctx context.Context) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r := f.Rand
	if r == nil {
		r = rand.Reader
	}
	pub, priv, err := ed25519.GenerateKey(r)
	if err != nil {
		return Document{}, fmt.Errorf("generate key: %w", err)
	}
	doc, err := NewDocument(pub)
	if err != nil {
		return Document{}, err
	}
	if err := f.Keys.Put(doc.KeyID(), priv); err != nil {
		return Document{}, fmt.Errorf("store key: %w", err)
	}
	return doc, nil
}
