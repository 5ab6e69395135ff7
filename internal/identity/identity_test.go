package identity

import (
	"context"
	"crypto/ed25519"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/petrus/internal/apperr"
)

type memKeys map[string]ed25519.PrivateKey

func (m memKeys) Put(kid string, key ed25519.PrivateKey) error {
	m[kid] = key
	return nil
}

type memSource struct {
	docs map[string][]byte
	err  error
}

func (s memSource) DocumentJSON(_ context.Context, did string) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	data, ok := s.docs[did]
	if !ok {
		return nil, apperr.New(apperr.CodeNotFound, "missing")
	}
	return data, nil
}

func TestFactoryCreateStoresKey(t *testing.T) {
	keys := memKeys{}
	f := &Factory{Keys: keys}
	doc, err := f.Create(context.Background())
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(doc.ID, MethodPrefix))
	require.Equal(t, doc.ID+"#0", doc.KeyID())
	require.Equal(t, "0", doc.Fragment())
	require.Equal(t, VerificationType, doc.VerificationMethod[0].Type)
	require.Equal(t, []string{doc.KeyID()}, doc.AssertionMethod)

	priv, ok := keys[doc.KeyID()]
	require.True(t, ok)
	pub, err := doc.PublicKey(doc.KeyID())
	require.NoError(t, err)
	require.True(t, pub.Equal(priv.Public()))
}

func TestFromJWKDIDMatchesGeneratedDocument(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	want, err := NewDocument(pub)
	require.NoError(t, err)

	got, err := FromJWKDID(want.KeyID())
	require.NoError(t, err)
	require.Equal(t, want, got)

	_, err = FromJWKDID("did:web:example.com")
	require.True(t, apperr.HasCode(err, apperr.CodeInvalidInput))
}

func TestResolvePrefersStoredDocument(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	doc, err := NewDocument(pub)
	require.NoError(t, err)
	doc.Context = append(doc.Context, "https://example.com/extra")
	data, err := doc.JSON()
	require.NoError(t, err)

	r := &RegistryResolver{Source: memSource{docs: map[string][]byte{doc.ID: data}}}
	got, err := r.Resolve(context.Background(), doc.ID)
	require.NoError(t, err)
	require.Contains(t, got.Context, "https://example.com/extra")
}

func TestResolveFallsBackAndPropagatesStoreErrors(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	did, err := DIDFromKey(pub)
	require.NoError(t, err)

	r := &RegistryResolver{Source: memSource{docs: map[string][]byte{}}}
	doc, err := r.Resolve(context.Background(), did)
	require.NoError(t, err)
	require.Equal(t, did, doc.ID)

	broken := &RegistryResolver{Source: memSource{err: errors.New("disk gone")}}
	_, err = broken.Resolve(context.Background(), did)
	require.Error(t, err)
	require.Contains(t, err.Error(), "resolve")
}

func TestResolveMany(t *testing.T) {
	var dids []string
	for i := 0; i < 3; i++ {
		pub, _, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)
		did, err := DIDFromKey(pub)
		require.NoError(t, err)
		dids = append(dids, did)
	}
	dids = append(dids, dids[0])

	r := &RegistryResolver{}
	got, err := r.ResolveMany(context.Background(), dids)
	require.NoError(t, err)
	require.Len(t, got, 3)

	_, err = r.ResolveMany(context.Background(), []string{dids[1], "did:key:nope"})
	require.Error(t, err)
}
