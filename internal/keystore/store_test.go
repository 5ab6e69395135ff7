package keystore

import (
	"crypto/ed25519"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/petrus/internal/apperr"
)

func TestPutGetRoundTripAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "keys.json")
	s, err := Open(path, "hunter2")
	require.NoError(t, err)

	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	require.NoError(t, s.Put("did:jwk:abc#0", priv))
	require.True(t, s.Has("did:jwk:abc#0"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reopened, err := Open(path, "hunter2")
	require.NoError(t, err)
	got, err := reopened.Get("did:jwk:abc#0")
	require.NoError(t, err)
	require.True(t, priv.Equal(got))
}

func TestGetMissingKey(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "keys.json"), "")
	require.NoError(t, err)
	_, err = s.Get("did:jwk:none#0")
	require.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

func TestOpenRejectsWrongPassphrase(t *testing.T) {
	tests := []struct {
		name    string
		withKey bool
	}{
		{"empty keystore", false},
		{"keystore with key", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "keys.json")
			s, err := Open(path, "right")
			require.NoError(t, err)
			_, priv, err := ed25519.GenerateKey(nil)
			require.NoError(t, err)
			if tt.withKey {
				require.NoError(t, s.Put("did:jwk:a#0", priv))
			}

			_, err = Open(path, "wrong")
			require.ErrorIs(t, err, ErrWrongPassphrase)
			require.True(t, apperr.HasCode(err, apperr.CodeInvalidInput))

			reopened, err := Open(path, "right")
			require.NoError(t, err)
			if tt.withKey {
				got, err := reopened.Get("did:jwk:a#0")
				require.NoError(t, err)
				require.True(t, priv.Equal(got))
			}
		})
	}
}

func TestOpenChecksLegacyFileAgainstKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.json")
	s, err := Open(path, "right")
	require.NoError(t, err)
	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	require.NoError(t, s.Put("k", priv))

	// strip the check value, as in files written before it existed
	s.file.Check = ""
	require.NoError(t, s.save())

	_, err = Open(path, "wrong")
	require.ErrorIs(t, err, ErrWrongPassphrase)

	reopened, err := Open(path, "right")
	require.NoError(t, err)
	require.NotEmpty(t, reopened.file.Check)
}

func TestResetKeepsPassphraseBinding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.json")
	s, err := Open(path, "right")
	require.NoError(t, err)
	require.NoError(t, s.Reset())
	_, err = Open(path, "wrong")
	require.ErrorIs(t, err, ErrWrongPassphrase)
}

func TestResetDropsKeys(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "keys.json"), "p")
	require.NoError(t, err)
	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	require.NoError(t, s.Put("k", priv))
	require.NoError(t, s.Reset())
	require.False(t, s.Has("k"))
}
