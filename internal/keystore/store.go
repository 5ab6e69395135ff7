// Package keystore keeps DID private keys in a per-user file (0600), sealed
// with AES-GCM under a key derived from a passphrase with argon2id.
package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"

	"github.com/jask/petrus/internal/apperr"
)

const (
	saltLen = 16
	checkAAD   = "keystore-check"
	checkPlain = "petrus"
)

// ErrWrongPassphrase is returned by Open when the passphrase does not match
// the one the file was created with.
var ErrWrongPassphrase = apperr.New(apperr.CodeInvalidInput, "wrong keystore passphrase")

type keyFile struct {
	Salt  string            `json:"salt"`
	Check string            `json:"check,omitempty"` // base64(nonce|ciphertext) of checkPlain
	Keys  map[string]string `json:"keys"`            // kid -> base64(nonce|ciphertext)
}

// Store is a file-backed private key store keyed by verification method id.
type Store struct {
	mu   sync.Mutex
	path string
	aead cipher.AEAD
	file keyFile
}

// Open loads or creates the key file at path. An empty passphrase falls back
// to a per-user derived secret.
func Open(path, passphrase string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("keystore: path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("keystore: mkdir: %w", err)
	}
	kf, err := load(path)
	if err != nil {
		return nil, err
	}
	var salt []byte
	if kf.Salt == "" {
		salt = make([]byte, saltLen)
		if _, err := io.ReadFull(rand.Reader, salt); err != nil {
			return nil, err
		}
		kf.Salt = base64.StdEncoding.EncodeToString(salt)
	} else if salt, err = base64.StdEncoding.DecodeString(kf.Salt); err != nil {
		return nil, fmt.Errorf("keystore: bad salt: %w", err)
	}
	if kf.Keys == nil {
		kf.Keys = map[string]string{}
	}
	if passphrase == "" {
		passphrase = defaultPassphrase()
	}
	aead, err := newAEAD(argon2.IDKey([]byte(passphrase), salt, 1, 64*1024, 4, 32))
	if err != nil {
		return nil, err
	}
	s := &Store{path: path, aead: aead, file: kf}
	if err := s.verify(); err != nil {
		return nil, err
	}
	if err := s.save(); err != nil {
		return nil, err
	}
	return s, nil
}

// Put seals key under kid and persists the file.
func (s *Store) Put(kid string, key ed25519.PrivateKey) error {
	if kid = strings.TrimSpace(kid); kid == "" {
		return fmt.Errorf("keystore: kid required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sealed, err := s.seal(key.Seed(), kid)
	if err != nil {
		return err
	}
	s.file.Keys[kid] = sealed
	return s.save()
}

// Get returns the private key stored under kid.
func (s *Store) Get(kid string) (ed25519.PrivateKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	enc, ok := s.file.Keys[kid]
	if !ok {
		return nil, apperr.New(apperr.CodeNotFound, "no private key for "+kid)
	}
	seed, err := s.open(enc, kid)
	if err != nil {
		return nil, fmt.Errorf("keystore: decrypt %s: %w", kid, err)
	}
	return ed25519.NewKeyFromSeed(seed), nil
}

// Has reports whether a key is stored under kid.
func (s *Store) Has(kid string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.file.Keys[kid]
	return ok
}

// Reset drops every stored key.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.file.Keys = map[string]string{}
	return s.save()
}

// verify checks the passphrase against the stored check value. Files written
// before the check existed are verified against one of their keys instead.
// A file with neither gets a fresh check value.
func (s *Store) verify() error {
	if s.file.Check != "" {
		plain, err := s.open(s.file.Check, checkAAD)
		if err != nil || string(plain) != checkPlain {
			return ErrWrongPassphrase
		}
		return nil
	}
	for kid, enc := range s.file.Keys {
		if _, err := s.open(enc, kid); err != nil {
			return ErrWrongPassphrase
		}
		break
	}
	check, err := s.seal([]byte(checkPlain), checkAAD)
	if err != nil {
		return err
	}
	s.file.Check = check
	return nil
}

func (s *Store) seal(plain []byte, aad string) (string, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(s.aead.Seal(nonce, nonce, plain, []byte(aad))), nil
}

func (s *Store) open(enc, aad string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return nil, err
	}
	ns := s.aead.NonceSize()
	if len(raw) < ns {
		return nil, fmt.Errorf("keystore: ciphertext too short")
	}
	return s.aead.Open(nil, raw[:ns], raw[ns:], []byte(aad))
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.file, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func load(path string) (keyFile, error) {
	var kf keyFile
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return keyFile{}, nil
		}
		return kf, err
	}
	if err := json.Unmarshal(data, &kf); err != nil {
		return kf, fmt.Errorf("keystore: parse %s: %w", path, err)
	}
	return kf, nil
}

func defaultPassphrase() string {
	return fmt.Sprintf("petrus-%s-%s", runtime.GOOS, os.Getenv("USER"))
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
