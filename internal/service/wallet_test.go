package service

import (
	"context"
	"crypto/ed25519"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/petrus/internal/apperr"
	"github.com/jask/petrus/internal/database"
	"github.com/jask/petrus/internal/database/repository"
	"github.com/jask/petrus/internal/identity"
)

func newWallet(t *testing.T) (*Wallet, *sql.DB) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &Wallet{DIDs: repository.NewDIDRepo(db), VCs: repository.NewVCRepo(db)}, db
}

func newDocument(t *testing.T) identity.Document {
	t.Helper()
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	doc, err := identity.NewDocument(pub)
	require.NoError(t, err)
	return doc
}

func TestWalletSaveAndList(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	w, _ := newWallet(t)

	issuerDoc, holderDoc := newDocument(t), newDocument(t)
	issuer, err := w.SaveDIDDocument(ctx, issuerDoc, "university")
	require.NoError(t, err)
	require.Equal(t, issuerDoc.ID, issuer.DID)
	holder, err := w.SaveDIDDocument(ctx, holderDoc, " student ")
	require.NoError(t, err)
	require.Equal(t, "student", holder.Name)
	require.False(t, holder.CreatedAt.IsZero())

	_, err = w.SaveDIDDocument(ctx, newDocument(t), "  ")
	require.True(t, apperr.HasCode(err, apperr.CodeInvalidInput))

	dids, err := w.StoredDIDs(ctx)
	require.NoError(t, err)
	require.Len(t, dids, 2)
	require.Equal(t, "student", dids[1].Name)
	require.Equal(t, "0", dids[1].Fragment)

	_, err = w.SaveVC(ctx, "", issuer.ID, holder.ID, "X", false)
	require.Error(t, err)
	vc, err := w.SaveVC(ctx, "a.b.c", issuer.ID, holder.ID, "UniversityDegree", false)
	require.NoError(t, err)
	require.Equal(t, "a.b.c", vc.Token)
	require.Equal(t, "university", vc.Issuer.Name)
	require.Equal(t, holderDoc.ID, vc.Holder.DID)

	_, err = w.SaveVC(ctx, "a.b.c", issuer.ID, 999, "UniversityDegree", false)
	require.Error(t, err)

	vcs, err := w.StoredVCs(ctx)
	require.NoError(t, err)
	require.Len(t, vcs, 1)
	require.Equal(t, issuerDoc.ID, vcs[0].Issuer.DID)

	data, err := w.DocumentJSON(ctx, holderDoc.ID)
	require.NoError(t, err)
	got, err := identity.ParseDocument(data)
	require.NoError(t, err)
	require.Equal(t, holderDoc, got)

	_, err = w.DocumentJSON(ctx, "did:jwk:unknown")
	require.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

type fakeKeys struct{ resets int }

func (f *fakeKeys) Reset() error { f.resets++; return nil }

func TestMaintenanceReset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	w, db := newWallet(t)
	a, err := w.SaveDIDDocument(ctx, newDocument(t), "a")
	require.NoError(t, err)
	_, err = w.SaveVC(ctx, "a.b.c", a.ID, a.ID, "Self", false)
	require.NoError(t, err)

	keys := &fakeKeys{}
	svc := &MaintenanceService{DB: db, Keys: keys}
	require.NoError(t, svc.Reset(ctx))
	require.Equal(t, 1, keys.resets)

	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM dids").Scan(&count))
	require.Zero(t, count)
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM vcs").Scan(&count))
	require.Zero(t, count)

	require.Error(t, (&MaintenanceService{}).Reset(ctx))
}
