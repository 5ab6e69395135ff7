package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jask/petrus/internal/apperr"
	"github.com/jask/petrus/internal/database/repository"
	"github.com/jask/petrus/internal/identity"
)

// Wallet is the credential and DID store used by the screens.
type Wallet struct {
	DIDs *repository.DIDRepo
	VCs  *repository.VCRepo
}

func (w *Wallet) StoredDIDs(ctx context.Context) ([]repository.DID, error) {
	return w.DIDs.List(ctx)
}

func (w *Wallet) StoredVCs(ctx context.Context) ([]repository.VC, error) {
	return w.VCs.List(ctx)
}

// SaveDIDDocument stores doc under the owner's display name and returns the
// stored row.
func (w *Wallet) SaveDIDDocument(ctx context.Context, doc identity.Document, owner string) (*repository.DID, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, apperr.New(apperr.CodeInvalidInput, "owner name required")
	}
	data, err := doc.JSON()
	if err != nil {
		return nil, fmt.Errorf("encode did document: %w", err)
	}
	id, err := w.DIDs.Insert(ctx, repository.DID{
		DID:      doc.ID,
		Fragment: doc.Fragment(),
		Name:     owner,
		Document: string(data),
	})
	if err != nil {
		return nil, err
	}
	return w.DIDs.ByID(ctx, id)
}

// SaveVC stores a signed credential issued by issuerID to holderID and
// returns the stored row joined with both parties.
func (w *Wallet) SaveVC(ctx context.Context, token string, issuerID, holderID int64, typ string, sd bool) (*repository.VC, error) {
	if strings.TrimSpace(token) == "" {
		return nil, apperr.New(apperr.CodeInvalidInput, "empty credential")
	}
	id, err := w.VCs.Insert(ctx, token, issuerID, holderID, typ, sd)
	if err != nil {
		return nil, err
	}
	return w.VCs.ByID(ctx, id)
}

// DocumentJSON returns the stored document of did.
func (w *Wallet) DocumentJSON(ctx context.Context, did string) ([]byte, error) {
	row, err := w.DIDs.ByDID(ctx, did)
	if err != nil {
		return nil, err
	}
	return []byte(row.Document), nil
}
