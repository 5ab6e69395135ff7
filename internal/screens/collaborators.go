package screens

import (
	"context"

	"github.com/jask/petrus/internal/database/repository"
	"github.com/jask/petrus/internal/identity"
)

//go:generate mockgen -source=collaborators.go -destination=mocks/mocks.go -package=mocks

// Store is the DID and credential store.
type Store interface {
	StoredDIDs(ctx context.Context) ([]repository.DID, error)
	StoredVCs(ctx context.Context) ([]repository.VC, error)
	SaveDIDDocument(ctx context.Context, doc identity.Document, owner string) (*repository.DID, error)
	SaveVC(ctx context.Context, token string, issuerID, holderID int64, typ string, sd bool) (*repository.VC, error)
}

// Resolver turns a stored DID into its document.
type Resolver interface {
	Resolve(ctx context.Context, did string) (identity.Document, error)
}
