package identity

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jask/petrus/internal/apperr"
)

// DocumentSource returns stored document JSON for a DID.
type DocumentSource interface {
	DocumentJSON(ctx context.Context, did string) ([]byte, error)
}

// RegistryResolver resolves DIDs against the local registry, deriving
// did:jwk documents from the identifier when nothing is stored.
type RegistryResolver struct {
	Source DocumentSource
}

func (r *RegistryResolver) Resolve(ctx context.Context, did string) (Document, error) {
	if r.Source != nil {
		data, err := r.Source.DocumentJSON(ctx, did)
		switch {
		case err == nil:
			return ParseDocument(data)
		case !apperr.HasCode(err, apperr.CodeNotFound):
			return Document{}, apperr.Wrap(err, apperr.CodeInternal, "resolve "+did)
		}
	}
	return FromJWKDID(did)
}

// ResolveMany resolves every DID concurrently. Duplicates are resolved once.
func (r *RegistryResolver) ResolveMany(ctx context.Context, dids []string) (map[string]Document, error) {
	var mu sync.Mutex
	out := make(map[string]Document, len(dids))
	g, gctx := errgroup.WithContext(ctx)
	seen := map[string]bool{}
	for _, did := range dids {
		if seen[did] {
			continue
		}
		seen[did] = true
		g.Go(func() error {
			doc, err := r.Resolve(gctx, did)
			if err != nil {
				return err
			}
			mu.Lock()
			out[did] = doc
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
