package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jask/petrus/internal/config"
	"github.com/jask/petrus/internal/credential"
	"github.com/jask/petrus/internal/database"
	"github.com/jask/petrus/internal/database/repository"
	"github.com/jask/petrus/internal/identity"
	"github.com/jask/petrus/internal/keystore"
	"github.com/jask/petrus/internal/logging"
	"github.com/jask/petrus/internal/screens"
	"github.com/jask/petrus/internal/service"
	"github.com/jask/petrus/internal/templates"
	"github.com/jask/petrus/internal/terminal"
)

// Session is a wired screen context plus the resources it holds open.
type Session struct {
	Context     *screens.Context
	DB          *sql.DB
	Keys        *keystore.Store
	Maintenance *service.MaintenanceService
}

// Close releases the database.
func (s *Session) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

// Bootstrap migrates and opens the wallet database, unlocks the keystore,
// seeds the template catalog and wires every collaborator the screens use.
func Bootstrap(ctx context.Context, cfg config.Config, term terminal.Terminal, log *slog.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if log == nil {
		log = logging.Discard()
	}
	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, errors.Join(fmt.Errorf("ping db: %w", err), db.Close())
	}
	keys, err := keystore.Open(cfg.Keystore.Path, cfg.KeystorePassphrase())
	if err != nil {
		return nil, errors.Join(fmt.Errorf("keystore: %w", err), db.Close())
	}
	catalog := &templates.Catalog{Dir: cfg.Credentials.TemplateDir}
	if err := catalog.SeedDefaults(); err != nil {
		return nil, errors.Join(fmt.Errorf("templates: %w", err), db.Close())
	}

	wallet := &service.Wallet{DIDs: repository.NewDIDRepo(db), VCs: repository.NewVCRepo(db)}
	resolver := &identity.RegistryResolver{Source: wallet}
	sc := &screens.Context{
		Term:        term,
		Store:       wallet,
		Resolver:    resolver,
		Identities:  &identity.Factory{Keys: keys},
		Credentials: &credential.Engine{Keys: keys, Resolver: resolver},
		Templates:   catalog,
		Editors:     &templates.Editors{Preferred: cfg.UI.Editor, Stdin: os.Stdin, Stdout: os.Stdout},
		UI:          cfg.UI,
		Log:         log,
	}
	log.Info("wallet opened", "db", cfg.Database.Path, "templates", cfg.Credentials.TemplateDir)
	return &Session{
		Context:     sc,
		DB:          db,
		Keys:        keys,
		Maintenance: &service.MaintenanceService{DB: db, Keys: keys},
	}, nil
}
