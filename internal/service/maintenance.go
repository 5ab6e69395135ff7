package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/petrus/internal/database"
)

// KeyResetter drops stored private keys.
type KeyResetter interface {
	Reset() error
}

// MaintenanceService houses destructive actions surfaced through the CLI.
type MaintenanceService struct {
	DB   *sql.DB
	Keys KeyResetter
}

// Reset wipes all wallet data. It keeps the schema intact so the app can continue running.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	if err := database.WithTx(s.DB, func(tx *sql.Tx) error {
		for _, t := range []string{"vcs", "dids"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
				return fmt.Errorf("reset table %s: %w", t, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	if s.Keys != nil {
		if err := s.Keys.Reset(); err != nil {
			return fmt.Errorf("reset keys: %w", err)
		}
	}
	return nil
}
