package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jask/petrus/internal/apperr"
	"github.com/jask/petrus/internal/database"
)

// DIDRepo handles dids.
type DIDRepo struct {
	db *sql.DB
}

func NewDIDRepo(db *sql.DB) *DIDRepo { return &DIDRepo{db: db} }

// Insert stores a DID row and returns its id. The DID string is unique.
func (r *DIDRepo) Insert(ctx context.Context, d DID) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
	INSERT INTO dids(did, fragment, name, document, created_at)
	VALUES (?, ?, ?, ?, ?);
	`, d.DID, d.Fragment, d.Name, d.Document, database.Now())
	if err != nil {
		return 0, fmt.Errorf("insert did: %w", err)
	}
	return res.LastInsertId()
}

// List returns every DID ordered by row id so indices stay stable.
func (r *DIDRepo) List(ctx context.Context) ([]DID, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, did, fragment, name, document, created_at FROM dids ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []DID
	for rows.Next() {
		var d DID
		if err := rows.Scan(&d.ID, &d.DID, &d.Fragment, &d.Name, &d.Document, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ByID returns the row with the given id.
func (r *DIDRepo) ByID(ctx context.Context, id int64) (*DID, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, did, fragment, name, document, created_at FROM dids WHERE id = ?`, id)
	return scanDID(row, fmt.Sprintf("did row %d", id))
}

func (r *DIDRepo) ByDID(ctx context.Context, did string) (*DID, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, did, fragment, name, document, created_at FROM dids WHERE did = ?`, did)
	return scanDID(row, did)
}

func scanDID(row *sql.Row, what string) (*DID, error) {
	var d DID
	if err := row.Scan(&d.ID, &d.DID, &d.Fragment, &d.Name, &d.Document, &d.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.CodeNotFound, what+" not found")
		}
		return nil, err
	}
	return &d, nil
}
