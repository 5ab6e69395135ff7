package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jask/petrus/internal/apperr"
	"github.com/jask/petrus/internal/database"
)

// VCRepo handles vcs.
type VCRepo struct {
	db *sql.DB
}

func NewVCRepo(db *sql.DB) *VCRepo { return &VCRepo{db: db} }

const vcSelect = `
	SELECT v.id, v.vc, v.type, v.sd, v.created_at,
	       i.id, i.did, i.fragment, i.name, i.document, i.created_at,
	       h.id, h.did, h.fragment, h.name, h.document, h.created_at
	FROM vcs v
	JOIN dids i ON i.id = v.issuer
	JOIN dids h ON h.id = v.holder`

// Insert stores a credential token issued by issuerID to holderID.
func (r *VCRepo) Insert(ctx context.Context, token string, issuerID, holderID int64, typ string, sd bool) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
	INSERT INTO vcs(vc, type, sd, issuer, holder, created_at)
	VALUES (?, ?, ?, ?, ?, ?);
	`, token, typ, sd, issuerID, holderID, database.Now())
	if err != nil {
		return 0, fmt.Errorf("insert vc: %w", err)
	}
	return res.LastInsertId()
}

// List returns every credential with issuer and holder rows, ordered by id.
func (r *VCRepo) List(ctx context.Context) ([]VC, error) {
	rows, err := r.db.QueryContext(ctx, vcSelect+` ORDER BY v.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []VC
	for rows.Next() {
		v, err := scanVC(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VCRepo) ByID(ctx context.Context, id int64) (*VC, error) {
	v, err := scanVC(r.db.QueryRowContext(ctx, vcSelect+` WHERE v.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.CodeNotFound, fmt.Sprintf("vc row %d not found", id))
		}
		return nil, err
	}
	return &v, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanVC(s scanner) (VC, error) {
	var v VC
	err := s.Scan(&v.ID, &v.Token, &v.Type, &v.SD, &v.CreatedAt,
		&v.Issuer.ID, &v.Issuer.DID, &v.Issuer.Fragment, &v.Issuer.Name, &v.Issuer.Document, &v.Issuer.CreatedAt,
		&v.Holder.ID, &v.Holder.DID, &v.Holder.Fragment, &v.Holder.Name, &v.Holder.Document, &v.Holder.CreatedAt)
	return v, err
}
