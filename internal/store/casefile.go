package store

import (
	"context"
	"errors"

	"github.com/gduffy1993-png/casebrain-hub-sub007/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CaseStore struct {
	db *pgxpool.Pool
}

func NewCaseStore(db *pgxpool.Pool) *CaseStore {
	return &CaseStore{db: db}
}

func (s *CaseStore) Create(ctx context.Context, c *domain.CaseFile) error {
	return s.db.QueryRow(ctx,
		`INSERT INTO cases (tenant_id, title, practice_area, charge, stance, phase)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		c.TenantID, c.Title, c.PracticeArea, c.Charge, c.Stance, int(c.Phase),
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (s *CaseStore) GetByID(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) (*domain.CaseFile, error) {
	c := &domain.CaseFile{}
	var phase int
	err := s.db.QueryRow(ctx,
		`SELECT id, tenant_id, title, practice_area, charge, stance, phase, created_at, updated_at
		 FROM cases WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	).Scan(&c.ID, &c.TenantID, &c.Title, &c.PracticeArea, &c.Charge, &c.Stance, &phase, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	c.Phase = domain.CasePhase(phase)
	return c, nil
}

func (s *CaseStore) UpdatePhase(ctx context.Context, id uuid.UUID, tenantID uuid.UUID, phase domain.CasePhase) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE cases SET phase = $3, updated_at = now()
		 WHERE id = $1 AND tenant_id = $2`,
		id, tenantID, int(phase),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
