package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gduffy1993-png/casebrain-hub-sub007/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StrategyStore keeps per-build strategy snapshots, mirroring GraphStore.
type StrategyStore struct {
	db *pgxpool.Pool
}

func NewStrategyStore(db *pgxpool.Pool) *StrategyStore {
	return &StrategyStore{db: db}
}

func (s *StrategyStore) SaveSnapshot(ctx context.Context, caseID uuid.UUID, strategies []domain.Strategy) error {
	payload, err := json.Marshal(strategies)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx,
		`INSERT INTO strategy_snapshots (case_id, strategies) VALUES ($1, $2)`,
		caseID, payload,
	)
	return err
}

func (s *StrategyStore) LatestSnapshot(ctx context.Context, caseID uuid.UUID) ([]domain.Strategy, error) {
	var payload []byte
	err := s.db.QueryRow(ctx,
		`SELECT strategies FROM strategy_snapshots
		 WHERE case_id = $1 ORDER BY created_at DESC LIMIT 1`,
		caseID,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var strategies []domain.Strategy
	if err := json.Unmarshal(payload, &strategies); err != nil {
		return nil, err
	}
	return strategies, nil
}
