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

// GraphStore keeps an append-only history of graph builds per case. The
// latest snapshot exists for audit and read-back; evaluations always
// rebuild from the documents.
type GraphStore struct {
	db *pgxpool.Pool
}

func NewGraphStore(db *pgxpool.Pool) *GraphStore {
	return &GraphStore{db: db}
}

func (s *GraphStore) SaveSnapshot(ctx context.Context, caseID uuid.UUID, graph *domain.EvidenceGraph) error {
	payload, err := json.Marshal(graph)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx,
		`INSERT INTO graph_snapshots (case_id, graph) VALUES ($1, $2)`,
		caseID, payload,
	)
	return err
}

func (s *GraphStore) LatestSnapshot(ctx context.Context, caseID uuid.UUID) (*domain.EvidenceGraph, error) {
	var payload []byte
	err := s.db.QueryRow(ctx,
		`SELECT graph FROM graph_snapshots
		 WHERE case_id = $1 ORDER BY created_at DESC LIMIT 1`,
		caseID,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var graph domain.EvidenceGraph
	if err := json.Unmarshal(payload, &graph); err != nil {
		return nil, err
	}
	return &graph, nil
}
