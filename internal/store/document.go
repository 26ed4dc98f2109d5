package store

import (
	"context"

	"github.com/gduffy1993-png/casebrain-hub-sub007/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DocumentStore struct {
	db *pgxpool.Pool
}

func NewDocumentStore(db *pgxpool.Pool) *DocumentStore {
	return &DocumentStore{db: db}
}

func (s *DocumentStore) Create(ctx context.Context, d *domain.CaseDocument) error {
	return s.db.QueryRow(ctx,
		`INSERT INTO case_documents (case_id, name, raw_text, extracted_json)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		d.CaseID, d.Name, d.RawText, d.ExtractedJSON,
	).Scan(&d.ID, &d.CreatedAt)
}

// ListByCase returns documents in insertion order so graph builds see a
// stable document sequence.
func (s *DocumentStore) ListByCase(ctx context.Context, caseID uuid.UUID) ([]domain.CaseDocument, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, case_id, name, raw_text, extracted_json, created_at
		 FROM case_documents WHERE case_id = $1
		 ORDER BY created_at, id`,
		caseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []domain.CaseDocument
	for rows.Next() {
		var d domain.CaseDocument
		if err := rows.Scan(&d.ID, &d.CaseID, &d.Name, &d.RawText, &d.ExtractedJSON, &d.CreatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
