package domain

import (
	"context"

	"github.com/google/uuid"
)

type TenantStore interface {
	Create(ctx context.Context, t *Tenant) error
	GetByAPIKeyHash(ctx context.Context, apiKeyHash string) (*Tenant, error)
}

type CaseStore interface {
	Create(ctx context.Context, c *CaseFile) error
	GetByID(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) (*CaseFile, error)
	UpdatePhase(ctx context.Context, id uuid.UUID, tenantID uuid.UUID, phase CasePhase) error
}

type DocumentStore interface {
	Create(ctx context.Context, d *CaseDocument) error
	ListByCase(ctx context.Context, caseID uuid.UUID) ([]CaseDocument, error)
}

// GraphStore persists graph snapshots for audit and read-back. A snapshot is
// never trusted as current state: every evaluation rebuilds from documents.
type GraphStore interface {
	SaveSnapshot(ctx context.Context, caseID uuid.UUID, graph *EvidenceGraph) error
	LatestSnapshot(ctx context.Context, caseID uuid.UUID) (*EvidenceGraph, error)
}

// StrategyStore persists generated strategy sets, snapshot-per-build like
// GraphStore.
type StrategyStore interface {
	SaveSnapshot(ctx context.Context, caseID uuid.UUID, strategies []Strategy) error
	LatestSnapshot(ctx context.Context, caseID uuid.UUID) ([]Strategy, error)
}
