package service

import (
	"context"
	"errors"

	"github.com/gduffy1993-png/casebrain-hub-sub007/internal/domain"
	"github.com/gduffy1993-png/casebrain-hub-sub007/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrCaseNotFound        = errors.New("case not found")
	ErrInvalidPracticeArea = errors.New("invalid practice area")
	ErrInvalidStance       = errors.New("invalid stance")
	ErrDocumentEmpty       = errors.New("document has no text and no extracted JSON")
	ErrNoSnapshot          = errors.New("no snapshot recorded for case")
)

// CaseService owns the request lifecycle around the engine: it loads the
// document snapshot, computes diagnostics, runs the pure pipeline and
// persists result snapshots. The engine stages themselves hold no state
// and never touch a store, so concurrent evaluations of the same case are
// safe by construction.
type CaseService struct {
	caseStore     domain.CaseStore
	documentStore domain.DocumentStore
	graphStore    domain.GraphStore
	strategyStore domain.StrategyStore

	graphBuilder *GraphBuilderService
	lensSvc      *LensService
	strategySvc  *StrategyService
	fightSvc     *FightService
	normalizer   *NormalizerService

	logger *zap.Logger
}

func NewCaseService(
	cs domain.CaseStore,
	ds domain.DocumentStore,
	gs domain.GraphStore,
	ss domain.StrategyStore,
	graphBuilder *GraphBuilderService,
	lensSvc *LensService,
	strategySvc *StrategyService,
	fightSvc *FightService,
	normalizer *NormalizerService,
	logger *zap.Logger,
) *CaseService {
	return &CaseService{
		caseStore:     cs,
		documentStore: ds,
		graphStore:    gs,
		strategyStore: ss,
		graphBuilder:  graphBuilder,
		lensSvc:       lensSvc,
		strategySvc:   strategySvc,
		fightSvc:      fightSvc,
		normalizer:    normalizer,
		logger:        logger,
	}
}

func (s *CaseService) CreateCase(ctx context.Context, tenantID uuid.UUID, title string, area domain.PracticeArea, charge string, stance domain.Stance) (*domain.CaseFile, error) {
	if !domain.ValidPracticeArea(string(area)) {
		return nil, ErrInvalidPracticeArea
	}
	if stance == "" {
		stance = domain.StanceUnknown
	}
	if !domain.ValidStance(string(stance)) {
		return nil, ErrInvalidStance
	}
	c := &domain.CaseFile{
		TenantID:     tenantID,
		Title:        title,
		PracticeArea: area,
		Charge:       charge,
		Stance:       stance,
		Phase:        domain.PhaseDisclosure,
	}
	if err := s.caseStore.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CaseService) GetCase(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) (*domain.CaseFile, error) {
	c, err := s.caseStore.GetByID(ctx, id, tenantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCaseNotFound
		}
		return nil, err
	}
	return c, nil
}

// AdvancePhase moves the case lifecycle forward. Phases never move back.
func (s *CaseService) AdvancePhase(ctx context.Context, id uuid.UUID, tenantID uuid.UUID, phase domain.CasePhase) (*domain.CaseFile, error) {
	c, err := s.GetCase(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}
	if phase < c.Phase {
		return c, nil
	}
	if err := s.caseStore.UpdatePhase(ctx, id, tenantID, phase); err != nil {
		return nil, err
	}
	c.Phase = phase
	return c, nil
}

func (s *CaseService) AddDocument(ctx context.Context, tenantID uuid.UUID, caseID uuid.UUID, name, rawText, extractedJSON string) (*domain.CaseDocument, error) {
	if _, err := s.GetCase(ctx, caseID, tenantID); err != nil {
		return nil, err
	}
	if rawText == "" && extractedJSON == "" {
		return nil, ErrDocumentEmpty
	}
	doc := &domain.CaseDocument{
		CaseID:        caseID,
		Name:          name,
		RawText:       rawText,
		ExtractedJSON: extractedJSON,
	}
	if err := s.documentStore.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *CaseService) ListDocuments(ctx context.Context, tenantID uuid.UUID, caseID uuid.UUID) ([]domain.CaseDocument, error) {
	if _, err := s.GetCase(ctx, caseID, tenantID); err != nil {
		return nil, err
	}
	docs, err := s.documentStore.ListByCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []domain.CaseDocument{}
	}
	return docs, nil
}

// scannedCharsPerDoc is the average raw-text floor under which documents
// look like image scans that OCR never got real text out of.
const scannedCharsPerDoc = 40

// ComputeDiagnostics derives the fixed-threshold diagnostics from the
// current document set.
func ComputeDiagnostics(docs []domain.CaseDocument) domain.Diagnostics {
	diag := domain.Diagnostics{DocCount: len(docs), ReasonCodes: []string{}}
	for _, d := range docs {
		diag.RawCharsTotal += len(d.RawText)
		diag.JSONCharsTotal += len(d.ExtractedJSON)
	}
	diag.SuspectedScanned = diag.DocCount > 0 &&
		diag.RawCharsTotal > 0 &&
		diag.RawCharsTotal < diag.DocCount*scannedCharsPerDoc

	switch {
	case diag.DocCount == 0:
		diag.ReasonCodes = append(diag.ReasonCodes, domain.DiagDocsNone)
	case diag.RawCharsTotal == 0:
		diag.ReasonCodes = append(diag.ReasonCodes, domain.DiagNoText)
	case diag.RawCharsTotal < domain.MinReadableChars:
		diag.ReasonCodes = append(diag.ReasonCodes, domain.DiagTextThin)
	default:
		diag.ReasonCodes = append(diag.ReasonCodes, domain.DiagOK)
	}
	return diag
}

// BuildGraph rebuilds the evidence graph from the current document set and
// persists a snapshot. The snapshot is audit material; it is never read
// back as current state.
func (s *CaseService) BuildGraph(ctx context.Context, tenantID uuid.UUID, caseID uuid.UUID) (*domain.EvidenceGraph, domain.Diagnostics, error) {
	docs, err := s.ListDocuments(ctx, tenantID, caseID)
	if err != nil {
		return nil, domain.Diagnostics{}, err
	}

	diag := ComputeDiagnostics(docs)
	graph := s.graphBuilder.Build(docs, diag)

	if err := s.graphStore.SaveSnapshot(ctx, caseID, &graph); err != nil {
		s.logger.Warn("failed to persist graph snapshot",
			zap.String("case_id", caseID.String()),
			zap.Error(err))
	}

	return &graph, diag, nil
}

// Disclosure rebuilds the graph and derives the disclosure status for the
// case's practice area.
func (s *CaseService) Disclosure(ctx context.Context, tenantID uuid.UUID, caseID uuid.UUID) (domain.DisclosureStatus, error) {
	c, err := s.GetCase(ctx, caseID, tenantID)
	if err != nil {
		return domain.DisclosureStatus{}, err
	}
	graph, _, err := s.BuildGraph(ctx, tenantID, caseID)
	if err != nil {
		return domain.DisclosureStatus{}, err
	}
	return EvaluateDisclosure(graph, c.PracticeArea), nil
}

// EvaluateLens runs a practice-area lens against a fresh graph. An empty
// area means "use the case's own area"; passing a different area runs that
// lens against the same evidence, which is how cross-area second opinions
// work. callerPhase of 0 means "use the case's current phase".
func (s *CaseService) EvaluateLens(ctx context.Context, tenantID uuid.UUID, caseID uuid.UUID, area domain.PracticeArea, callerPhase domain.CasePhase) (domain.LensReport, error) {
	c, err := s.GetCase(ctx, caseID, tenantID)
	if err != nil {
		return domain.LensReport{}, err
	}
	if area == "" {
		area = c.PracticeArea
	}
	if !domain.ValidPracticeArea(string(area)) {
		return domain.LensReport{}, ErrInvalidPracticeArea
	}
	graph, _, err := s.BuildGraph(ctx, tenantID, caseID)
	if err != nil {
		return domain.LensReport{}, err
	}
	phase := callerPhase
	if phase == 0 {
		phase = c.Phase
	}
	disclosure := EvaluateDisclosure(graph, area)
	return s.lensSvc.Evaluate(area, graph, disclosure, phase)
}

// Strategies regenerates the full strategy set from scratch and returns the
// normalized contract plus the leakage report. Nothing is read from a
// previous run: provisional flags and rule gating are recomputed every
// call.
func (s *CaseService) Strategies(ctx context.Context, tenantID uuid.UUID, caseID uuid.UUID) ([]domain.NormalizedStrategy, domain.LeakageReport, error) {
	c, err := s.GetCase(ctx, caseID, tenantID)
	if err != nil {
		return nil, domain.LeakageReport{}, err
	}
	graph, _, err := s.BuildGraph(ctx, tenantID, caseID)
	if err != nil {
		return nil, domain.LeakageReport{}, err
	}

	disclosure := EvaluateDisclosure(graph, c.PracticeArea)
	charge := domain.ChargeDescriptor{Label: c.Charge}
	stance := c.Stance
	if stance == "" {
		stance = domain.StanceUnknown
	}
	strategies := s.strategySvc.Generate(charge, graph, disclosure, stance)

	if err := s.strategyStore.SaveSnapshot(ctx, caseID, strategies); err != nil {
		s.logger.Warn("failed to persist strategy snapshot",
			zap.String("case_id", caseID.String()),
			zap.Error(err))
	}

	normalized, leakage := s.normalizer.Normalize(strategies, c.PracticeArea)
	return normalized, leakage, nil
}

// LatestGraphSnapshot returns the last persisted evidence graph for audit
// review, without rebuilding anything.
func (s *CaseService) LatestGraphSnapshot(ctx context.Context, tenantID uuid.UUID, caseID uuid.UUID) (*domain.EvidenceGraph, error) {
	if _, err := s.GetCase(ctx, caseID, tenantID); err != nil {
		return nil, err
	}
	graph, err := s.graphStore.LatestSnapshot(ctx, caseID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoSnapshot
		}
		return nil, err
	}
	return graph, nil
}

// LatestStrategySnapshot returns the raw (pre-normalization) strategy set
// from the last persisted run.
func (s *CaseService) LatestStrategySnapshot(ctx context.Context, tenantID uuid.UUID, caseID uuid.UUID) ([]domain.Strategy, error) {
	if _, err := s.GetCase(ctx, caseID, tenantID); err != nil {
		return nil, err
	}
	strategies, err := s.strategyStore.LatestSnapshot(ctx, caseID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoSnapshot
		}
		return nil, err
	}
	return strategies, nil
}

// RoutePlans expands the three route archetypes for the case.
func (s *CaseService) RoutePlans(ctx context.Context, tenantID uuid.UUID, caseID uuid.UUID) ([]domain.RoutePlan, error) {
	c, err := s.GetCase(ctx, caseID, tenantID)
	if err != nil {
		return nil, err
	}
	graph, _, err := s.BuildGraph(ctx, tenantID, caseID)
	if err != nil {
		return nil, err
	}
	disclosure := EvaluateDisclosure(graph, c.PracticeArea)
	return s.fightSvc.BuildRoutePlans(graph, disclosure), nil
}
