package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gduffy1993-png/casebrain-hub-sub007/internal/domain"
)

var ErrLensNotRegistered = errors.New("no lens registered for practice area")

// Generic unsafe trigger keys shared across lenses. Pillars reference these
// by name in their UnsafeTriggerKeys.
const (
	TriggerContradictions = "contradictions"
	TriggerNotReady       = "not_ready"
	TriggerCriticalGaps   = "critical_gaps"
)

// LensContext is one evaluation's view of the case. It is built fresh per
// call from the current graph and disclosure status; nothing in it survives
// the call, so stale pillar results cannot exist.
type LensContext struct {
	Graph      *domain.EvidenceGraph
	Disclosure domain.DisclosureStatus
	Phase      domain.CasePhase

	triggers map[string]bool
}

// NewLensContext derives the trigger flags and resolves the effective phase.
// An unset caller phase is inferred forward from disclosure state; a caller
// phase is never lowered.
func NewLensContext(graph *domain.EvidenceGraph, disclosure domain.DisclosureStatus, callerPhase domain.CasePhase) *LensContext {
	phase := callerPhase
	if phase == 0 {
		if disclosure.IsComplete {
			phase = domain.PhasePositioning
		} else {
			phase = domain.PhaseDisclosure
		}
	}

	return &LensContext{
		Graph:      graph,
		Disclosure: disclosure,
		Phase:      phase,
		triggers: map[string]bool{
			TriggerContradictions: len(graph.Contradictions) > 0,
			TriggerNotReady:       !graph.Readiness.CanCommitStrategy,
			TriggerCriticalGaps:   hasSevereGap(disclosure.Gaps),
		},
	}
}

// IsPresent reports evidence presence for a keyword. Presence is the
// default; it is withdrawn only when a severe disclosure gap names the
// keyword: isEvidencePresent(key) = !hasSevereGapMatching(key).
func (c *LensContext) IsPresent(key string) bool {
	lower := strings.ToLower(key)
	for _, gap := range c.Disclosure.Gaps {
		if gap.Severity != domain.SeverityCritical && gap.Severity != domain.SeverityHigh {
			continue
		}
		if strings.Contains(strings.ToLower(gap.Item), lower) {
			return false
		}
	}
	return true
}

// TriggerFired reports whether a named unsafe trigger holds.
func (c *LensContext) TriggerFired(key string) bool {
	return c.triggers[key]
}

// HasItemMatching reports whether any evidence item's description or notes
// mention the keyword, regardless of disclosure state.
func (c *LensContext) HasItemMatching(key string) bool {
	lower := strings.ToLower(key)
	for _, item := range c.Graph.EvidenceItems {
		if strings.Contains(strings.ToLower(item.Description), lower) ||
			strings.Contains(strings.ToLower(item.Notes), lower) {
			return true
		}
	}
	return false
}

// HasGapMatching reports whether any disclosure gap names the keyword, at
// any severity.
func (c *LensContext) HasGapMatching(key string) bool {
	lower := strings.ToLower(key)
	for _, gap := range c.Disclosure.Gaps {
		if strings.Contains(strings.ToLower(gap.Item), lower) ||
			strings.Contains(strings.ToLower(gap.Category), lower) {
			return true
		}
	}
	return false
}

func (c *LensContext) HasDisclosureGaps() bool {
	return len(c.Disclosure.Gaps) > 0
}

func hasSevereGap(gaps []domain.DisclosureGap) bool {
	for _, gap := range gaps {
		if gap.Severity == domain.SeverityCritical || gap.Severity == domain.SeverityHigh {
			return true
		}
	}
	return false
}

// PracticeLens is the complete rule set for one practice area: five static
// pillars, domain-specific hard stops, irreversible-decision gates, judicial
// patterns, and phase-based tool visibility.
type PracticeLens interface {
	Area() domain.PracticeArea
	Pillars() []domain.Pillar

	// UnsafeOverride encodes statutory or procedural hard stops that beat
	// every generic trigger. It fires before anything else in the pillar
	// precedence chain.
	UnsafeOverride(pillar domain.Pillar, ctx *LensContext) (reason string, unsafe bool)

	IrreversibleDecisions(ctx *LensContext) []domain.IrreversibleDecision
	JudicialPatterns(ctx *LensContext) []domain.JudicialPattern
	Tools(phase domain.CasePhase) []string
}

// LensRegistry holds one lens per practice area. Construction fails loudly
// when any area is uncovered; a missing lens is a programming error, not a
// per-request condition.
type LensRegistry struct {
	lenses map[domain.PracticeArea]PracticeLens
}

func NewLensRegistry() (*LensRegistry, error) {
	all := []PracticeLens{
		newCriminalLens(),
		newHousingLens(),
		newPersonalInjuryLens(),
		newClinicalNegligenceLens(),
		newFamilyLens(),
		newGeneralLitigationLens(),
	}

	reg := &LensRegistry{lenses: make(map[domain.PracticeArea]PracticeLens, len(all))}
	for _, lens := range all {
		if _, dup := reg.lenses[lens.Area()]; dup {
			return nil, fmt.Errorf("duplicate lens for area %q", lens.Area())
		}
		reg.lenses[lens.Area()] = lens
	}
	for _, area := range domain.PracticeAreas {
		if _, ok := reg.lenses[area]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrLensNotRegistered, area)
		}
	}
	return reg, nil
}

func (r *LensRegistry) Get(area domain.PracticeArea) (PracticeLens, error) {
	lens, ok := r.lenses[area]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLensNotRegistered, area)
	}
	return lens, nil
}

// LensService evaluates a practice-area lens against the current evidence
// state. Results are computed fresh per call and never cached.
type LensService struct {
	registry *LensRegistry
}

func NewLensService(registry *LensRegistry) *LensService {
	return &LensService{registry: registry}
}

// Evaluate runs every pillar of the area's lens against the graph.
func (s *LensService) Evaluate(area domain.PracticeArea, graph *domain.EvidenceGraph, disclosure domain.DisclosureStatus, callerPhase domain.CasePhase) (domain.LensReport, error) {
	lens, err := s.registry.Get(area)
	if err != nil {
		return domain.LensReport{}, err
	}

	ctx := NewLensContext(graph, disclosure, callerPhase)

	report := domain.LensReport{
		Area:                  area,
		Pillars:               make([]domain.PillarReport, 0, len(lens.Pillars())),
		SafetyWarnings:        []string{},
		IrreversibleDecisions: lens.IrreversibleDecisions(ctx),
		JudicialPatterns:      lens.JudicialPatterns(ctx),
		ToolVisibility: domain.ToolVisibility{
			Phase:      ctx.Phase,
			PhaseLabel: phaseLabel(ctx.Phase),
			Tools:      lens.Tools(ctx.Phase),
		},
	}

	for _, pillar := range lens.Pillars() {
		status, reason := evaluatePillar(lens, pillar, ctx)
		report.Pillars = append(report.Pillars, domain.PillarReport{
			PillarID: pillar.ID,
			Label:    pillar.Label,
			Status:   status,
			Reason:   reason,
		})
		if status == domain.PillarUnsafe {
			report.SafetyWarnings = append(report.SafetyWarnings, fmt.Sprintf("%s: %s", pillar.Label, reason))
		}
	}

	return report, nil
}

// evaluatePillar applies the fixed precedence chain. UNSAFE strictly
// dominates PREMATURE, which dominates SAFE; exactly one state results.
func evaluatePillar(lens PracticeLens, pillar domain.Pillar, ctx *LensContext) (domain.PillarStatus, string) {
	if reason, unsafe := lens.UnsafeOverride(pillar, ctx); unsafe {
		return domain.PillarUnsafe, reason
	}

	for _, key := range pillar.UnsafeTriggerKeys {
		if ctx.TriggerFired(key) {
			return domain.PillarUnsafe, unsafeTriggerReason(key)
		}
	}

	for _, key := range pillar.PrematureTriggerKeys {
		if !ctx.IsPresent(key) {
			return domain.PillarPremature, fmt.Sprintf("too early: %q is outstanding", key)
		}
	}

	for _, key := range pillar.EvidenceDependencyKeys {
		if !ctx.IsPresent(key) {
			return domain.PillarPremature, fmt.Sprintf("awaiting %q before this pillar can be relied on", key)
		}
	}

	return domain.PillarSafe, "all evidence dependencies are available"
}

func unsafeTriggerReason(key string) string {
	switch key {
	case TriggerContradictions:
		return "documents contradict each other on a material field"
	case TriggerNotReady:
		return "not enough extractable material to act safely"
	case TriggerCriticalGaps:
		return "a critical disclosure gap blocks this pillar"
	}
	return fmt.Sprintf("unsafe condition %q holds", key)
}

func phaseLabel(p domain.CasePhase) string {
	switch p {
	case domain.PhaseDisclosure:
		return "Disclosure & Readiness"
	case domain.PhasePositioning:
		return "Positioning & Options"
	case domain.PhaseOutcome:
		return "Sentencing & Outcome"
	}
	return "Unknown"
}
