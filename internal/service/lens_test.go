package service

import (
	"strings"
	"testing"

	"github.com/gduffy1993-png/casebrain-hub-sub007/internal/domain"
)

func cleanGraph() *domain.EvidenceGraph {
	return &domain.EvidenceGraph{
		EvidenceItems:  []domain.EvidenceItem{},
		DisclosureGaps: []domain.DisclosureGap{},
		Contradictions: []domain.Contradiction{},
		Readiness:      domain.Readiness{CanCommitStrategy: true, Reasons: []string{}},
	}
}

func completeDisclosure() domain.DisclosureStatus {
	return domain.DisclosureStatus{IsComplete: true, Gaps: []domain.DisclosureGap{}, KeyItemFlags: map[string]bool{}}
}

func newTestLensService(t *testing.T) *LensService {
	t.Helper()
	registry, err := NewLensRegistry()
	if err != nil {
		t.Fatalf("NewLensRegistry: %v", err)
	}
	return NewLensService(registry)
}

func TestLensRegistry_CoversEveryArea(t *testing.T) {
	registry, err := NewLensRegistry()
	if err != nil {
		t.Fatalf("NewLensRegistry: %v", err)
	}
	for _, area := range domain.PracticeAreas {
		lens, err := registry.Get(area)
		if err != nil {
			t.Errorf("no lens for %s: %v", area, err)
			continue
		}
		if got := len(lens.Pillars()); got != 5 {
			t.Errorf("lens for %s has %d pillars, want 5", area, got)
		}
		if lens.Area() != area {
			t.Errorf("lens registered under %s reports area %s", area, lens.Area())
		}
	}
}

func TestLens_AllSafeOnCleanCase(t *testing.T) {
	svc := newTestLensService(t)

	report, err := svc.Evaluate(domain.AreaCriminal, cleanGraph(), completeDisclosure(), domain.PhasePositioning)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	for _, p := range report.Pillars {
		if p.Status != domain.PillarSafe {
			t.Errorf("pillar %s = %s (%s), want SAFE", p.PillarID, p.Status, p.Reason)
		}
	}
	if len(report.SafetyWarnings) != 0 {
		t.Errorf("expected no safety warnings, got %v", report.SafetyWarnings)
	}
}

func TestLens_UnsafeDominatesPremature(t *testing.T) {
	svc := newTestLensService(t)

	// Contradictions fire the identification pillar's unsafe trigger, and the
	// same pillar's premature key is also outstanding. UNSAFE must win.
	graph := cleanGraph()
	graph.Contradictions = []domain.Contradiction{{Field: "court", Severity: domain.SeverityHigh}}
	disclosure := domain.DisclosureStatus{
		Gaps: []domain.DisclosureGap{
			{Category: "visual", Item: "cctv from inside the venue", Severity: domain.SeverityHigh},
		},
		KeyItemFlags: map[string]bool{},
	}

	report, err := svc.Evaluate(domain.AreaCriminal, graph, disclosure, domain.PhaseDisclosure)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	var identification domain.PillarReport
	for _, p := range report.Pillars {
		if p.PillarID == "identification" {
			identification = p
		}
	}
	if identification.Status != domain.PillarUnsafe {
		t.Errorf("identification pillar = %s, want UNSAFE", identification.Status)
	}
	if len(report.SafetyWarnings) == 0 {
		t.Error("an UNSAFE pillar must produce a safety warning")
	}
}

func TestLens_SevereGapMakesPillarPremature(t *testing.T) {
	svc := newTestLensService(t)

	graph := cleanGraph()
	disclosure := domain.DisclosureStatus{
		Gaps: []domain.DisclosureGap{
			{Category: "visual", Item: "cctv from inside the venue", Severity: domain.SeverityMedium},
		},
		KeyItemFlags: map[string]bool{},
	}

	report, err := svc.Evaluate(domain.AreaCriminal, graph, disclosure, domain.PhaseDisclosure)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	// A MEDIUM gap does not withdraw presence; the pillar stays SAFE.
	for _, p := range report.Pillars {
		if p.PillarID == "identification" && p.Status != domain.PillarSafe {
			t.Errorf("MEDIUM gap should not sink identification, got %s (%s)", p.Status, p.Reason)
		}
	}

	// Raise the same gap to HIGH and the pillar turns PREMATURE, while the
	// critical-gaps trigger takes disclosure_integrity all the way to UNSAFE.
	disclosure.Gaps[0].Severity = domain.SeverityHigh
	report, err = svc.Evaluate(domain.AreaCriminal, graph, disclosure, domain.PhaseDisclosure)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	for _, p := range report.Pillars {
		switch p.PillarID {
		case "identification":
			if p.Status != domain.PillarPremature {
				t.Errorf("HIGH gap naming cctv should make identification PREMATURE, got %s (%s)", p.Status, p.Reason)
			}
		case "disclosure_integrity":
			if p.Status != domain.PillarUnsafe {
				t.Errorf("a severe gap should fire the critical-gaps trigger on disclosure_integrity, got %s (%s)", p.Status, p.Reason)
			}
		}
	}
}

func TestLens_HousingMissingNoticeIsUnsafe(t *testing.T) {
	svc := newTestLensService(t)

	graph := cleanGraph()
	graph.DisclosureGaps = []domain.DisclosureGap{
		{Category: "general", Item: "notice letter to landlord", Severity: domain.SeverityHigh},
	}
	disclosure := domain.DisclosureStatus{
		Gaps:         graph.DisclosureGaps,
		KeyItemFlags: map[string]bool{"noticeEvidenced": false},
	}

	report, err := svc.Evaluate(domain.AreaHousingDisrepair, graph, disclosure, domain.PhaseDisclosure)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	found := false
	for _, p := range report.Pillars {
		if p.PillarID == "notice_knowledge" {
			found = true
			if p.Status != domain.PillarUnsafe {
				t.Errorf("notice_knowledge = %s (%s), want UNSAFE when notice is missing", p.Status, p.Reason)
			}
			if !strings.Contains(p.Reason, "notice") {
				t.Errorf("reason should name the missing notice, got %q", p.Reason)
			}
		}
	}
	if !found {
		t.Fatal("housing lens has no notice_knowledge pillar")
	}
}

func TestLens_NotReadySinksDependentPillars(t *testing.T) {
	svc := newTestLensService(t)

	graph := cleanGraph()
	graph.Readiness = domain.Readiness{
		CanCommitStrategy: false,
		Reasons:           []string{"no extractable text in any document"},
	}

	report, err := svc.Evaluate(domain.AreaCriminal, graph, completeDisclosure(), domain.PhaseDisclosure)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	for _, p := range report.Pillars {
		if p.PillarID == "intent" || p.PillarID == "procedure" {
			if p.Status != domain.PillarUnsafe {
				t.Errorf("pillar %s = %s, want UNSAFE when case is not ready", p.PillarID, p.Status)
			}
		}
	}
}

func TestNewLensContext_PhaseInference(t *testing.T) {
	graph := cleanGraph()

	// Unset phase, incomplete disclosure: phase 1.
	ctx := NewLensContext(graph, domain.DisclosureStatus{IsComplete: false}, 0)
	if ctx.Phase != domain.PhaseDisclosure {
		t.Errorf("inferred phase = %d, want %d", ctx.Phase, domain.PhaseDisclosure)
	}

	// Unset phase, complete disclosure: phase 2.
	ctx = NewLensContext(graph, completeDisclosure(), 0)
	if ctx.Phase != domain.PhasePositioning {
		t.Errorf("inferred phase = %d, want %d", ctx.Phase, domain.PhasePositioning)
	}

	// A caller phase is never lowered, whatever disclosure says.
	ctx = NewLensContext(graph, domain.DisclosureStatus{IsComplete: false}, domain.PhaseOutcome)
	if ctx.Phase != domain.PhaseOutcome {
		t.Errorf("caller phase overridden: got %d, want %d", ctx.Phase, domain.PhaseOutcome)
	}
}

func TestLens_ToolVisibilityPerPhase(t *testing.T) {
	svc := newTestLensService(t)

	for phase := domain.PhaseDisclosure; phase <= domain.PhaseOutcome; phase++ {
		report, err := svc.Evaluate(domain.AreaCriminal, cleanGraph(), completeDisclosure(), phase)
		if err != nil {
			t.Fatalf("Evaluate(phase %d): %v", phase, err)
		}
		if report.ToolVisibility.Phase != phase {
			t.Errorf("tool visibility phase = %d, want %d", report.ToolVisibility.Phase, phase)
		}
		if len(report.ToolVisibility.Tools) == 0 {
			t.Errorf("phase %d exposes no tools", phase)
		}
	}
}

func TestLens_IrreversibleDecisionsGated(t *testing.T) {
	svc := newTestLensService(t)

	// Phase 1, incomplete disclosure: entering a plea is not safe.
	disclosure := domain.DisclosureStatus{IsComplete: false, Gaps: []domain.DisclosureGap{}, KeyItemFlags: map[string]bool{}}
	report, err := svc.Evaluate(domain.AreaCriminal, cleanGraph(), disclosure, domain.PhaseDisclosure)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	for _, d := range report.IrreversibleDecisions {
		if d.ID == "enter_plea" && d.SafeToAct {
			t.Error("enter_plea must not be safe in phase 1 with incomplete disclosure")
		}
	}

	// Phase 2, complete disclosure: now it is.
	report, err = svc.Evaluate(domain.AreaCriminal, cleanGraph(), completeDisclosure(), domain.PhasePositioning)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	for _, d := range report.IrreversibleDecisions {
		if d.ID == "enter_plea" && !d.SafeToAct {
			t.Error("enter_plea should be safe in phase 2 with complete disclosure")
		}
	}
}
