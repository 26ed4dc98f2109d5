package service

import (
	"testing"

	"github.com/gduffy1993-png/casebrain-hub-sub007/internal/domain"
)

func readyGraph() *domain.EvidenceGraph {
	return &domain.EvidenceGraph{
		EvidenceItems:  []domain.EvidenceItem{},
		DisclosureGaps: []domain.DisclosureGap{},
		Contradictions: []domain.Contradiction{},
		Readiness:      domain.Readiness{CanCommitStrategy: true, Reasons: []string{}},
	}
}

func TestExtractSection(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"s18 GBH with intent, OAPA 1861", "18"},
		{"Section 20 wounding", "20"},
		{"s 47 ABH", "47"},
		{"common assault", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ExtractSection(tt.label); got != tt.want {
			t.Errorf("ExtractSection(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestGenerate_AtLeastTwoStrategies(t *testing.T) {
	svc := NewStrategyService()

	// Worst case: no charge section, no evidence, nothing to gate on.
	strategies := svc.Generate(domain.ChargeDescriptor{}, readyGraph(), completeDisclosure(), domain.StanceUnknown)

	if len(strategies) < 2 {
		t.Fatalf("got %d strategies, the floor is 2: %v", len(strategies), StrategyIDs(strategies))
	}
}

func TestGenerate_S18DowngradeExactlyOnce(t *testing.T) {
	svc := NewStrategyService()
	charge := domain.ChargeDescriptor{Label: "s18 GBH with intent, OAPA 1861"}

	strategies := svc.Generate(charge, readyGraph(), completeDisclosure(), domain.StanceUnknown)

	count := 0
	for _, st := range strategies {
		if st.ID == "intent_downgrade_s18" {
			count++
			if st.DowngradeTarget != "s20 (recklessness basis)" {
				t.Errorf("downgrade target = %q, want s20 recklessness basis", st.DowngradeTarget)
			}
		}
	}
	if count != 1 {
		t.Errorf("s18 downgrade appeared %d times, want exactly 1", count)
	}
	if !HasStrategyWithDowngrade(strategies, "s20") {
		t.Error("HasStrategyWithDowngrade should find the s20 target")
	}
}

func TestGenerate_S20DowngradesToS47(t *testing.T) {
	svc := NewStrategyService()
	charge := domain.ChargeDescriptor{Section: "20"}

	strategies := svc.Generate(charge, readyGraph(), completeDisclosure(), domain.StanceUnknown)

	if !HasStrategyWithDowngrade(strategies, "s47") {
		t.Errorf("expected an s47 downgrade for a s20 charge, got %v", StrategyIDs(strategies))
	}
}

func TestGenerate_SelfDefenceAltersTheory(t *testing.T) {
	svc := NewStrategyService()
	charge := domain.ChargeDescriptor{Section: "18"}

	strategies := svc.Generate(charge, readyGraph(), completeDisclosure(), domain.StanceSelfDefence)

	for _, st := range strategies {
		if st.ID == "intent_downgrade_s18" {
			if st.Theory == "" || st.Theory == "s18 requires specific intent to cause GBH; the evidence supports recklessness at most" {
				t.Error("self-defence stance should produce the doubly-contested theory")
			}
			return
		}
	}
	t.Fatal("no s18 downgrade in output")
}

func TestGenerate_DisclosurePressureGated(t *testing.T) {
	svc := NewStrategyService()

	// Complete disclosure, all flags true: no pressure strategy.
	disclosure := domain.DisclosureStatus{
		IsComplete:   true,
		Gaps:         []domain.DisclosureGap{},
		KeyItemFlags: map[string]bool{"mg6cDisclosed": true},
	}
	strategies := svc.Generate(domain.ChargeDescriptor{Section: "18"}, readyGraph(), disclosure, domain.StanceUnknown)
	for _, st := range strategies {
		if st.ID == "disclosure_pressure" {
			t.Error("disclosure_pressure must not fire when nothing is outstanding")
		}
	}

	// A single false key flag is enough, even with zero gaps.
	disclosure.KeyItemFlags["mg6cDisclosed"] = false
	disclosure.IsComplete = false
	strategies = svc.Generate(domain.ChargeDescriptor{Section: "18"}, readyGraph(), disclosure, domain.StanceUnknown)
	found := false
	for _, st := range strategies {
		if st.ID == "disclosure_pressure" {
			found = true
		}
	}
	if !found {
		t.Errorf("disclosure_pressure should fire on an outstanding key schedule, got %v", StrategyIDs(strategies))
	}
}

func TestGenerate_IdentificationNeedsVisualEvidence(t *testing.T) {
	svc := NewStrategyService()

	strategies := svc.Generate(domain.ChargeDescriptor{Section: "18"}, readyGraph(), completeDisclosure(), domain.StanceUnknown)
	for _, st := range strategies {
		if st.ID == "id_reliability" {
			t.Error("id_reliability must not fire without identification or visual evidence")
		}
	}

	graph := readyGraph()
	graph.EvidenceItems = []domain.EvidenceItem{
		{Type: domain.EvidenceCCTV, Description: "cctv", Disclosure: domain.NotDisclosed},
	}
	strategies = svc.Generate(domain.ChargeDescriptor{Section: "18"}, graph, completeDisclosure(), domain.StanceUnknown)
	found := false
	for _, st := range strategies {
		if st.ID == "id_reliability" {
			found = true
		}
	}
	if !found {
		t.Error("an undisclosed CCTV item should still enable id_reliability")
	}
}

func TestGenerate_ControlledPleaAlwaysPresentAndProvisional(t *testing.T) {
	svc := NewStrategyService()

	// Even on a fully ready, fully disclosed case the plea option stays provisional.
	strategies := svc.Generate(domain.ChargeDescriptor{Label: "s18 GBH"}, readyGraph(), completeDisclosure(), domain.StanceUnknown)

	found := false
	for _, st := range strategies {
		if st.ID == "controlled_plea" {
			found = true
			if !st.Provisional {
				t.Error("controlled_plea must always be provisional")
			}
		} else if st.Provisional {
			t.Errorf("strategy %s should not be provisional on a ready, disclosed case", st.ID)
		}
	}
	if !found {
		t.Error("controlled_plea missing from output")
	}
}

func TestGenerate_ProvisionalStampRecomputed(t *testing.T) {
	svc := NewStrategyService()
	charge := domain.ChargeDescriptor{Section: "18"}

	notReady := readyGraph()
	notReady.Readiness.CanCommitStrategy = false

	strategies := svc.Generate(charge, notReady, completeDisclosure(), domain.StanceUnknown)
	for _, st := range strategies {
		if !st.Provisional {
			t.Errorf("strategy %s should be provisional while the case is not ready", st.ID)
		}
	}

	// Same inputs with readiness restored: the stamp flips off.
	strategies = svc.Generate(charge, readyGraph(), completeDisclosure(), domain.StanceUnknown)
	for _, st := range strategies {
		if st.ID != "controlled_plea" && st.Provisional {
			t.Errorf("strategy %s kept a stale provisional stamp", st.ID)
		}
	}
}

func TestGenerate_FallbacksOnEmptyCase(t *testing.T) {
	svc := NewStrategyService()

	// No section, no evidence, complete disclosure: only controlled_plea
	// gates in, so both fallbacks must appear.
	strategies := svc.Generate(domain.ChargeDescriptor{Label: "common assault"}, readyGraph(), completeDisclosure(), domain.StanceUnknown)

	ids := StrategyIDs(strategies)
	want := map[string]bool{"controlled_plea": false, "evidence_weakness": false, "disclosure_first": false}
	for _, id := range ids {
		if _, ok := want[id]; ok {
			want[id] = true
		}
	}
	for id, seen := range want {
		if !seen {
			t.Errorf("expected %s in fallback output, got %v", id, ids)
		}
	}
}
