package service

import "github.com/gduffy1993-png/casebrain-hub-sub007/internal/domain"

type clinicalNegligenceLens struct {
	pillars []domain.Pillar
}

func newClinicalNegligenceLens() *clinicalNegligenceLens {
	return &clinicalNegligenceLens{
		pillars: []domain.Pillar{
			{
				ID:                     "duty",
				Label:                  "Duty of Care",
				EvidenceDependencyKeys: []string{"medical records"},
				UnsafeTriggerKeys:      []string{TriggerNotReady},
				PrematureTriggerKeys:   []string{"medical records"},
			},
			{
				ID:                     "breach",
				Label:                  "Breach of Duty",
				EvidenceDependencyKeys: []string{"breach expert"},
				UnsafeTriggerKeys:      []string{TriggerContradictions},
				PrematureTriggerKeys:   []string{"breach expert"},
			},
			{
				ID:                     "causation",
				Label:                  "Causation",
				EvidenceDependencyKeys: []string{"causation expert"},
				UnsafeTriggerKeys:      []string{TriggerContradictions},
				PrematureTriggerKeys:   []string{"causation expert"},
			},
			{
				ID:                     "quantum",
				Label:                  "Quantum & Prognosis",
				EvidenceDependencyKeys: []string{"condition and prognosis"},
				UnsafeTriggerKeys:      []string{},
				PrematureTriggerKeys:   []string{"condition and prognosis"},
			},
			{
				ID:                     "limitation",
				Label:                  "Limitation & Procedure",
				EvidenceDependencyKeys: []string{"limitation review"},
				UnsafeTriggerKeys:      []string{TriggerCriticalGaps},
				PrematureTriggerKeys:   []string{},
			},
		},
	}
}

func (l *clinicalNegligenceLens) Area() domain.PracticeArea { return domain.AreaClinicalNegligence }
func (l *clinicalNegligenceLens) Pillars() []domain.Pillar  { return l.pillars }

// UnsafeOverride: a clinical negligence claim without supportive expert
// evidence on breach or causation cannot be advanced at all.
func (l *clinicalNegligenceLens) UnsafeOverride(pillar domain.Pillar, ctx *LensContext) (string, bool) {
	switch pillar.ID {
	case "breach":
		if !ctx.HasItemMatching("breach expert") {
			return "no breach expert evidence; the claim cannot be advanced without it", true
		}
	case "causation":
		if !ctx.HasItemMatching("causation expert") {
			return "no causation expert evidence; the claim cannot be advanced without it", true
		}
	}
	return "", false
}

func (l *clinicalNegligenceLens) IrreversibleDecisions(ctx *LensContext) []domain.IrreversibleDecision {
	return []domain.IrreversibleDecision{
		{
			ID:        "serve_letter_of_claim",
			Label:     "Serve the letter of claim",
			Warning:   "the letter of claim fixes the allegations the experts must stand behind",
			SafeToAct: ctx.Phase >= domain.PhasePositioning && ctx.HasItemMatching("breach expert") && ctx.HasItemMatching("causation expert"),
		},
	}
}

func (l *clinicalNegligenceLens) JudicialPatterns(ctx *LensContext) []domain.JudicialPattern {
	if !ctx.HasDisclosureGaps() {
		return []domain.JudicialPattern{}
	}
	return []domain.JudicialPattern{
		{
			Pattern: "records-first case management",
			Advice:  "masters expect complete records before expert directions; chase the trust's disclosure now",
		},
	}
}

func (l *clinicalNegligenceLens) Tools(phase domain.CasePhase) []string {
	switch phase {
	case domain.PhaseDisclosure:
		return []string{"records_tracker", "chronology_builder", "readiness_check"}
	case domain.PhasePositioning:
		return []string{"strategy_board", "expert_matrix", "settlement_range"}
	case domain.PhaseOutcome:
		return []string{"quantum_schedule", "periodical_payments"}
	}
	return []string{}
}
