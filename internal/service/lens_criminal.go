package service

import "github.com/gduffy1993-png/casebrain-hub-sub007/internal/domain"

type criminalLens struct {
	pillars []domain.Pillar
}

func newCriminalLens() *criminalLens {
	return &criminalLens{
		pillars: []domain.Pillar{
			{
				ID:                     "identification",
				Label:                  "Identification & Presence",
				EvidenceDependencyKeys: []string{"cctv", "identification"},
				UnsafeTriggerKeys:      []string{TriggerContradictions},
				PrematureTriggerKeys:   []string{"cctv"},
			},
			{
				ID:                     "intent",
				Label:                  "Intent & Mens Rea",
				EvidenceDependencyKeys: []string{"witness", "medical"},
				UnsafeTriggerKeys:      []string{TriggerNotReady},
				PrematureTriggerKeys:   []string{"interview"},
			},
			{
				ID:                     "disclosure_integrity",
				Label:                  "Disclosure Integrity",
				EvidenceDependencyKeys: []string{"mg6c", "unused material"},
				UnsafeTriggerKeys:      []string{TriggerCriticalGaps},
				PrematureTriggerKeys:   []string{"mg6c"},
			},
			{
				ID:                     "procedure",
				Label:                  "Procedural Compliance",
				EvidenceDependencyKeys: []string{"custody record", "interview"},
				UnsafeTriggerKeys:      []string{TriggerNotReady},
				PrematureTriggerKeys:   []string{"custody record"},
			},
			{
				ID:                     "narrative",
				Label:                  "Defence Narrative",
				EvidenceDependencyKeys: []string{"witness"},
				UnsafeTriggerKeys:      []string{TriggerContradictions},
				PrematureTriggerKeys:   []string{"witness"},
			},
		},
	}
}

func (l *criminalLens) Area() domain.PracticeArea { return domain.AreaCriminal }
func (l *criminalLens) Pillars() []domain.Pillar  { return l.pillars }

func (l *criminalLens) UnsafeOverride(pillar domain.Pillar, ctx *LensContext) (string, bool) {
	// Custody time limit expiry is a hard stop for the procedure pillar.
	if pillar.ID == "procedure" && ctx.HasItemMatching("custody time limit expired") {
		return "custody time limit has expired; procedural position must be resolved before anything else", true
	}
	return "", false
}

func (l *criminalLens) IrreversibleDecisions(ctx *LensContext) []domain.IrreversibleDecision {
	decisions := []domain.IrreversibleDecision{
		{
			ID:        "enter_plea",
			Label:     "Enter a plea",
			Warning:   "a guilty plea cannot be withdrawn once entered and sentence credit runs from today",
			SafeToAct: ctx.Phase >= domain.PhasePositioning && ctx.Disclosure.IsComplete,
		},
		{
			ID:        "record_admission",
			Label:     "Record a formal admission",
			Warning:   "admissions under s10 CJA 1967 bind the defence for the rest of the proceedings",
			SafeToAct: ctx.Phase >= domain.PhasePositioning && !ctx.TriggerFired(TriggerContradictions),
		},
	}
	return decisions
}

func (l *criminalLens) JudicialPatterns(ctx *LensContext) []domain.JudicialPattern {
	if !ctx.HasDisclosureGaps() {
		return []domain.JudicialPattern{}
	}
	return []domain.JudicialPattern{
		{
			Pattern: "disclosure-first listing",
			Advice:  "courts expect a s8 CPIA application before trial directions where schedules are outstanding",
		},
	}
}

func (l *criminalLens) Tools(phase domain.CasePhase) []string {
	switch phase {
	case domain.PhaseDisclosure:
		return []string{"disclosure_tracker", "evidence_map", "readiness_check"}
	case domain.PhasePositioning:
		return []string{"strategy_board", "attack_paths", "plea_calculator"}
	case domain.PhaseOutcome:
		return []string{"sentencing_guidelines", "mitigation_builder"}
	}
	return []string{}
}
