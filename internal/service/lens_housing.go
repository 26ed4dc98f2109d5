package service

import "github.com/gduffy1993-png/casebrain-hub-sub007/internal/domain"

type housingLens struct {
	pillars []domain.Pillar
}

func newHousingLens() *housingLens {
	return &housingLens{
		pillars: []domain.Pillar{
			{
				ID:                     "notice_knowledge",
				Label:                  "Notice & Landlord Knowledge",
				EvidenceDependencyKeys: []string{"notice"},
				UnsafeTriggerKeys:      []string{},
				PrematureTriggerKeys:   []string{"repair log"},
			},
			{
				ID:                     "disrepair_evidence",
				Label:                  "Disrepair Evidence",
				EvidenceDependencyKeys: []string{"survey", "photograph"},
				UnsafeTriggerKeys:      []string{TriggerNotReady},
				PrematureTriggerKeys:   []string{"survey"},
			},
			{
				ID:                     "causation",
				Label:                  "Causation & Liability",
				EvidenceDependencyKeys: []string{"expert report"},
				UnsafeTriggerKeys:      []string{TriggerContradictions},
				PrematureTriggerKeys:   []string{"expert report"},
			},
			{
				ID:                     "quantum",
				Label:                  "Quantum & Loss",
				EvidenceDependencyKeys: []string{"medical", "receipts"},
				UnsafeTriggerKeys:      []string{},
				PrematureTriggerKeys:   []string{"medical"},
			},
			{
				ID:                     "procedure_deadlines",
				Label:                  "Protocol & Deadlines",
				EvidenceDependencyKeys: []string{"protocol letter"},
				UnsafeTriggerKeys:      []string{TriggerCriticalGaps},
				PrematureTriggerKeys:   []string{"protocol letter"},
			},
		},
	}
}

func (l *housingLens) Area() domain.PracticeArea { return domain.AreaHousingDisrepair }
func (l *housingLens) Pillars() []domain.Pillar  { return l.pillars }

// UnsafeOverride: missing notice of disrepair sinks the notice pillar
// outright (landlord knowledge is the statutory foundation of the claim),
// and a breached Awaab's Law repair deadline sinks the deadlines pillar.
func (l *housingLens) UnsafeOverride(pillar domain.Pillar, ctx *LensContext) (string, bool) {
	switch pillar.ID {
	case "notice_knowledge":
		if !ctx.IsPresent("notice") {
			return "no evidence the landlord was put on notice; the claim has no statutory foundation yet", true
		}
	case "procedure_deadlines":
		if ctx.HasItemMatching("deadline breached") || ctx.HasItemMatching("repair deadline missed") {
			return "a statutory repair deadline has been breached; position must be protected before tactical work", true
		}
	}
	return "", false
}

func (l *housingLens) IrreversibleDecisions(ctx *LensContext) []domain.IrreversibleDecision {
	return []domain.IrreversibleDecision{
		{
			ID:        "issue_proceedings",
			Label:     "Issue proceedings",
			Warning:   "issuing starts costs exposure and fixes the pleaded case",
			SafeToAct: ctx.Phase >= domain.PhasePositioning && ctx.IsPresent("notice") && ctx.Disclosure.IsComplete,
		},
		{
			ID:        "awaab_deadline_response",
			Label:     "Respond to an Awaab's Law deadline",
			Warning:   "statutory repair windows cannot be reopened once waived",
			SafeToAct: ctx.Phase >= domain.PhasePositioning,
		},
	}
}

func (l *housingLens) JudicialPatterns(ctx *LensContext) []domain.JudicialPattern {
	if !ctx.HasDisclosureGaps() {
		return []domain.JudicialPattern{}
	}
	return []domain.JudicialPattern{
		{
			Pattern: "pre-action disclosure pressure",
			Advice:  "courts penalise landlords who sit on repair logs; an early specific-disclosure application reads well",
		},
	}
}

func (l *housingLens) Tools(phase domain.CasePhase) []string {
	switch phase {
	case domain.PhaseDisclosure:
		return []string{"disclosure_tracker", "repair_timeline", "readiness_check"}
	case domain.PhasePositioning:
		return []string{"strategy_board", "quantum_builder", "settlement_range"}
	case domain.PhaseOutcome:
		return []string{"costs_calculator", "enforcement_tracker"}
	}
	return []string{}
}
