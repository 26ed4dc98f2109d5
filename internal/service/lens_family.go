package service

import "github.com/gduffy1993-png/casebrain-hub-sub007/internal/domain"

type familyLens struct {
	pillars []domain.Pillar
}

func newFamilyLens() *familyLens {
	return &familyLens{
		pillars: []domain.Pillar{
			{
				ID:                     "safeguarding",
				Label:                  "Safeguarding",
				EvidenceDependencyKeys: []string{"safeguarding"},
				UnsafeTriggerKeys:      []string{},
				PrematureTriggerKeys:   []string{"safeguarding"},
			},
			{
				ID:                     "welfare",
				Label:                  "Welfare Analysis",
				EvidenceDependencyKeys: []string{"cafcass", "welfare report"},
				UnsafeTriggerKeys:      []string{TriggerNotReady},
				PrematureTriggerKeys:   []string{"cafcass"},
			},
			{
				ID:                     "fact_finding",
				Label:                  "Findings of Fact",
				EvidenceDependencyKeys: []string{"fact-finding"},
				UnsafeTriggerKeys:      []string{TriggerContradictions},
				PrematureTriggerKeys:   []string{},
			},
			{
				ID:                     "contact_arrangements",
				Label:                  "Contact & Arrangements",
				EvidenceDependencyKeys: []string{"contact log"},
				UnsafeTriggerKeys:      []string{},
				PrematureTriggerKeys:   []string{"contact log"},
			},
			{
				ID:                     "procedure",
				Label:                  "Procedure & Directions",
				EvidenceDependencyKeys: []string{"case management order"},
				UnsafeTriggerKeys:      []string{TriggerCriticalGaps},
				PrematureTriggerKeys:   []string{},
			},
		},
	}
}

func (l *familyLens) Area() domain.PracticeArea { return domain.AreaFamily }
func (l *familyLens) Pillars() []domain.Pillar  { return l.pillars }

// UnsafeOverride: missing safeguarding material stops everything, and no
// position can be taken on welfare while a fact-finding hearing is pending
// with the welfare threshold engaged.
func (l *familyLens) UnsafeOverride(pillar domain.Pillar, ctx *LensContext) (string, bool) {
	switch pillar.ID {
	case "safeguarding":
		if !ctx.HasItemMatching("safeguarding") {
			return "no safeguarding checks on file; nothing can proceed until they arrive", true
		}
	case "welfare", "fact_finding":
		pending := ctx.HasItemMatching("fact-finding listed") || ctx.HasItemMatching("fact-finding pending")
		if pending && ctx.HasItemMatching("welfare threshold") {
			return "fact-finding is unresolved and the welfare threshold is engaged; no position is safe", true
		}
	}
	return "", false
}

func (l *familyLens) IrreversibleDecisions(ctx *LensContext) []domain.IrreversibleDecision {
	return []domain.IrreversibleDecision{
		{
			ID:        "concede_findings",
			Label:     "Concede findings of fact",
			Warning:   "conceded findings follow the family into every later application",
			SafeToAct: ctx.Phase >= domain.PhasePositioning && !ctx.TriggerFired(TriggerContradictions),
		},
	}
}

func (l *familyLens) JudicialPatterns(ctx *LensContext) []domain.JudicialPattern {
	if !ctx.HasDisclosureGaps() {
		return []domain.JudicialPattern{}
	}
	return []domain.JudicialPattern{
		{
			Pattern: "safeguarding-first listing",
			Advice:  "judges will not list a final hearing while safeguarding material is outstanding",
		},
	}
}

func (l *familyLens) Tools(phase domain.CasePhase) []string {
	switch phase {
	case domain.PhaseDisclosure:
		return []string{"disclosure_tracker", "safeguarding_checklist", "readiness_check"}
	case domain.PhasePositioning:
		return []string{"strategy_board", "contact_planner"}
	case domain.PhaseOutcome:
		return []string{"order_drafter", "review_scheduler"}
	}
	return []string{}
}
