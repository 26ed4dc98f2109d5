package service

import "github.com/gduffy1993-png/casebrain-hub-sub007/internal/domain"

// The personal injury and general litigation lenses share the civil
// procedure backbone but diverge on their hard stops, so they live together
// here rather than in one generic "civil" lens.

type personalInjuryLens struct {
	pillars []domain.Pillar
}

func newPersonalInjuryLens() *personalInjuryLens {
	return &personalInjuryLens{
		pillars: []domain.Pillar{
			{
				ID:                     "liability",
				Label:                  "Liability",
				EvidenceDependencyKeys: []string{"accident report", "witness"},
				UnsafeTriggerKeys:      []string{TriggerContradictions},
				PrematureTriggerKeys:   []string{"accident report"},
			},
			{
				ID:                     "causation",
				Label:                  "Causation",
				EvidenceDependencyKeys: []string{"medical report"},
				UnsafeTriggerKeys:      []string{},
				PrematureTriggerKeys:   []string{"medical report"},
			},
			{
				ID:                     "quantum",
				Label:                  "Quantum",
				EvidenceDependencyKeys: []string{"medical report", "loss schedule"},
				UnsafeTriggerKeys:      []string{},
				PrematureTriggerKeys:   []string{"loss schedule"},
			},
			{
				ID:                     "contributory",
				Label:                  "Contributory Negligence",
				EvidenceDependencyKeys: []string{"witness"},
				UnsafeTriggerKeys:      []string{TriggerNotReady},
				PrematureTriggerKeys:   []string{},
			},
			{
				ID:                     "procedure",
				Label:                  "Protocol & Limitation",
				EvidenceDependencyKeys: []string{"protocol letter"},
				UnsafeTriggerKeys:      []string{TriggerCriticalGaps},
				PrematureTriggerKeys:   []string{"protocol letter"},
			},
		},
	}
}

func (l *personalInjuryLens) Area() domain.PracticeArea { return domain.AreaPersonalInjury }
func (l *personalInjuryLens) Pillars() []domain.Pillar  { return l.pillars }

func (l *personalInjuryLens) UnsafeOverride(pillar domain.Pillar, ctx *LensContext) (string, bool) {
	if pillar.ID == "procedure" && ctx.HasItemMatching("limitation expired") {
		return "limitation has expired; nothing can be issued without a s33 argument", true
	}
	return "", false
}

func (l *personalInjuryLens) IrreversibleDecisions(ctx *LensContext) []domain.IrreversibleDecision {
	return []domain.IrreversibleDecision{
		{
			ID:        "accept_part36",
			Label:     "Accept a Part 36 offer",
			Warning:   "acceptance ends the claim; costs consequences run from the offer date",
			SafeToAct: ctx.Phase >= domain.PhasePositioning && ctx.Disclosure.IsComplete,
		},
	}
}

func (l *personalInjuryLens) JudicialPatterns(ctx *LensContext) []domain.JudicialPattern {
	if !ctx.HasDisclosureGaps() {
		return []domain.JudicialPattern{}
	}
	return []domain.JudicialPattern{
		{
			Pattern: "early disclosure expectation",
			Advice:  "district judges expect protocol disclosure complete before allocation; chase it now",
		},
	}
}

func (l *personalInjuryLens) Tools(phase domain.CasePhase) []string {
	switch phase {
	case domain.PhaseDisclosure:
		return []string{"disclosure_tracker", "injury_timeline", "readiness_check"}
	case domain.PhasePositioning:
		return []string{"strategy_board", "quantum_builder", "part36_calculator"}
	case domain.PhaseOutcome:
		return []string{"costs_calculator", "settlement_tracker"}
	}
	return []string{}
}

type generalLitigationLens struct {
	pillars []domain.Pillar
}

func newGeneralLitigationLens() *generalLitigationLens {
	return &generalLitigationLens{
		pillars: []domain.Pillar{
			{
				ID:                     "merits",
				Label:                  "Merits",
				EvidenceDependencyKeys: []string{"contract", "correspondence"},
				UnsafeTriggerKeys:      []string{TriggerContradictions},
				PrematureTriggerKeys:   []string{"contract"},
			},
			{
				ID:                     "evidence_disclosure",
				Label:                  "Evidence & Disclosure",
				EvidenceDependencyKeys: []string{"disclosure list"},
				UnsafeTriggerKeys:      []string{TriggerCriticalGaps},
				PrematureTriggerKeys:   []string{"disclosure list"},
			},
			{
				ID:                     "quantum",
				Label:                  "Quantum & Loss",
				EvidenceDependencyKeys: []string{"loss schedule"},
				UnsafeTriggerKeys:      []string{},
				PrematureTriggerKeys:   []string{"loss schedule"},
			},
			{
				ID:                     "procedure_limitation",
				Label:                  "Procedure & Limitation",
				EvidenceDependencyKeys: []string{"limitation review"},
				UnsafeTriggerKeys:      []string{TriggerNotReady},
				PrematureTriggerKeys:   []string{},
			},
			{
				ID:                     "costs_risk",
				Label:                  "Costs & Risk",
				EvidenceDependencyKeys: []string{"costs budget"},
				UnsafeTriggerKeys:      []string{},
				PrematureTriggerKeys:   []string{"costs budget"},
			},
		},
	}
}

func (l *generalLitigationLens) Area() domain.PracticeArea { return domain.AreaGeneralLitigation }
func (l *generalLitigationLens) Pillars() []domain.Pillar  { return l.pillars }

// UnsafeOverride: expired limitation sinks every pillar, and outstanding
// disclosure sinks the disclosure pillar specifically.
func (l *generalLitigationLens) UnsafeOverride(pillar domain.Pillar, ctx *LensContext) (string, bool) {
	if ctx.HasItemMatching("limitation expired") {
		return "limitation has expired; no step is safe without resolving it", true
	}
	if pillar.ID == "evidence_disclosure" && ctx.HasDisclosureGaps() {
		return "disclosure is incomplete; the evidential position cannot be relied on", true
	}
	return "", false
}

func (l *generalLitigationLens) IrreversibleDecisions(ctx *LensContext) []domain.IrreversibleDecision {
	return []domain.IrreversibleDecision{
		{
			ID:        "issue_claim",
			Label:     "Issue the claim",
			Warning:   "issuing fixes the pleaded case and starts the costs clock",
			SafeToAct: ctx.Phase >= domain.PhasePositioning && ctx.Disclosure.IsComplete && !ctx.HasItemMatching("limitation expired"),
		},
		{
			ID:        "discontinue",
			Label:     "Discontinue",
			Warning:   "discontinuance carries automatic costs liability",
			SafeToAct: ctx.Phase >= domain.PhasePositioning,
		},
	}
}

func (l *generalLitigationLens) JudicialPatterns(ctx *LensContext) []domain.JudicialPattern {
	if !ctx.HasDisclosureGaps() {
		return []domain.JudicialPattern{}
	}
	return []domain.JudicialPattern{
		{
			Pattern: "disclosure sanctions",
			Advice:  "apply for specific disclosure before the CMC; judges punish ambush tactics on both sides",
		},
	}
}

func (l *generalLitigationLens) Tools(phase domain.CasePhase) []string {
	switch phase {
	case domain.PhaseDisclosure:
		return []string{"disclosure_tracker", "chronology_builder", "readiness_check"}
	case domain.PhasePositioning:
		return []string{"strategy_board", "settlement_range", "part36_calculator"}
	case domain.PhaseOutcome:
		return []string{"costs_calculator", "enforcement_tracker"}
	}
	return []string{}
}
