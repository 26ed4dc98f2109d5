package service

import (
	"fmt"
	"strings"

	"github.com/gduffy1993-png/casebrain-hub-sub007/internal/domain"
)

// FightService expands each route archetype into its full battle plan:
// viability, attack paths, opponent branches, kill switches, pivot plan,
// evidence impact and text artifacts. Every generator is independent and
// keyed only by route type and available fact flags; there is no cross-talk
// between stages and no state between calls.
type FightService struct{}

func NewFightService() *FightService {
	return &FightService{}
}

var routeOrder = []domain.RouteType{
	domain.RouteContest,
	domain.RouteReduce,
	domain.RouteManageOutcome,
}

// BuildRoutePlans produces one plan per archetype, in fixed order.
func (s *FightService) BuildRoutePlans(graph *domain.EvidenceGraph, disclosure domain.DisclosureStatus) []domain.RoutePlan {
	plans := make([]domain.RoutePlan, 0, len(routeOrder))
	for _, route := range routeOrder {
		paths := s.attackPaths(route, graph)
		plans = append(plans, domain.RoutePlan{
			Route:          route,
			Viability:      s.assessViability(route, graph, disclosure),
			AttackPaths:    paths,
			OpponentMoves:  opponentMoves(route),
			KillSwitches:   killSwitches(route),
			PivotPlan:      pivotPlan(route),
			EvidenceImpact: s.evidenceImpact(disclosure.Gaps, paths),
			Artifacts:      s.buildArtifacts(route, graph, disclosure),
		})
	}
	return plans
}

// assessViability runs the weighted rule list for a route. With no usable
// evidence it stays optimistic: a single VIABLE verdict pending disclosure,
// so routes are not abandoned before the material arrives.
func (s *FightService) assessViability(route domain.RouteType, graph *domain.EvidenceGraph, disclosure domain.DisclosureStatus) domain.ViabilityVerdict {
	if !graph.Readiness.CanCommitStrategy || len(graph.EvidenceItems) == 0 {
		return domain.ViabilityVerdict{
			Route:   route,
			Status:  domain.RouteViable,
			Reasons: []string{"pending disclosure; viability cannot be scored yet"},
			Hedged:  true,
		}
	}

	score := 0
	var reasons []string
	add := func(delta int, reason string) {
		score += delta
		reasons = append(reasons, reason)
	}

	switch route {
	case domain.RouteContest:
		if len(graph.Contradictions) > 0 {
			add(2, "documents contradict each other on a material field; contest pressure is real")
		}
		if graph.HasItemOfType(domain.EvidenceIdentification) || graph.HasItemOfType(domain.EvidenceCCTV) {
			add(1, "visual or identification evidence exists to be tested")
		}
		if hasSevereGap(disclosure.Gaps) {
			add(1, "severe disclosure gaps weaken the case against you")
		}
		if disclosure.IsComplete && len(graph.Contradictions) == 0 {
			add(-2, "disclosure is complete and internally consistent; contest has little to bite on")
		}
	case domain.RouteReduce:
		if graph.HasItemOfType(domain.EvidenceMedical) {
			add(1, "medical evidence exists for a gradation argument")
		}
		if len(graph.Contradictions) > 0 {
			add(1, "contradictions support a lesser-basis narrative")
		}
		if !graph.HasItemOfType(domain.EvidenceMedical) && !graph.HasItemOfType(domain.EvidenceForensic) {
			add(-1, "no medical or forensic evidence to anchor a reduction")
		}
	case domain.RouteManageOutcome:
		if disclosure.IsComplete {
			add(1, "the full picture is available; outcome management can be priced accurately")
		} else {
			add(-1, "managing outcome before full disclosure gives away leverage")
		}
		if len(graph.Contradictions) > 0 {
			add(-1, "unresolved contradictions argue against conceding the field")
		}
	}

	status := domain.RouteViable
	switch {
	case score <= -2:
		status = domain.RouteUnsafe
	case score < 0:
		status = domain.RouteWeakening
	}
	if reasons == nil {
		reasons = []string{"no scored factor applies; route holds by default"}
	}

	return domain.ViabilityVerdict{Route: route, Status: status, Reasons: reasons, Score: score}
}

// pathSpec is one catalogue entry. The catalogue is fixed per route; only
// IsHypothesis varies with the case.
type pathSpec struct {
	id               string
	target           string
	method           string
	evidenceInputs   []string
	expectedEffect   string
	opponentResponse string
	counterResponse  string
	killSwitch       string
	next48           []string
}

var attackCatalogue = map[domain.RouteType][]pathSpec{
	domain.RouteContest: {
		{
			id:               "contest_identification",
			target:           "identification reliability",
			method:           "test procedure compliance, conditions of observation and description drift",
			evidenceInputs:   []string{"identification procedure record", "cctv", "witness statement"},
			expectedEffect:   "identification evidence excluded or heavily qualified",
			opponentResponse: "serve a procedure-compliance statement and supporting officer evidence",
			counterResponse:  "cross on first descriptions versus dock appearance; renew the exclusion application",
			killSwitch:       "a clean, contemporaneous identification procedure record is disclosed",
			next48:           []string{"request the full identification procedure record", "chronology the first-description evidence"},
		},
		{
			id:               "contest_disclosure_failure",
			target:           "disclosure failure",
			method:           "convert every outstanding schedule into a specific statutory application",
			evidenceInputs:   []string{"mg6c", "unused material schedule", "disclosure request"},
			expectedEffect:   "stay application leverage or exclusion of late-served material",
			opponentResponse: "late service of outstanding items with a continuity explanation",
			counterResponse:  "argue the lateness itself as prejudice; seek adjournment costs",
			killSwitch:       "all schedules served and nothing helpful emerges from the unused material",
			next48:           []string{"serve the consolidated disclosure request", "diarize the response deadline"},
		},
		{
			id:               "contest_procedure",
			target:           "procedural compliance",
			method:           "audit custody, interview and continuity records against each other",
			evidenceInputs:   []string{"custody record", "interview", "continuity log"},
			expectedEffect:   "exclusion arguments for evidence obtained through the breach",
			opponentResponse: "characterize breaches as technical and cure by officer evidence",
			counterResponse:  "tie each breach to concrete prejudice, not technicality",
			killSwitch:       "records align and no breach of substance survives the audit",
			next48:           []string{"request the custody record and interview log", "build the timeline overlay"},
		},
	},
	domain.RouteReduce: {
		{
			id:               "reduce_intent",
			target:           "intent / mens rea",
			method:           "map the medical findings against the specific-intent threshold",
			evidenceInputs:   []string{"medical report", "witness statement", "cctv"},
			expectedEffect:   "basis of plea or verdict at the recklessness tier",
			opponentResponse: "lean on aggravating narrative features to hold the higher charge",
			counterResponse:  "anchor on the objective medical picture; narrative is not injury",
			killSwitch:       "medical addendum evidence confirms injuries only consistent with deliberate targeting",
			next48:           []string{"obtain the complete medical notes", "draft the intent-evidence map"},
		},
		{
			id:               "reduce_causation",
			target:           "causation of injury",
			method:           "separate what the incident caused from what pre-existed or intervened",
			evidenceInputs:   []string{"medical report", "ambulance", "hospital records"},
			expectedEffect:   "the injury basis reduces to the provable core",
			opponentResponse: "a single-cause medical summary from their expert",
			counterResponse:  "put the full records, not the summary, to the expert",
			killSwitch:       "full records confirm a single uninterrupted causal chain",
			next48:           []string{"request ambulance and first-attendance records"},
		},
	},
	domain.RouteManageOutcome: {
		{
			id:               "manage_basis",
			target:           "basis of resolution",
			method:           "negotiate the factual basis before any indication of position",
			evidenceInputs:   []string{"case review", "medical report"},
			expectedEffect:   "outcome priced on the controlled basis, not the opening narrative",
			opponentResponse: "insist on the full-facts basis",
			counterResponse:  "use the evidential weak points as basis bargaining chips",
			killSwitch:       "the tribunal signals it will not accept a trimmed basis",
			next48:           []string{"draft the proposed basis document with alternatives"},
		},
		{
			id:               "manage_mitigation",
			target:           "mitigation credibility",
			method:           "evidence every mitigation claim before advancing it",
			evidenceInputs:   []string{"references", "medical report", "custody record"},
			expectedEffect:   "mitigation lands as evidenced fact rather than assertion",
			opponentResponse: "challenge unevidenced mitigation as convenient",
			counterResponse:  "withdraw anything unevidenced; volume is not weight",
			killSwitch:       "key mitigation evidence fails verification",
			next48:           []string{"list every mitigation claim and its supporting document"},
		},
	},
}

// attackPaths instantiates the fixed catalogue for a route, marking each
// path as hypothesis when its required evidence inputs are not in the
// graph. Downstream consumers must key on IsHypothesis, not on the text.
func (s *FightService) attackPaths(route domain.RouteType, graph *domain.EvidenceGraph) []domain.AttackPath {
	specs := attackCatalogue[route]
	paths := make([]domain.AttackPath, 0, len(specs))
	for _, spec := range specs {
		paths = append(paths, domain.AttackPath{
			ID:               spec.id,
			Route:            route,
			Target:           spec.target,
			Method:           spec.method,
			EvidenceInputs:   spec.evidenceInputs,
			ExpectedEffect:   spec.expectedEffect,
			OpponentResponse: spec.opponentResponse,
			CounterResponse:  spec.counterResponse,
			KillSwitch:       spec.killSwitch,
			Next48Hours:      spec.next48,
			Optics:           s.ClassifyOptics(spec.method),
			IsHypothesis:     !anyInputAvailable(spec.evidenceInputs, graph),
		})
	}
	return paths
}

func anyInputAvailable(inputs []string, graph *domain.EvidenceGraph) bool {
	for _, input := range inputs {
		lower := strings.ToLower(input)
		for _, item := range graph.EvidenceItems {
			if strings.Contains(strings.ToLower(item.Description), lower) {
				return true
			}
		}
		if MapEvidenceType(input) != domain.EvidenceOther && graph.HasItemOfType(MapEvidenceType(input)) {
			return true
		}
	}
	return false
}

// opponentMoves are fixed procedural 3-tuples per route. They encode how
// the other side tends to respond to the posture itself, independent of the
// facts of any particular case.
func opponentMoves(route domain.RouteType) []domain.OpponentResponse {
	switch route {
	case domain.RouteContest:
		return []domain.OpponentResponse{
			{Route: route, Move: "hold disclosure to the statutory minimum and run the clock", Counter: "front-load specific applications with dated prejudice", Pressure: "court attention shifts to their disclosure conduct"},
			{Route: route, Move: "offer a late reduced charge to defuse the contest", Counter: "price the offer against the contested weaknesses, not against fear", Pressure: "their trial confidence is now on record as negotiable"},
			{Route: route, Move: "bolster weak evidence with additional statements", Counter: "attack the lateness and consistency of the reinforcement", Pressure: "late bolstering reads as recognition of weakness"},
		}
	case domain.RouteReduce:
		return []domain.OpponentResponse{
			{Route: route, Move: "refuse any basis short of the full allegation", Counter: "prepare the tribunal-of-fact route on the gradation point alone", Pressure: "they must now prove the top tier, not just assert it"},
			{Route: route, Move: "introduce aggravating narrative late", Counter: "object on notice grounds and anchor on the objective evidence", Pressure: "late aggravation attracts judicial scepticism"},
		}
	case domain.RouteManageOutcome:
		return []domain.OpponentResponse{
			{Route: route, Move: "treat the outcome posture as capitulation and harden terms", Counter: "keep a contest route visibly alive until terms settle", Pressure: "their hardening has a visible cost again"},
			{Route: route, Move: "demand the full-facts basis for any resolution", Counter: "trade basis points against the evidential gaps on record", Pressure: "each gap is now a priced concession"},
		}
	}
	return nil
}

// killSwitches name the evidence events that should end a route. The pivot
// target is always one of the other two archetypes.
func killSwitches(route domain.RouteType) []domain.KillSwitch {
	switch route {
	case domain.RouteContest:
		return []domain.KillSwitch{
			{Route: route, Event: "clean identification procedure record disclosed", Rationale: "the central contest target evaporates", PivotTo: domain.RouteReduce},
			{Route: route, Event: "full disclosure served with no exploitable weakness", Rationale: "contest without a target burns credibility", PivotTo: domain.RouteManageOutcome},
		}
	case domain.RouteReduce:
		return []domain.KillSwitch{
			{Route: route, Event: "medical evidence confirms the higher-tier injury basis", Rationale: "the gradation argument is closed", PivotTo: domain.RouteManageOutcome},
			{Route: route, Event: "disclosure reveals a fundamental defect in their case", Rationale: "reduction undersells a winnable contest", PivotTo: domain.RouteContest},
		}
	case domain.RouteManageOutcome:
		return []domain.KillSwitch{
			{Route: route, Event: "new material contradicts their core narrative", Rationale: "conceding the field is no longer justified", PivotTo: domain.RouteContest},
			{Route: route, Event: "their terms harden past the trial-risk price", Rationale: "the managed outcome now costs more than the fight", PivotTo: domain.RouteReduce},
		}
	}
	return nil
}

// pivotPlan states when and how to execute a route change. Timing is pinned
// to a procedural checkpoint so credit and leverage are not lost.
func pivotPlan(route domain.RouteType) domain.PivotPlan {
	switch route {
	case domain.RouteContest:
		return domain.PivotPlan{
			Route:    route,
			Triggers: []string{"any contest kill switch fires", "viability falls to UNSAFE on scored evidence"},
			Timing:   "decide before the case management hearing; pivoting later reads as collapse",
			StopDoing: []string{
				"serving further contest-posture applications",
				"publicly committing to trial listings",
			},
			StartDoing: []string{
				"open basis-of-resolution contact with the other side",
				"re-price the case on the reduced or managed posture",
			},
		}
	case domain.RouteReduce:
		return domain.PivotPlan{
			Route:    route,
			Triggers: []string{"any reduce kill switch fires", "the gradation evidence resolves against you"},
			Timing:   "decide before basis-of-plea or settlement discussions open; credit erodes after",
			StopDoing: []string{
				"advancing the gradation narrative in correspondence",
			},
			StartDoing: []string{
				"either build the full contest file or open outcome management, per the trigger",
			},
		}
	case domain.RouteManageOutcome:
		return domain.PivotPlan{
			Route:    route,
			Triggers: []string{"any manage-outcome kill switch fires", "their terms move outside the priced range"},
			Timing:   "decide before any indication of position is given to the tribunal",
			StopDoing: []string{
				"signalling resolution intent to the other side",
			},
			StartDoing: []string{
				"reactivate the contest file and refresh its evidence map",
			},
		}
	}
	return domain.PivotPlan{Route: route}
}

var (
	favorableOpticsTerms = []string{"disclosure", "fairness", "transparency", "readiness", "compliance", "protect"}
	riskyOpticsTerms     = []string{"ambush", "delay", "last minute", "spring", "withhold", "tactical adjournment"}
)

// ClassifyOptics reads the framing of a proposed action and classifies how
// it lands with a tribunal. Purely lexical; it predicts nothing about
// outcome, only about optics.
func (s *FightService) ClassifyOptics(action string) domain.OpticsReading {
	lower := strings.ToLower(action)
	for _, term := range riskyOpticsTerms {
		if strings.Contains(lower, term) {
			return domain.OpticsRisky
		}
	}
	for _, term := range favorableOpticsTerms {
		if strings.Contains(lower, term) {
			return domain.OpticsFavorable
		}
	}
	return domain.OpticsNeutral
}

// evidenceImpact maps each missing item to the attack paths it feeds and
// its effect per route. A missing item generally strengthens the contest
// posture (it is their failure) and weakens outcome management (pricing
// blind).
func (s *FightService) evidenceImpact(gaps []domain.DisclosureGap, paths []domain.AttackPath) []domain.EvidenceImpact {
	impacts := make([]domain.EvidenceImpact, 0, len(gaps))
	for _, gap := range gaps {
		impact := domain.EvidenceImpact{
			Item:       gap.Item,
			FeedsPaths: []string{},
			RouteEffects: map[domain.RouteType]domain.ImpactEffect{
				domain.RouteContest:       domain.EffectStrengthens,
				domain.RouteReduce:        domain.EffectNeutral,
				domain.RouteManageOutcome: domain.EffectWeakens,
			},
			Urgency: gapUrgency(gap.Severity),
		}
		lowerItem := strings.ToLower(gap.Item)
		for _, path := range paths {
			for _, input := range path.EvidenceInputs {
				if strings.Contains(lowerItem, strings.ToLower(input)) || strings.Contains(strings.ToLower(input), lowerItem) {
					impact.FeedsPaths = append(impact.FeedsPaths, path.ID)
					break
				}
			}
		}
		impacts = append(impacts, impact)
	}
	return impacts
}

func gapUrgency(severity domain.Severity) domain.Urgency {
	switch severity {
	case domain.SeverityCritical, domain.SeverityHigh:
		return domain.UrgencyBeforeDeadline
	case domain.SeverityMedium:
		return domain.UrgencyBeforeTrial
	}
	return domain.UrgencyAnytime
}

// placeholder substitutes a bracketed marker for an unavailable fact so
// artifacts never silently fabricate values.
func placeholder(value, name string) string {
	if strings.TrimSpace(value) == "" {
		return fmt.Sprintf("[%s not on file]", name)
	}
	return value
}
