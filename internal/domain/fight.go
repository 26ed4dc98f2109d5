package domain

type RouteType string

const (
	RouteContest       RouteType = "contest"
	RouteReduce        RouteType = "reduce"
	RouteManageOutcome RouteType = "manage_outcome"
)

func ValidRouteType(r string) bool {
	switch RouteType(r) {
	case RouteContest, RouteReduce, RouteManageOutcome:
		return true
	}
	return false
}

type RouteViability string

const (
	RouteViable    RouteViability = "VIABLE"
	RouteWeakening RouteViability = "WEAKENING"
	RouteUnsafe    RouteViability = "UNSAFE"
)

type Urgency string

const (
	UrgencyBeforeDeadline Urgency = "before_deadline"
	UrgencyBeforeTrial    Urgency = "before_trial"
	UrgencyAnytime        Urgency = "anytime"
)

type ImpactEffect string

const (
	EffectStrengthens ImpactEffect = "strengthens"
	EffectWeakens     ImpactEffect = "weakens"
	EffectNeutral     ImpactEffect = "neutral"
)

type OpticsReading string

const (
	OpticsFavorable OpticsReading = "favorable"
	OpticsNeutral   OpticsReading = "neutral"
	OpticsRisky     OpticsReading = "risky"
)

// ViabilityVerdict is the route-level health check with itemized reasons.
type ViabilityVerdict struct {
	Route   RouteType      `json:"route"`
	Status  RouteViability `json:"status"`
	Reasons []string       `json:"reasons"`
	Score   int            `json:"score"`
	Hedged  bool           `json:"hedged"`
}

// AttackPath is one target within a route. IsHypothesis distinguishes a
// grounded path from a template placeholder: downstream consumers must key
// on the flag, not on the text. Optics is the tribunal-facing read of the
// method, so callers can order paths by how they land in court.
type AttackPath struct {
	ID               string        `json:"id"`
	Route            RouteType     `json:"route"`
	Target           string        `json:"target"`
	Method           string        `json:"method"`
	EvidenceInputs   []string      `json:"evidence_inputs"`
	ExpectedEffect   string        `json:"expected_effect"`
	OpponentResponse string        `json:"opponent_response"`
	CounterResponse  string        `json:"counter_response"`
	KillSwitch       string        `json:"kill_switch"`
	Next48Hours      []string      `json:"next_48_hours"`
	Optics           OpticsReading `json:"optics"`
	IsHypothesis     bool          `json:"is_hypothesis"`
}

// OpponentResponse is a fixed procedural 3-tuple per route: their likely
// move, the counter, and the resulting pressure. Fact-independent.
type OpponentResponse struct {
	Route    RouteType `json:"route"`
	Move     string    `json:"move"`
	Counter  string    `json:"counter"`
	Pressure string    `json:"pressure"`
}

// KillSwitch names an evidentiary event that should trigger abandoning the
// current route. PivotTo is always one of the other two archetypes.
type KillSwitch struct {
	Route     RouteType `json:"route"`
	Event     string    `json:"event"`
	Rationale string    `json:"rationale"`
	PivotTo   RouteType `json:"pivot_to"`
}

// PivotPlan describes how and when to execute a route change.
type PivotPlan struct {
	Route      RouteType `json:"route"`
	Triggers   []string  `json:"triggers"`
	Timing     string    `json:"timing"`
	StopDoing  []string  `json:"stop_doing"`
	StartDoing []string  `json:"start_doing"`
}

// EvidenceImpact maps one missing item to the attack paths it feeds and its
// effect on each route.
type EvidenceImpact struct {
	Item         string                     `json:"item"`
	FeedsPaths   []string                   `json:"feeds_paths"`
	RouteEffects map[RouteType]ImpactEffect `json:"route_effects"`
	Urgency      Urgency                    `json:"urgency"`
}

// StrategyArtifact is one assembled text deliverable. Values come only from
// typed fields; unavailable facts appear as bracketed placeholders.
type StrategyArtifact struct {
	Kind  string `json:"kind"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// RoutePlan is the full fight-engine output for one route archetype.
type RoutePlan struct {
	Route          RouteType          `json:"route"`
	Viability      ViabilityVerdict   `json:"viability"`
	AttackPaths    []AttackPath       `json:"attack_paths"`
	OpponentMoves  []OpponentResponse `json:"cps_responses"`
	KillSwitches   []KillSwitch       `json:"kill_switches"`
	PivotPlan      PivotPlan          `json:"pivot_plan"`
	EvidenceImpact []EvidenceImpact   `json:"evidence_impact"`
	Artifacts      []StrategyArtifact `json:"artifacts"`
}
