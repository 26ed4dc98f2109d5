package domain

type PillarStatus string

const (
	PillarSafe      PillarStatus = "SAFE"
	PillarPremature PillarStatus = "PREMATURE"
	PillarUnsafe    PillarStatus = "UNSAFE"
)

// Pillar is one fixed evaluation dimension within a practice area. Pillars
// are declared once per lens at startup and never mutated.
type Pillar struct {
	ID                     string   `json:"id"`
	Label                  string   `json:"label"`
	EvidenceDependencyKeys []string `json:"evidence_dependency_keys"`
	UnsafeTriggerKeys      []string `json:"unsafe_trigger_keys"`
	PrematureTriggerKeys   []string `json:"premature_trigger_keys"`
}

// PillarReport is the per-pillar outcome of one lens evaluation. Computed
// fresh per call; never cached across evidence-graph versions.
type PillarReport struct {
	PillarID string       `json:"pillar_id"`
	Label    string       `json:"label"`
	Status   PillarStatus `json:"status"`
	Reason   string       `json:"reason"`
}

// IrreversibleDecision gates a real-world action that cannot be undone
// (issuing proceedings, recording an admission). It signals "safe to act"
// downstream and never blocks pillar evaluation itself.
type IrreversibleDecision struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Warning   string `json:"warning"`
	SafeToAct bool   `json:"safe_to_act"`
}

// JudicialPattern is a static advisory surfaced when its condition holds.
type JudicialPattern struct {
	Pattern string `json:"pattern"`
	Advice  string `json:"advice"`
}

// ToolVisibility maps the case phase to the tool categories the caller may
// expose. Phases unlock forward only.
type ToolVisibility struct {
	Phase      CasePhase `json:"phase"`
	PhaseLabel string    `json:"phase_label"`
	Tools      []string  `json:"tools"`
}

// LensReport bundles everything one lens evaluation produces.
type LensReport struct {
	Area                  PracticeArea           `json:"area"`
	Pillars               []PillarReport         `json:"pillars"`
	SafetyWarnings        []string               `json:"safety_warnings"`
	IrreversibleDecisions []IrreversibleDecision `json:"irreversible_decisions"`
	JudicialPatterns      []JudicialPattern      `json:"judicial_patterns"`
	ToolVisibility        ToolVisibility         `json:"tool_visibility"`
}
