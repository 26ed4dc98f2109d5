package domain

// Strategy is one candidate route produced by the generator. Provisional is
// recomputed on every generation from readiness and disclosure state, never
// carried over from a previous run.
type Strategy struct {
	ID                   string   `json:"id"`
	Title                string   `json:"title"`
	Theory               string   `json:"theory"`
	WhenToUse            string   `json:"when_to_use"`
	Risks                []string `json:"risks"`
	ImmediateActions     []string `json:"immediate_actions"`
	DisclosureDependency bool     `json:"disclosure_dependency"`
	DowngradeTarget      string   `json:"downgrade_target,omitempty"`
	Provisional          bool     `json:"provisional"`
}

// NormalizedStrategy is the stable external contract for one strategy.
type NormalizedStrategy struct {
	ID               string   `json:"id"`
	Label            string   `json:"label"`
	Summary          string   `json:"summary"`
	Dependencies     []string `json:"dependencies"`
	NextDocuments    []string `json:"next_documents"`
	Provisional      bool     `json:"provisional"`
	ImmediateActions []string `json:"immediate_actions"`
}

// LeakageReport records cross-domain vocabulary found and redacted in
// normalizer output. Leakage is a warning for the caller, never a failure.
type LeakageReport struct {
	HadLeakage bool     `json:"had_leakage"`
	Terms      []string `json:"terms,omitempty"`
}
