package domain

import "time"

type EvidenceType string

const (
	EvidenceCCTV           EvidenceType = "cctv"
	EvidenceBWV            EvidenceType = "bwv"
	EvidenceWitnessStmt    EvidenceType = "witness_statement"
	EvidencePoliceStmt     EvidenceType = "police_statement"
	EvidenceForensic       EvidenceType = "forensic"
	EvidenceMedical        EvidenceType = "medical"
	EvidenceIdentification EvidenceType = "identification"
	EvidenceCustodyRecord  EvidenceType = "custody_interview"
	EvidenceAmbulance      EvidenceType = "ambulance"
	EvidenceEmergencyCall  EvidenceType = "emergency_call"
	EvidenceOther          EvidenceType = "other"
)

func ValidEvidenceType(e string) bool {
	switch EvidenceType(e) {
	case EvidenceCCTV, EvidenceBWV, EvidenceWitnessStmt, EvidencePoliceStmt,
		EvidenceForensic, EvidenceMedical, EvidenceIdentification,
		EvidenceCustodyRecord, EvidenceAmbulance, EvidenceEmergencyCall,
		EvidenceOther:
		return true
	}
	return false
}

type DisclosureState string

const (
	Disclosed          DisclosureState = "disclosed"
	PartiallyDisclosed DisclosureState = "partially_disclosed"
	NotDisclosed       DisclosureState = "not_disclosed"
	DisclosureUnknown  DisclosureState = "unknown"
)

type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
)

type EvidenceSource string

const (
	SourcePrimaryBundle  EvidenceSource = "primary_bundle"
	SourceOpposingReview EvidenceSource = "opposing_review"
	SourceOtherDocument  EvidenceSource = "other"
)

// EvidenceItem is one named piece of evidentiary material. Items are created
// during a graph build and are immutable afterward; a newer build supersedes
// them wholesale.
type EvidenceItem struct {
	Type        EvidenceType    `json:"type"`
	Description string          `json:"description"`
	Disclosure  DisclosureState `json:"disclosure_status"`
	Source      EvidenceSource  `json:"source"`
	Notes       string          `json:"notes,omitempty"`
}

// DisclosureGap is a named, missing-or-incomplete piece of required material.
type DisclosureGap struct {
	Category       string         `json:"category"`
	Item           string         `json:"item"`
	Severity       Severity       `json:"severity"`
	RequestedItems []string       `json:"requested_items,omitempty"`
	Source         EvidenceSource `json:"source"`
}

// Contradiction records the same semantic field carrying different values in
// two independently parsed documents.
type Contradiction struct {
	Field    string   `json:"field"`
	ValueA   string   `json:"value_a"`
	ValueB   string   `json:"value_b"`
	Severity Severity `json:"severity"`
	Notes    string   `json:"notes,omitempty"`
}

// Readiness is the graph-level verdict on whether enough extractable material
// exists to responsibly generate strategy output.
type Readiness struct {
	CanCommitStrategy bool     `json:"can_commit_strategy"`
	Reasons           []string `json:"reasons"`
}

// EvidenceGraph is the aggregate evidence model for one case. It is a pure
// function of the current document set: rebuilt wholesale on every build,
// never patched.
type EvidenceGraph struct {
	CaseMeta       CaseMeta        `json:"case_meta"`
	EvidenceItems  []EvidenceItem  `json:"evidence_items"`
	DisclosureGaps []DisclosureGap `json:"disclosure_gaps"`
	Contradictions []Contradiction `json:"contradictions"`
	Readiness      Readiness       `json:"readiness"`
	CreatedAt      time.Time       `json:"created_at"`
}

// HasItemOfType reports whether the graph contains at least one evidence item
// of the given type, regardless of its disclosure state.
func (g *EvidenceGraph) HasItemOfType(t EvidenceType) bool {
	for _, item := range g.EvidenceItems {
		if item.Type == t {
			return true
		}
	}
	return false
}

// DisclosureStatus is derived from a graph; it never exists independently of
// the build that produced it.
type DisclosureStatus struct {
	IsComplete   bool            `json:"is_complete"`
	Gaps         []DisclosureGap `json:"gaps"`
	KeyItemFlags map[string]bool `json:"key_item_flags"`
}
