package domain

import (
	"time"

	"github.com/google/uuid"
)

type PracticeArea string

const (
	AreaCriminal           PracticeArea = "criminal"
	AreaHousingDisrepair   PracticeArea = "housing_disrepair"
	AreaPersonalInjury     PracticeArea = "personal_injury"
	AreaClinicalNegligence PracticeArea = "clinical_negligence"
	AreaFamily             PracticeArea = "family"
	AreaGeneralLitigation  PracticeArea = "general_litigation"
)

// PracticeAreas lists every registered area. The lens registry is checked
// against this list at startup, so adding an area here without a lens is a
// fatal construction error rather than a silent fallback.
var PracticeAreas = []PracticeArea{
	AreaCriminal,
	AreaHousingDisrepair,
	AreaPersonalInjury,
	AreaClinicalNegligence,
	AreaFamily,
	AreaGeneralLitigation,
}

func ValidPracticeArea(a string) bool {
	switch PracticeArea(a) {
	case AreaCriminal, AreaHousingDisrepair, AreaPersonalInjury,
		AreaClinicalNegligence, AreaFamily, AreaGeneralLitigation:
		return true
	}
	return false
}

// CasePhase is the 3-phase case lifecycle:
// 1 = Disclosure & Readiness, 2 = Positioning & Options, 3 = Sentencing & Outcome.
// Phase moves forward only; it is never inferred backward from evidence state.
type CasePhase int

const (
	PhaseDisclosure  CasePhase = 1
	PhasePositioning CasePhase = 2
	PhaseOutcome     CasePhase = 3
)

func ValidCasePhase(p int) bool {
	return p >= int(PhaseDisclosure) && p <= int(PhaseOutcome)
}

type CaseFile struct {
	ID           uuid.UUID    `json:"id"`
	TenantID     uuid.UUID    `json:"tenant_id"`
	Title        string       `json:"title"`
	PracticeArea PracticeArea `json:"practice_area"`
	Charge       string       `json:"charge,omitempty"`
	Stance       Stance       `json:"stance"`
	Phase        CasePhase    `json:"phase"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// CaseDocument is the extracted form of one uploaded document. Ingestion and
// OCR happen upstream; the engine only ever sees raw text plus optional
// extracted JSON.
type CaseDocument struct {
	ID            uuid.UUID `json:"id"`
	CaseID        uuid.UUID `json:"case_id"`
	Name          string    `json:"name"`
	RawText       string    `json:"raw_text,omitempty"`
	ExtractedJSON string    `json:"extracted_json,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// CaseMeta is the authoritative case metadata pulled from the first document
// that parses as a formal case review. Unstructured documents never override it.
type CaseMeta struct {
	CaseReference string `json:"case_reference,omitempty"`
	Court         string `json:"court,omitempty"`
	Defendant     string `json:"defendant,omitempty"`
	Prosecution   string `json:"prosecution,omitempty"`
	Charge        string `json:"charge,omitempty"`
	CustodyStatus string `json:"custody_status,omitempty"`
}

// Diagnostics is computed by the calling layer from the current document set
// using fixed thresholds; the graph builder consumes it as-is.
type Diagnostics struct {
	DocCount         int      `json:"doc_count"`
	RawCharsTotal    int      `json:"raw_chars_total"`
	JSONCharsTotal   int      `json:"json_chars_total"`
	SuspectedScanned bool     `json:"suspected_scanned"`
	ReasonCodes      []string `json:"reason_codes"`
}

const (
	DiagDocsNone = "DOCS_NONE"
	DiagNoText   = "NO_TEXT"
	DiagTextThin = "TEXT_THIN"
	DiagOK       = "OK"
)

// MinReadableChars is the raw-text floor below which strategy output is
// considered irresponsible to generate.
const MinReadableChars = 800

// ChargeDescriptor identifies the charge or claim the strategy generator
// reasons about. Section is parsed out of Label when empty.
type ChargeDescriptor struct {
	Label   string `json:"label"`
	Section string `json:"section,omitempty"`
	Act     string `json:"act,omitempty"`
}

// Stance is the client's interview or examination position, when known.
type Stance string

const (
	StanceNoComment   Stance = "no_comment"
	StanceDenial      Stance = "denial"
	StanceAdmission   Stance = "admission"
	StanceSelfDefence Stance = "self_defence"
	StanceUnknown     Stance = "unknown"
)

func ValidStance(s string) bool {
	switch Stance(s) {
	case StanceNoComment, StanceDenial, StanceAdmission, StanceSelfDefence, StanceUnknown:
		return true
	}
	return false
}
