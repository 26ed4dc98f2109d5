package service

import (
	"strings"
	"testing"

	"github.com/gduffy1993-png/casebrain-hub-sub007/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
)

const reviewJSON = `{
	"document_type": "case_review",
	"case_reference": "URN 01AB2234567",
	"court": "Thames Magistrates' Court",
	"defendant": "Daniel Whitfield",
	"prosecution": "CPS London North",
	"charge": "s18 GBH with intent, OAPA 1861",
	"custody_status": "conditional bail",
	"evidence": {
		"cctv": "partially disclosed",
		"bwv from arresting officers": "disclosed",
		"witness statement": "disclosed",
		"forensic report": "not yet disclosed"
	},
	"outstanding": {
		"visual": ["CCTV from inside the venue"],
		"identification": ["VIPER identification procedure record"],
		"forensic": ["full forensic report"],
		"general": ["MG6C schedule of unused material"]
	}
}`

func reviewDoc() domain.CaseDocument {
	return domain.CaseDocument{
		ID:            uuid.New(),
		Name:          "case_review.json",
		RawText:       "Case review following first hearing.",
		ExtractedJSON: reviewJSON,
	}
}

func readyDiag() domain.Diagnostics {
	return domain.Diagnostics{
		DocCount:      2,
		RawCharsTotal: domain.MinReadableChars + 100,
		ReasonCodes:   []string{domain.DiagOK},
	}
}

func TestGraphBuilder_CaseReviewAuthoritative(t *testing.T) {
	svc := NewGraphBuilderService()
	graph := svc.Build([]domain.CaseDocument{reviewDoc()}, readyDiag())

	if graph.CaseMeta.CaseReference != "URN 01AB2234567" {
		t.Errorf("expected case reference from review, got %q", graph.CaseMeta.CaseReference)
	}
	if graph.CaseMeta.Court != "Thames Magistrates' Court" {
		t.Errorf("expected court from review, got %q", graph.CaseMeta.Court)
	}
	if graph.CaseMeta.CustodyStatus != "conditional bail" {
		t.Errorf("expected custody status from review, got %q", graph.CaseMeta.CustodyStatus)
	}

	if len(graph.EvidenceItems) != 4 {
		t.Fatalf("expected 4 evidence items, got %d", len(graph.EvidenceItems))
	}
	// Items come out in sorted name order: bwv..., cctv, forensic report, witness statement.
	if graph.EvidenceItems[0].Type != domain.EvidenceBWV {
		t.Errorf("expected first item bwv, got %s", graph.EvidenceItems[0].Type)
	}
	if graph.EvidenceItems[1].Disclosure != domain.PartiallyDisclosed {
		t.Errorf("expected cctv partially disclosed, got %s", graph.EvidenceItems[1].Disclosure)
	}
	if graph.EvidenceItems[2].Disclosure != domain.NotDisclosed {
		t.Errorf("expected forensic report not disclosed, got %s", graph.EvidenceItems[2].Disclosure)
	}
	for _, item := range graph.EvidenceItems {
		if item.Source != domain.SourcePrimaryBundle {
			t.Errorf("review items should carry the primary bundle source, got %s", item.Source)
		}
	}
}

func TestGraphBuilder_GapOrderAndSeverity(t *testing.T) {
	svc := NewGraphBuilderService()
	graph := svc.Build([]domain.CaseDocument{reviewDoc()}, readyDiag())

	if len(graph.DisclosureGaps) != 4 {
		t.Fatalf("expected 4 gaps, got %d", len(graph.DisclosureGaps))
	}

	wantOrder := []struct {
		category string
		severity domain.Severity
	}{
		{"visual", domain.SeverityHigh},
		{"identification", domain.SeverityHigh},
		{"forensic", domain.SeverityMedium},
		{"general", domain.SeverityMedium},
	}
	for i, want := range wantOrder {
		got := graph.DisclosureGaps[i]
		if got.Category != want.category || got.Severity != want.severity {
			t.Errorf("gap %d: got %s/%s, want %s/%s", i, got.Category, got.Severity, want.category, want.severity)
		}
	}
}

func TestGraphBuilder_CourtContradiction(t *testing.T) {
	svc := NewGraphBuilderService()
	witness := domain.CaseDocument{
		ID:      uuid.New(),
		Name:    "witness_statement.txt",
		RawText: "The defendant appeared before Stratford Magistrates' Court the following morning.",
	}

	graph := svc.Build([]domain.CaseDocument{reviewDoc(), witness}, readyDiag())

	if len(graph.Contradictions) != 1 {
		t.Fatalf("expected 1 contradiction, got %d", len(graph.Contradictions))
	}
	c := graph.Contradictions[0]
	if c.Field != "court" {
		t.Errorf("expected court contradiction, got field %q", c.Field)
	}
	if c.Severity != domain.SeverityHigh {
		t.Errorf("expected HIGH severity, got %s", c.Severity)
	}
	if c.ValueA != "Thames Magistrates' Court" || c.ValueB != "Stratford Magistrates' Court" {
		t.Errorf("unexpected contradiction values: %q vs %q", c.ValueA, c.ValueB)
	}
}

func TestGraphBuilder_NoContradictionOnPunctuationVariant(t *testing.T) {
	svc := NewGraphBuilderService()
	// Same court, apostrophe dropped. Normalization must not flag this.
	witness := domain.CaseDocument{
		ID:      uuid.New(),
		Name:    "witness_statement.txt",
		RawText: "The matter was heard at Thames Magistrates Court last week.",
	}

	graph := svc.Build([]domain.CaseDocument{reviewDoc(), witness}, readyDiag())

	if len(graph.Contradictions) != 0 {
		t.Fatalf("expected no contradictions, got %d: %+v", len(graph.Contradictions), graph.Contradictions)
	}
}

func TestGraphBuilder_FreeFormItems(t *testing.T) {
	svc := NewGraphBuilderService()
	doc := domain.CaseDocument{
		ID:            uuid.New(),
		Name:          "notes.txt",
		RawText:       strings.Repeat("x", domain.MinReadableChars),
		ExtractedJSON: `{"evidence": [{"name": "CCTV footage from corner shop", "status": "seized, not yet disclosed"}, {"name": "999 call log"}]}`,
	}

	graph := svc.Build([]domain.CaseDocument{doc}, readyDiag())

	if len(graph.EvidenceItems) != 2 {
		t.Fatalf("expected 2 items, got %d", len(graph.EvidenceItems))
	}
	if graph.EvidenceItems[0].Type != domain.EvidenceCCTV {
		t.Errorf("expected cctv, got %s", graph.EvidenceItems[0].Type)
	}
	if graph.EvidenceItems[0].Disclosure != domain.NotDisclosed {
		t.Errorf("expected not_disclosed, got %s", graph.EvidenceItems[0].Disclosure)
	}
	// No status means assumed disclosed.
	if graph.EvidenceItems[1].Type != domain.EvidenceEmergencyCall || graph.EvidenceItems[1].Disclosure != domain.Disclosed {
		t.Errorf("expected disclosed emergency_call, got %s/%s", graph.EvidenceItems[1].Type, graph.EvidenceItems[1].Disclosure)
	}
	if graph.EvidenceItems[0].Source != domain.SourceOtherDocument {
		t.Errorf("free-form items should carry the other-document source, got %s", graph.EvidenceItems[0].Source)
	}
}

func TestGraphBuilder_MalformedJSONFallsBack(t *testing.T) {
	svc := NewGraphBuilderService()
	doc := domain.CaseDocument{
		ID:            uuid.New(),
		Name:          "broken.json",
		RawText:       strings.Repeat("readable text ", 80),
		ExtractedJSON: `{"document_type": "case_review", "evidence": broken`,
	}

	graph := svc.Build([]domain.CaseDocument{doc}, readyDiag())

	if graph.CaseMeta.CaseReference != "" {
		t.Errorf("malformed review must not populate case meta, got %q", graph.CaseMeta.CaseReference)
	}
	if len(graph.EvidenceItems) != 0 {
		t.Errorf("malformed JSON must not yield items, got %d", len(graph.EvidenceItems))
	}
	if !graph.Readiness.CanCommitStrategy {
		t.Error("malformed extraction should not block readiness when raw text suffices")
	}
}

func TestAssessReadiness_Tiers(t *testing.T) {
	tests := []struct {
		name       string
		diag       domain.Diagnostics
		wantReady  bool
		wantReason string
	}{
		{
			name:       "no text at all",
			diag:       domain.Diagnostics{DocCount: 2},
			wantReady:  false,
			wantReason: "no extractable text in any document",
		},
		{
			name:       "suspected scanned",
			diag:       domain.Diagnostics{DocCount: 3, RawCharsTotal: 50, SuspectedScanned: true},
			wantReady:  false,
			wantReason: "documents appear scanned; text extraction is unreliable",
		},
		{
			name:       "just under the floor",
			diag:       domain.Diagnostics{DocCount: 1, RawCharsTotal: domain.MinReadableChars - 1},
			wantReady:  false,
			wantReason: "insufficient text to assess the case responsibly",
		},
		{
			name:      "at the floor",
			diag:      domain.Diagnostics{DocCount: 1, RawCharsTotal: domain.MinReadableChars},
			wantReady: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := assessReadiness(tt.diag, false)
			if r.CanCommitStrategy != tt.wantReady {
				t.Errorf("CanCommitStrategy = %v, want %v", r.CanCommitStrategy, tt.wantReady)
			}
			if tt.wantReason != "" {
				if len(r.Reasons) != 1 || r.Reasons[0] != tt.wantReason {
					t.Errorf("Reasons = %v, want [%q]", r.Reasons, tt.wantReason)
				}
			}
		})
	}
}

func TestAssessReadiness_GapNote(t *testing.T) {
	diag := domain.Diagnostics{DocCount: 1, RawCharsTotal: domain.MinReadableChars * 2}
	r := assessReadiness(diag, true)
	if !r.CanCommitStrategy {
		t.Fatal("gaps alone must not block readiness")
	}
	if len(r.Reasons) != 1 || r.Reasons[0] != "disclosure gaps remain; this should be disclosure-first" {
		t.Errorf("expected the disclosure-first note, got %v", r.Reasons)
	}
}

func TestGraphBuilder_Deterministic(t *testing.T) {
	svc := NewGraphBuilderService()
	docs := []domain.CaseDocument{
		reviewDoc(),
		{
			ID:            uuid.New(),
			Name:          "witness_statement.txt",
			RawText:       "The defendant appeared before Stratford Magistrates' Court.",
			ExtractedJSON: `{"evidence": [{"name": "custody record", "status": "outstanding"}]}`,
		},
	}
	diag := readyDiag()

	a := svc.Build(docs, diag)
	b := svc.Build(docs, diag)

	if diff := cmp.Diff(a, b, cmpopts.IgnoreFields(domain.EvidenceGraph{}, "CreatedAt")); diff != "" {
		t.Errorf("two builds over identical inputs differ (-first +second):\n%s", diff)
	}
}

func TestMapEvidenceType(t *testing.T) {
	tests := []struct {
		name string
		want domain.EvidenceType
	}{
		{"CCTV footage from corner shop", domain.EvidenceCCTV},
		{"Body-worn video clip 3", domain.EvidenceBWV},
		{"statement of bar staff witness", domain.EvidenceWitnessStmt},
		{"arresting officer account", domain.EvidencePoliceStmt},
		{"DNA swab result", domain.EvidenceForensic},
		{"hospital discharge summary", domain.EvidenceMedical},
		{"VIPER procedure record", domain.EvidenceIdentification},
		{"custody record extract", domain.EvidenceCustodyRecord},
		{"999 call log", domain.EvidenceEmergencyCall},
		{"paramedic run sheet", domain.EvidenceAmbulance},
		{"bundle index", domain.EvidenceOther},
	}
	for _, tt := range tests {
		if got := MapEvidenceType(tt.name); got != tt.want {
			t.Errorf("MapEvidenceType(%q) = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestMapDisclosureState(t *testing.T) {
	tests := []struct {
		status string
		want   domain.DisclosureState
	}{
		{"disclosed", domain.Disclosed},
		{"Disclosed in full", domain.Disclosed},
		{"not yet disclosed", domain.NotDisclosed},
		{"outstanding", domain.NotDisclosed},
		{"missing from bundle", domain.NotDisclosed},
		{"partially disclosed", domain.PartiallyDisclosed},
		{"seized", domain.DisclosureUnknown},
	}
	for _, tt := range tests {
		if got := MapDisclosureState(tt.status); got != tt.want {
			t.Errorf("MapDisclosureState(%q) = %s, want %s", tt.status, got, tt.want)
		}
	}
}
