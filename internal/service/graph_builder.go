package service

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/gduffy1993-png/casebrain-hub-sub007/internal/domain"
)

// GraphBuilderService merges every document for a case into one evidence
// graph. Build is a pure function of the document set and diagnostics:
// identical inputs produce an identical graph (CreatedAt aside), and the
// graph is rebuilt wholesale on every call, never patched.
type GraphBuilderService struct{}

func NewGraphBuilderService() *GraphBuilderService {
	return &GraphBuilderService{}
}

// caseReview is the structured form of a formal case-review document. A
// document whose extracted JSON unmarshals into this shape with the right
// document_type is authoritative for case metadata.
type caseReview struct {
	DocumentType  string              `json:"document_type"`
	CaseReference string              `json:"case_reference"`
	Court         string              `json:"court"`
	Defendant     string              `json:"defendant"`
	Prosecution   string              `json:"prosecution"`
	Charge        string              `json:"charge"`
	CustodyStatus string              `json:"custody_status"`
	Evidence      map[string]string   `json:"evidence"`
	Outstanding   map[string][]string `json:"outstanding"`
}

// freeFormExtract is the loose evidence listing found in non-review
// documents' extracted JSON.
type freeFormExtract struct {
	Evidence []freeFormItem `json:"evidence"`
}

type freeFormItem struct {
	Name   string `json:"name"`
	Status string `json:"status,omitempty"`
	Notes  string `json:"notes,omitempty"`
}

// outstandingCategories fixes both the severity per category and the order
// gaps are emitted in. Iterating the parsed map directly would make builds
// non-deterministic.
var outstandingCategories = []struct {
	name     string
	severity domain.Severity
}{
	{"visual", domain.SeverityHigh},
	{"identification", domain.SeverityHigh},
	{"forensic", domain.SeverityMedium},
	{"general", domain.SeverityMedium},
}

// Build merges the case documents into a fresh EvidenceGraph. Malformed
// structured parses fall back to unstructured treatment; absence of data is
// reflected in the readiness verdict, never returned as an error.
func (s *GraphBuilderService) Build(docs []domain.CaseDocument, diag domain.Diagnostics) domain.EvidenceGraph {
	graph := domain.EvidenceGraph{
		EvidenceItems:  []domain.EvidenceItem{},
		DisclosureGaps: []domain.DisclosureGap{},
		Contradictions: []domain.Contradiction{},
		CreatedAt:      time.Now().UTC(),
	}

	var review *caseReview
	var reviewDocID string
	for _, doc := range docs {
		if r, ok := parseCaseReview(doc); ok {
			review = r
			reviewDocID = doc.ID.String()
			break
		}
	}

	if review != nil {
		graph.CaseMeta = domain.CaseMeta{
			CaseReference: review.CaseReference,
			Court:         review.Court,
			Defendant:     review.Defendant,
			Prosecution:   review.Prosecution,
			Charge:        review.Charge,
			CustodyStatus: review.CustodyStatus,
		}
		graph.EvidenceItems = append(graph.EvidenceItems, reviewEvidenceItems(review)...)
		graph.DisclosureGaps = append(graph.DisclosureGaps, reviewDisclosureGaps(review)...)
	}

	for _, doc := range docs {
		if doc.ID.String() == reviewDocID {
			continue
		}
		graph.EvidenceItems = append(graph.EvidenceItems, freeFormEvidenceItems(doc)...)
	}

	if review != nil && review.Court != "" {
		graph.Contradictions = append(graph.Contradictions, detectCourtContradictions(review.Court, docs, reviewDocID)...)
	}

	graph.Readiness = assessReadiness(diag, len(graph.DisclosureGaps) > 0)
	return graph
}

// parseCaseReview attempts the structured parse. Anything short of a clean
// case_review document is treated as "parse failed for this document".
func parseCaseReview(doc domain.CaseDocument) (*caseReview, bool) {
	if strings.TrimSpace(doc.ExtractedJSON) == "" {
		return nil, false
	}
	var r caseReview
	if err := json.Unmarshal([]byte(doc.ExtractedJSON), &r); err != nil {
		return nil, false
	}
	if r.DocumentType != "case_review" {
		return nil, false
	}
	return &r, true
}

func reviewEvidenceItems(r *caseReview) []domain.EvidenceItem {
	names := make([]string, 0, len(r.Evidence))
	for name := range r.Evidence {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]domain.EvidenceItem, 0, len(names))
	for _, name := range names {
		items = append(items, domain.EvidenceItem{
			Type:        MapEvidenceType(name),
			Description: name,
			Disclosure:  MapDisclosureState(r.Evidence[name]),
			Source:      domain.SourcePrimaryBundle,
		})
	}
	return items
}

func reviewDisclosureGaps(r *caseReview) []domain.DisclosureGap {
	var gaps []domain.DisclosureGap
	for _, cat := range outstandingCategories {
		for _, item := range r.Outstanding[cat.name] {
			gaps = append(gaps, domain.DisclosureGap{
				Category:       cat.name,
				Item:           item,
				Severity:       cat.severity,
				RequestedItems: []string{item},
				Source:         domain.SourcePrimaryBundle,
			})
		}
	}
	return gaps
}

// freeFormEvidenceItems pulls loose evidence entries out of a document's
// extracted JSON. Entries are assumed disclosed unless marked otherwise.
func freeFormEvidenceItems(doc domain.CaseDocument) []domain.EvidenceItem {
	if strings.TrimSpace(doc.ExtractedJSON) == "" {
		return nil
	}
	var extract freeFormExtract
	if err := json.Unmarshal([]byte(doc.ExtractedJSON), &extract); err != nil {
		return nil
	}

	var items []domain.EvidenceItem
	for _, entry := range extract.Evidence {
		if strings.TrimSpace(entry.Name) == "" {
			continue
		}
		disclosure := domain.Disclosed
		if entry.Status != "" {
			disclosure = MapDisclosureState(entry.Status)
		}
		items = append(items, domain.EvidenceItem{
			Type:        MapEvidenceType(entry.Name),
			Description: entry.Name,
			Disclosure:  disclosure,
			Source:      domain.SourceOtherDocument,
			Notes:       entry.Notes,
		})
	}
	return items
}

// courtPattern matches a court name in free text, e.g. "at Camberwell Green
// Magistrates' Court" or "in the Inner London Crown Court".
var courtPattern = regexp.MustCompile(`(?i)(?:at|in|before)(?: the)?\s+([A-Z][A-Za-z'\- ]*?(?:Magistrates'?|Crown|County|Family|Youth)\s+Court)`)

// detectCourtContradictions compares the authoritative court name against
// court mentions in the raw text of every other document. Intentionally
// narrow: a single field and a single pattern. A missed contradiction is
// acceptable, a false one is not.
func detectCourtContradictions(authoritative string, docs []domain.CaseDocument, reviewDocID string) []domain.Contradiction {
	var found []domain.Contradiction
	want := normalizeCourt(authoritative)
	for _, doc := range docs {
		if doc.ID.String() == reviewDocID || doc.RawText == "" {
			continue
		}
		m := courtPattern.FindStringSubmatch(doc.RawText)
		if m == nil {
			continue
		}
		got := normalizeCourt(m[1])
		if got == "" || got == want {
			continue
		}
		found = append(found, domain.Contradiction{
			Field:    "court",
			ValueA:   authoritative,
			ValueB:   strings.TrimSpace(m[1]),
			Severity: domain.SeverityHigh,
			Notes:    fmt.Sprintf("case review names %q but %q refers to %q", authoritative, doc.Name, strings.TrimSpace(m[1])),
		})
	}
	return found
}

func normalizeCourt(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "'", "")
	return strings.Join(strings.Fields(s), " ")
}

// assessReadiness is the three-tier verdict over externally computed
// diagnostics. Gaps never block readiness; they only add a note.
func assessReadiness(diag domain.Diagnostics, hasGaps bool) domain.Readiness {
	switch {
	case diag.RawCharsTotal == 0:
		return domain.Readiness{
			CanCommitStrategy: false,
			Reasons:           []string{"no extractable text in any document"},
		}
	case diag.SuspectedScanned:
		return domain.Readiness{
			CanCommitStrategy: false,
			Reasons:           []string{"documents appear scanned; text extraction is unreliable"},
		}
	case diag.RawCharsTotal < domain.MinReadableChars:
		return domain.Readiness{
			CanCommitStrategy: false,
			Reasons:           []string{"insufficient text to assess the case responsibly"},
		}
	}

	r := domain.Readiness{CanCommitStrategy: true, Reasons: []string{}}
	if hasGaps {
		r.Reasons = append(r.Reasons, "disclosure gaps remain; this should be disclosure-first")
	}
	return r
}

// evidenceTypeKeywords maps keyword substrings to evidence types. Order
// matters: the first matching keyword wins.
var evidenceTypeKeywords = []struct {
	keyword string
	evType  domain.EvidenceType
}{
	{"cctv", domain.EvidenceCCTV},
	{"bwv", domain.EvidenceBWV},
	{"body-worn", domain.EvidenceBWV},
	{"body worn", domain.EvidenceBWV},
	{"witness", domain.EvidenceWitnessStmt},
	{"police", domain.EvidencePoliceStmt},
	{"officer", domain.EvidencePoliceStmt},
	{"forensic", domain.EvidenceForensic},
	{"dna", domain.EvidenceForensic},
	{"fingerprint", domain.EvidenceForensic},
	{"medical", domain.EvidenceMedical},
	{"injur", domain.EvidenceMedical},
	{"hospital", domain.EvidenceMedical},
	{"identification", domain.EvidenceIdentification},
	{"id procedure", domain.EvidenceIdentification},
	{"viper", domain.EvidenceIdentification},
	{"custody", domain.EvidenceCustodyRecord},
	{"interview", domain.EvidenceCustodyRecord},
	{"ambulance", domain.EvidenceAmbulance},
	{"paramedic", domain.EvidenceAmbulance},
	{"999", domain.EvidenceEmergencyCall},
	{"emergency call", domain.EvidenceEmergencyCall},
}

// MapEvidenceType normalizes a free-text evidence name into the fixed enum.
// Unmatched names map to EvidenceOther.
func MapEvidenceType(name string) domain.EvidenceType {
	lower := strings.ToLower(name)
	for _, kw := range evidenceTypeKeywords {
		if strings.Contains(lower, kw.keyword) {
			return kw.evType
		}
	}
	return domain.EvidenceOther
}

// MapDisclosureState normalizes a free-text disclosure status. Negations are
// checked before the bare "disclosed" match so "not yet disclosed" does not
// read as disclosed.
func MapDisclosureState(status string) domain.DisclosureState {
	lower := strings.ToLower(status)
	switch {
	case strings.Contains(lower, "not"),
		strings.Contains(lower, "outstanding"),
		strings.Contains(lower, "missing"):
		return domain.NotDisclosed
	case strings.Contains(lower, "partial"):
		return domain.PartiallyDisclosed
	case strings.Contains(lower, "disclosed"):
		return domain.Disclosed
	}
	return domain.DisclosureUnknown
}
