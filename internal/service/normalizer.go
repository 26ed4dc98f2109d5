package service

import (
	"regexp"
	"strings"

	"github.com/gduffy1993-png/casebrain-hub-sub007/internal/domain"
)

// NormalizerService maps raw strategies onto the stable external contract
// and screens the output for vocabulary that belongs to another practice
// area. Leakage is redacted and reported, never fatal: it guards against
// the generator's rule tables cross-wiring domains.
type NormalizerService struct{}

func NewNormalizerService() *NormalizerService {
	return &NormalizerService{}
}

const redactionMarker = "[out-of-domain term]"

// foreignTerms lists, per practice area, terms that belong to a different
// domain and should never appear in this area's output.
var foreignTerms = map[domain.PracticeArea][]string{
	domain.AreaCriminal: {
		"part 36", "claimant", "pre-action protocol", "letter of claim", "costs budget",
	},
	domain.AreaHousingDisrepair: {
		"mens rea", "plea in mitigation", "custody record", "no case to answer",
	},
	domain.AreaPersonalInjury: {
		"mens rea", "plea in mitigation", "custody record", "no case to answer",
	},
	domain.AreaClinicalNegligence: {
		"mens rea", "plea in mitigation", "custody record", "no case to answer",
	},
	domain.AreaFamily: {
		"mens rea", "part 36", "no case to answer", "basis of plea",
	},
	domain.AreaGeneralLitigation: {
		"mens rea", "plea in mitigation", "custody record", "basis of plea",
	},
}

// nextDocumentsByID maps strategy id substrings to the documents worth
// requesting next. First matching key wins; keys are ordered most-specific
// first.
var nextDocumentsByID = []struct {
	idSubstring string
	documents   []string
}{
	{"id_reliability", []string{"identification procedure record", "first-description record", "CCTV continuity log"}},
	{"downgrade", []string{"full medical notes", "all witness statements", "CCTV footage"}},
	{"disclosure", []string{"MG6C schedule", "MG6D schedule", "unused material index"}},
	{"procedural", []string{"custody record", "interview recording", "continuity log"}},
	{"plea", []string{"draft basis document", "sentencing guideline extract"}},
	{"evidence_weakness", []string{"served evidence index"}},
}

var parenthetical = regexp.MustCompile(`\s*\([^)]*\)`)

var labelPrefixes = []string{
	"charge downgrade:",
	"strategy:",
}

// Normalize maps every strategy to its external DTO and runs the leakage
// filter over all text.
func (s *NormalizerService) Normalize(strategies []domain.Strategy, area domain.PracticeArea) ([]domain.NormalizedStrategy, domain.LeakageReport) {
	report := domain.LeakageReport{}
	out := make([]domain.NormalizedStrategy, 0, len(strategies))

	for _, st := range strategies {
		n := domain.NormalizedStrategy{
			ID:               st.ID,
			Label:            ShortLabel(st.Title),
			Summary:          st.Theory,
			Dependencies:     dependencies(st),
			NextDocuments:    nextDocuments(st.ID),
			Provisional:      st.Provisional,
			ImmediateActions: append([]string{}, st.ImmediateActions...),
		}

		n.Label = s.filter(n.Label, area, &report)
		n.Summary = s.filter(n.Summary, area, &report)
		for i := range n.ImmediateActions {
			n.ImmediateActions[i] = s.filter(n.ImmediateActions[i], area, &report)
		}

		out = append(out, n)
	}

	return out, report
}

// ShortLabel strips known prefixes and parentheticals, then keeps the first
// four words.
func ShortLabel(title string) string {
	label := strings.TrimSpace(parenthetical.ReplaceAllString(title, ""))
	lower := strings.ToLower(label)
	for _, prefix := range labelPrefixes {
		if strings.HasPrefix(lower, prefix) {
			label = strings.TrimSpace(label[len(prefix):])
			break
		}
	}
	words := strings.Fields(label)
	if len(words) > 4 {
		words = words[:4]
	}
	return strings.Join(words, " ")
}

func dependencies(st domain.Strategy) []string {
	if st.DisclosureDependency {
		return []string{"outstanding disclosure"}
	}
	return []string{}
}

func nextDocuments(id string) []string {
	for _, entry := range nextDocumentsByID {
		if strings.Contains(id, entry.idSubstring) {
			return append([]string{}, entry.documents...)
		}
	}
	return []string{}
}

// filter replaces any foreign-domain term in the text with the redaction
// marker and records it in the report.
func (s *NormalizerService) filter(text string, area domain.PracticeArea, report *domain.LeakageReport) string {
	lower := strings.ToLower(text)
	for _, term := range foreignTerms[area] {
		idx := strings.Index(lower, term)
		for idx >= 0 {
			text = text[:idx] + redactionMarker + text[idx+len(term):]
			lower = strings.ToLower(text)
			report.HadLeakage = true
			if !containsString(report.Terms, term) {
				report.Terms = append(report.Terms, term)
			}
			idx = strings.Index(lower, term)
		}
	}
	return text
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
