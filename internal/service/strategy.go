package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gduffy1993-png/casebrain-hub-sub007/internal/domain"
)

// StrategyService produces the ranked candidate strategies for a case.
// Generation is rule-gated and pure: the same charge, graph and disclosure
// state always yield the same list, and at least two strategies are always
// returned.
type StrategyService struct{}

func NewStrategyService() *StrategyService {
	return &StrategyService{}
}

var sectionPattern = regexp.MustCompile(`(?i)s(?:ection)?\s*(\d+)`)

// ExtractSection pulls the statutory section number out of a charge label,
// e.g. "s18 OAPA 1861" or "Section 20 wounding" both yield their number.
func ExtractSection(label string) string {
	m := sectionPattern.FindStringSubmatch(label)
	if m == nil {
		return ""
	}
	return m[1]
}

// Generate builds the strategy list. Every strategy is stamped provisional
// when readiness failed or disclosure is incomplete; the stamp is computed
// here on every call and never carried over from a previous run.
func (s *StrategyService) Generate(charge domain.ChargeDescriptor, graph *domain.EvidenceGraph, disclosure domain.DisclosureStatus, stance domain.Stance) []domain.Strategy {
	section := charge.Section
	if section == "" {
		section = ExtractSection(charge.Label)
	}

	provisional := !graph.Readiness.CanCommitStrategy || !disclosure.IsComplete

	var strategies []domain.Strategy

	if st, ok := downgradeStrategy(section, stance); ok {
		strategies = append(strategies, st)
	}
	if st, ok := disclosurePressureStrategy(disclosure); ok {
		strategies = append(strategies, st)
	}
	if st, ok := identificationStrategy(graph); ok {
		strategies = append(strategies, st)
	}
	if st, ok := proceduralBreachStrategy(graph); ok {
		strategies = append(strategies, st)
	}
	strategies = append(strategies, controlledPleaStrategy(charge))

	// The guaranteed-minimum fallbacks. Appended unconditionally when the
	// rule-gated set falls short of two.
	if len(strategies) < 2 {
		strategies = append(strategies, evidenceWeaknessStrategy(), disclosureFirstStrategy())
	}

	for i := range strategies {
		// Controlled plea requires explicit informed consent and stays
		// provisional no matter how complete the evidence is.
		if strategies[i].ID == "controlled_plea" {
			strategies[i].Provisional = true
			continue
		}
		strategies[i].Provisional = provisional
	}

	return strategies
}

// downgradeStrategy covers the assault-grade ladder, where the distance
// between a specific-intent charge and its recklessness neighbour is the
// whole case.
func downgradeStrategy(section string, stance domain.Stance) (domain.Strategy, bool) {
	switch section {
	case "18":
		theory := "s18 requires specific intent to cause GBH; the evidence supports recklessness at most"
		if stance == domain.StanceSelfDefence {
			theory = "intent is doubly contested: self-defence negates unlawfulness and the evidence supports recklessness at most"
		}
		return domain.Strategy{
			ID:        "intent_downgrade_s18",
			Title:     "Charge downgrade: s18 to s20",
			Theory:    theory,
			WhenToUse: "when the intent evidence is thin, single-blow, or contradicted by the medical picture",
			Risks: []string{
				"prosecution may read the approach as weakness on the facts",
				"a failed downgrade argument can harden the intent narrative",
			},
			ImmediateActions: []string{
				"map every piece of intent evidence against the medical findings",
				"put the prosecution on notice that basis of plea will be contested",
			},
			DisclosureDependency: true,
			DowngradeTarget:      "s20 (recklessness basis)",
		}, true
	case "20":
		return domain.Strategy{
			ID:        "intent_downgrade_s20",
			Title:     "Charge downgrade: s20 to s47",
			Theory:    "the injury evidence sits at ABH level; wounding is not made out",
			WhenToUse: "when the medical evidence describes injuries below the wounding threshold",
			Risks: []string{
				"medical addendum evidence may firm up the wounding classification",
			},
			ImmediateActions: []string{
				"obtain the full medical notes, not just the summary",
			},
			DisclosureDependency: true,
			DowngradeTarget:      "s47 (ABH basis)",
		}, true
	}
	return domain.Strategy{}, false
}

// disclosurePressureStrategy fires when anything is outstanding: an open
// gap, or a named key schedule not yet disclosed.
func disclosurePressureStrategy(disclosure domain.DisclosureStatus) (domain.Strategy, bool) {
	keyItemOutstanding := false
	for _, ok := range disclosure.KeyItemFlags {
		if !ok {
			keyItemOutstanding = true
			break
		}
	}
	if len(disclosure.Gaps) == 0 && !keyItemOutstanding {
		return domain.Strategy{}, false
	}

	return domain.Strategy{
		ID:        "disclosure_pressure",
		Title:     "Disclosure pressure",
		Theory:    "the other side's case cannot be tested, or safely answered, until the outstanding material arrives",
		WhenToUse: "whenever schedules or requested items remain outstanding",
		Risks: []string{
			"pressure without follow-through reads as delay tactics",
		},
		ImmediateActions: []string{
			"serve a single consolidated disclosure request listing every outstanding item",
			"calendar the statutory response window",
		},
		DisclosureDependency: true,
	}, true
}

// identificationStrategy needs an identification or visual evidence item in
// the graph, whatever its disclosure state: an undisclosed CCTV reference is
// exactly what makes the attack worth running.
func identificationStrategy(graph *domain.EvidenceGraph) (domain.Strategy, bool) {
	if !graph.HasItemOfType(domain.EvidenceIdentification) &&
		!graph.HasItemOfType(domain.EvidenceCCTV) &&
		!graph.HasItemOfType(domain.EvidenceBWV) {
		return domain.Strategy{}, false
	}

	return domain.Strategy{
		ID:        "id_reliability",
		Title:     "Identification reliability attack",
		Theory:    "the identification evidence is weaker than its paper summary suggests once procedure and conditions are tested",
		WhenToUse: "when identification or visual evidence is central and its provenance is untested",
		Risks: []string{
			"a clean identification procedure, once confirmed, closes this route",
		},
		ImmediateActions: []string{
			"request the full identification procedure record",
			"test lighting, distance and duration against the witness account",
		},
		DisclosureDependency: false,
	}, true
}

// proceduralBreachStrategy fires on contradiction findings or custody and
// interview material in the graph; both are where procedure breaks surface.
func proceduralBreachStrategy(graph *domain.EvidenceGraph) (domain.Strategy, bool) {
	if len(graph.Contradictions) == 0 && !graph.HasItemOfType(domain.EvidenceCustodyRecord) {
		return domain.Strategy{}, false
	}

	return domain.Strategy{
		ID:        "procedural_breach",
		Title:     "Procedural breach attack",
		Theory:    "breaches in custody, interview or continuity procedure taint the evidence built on them",
		WhenToUse: "when records contradict each other or custody material shows irregularity",
		Risks: []string{
			"technical arguments without substance irritate the bench",
		},
		ImmediateActions: []string{
			"audit the custody record timeline against the interview log",
			"list every continuity hand-off for the key exhibits",
		},
		DisclosureDependency: true,
	}, true
}

func controlledPleaStrategy(charge domain.ChargeDescriptor) domain.Strategy {
	label := charge.Label
	if label == "" {
		label = "the current charge"
	}
	return domain.Strategy{
		ID:        "controlled_plea",
		Title:     "Controlled plea / settlement option",
		Theory:    fmt.Sprintf("a negotiated resolution of %s on a controlled basis may beat the trial risk", label),
		WhenToUse: "only with explicit informed consent after advice; never a default recommendation",
		Risks: []string{
			"any plea is irreversible once entered",
			"credit erodes the later this is taken",
		},
		ImmediateActions: []string{
			"prepare a written advice on trial risk versus resolution terms",
		},
		DisclosureDependency: false,
	}
}

func evidenceWeaknessStrategy() domain.Strategy {
	return domain.Strategy{
		ID:        "evidence_weakness",
		Title:     "Evidence weakness / no-case review",
		Theory:    "on the material available, the other side's case has not reached the standard it must meet",
		WhenToUse: "as a standing fallback while the evidential picture is thin",
		Risks: []string{
			"premature no-case submissions spend credibility",
		},
		ImmediateActions: []string{
			"build the element-by-element proof map and mark what is actually evidenced",
		},
		DisclosureDependency: false,
	}
}

func disclosureFirstStrategy() domain.Strategy {
	return domain.Strategy{
		ID:        "disclosure_first",
		Title:     "Disclosure-first posture",
		Theory:    "no strategic commitment should be made before the material needed to choose between routes arrives",
		WhenToUse: "whenever readiness or disclosure is incomplete",
		Risks: []string{
			"waiting has a cost if deadlines approach",
		},
		ImmediateActions: []string{
			"convert every gap into a dated, itemized request",
		},
		DisclosureDependency: true,
	}
}

// StrategyIDs is a convenience for tests and normalizer wiring.
func StrategyIDs(strategies []domain.Strategy) []string {
	ids := make([]string, len(strategies))
	for i, st := range strategies {
		ids[i] = st.ID
	}
	return ids
}

// HasStrategyWithDowngrade reports whether any strategy's downgrade target
// starts with the given prefix.
func HasStrategyWithDowngrade(strategies []domain.Strategy, prefix string) bool {
	for _, st := range strategies {
		if strings.HasPrefix(st.DowngradeTarget, prefix) {
			return true
		}
	}
	return false
}
