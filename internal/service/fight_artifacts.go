package service

import (
	"fmt"
	"strings"

	"github.com/gduffy1993-png/casebrain-hub-sub007/internal/domain"
)

// The four artifact templates. Assembly is string concatenation over typed
// fields only; any missing fact appears as a bracketed placeholder. No free
// text is ever generated.

func (s *FightService) buildArtifacts(route domain.RouteType, graph *domain.EvidenceGraph, disclosure domain.DisclosureStatus) []domain.StrategyArtifact {
	return []domain.StrategyArtifact{
		positionSnapshot(route, graph, disclosure),
		disclosureRequestPack(graph, disclosure),
		caseManagementNote(route, graph, disclosure),
		negotiationBrief(route, graph, disclosure),
	}
}

func routeLabel(route domain.RouteType) string {
	switch route {
	case domain.RouteContest:
		return "contest the charge"
	case domain.RouteReduce:
		return "reduce the charge"
	case domain.RouteManageOutcome:
		return "manage the outcome"
	}
	return string(route)
}

func positionSnapshot(route domain.RouteType, graph *domain.EvidenceGraph, disclosure domain.DisclosureStatus) domain.StrategyArtifact {
	var b strings.Builder
	fmt.Fprintf(&b, "POSITION SNAPSHOT\n")
	fmt.Fprintf(&b, "Case: %s\n", placeholder(graph.CaseMeta.CaseReference, "case reference"))
	fmt.Fprintf(&b, "Court: %s\n", placeholder(graph.CaseMeta.Court, "court"))
	fmt.Fprintf(&b, "Charge: %s\n", placeholder(graph.CaseMeta.Charge, "charge"))
	fmt.Fprintf(&b, "Current route: %s\n\n", routeLabel(route))

	fmt.Fprintf(&b, "Evidence items on file: %d\n", len(graph.EvidenceItems))
	fmt.Fprintf(&b, "Outstanding disclosure items: %d\n", len(disclosure.Gaps))
	fmt.Fprintf(&b, "Contradictions found: %d\n", len(graph.Contradictions))
	if graph.Readiness.CanCommitStrategy {
		b.WriteString("Readiness: sufficient material to commit to a route\n")
	} else {
		b.WriteString("Readiness: NOT ready to commit\n")
		for _, reason := range graph.Readiness.Reasons {
			fmt.Fprintf(&b, "  - %s\n", reason)
		}
	}
	return domain.StrategyArtifact{Kind: "position_snapshot", Title: "Position snapshot", Body: b.String()}
}

func disclosureRequestPack(graph *domain.EvidenceGraph, disclosure domain.DisclosureStatus) domain.StrategyArtifact {
	var b strings.Builder
	fmt.Fprintf(&b, "DISCLOSURE REQUEST PACK\n")
	fmt.Fprintf(&b, "Re: %s\n\n", placeholder(graph.CaseMeta.CaseReference, "case reference"))
	if len(disclosure.Gaps) == 0 {
		b.WriteString("No outstanding items. This pack is a nil return.\n")
	} else {
		b.WriteString("The following items remain outstanding and are formally requested:\n")
		for i, gap := range disclosure.Gaps {
			fmt.Fprintf(&b, "%d. %s (category: %s, severity: %s)\n", i+1, gap.Item, gap.Category, gap.Severity)
		}
	}
	return domain.StrategyArtifact{Kind: "disclosure_request_pack", Title: "Disclosure request pack", Body: b.String()}
}

func caseManagementNote(route domain.RouteType, graph *domain.EvidenceGraph, disclosure domain.DisclosureStatus) domain.StrategyArtifact {
	var b strings.Builder
	fmt.Fprintf(&b, "CASE MANAGEMENT NOTE\n")
	fmt.Fprintf(&b, "Case: %s at %s\n", placeholder(graph.CaseMeta.CaseReference, "case reference"), placeholder(graph.CaseMeta.Court, "court"))
	fmt.Fprintf(&b, "Posture for directions: %s\n\n", routeLabel(route))
	if disclosure.IsComplete {
		b.WriteString("Disclosure is complete; the case is ready for trial directions.\n")
	} else {
		fmt.Fprintf(&b, "Disclosure is incomplete (%d items outstanding); directions should be disclosure-first.\n", len(disclosure.Gaps))
	}
	if len(graph.Contradictions) > 0 {
		b.WriteString("Material contradictions between served documents will be raised:\n")
		for _, c := range graph.Contradictions {
			fmt.Fprintf(&b, "  - %s: %q vs %q\n", c.Field, c.ValueA, c.ValueB)
		}
	}
	return domain.StrategyArtifact{Kind: "case_management_note", Title: "Case management note", Body: b.String()}
}

func negotiationBrief(route domain.RouteType, graph *domain.EvidenceGraph, disclosure domain.DisclosureStatus) domain.StrategyArtifact {
	var b strings.Builder
	fmt.Fprintf(&b, "OPPONENT NEGOTIATION BRIEF\n")
	fmt.Fprintf(&b, "Case: %s\n", placeholder(graph.CaseMeta.CaseReference, "case reference"))
	fmt.Fprintf(&b, "Opposing party: %s\n", placeholder(graph.CaseMeta.Prosecution, "opposing party"))
	fmt.Fprintf(&b, "Our posture: %s\n\n", routeLabel(route))
	b.WriteString("Leverage points:\n")
	leverage := 0
	if len(disclosure.Gaps) > 0 {
		fmt.Fprintf(&b, "  - %d disclosure items outstanding on their side\n", len(disclosure.Gaps))
		leverage++
	}
	for _, c := range graph.Contradictions {
		fmt.Fprintf(&b, "  - their documents disagree on %s\n", c.Field)
		leverage++
	}
	if leverage == 0 {
		b.WriteString("  - [no scored leverage on file]\n")
	}
	return domain.StrategyArtifact{Kind: "negotiation_brief", Title: "Opponent negotiation brief", Body: b.String()}
}
