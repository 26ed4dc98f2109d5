package service

import (
	"strings"

	"github.com/gduffy1993-png/casebrain-hub-sub007/internal/domain"
)

// keyDisclosureItem names one item a practice area treats as load-bearing
// for disclosure completeness. The flag is true only when a matching
// evidence item is fully disclosed.
type keyDisclosureItem struct {
	flag    string
	keyword string
}

// keyItemsByArea is static per practice area. Criminal cases hinge on the
// MG6C/MG6D unused-material schedules; the civil areas hinge on their own
// foundational documents.
var keyItemsByArea = map[domain.PracticeArea][]keyDisclosureItem{
	domain.AreaCriminal: {
		{"mg6cDisclosed", "mg6c"},
		{"mg6dDisclosed", "mg6d"},
		{"unusedMaterialReviewed", "unused material"},
	},
	domain.AreaHousingDisrepair: {
		{"noticeEvidenced", "notice"},
		{"repairLogDisclosed", "repair log"},
	},
	domain.AreaPersonalInjury: {
		{"medicalReportDisclosed", "medical report"},
	},
	domain.AreaClinicalNegligence: {
		{"breachExpertDisclosed", "breach expert"},
		{"causationExpertDisclosed", "causation expert"},
	},
	domain.AreaFamily: {
		{"safeguardingDisclosed", "safeguarding"},
	},
	domain.AreaGeneralLitigation: {
		{"standardDisclosureServed", "disclosure list"},
	},
}

// EvaluateDisclosure derives the compact disclosure status from a graph.
// Pure derivation: no logic of its own beyond the completeness rule, so the
// lens and strategy stages never reach into graph internals.
func EvaluateDisclosure(graph *domain.EvidenceGraph, area domain.PracticeArea) domain.DisclosureStatus {
	status := domain.DisclosureStatus{
		Gaps:         graph.DisclosureGaps,
		KeyItemFlags: map[string]bool{},
	}
	if status.Gaps == nil {
		status.Gaps = []domain.DisclosureGap{}
	}

	keys := keyItemsByArea[area]
	for _, key := range keys {
		status.KeyItemFlags[key.flag] = false
	}

	// Each disclosed item anchors at most one key item, first matching key
	// wins. An "MG6C schedule of unused material" satisfies the MG6C flag
	// without also counting as the unused-material review.
	for _, item := range graph.EvidenceItems {
		if item.Disclosure != domain.Disclosed {
			continue
		}
		desc := strings.ToLower(item.Description)
		for _, key := range keys {
			if strings.Contains(desc, key.keyword) {
				status.KeyItemFlags[key.flag] = true
				break
			}
		}
	}

	status.IsComplete = len(status.Gaps) == 0
	for _, ok := range status.KeyItemFlags {
		if !ok {
			status.IsComplete = false
		}
	}
	return status
}
