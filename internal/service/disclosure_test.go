package service

import (
	"testing"

	"github.com/gduffy1993-png/casebrain-hub-sub007/internal/domain"
)

func TestEvaluateDisclosure_CriminalKeyItems(t *testing.T) {
	graph := &domain.EvidenceGraph{
		EvidenceItems: []domain.EvidenceItem{
			{Type: domain.EvidenceOther, Description: "MG6C schedule of unused material", Disclosure: domain.Disclosed},
			{Type: domain.EvidenceOther, Description: "MG6D sensitive schedule", Disclosure: domain.NotDisclosed},
		},
	}

	status := EvaluateDisclosure(graph, domain.AreaCriminal)

	if !status.KeyItemFlags["mg6cDisclosed"] {
		t.Error("mg6cDisclosed should be true for a disclosed MG6C item")
	}
	if status.KeyItemFlags["mg6dDisclosed"] {
		t.Error("mg6dDisclosed should be false for a not-disclosed MG6D item")
	}
	if status.KeyItemFlags["unusedMaterialReviewed"] {
		t.Error("unusedMaterialReviewed should be false with no unused material item")
	}
	if status.IsComplete {
		t.Error("disclosure cannot be complete while a key schedule is outstanding")
	}
}

func TestEvaluateDisclosure_EachItemAnchorsOneKeyItem(t *testing.T) {
	graph := &domain.EvidenceGraph{
		EvidenceItems: []domain.EvidenceItem{
			{Type: domain.EvidenceOther, Description: "MG6C schedule of unused material", Disclosure: domain.Disclosed},
			{Type: domain.EvidenceOther, Description: "unused material review note", Disclosure: domain.Disclosed},
		},
	}

	status := EvaluateDisclosure(graph, domain.AreaCriminal)

	if !status.KeyItemFlags["mg6cDisclosed"] {
		t.Error("mg6cDisclosed should be true for the MG6C schedule")
	}
	if !status.KeyItemFlags["unusedMaterialReviewed"] {
		t.Error("unusedMaterialReviewed should be true for a dedicated review note")
	}
	if status.KeyItemFlags["mg6dDisclosed"] {
		t.Error("mg6dDisclosed should stay false, nothing mentions MG6D")
	}
}

func TestEvaluateDisclosure_PartialIsNotDisclosed(t *testing.T) {
	graph := &domain.EvidenceGraph{
		EvidenceItems: []domain.EvidenceItem{
			{Description: "medical report", Disclosure: domain.PartiallyDisclosed},
		},
	}

	status := EvaluateDisclosure(graph, domain.AreaPersonalInjury)

	if status.KeyItemFlags["medicalReportDisclosed"] {
		t.Error("a partially disclosed key item must not count as disclosed")
	}
}

func TestEvaluateDisclosure_GapsBlockCompleteness(t *testing.T) {
	graph := &domain.EvidenceGraph{
		EvidenceItems: []domain.EvidenceItem{
			{Description: "disclosure list served", Disclosure: domain.Disclosed},
		},
		DisclosureGaps: []domain.DisclosureGap{
			{Category: "general", Item: "hearing bundle", Severity: domain.SeverityLow},
		},
	}

	status := EvaluateDisclosure(graph, domain.AreaGeneralLitigation)

	if !status.KeyItemFlags["standardDisclosureServed"] {
		t.Error("standardDisclosureServed should be true")
	}
	if status.IsComplete {
		t.Error("any open gap blocks completeness, whatever its severity")
	}
}

func TestEvaluateDisclosure_CompleteWhenClean(t *testing.T) {
	graph := &domain.EvidenceGraph{
		EvidenceItems: []domain.EvidenceItem{
			{Description: "notice letter to landlord", Disclosure: domain.Disclosed},
			{Description: "repair log 2023-2025", Disclosure: domain.Disclosed},
		},
	}

	status := EvaluateDisclosure(graph, domain.AreaHousingDisrepair)

	if !status.IsComplete {
		t.Errorf("expected complete disclosure, got flags %v gaps %v", status.KeyItemFlags, status.Gaps)
	}
	if status.Gaps == nil {
		t.Error("Gaps must be an empty slice, not nil")
	}
}
