package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gduffy1993-png/casebrain-hub-sub007/internal/api/middleware"
	"github.com/gduffy1993-png/casebrain-hub-sub007/internal/domain"
	"github.com/gduffy1993-png/casebrain-hub-sub007/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ReasoningHandler exposes the pipeline stages: graph, disclosure, pillar
// lens, strategies and fight routes. Every call rebuilds from the current
// document set; nothing is served from a cached evaluation.
type ReasoningHandler struct {
	svc *service.CaseService
}

func NewReasoningHandler(svc *service.CaseService) *ReasoningHandler {
	return &ReasoningHandler{svc: svc}
}

func (h *ReasoningHandler) GetGraph(w http.ResponseWriter, r *http.Request) {
	tenant, caseID, ok := h.caseRequest(w, r)
	if !ok {
		return
	}

	graph, diag, err := h.svc.BuildGraph(r.Context(), tenant.ID, caseID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSONWith(w, http.StatusOK, graph, "", diag)
}

func (h *ReasoningHandler) GetDisclosure(w http.ResponseWriter, r *http.Request) {
	tenant, caseID, ok := h.caseRequest(w, r)
	if !ok {
		return
	}

	status, err := h.svc.Disclosure(r.Context(), tenant.ID, caseID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *ReasoningHandler) GetPillars(w http.ResponseWriter, r *http.Request) {
	tenant, caseID, ok := h.caseRequest(w, r)
	if !ok {
		return
	}

	var area domain.PracticeArea
	if raw := r.URL.Query().Get("area"); raw != "" {
		if !domain.ValidPracticeArea(raw) {
			writeError(w, http.StatusBadRequest, "invalid area")
			return
		}
		area = domain.PracticeArea(raw)
	}
	var phase domain.CasePhase
	if raw := r.URL.Query().Get("phase"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || !domain.ValidCasePhase(p) {
			writeError(w, http.StatusBadRequest, "phase must be 1, 2 or 3")
			return
		}
		phase = domain.CasePhase(p)
	}

	report, err := h.svc.EvaluateLens(r.Context(), tenant.ID, caseID, area, phase)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *ReasoningHandler) GetStrategies(w http.ResponseWriter, r *http.Request) {
	tenant, caseID, ok := h.caseRequest(w, r)
	if !ok {
		return
	}

	strategies, leakage, err := h.svc.Strategies(r.Context(), tenant.ID, caseID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSONWith(w, http.StatusOK, strategies, leakageBanner(leakage), nil)
}

// GetGraphSnapshot serves the last persisted graph without rebuilding, for
// comparing what a previous evaluation saw against the current documents.
func (h *ReasoningHandler) GetGraphSnapshot(w http.ResponseWriter, r *http.Request) {
	tenant, caseID, ok := h.caseRequest(w, r)
	if !ok {
		return
	}

	graph, err := h.svc.LatestGraphSnapshot(r.Context(), tenant.ID, caseID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, graph)
}

// GetStrategySnapshot serves the raw strategy set from the last persisted
// run, before normalization.
func (h *ReasoningHandler) GetStrategySnapshot(w http.ResponseWriter, r *http.Request) {
	tenant, caseID, ok := h.caseRequest(w, r)
	if !ok {
		return
	}

	strategies, err := h.svc.LatestStrategySnapshot(r.Context(), tenant.ID, caseID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, strategies)
}

func (h *ReasoningHandler) GetRoutes(w http.ResponseWriter, r *http.Request) {
	tenant, caseID, ok := h.caseRequest(w, r)
	if !ok {
		return
	}

	plans, err := h.svc.RoutePlans(r.Context(), tenant.ID, caseID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plans)
}

func (h *ReasoningHandler) caseRequest(w http.ResponseWriter, r *http.Request) (*domain.Tenant, uuid.UUID, bool) {
	tenant := middleware.TenantFromContext(r.Context())
	if tenant == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return nil, uuid.Nil, false
	}
	caseID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid case id")
		return nil, uuid.Nil, false
	}
	return tenant, caseID, true
}

func (h *ReasoningHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrCaseNotFound):
		writeError(w, http.StatusNotFound, "case not found")
	case errors.Is(err, service.ErrNoSnapshot):
		writeError(w, http.StatusNotFound, "no snapshot recorded for case")
	case errors.Is(err, service.ErrLensNotRegistered):
		writeError(w, http.StatusInternalServerError, "practice area has no lens")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
