package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gduffy1993-png/casebrain-hub-sub007/internal/api/middleware"
	"github.com/gduffy1993-png/casebrain-hub-sub007/internal/domain"
	"github.com/gduffy1993-png/casebrain-hub-sub007/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type CaseHandler struct {
	svc *service.CaseService
}

func NewCaseHandler(svc *service.CaseService) *CaseHandler {
	return &CaseHandler{svc: svc}
}

type createCaseRequest struct {
	Title        string `json:"title"`
	PracticeArea string `json:"practice_area"`
	Charge       string `json:"charge,omitempty"`
	Stance       string `json:"stance,omitempty"`
}

func (h *CaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())
	if tenant == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req createCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if !domain.ValidPracticeArea(req.PracticeArea) {
		writeError(w, http.StatusBadRequest, "invalid practice_area")
		return
	}
	if req.Stance != "" && !domain.ValidStance(req.Stance) {
		writeError(w, http.StatusBadRequest, "invalid stance")
		return
	}

	c, err := h.svc.CreateCase(r.Context(), tenant.ID, req.Title, domain.PracticeArea(req.PracticeArea), req.Charge, domain.Stance(req.Stance))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create case")
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *CaseHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	tenant, caseID, ok := h.caseRequest(w, r)
	if !ok {
		return
	}
	c, err := h.svc.GetCase(r.Context(), caseID, tenant.ID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type advancePhaseRequest struct {
	Phase int `json:"phase"`
}

func (h *CaseHandler) AdvancePhase(w http.ResponseWriter, r *http.Request) {
	tenant, caseID, ok := h.caseRequest(w, r)
	if !ok {
		return
	}

	var req advancePhaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !domain.ValidCasePhase(req.Phase) {
		writeError(w, http.StatusBadRequest, "phase must be 1, 2 or 3")
		return
	}

	c, err := h.svc.AdvancePhase(r.Context(), caseID, tenant.ID, domain.CasePhase(req.Phase))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type addDocumentRequest struct {
	Name          string `json:"name"`
	RawText       string `json:"raw_text,omitempty"`
	ExtractedJSON string `json:"extracted_json,omitempty"`
}

func (h *CaseHandler) AddDocument(w http.ResponseWriter, r *http.Request) {
	tenant, caseID, ok := h.caseRequest(w, r)
	if !ok {
		return
	}

	var req addDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	doc, err := h.svc.AddDocument(r.Context(), tenant.ID, caseID, req.Name, req.RawText, req.ExtractedJSON)
	if err != nil {
		if errors.Is(err, service.ErrDocumentEmpty) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (h *CaseHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	tenant, caseID, ok := h.caseRequest(w, r)
	if !ok {
		return
	}
	docs, err := h.svc.ListDocuments(r.Context(), tenant.ID, caseID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

// caseRequest pulls the tenant and case id out of the request, writing the
// error response itself on failure.
func (h *CaseHandler) caseRequest(w http.ResponseWriter, r *http.Request) (*domain.Tenant, uuid.UUID, bool) {
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

func (h *CaseHandler) writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrCaseNotFound) {
		writeError(w, http.StatusNotFound, "case not found")
		return
	}
	writeError(w, http.StatusInternalServerError, "internal error")
}
