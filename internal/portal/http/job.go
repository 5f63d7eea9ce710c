package http

import (
	"net/http"
	"time"

	"github.com/placementpro/placementd/internal/portal/domain"
	"github.com/placementpro/placementd/internal/portal/service"
	"github.com/placementpro/placementd/pkg/httpx"
)

// JobHandler serves postings. Creation is gated to Company accounts by the
// router; ownership checks live in the service.
type JobHandler struct {
	Jobs *service.JobService
}

type jobRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	SalaryMin   int       `json:"salaryMin"`
	SalaryMax   int       `json:"salaryMax"`
	Deadline    time.Time `json:"deadline"`
}

func (req jobRequest) params() service.JobParams {
	return service.JobParams{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		SalaryMin:   req.SalaryMin,
		SalaryMax:   req.SalaryMax,
		Deadline:    req.Deadline,
	}
}

func (h *JobHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Jobs.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{"jobs": jobs})
}

func (h *JobHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}

	var req jobRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	job, err := h.Jobs.Create(r.Context(), id.UserID, req.params())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]any{"job": job})
}

func (h *JobHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	job, err := h.Jobs.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{"job": job})
}

func (h *JobHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}

	var req jobRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	job, err := h.Jobs.Update(r.Context(), id.UserID, domain.Role(id.Role), r.PathValue("id"), req.params())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{"job": job})
}

func (h *JobHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}

	if err := h.Jobs.Delete(r.Context(), id.UserID, domain.Role(id.Role), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
