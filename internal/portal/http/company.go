package http

import (
	"net/http"

	"github.com/placementpro/placementd/internal/portal/service"
	"github.com/placementpro/placementd/pkg/httpx"
)

// CompanyHandler serves company profiles and the Admin moderation switch.
type CompanyHandler struct {
	Companies *service.CompanyService
}

type companyRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Website     string `json:"website"`
	Location    string `json:"location"`
	Industry    string `json:"industry"`
	FoundedYear int    `json:"foundedYear"`
}

func (req companyRequest) params() service.CompanyParams {
	return service.CompanyParams{
		Name:        req.Name,
		Description: req.Description,
		Website:     req.Website,
		Location:    req.Location,
		Industry:    req.Industry,
		FoundedYear: req.FoundedYear,
	}
}

func (h *CompanyHandler) HandleCreateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}

	var req companyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	company, err := h.Companies.CreateProfile(r.Context(), id.UserID, req.params())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]any{"company": company})
}

func (h *CompanyHandler) HandleOwnProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}

	company, err := h.Companies.GetByOwner(r.Context(), id.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{"company": company})
}

func (h *CompanyHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}

	var req companyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	company, err := h.Companies.UpdateProfile(r.Context(), id.UserID, req.params())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{"company": company})
}

func (h *CompanyHandler) HandleUploadLogo(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}

	file, header, err := openImageUpload(w, r)
	if err != nil {
		return
	}
	defer file.Close()

	url, err := h.Companies.UploadLogo(r.Context(), id.UserID, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{"logo": url})
}

// HandleGet serves any authenticated user: students browse companies too.
func (h *CompanyHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	company, err := h.Companies.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{"company": company})
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *CompanyHandler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	company, err := h.Companies.SetStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{"company": company})
}
