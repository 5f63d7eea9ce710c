package http

import (
	"mime/multipart"
	"net/http"

	"github.com/placementpro/placementd/pkg/httpx"
)

// openImageUpload parses a multipart body and returns its "image" part.
// It writes the 400 response itself on failure; callers just return.
func openImageUpload(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_body", "multipart form with an image file is required")
		return nil, nil, err
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_body", "image file is required")
		return nil, nil, err
	}
	return file, header, nil
}
