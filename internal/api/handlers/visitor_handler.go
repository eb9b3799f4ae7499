package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/portfolio-cms/backend/internal/api/types"
	"github.com/portfolio-cms/backend/internal/api/validators"
	"github.com/portfolio-cms/backend/internal/models"
	"github.com/portfolio-cms/backend/internal/repository"
	"github.com/portfolio-cms/backend/internal/services"
	appErr "github.com/portfolio-cms/backend/pkg/errors"
)

// VisitorHandler serves the unauthenticated public surface: download audit
// records and project comments.
type VisitorHandler struct {
	downloads repository.DownloadLogRepository
	projects  services.ProjectService
}

func NewVisitorHandler(downloads repository.DownloadLogRepository, projects services.ProjectService) *VisitorHandler {
	return &VisitorHandler{downloads: downloads, projects: projects}
}

// LogDownload writes the audit record and returns a bare 201.
func (h *VisitorHandler) LogDownload(w http.ResponseWriter, r *http.Request) {
	var req types.DownloadLogRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if msgs := validators.Check(req); msgs != nil {
		writeError(w, appErr.Validation(msgs))
		return
	}

	log := models.DownloadLog{
		FileURL:   req.FileURL,
		IPAddress: req.IPAddress,
		UserAgent: req.UserAgent,
	}
	if err := h.downloads.Create(r.Context(), &log); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *VisitorHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	projectID, err := parseUint(chi.URLParam(r, "projectId"))
	if err != nil {
		writeError(w, err)
		return
	}

	var req types.CommentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if msgs := validators.Check(req); msgs != nil {
		writeError(w, appErr.Validation(msgs))
		return
	}

	c, err := h.projects.AddComment(r.Context(), projectID, req.Content)
	if err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			writeError(w, appErr.New(appErr.CodeNotFound, "Project not found"))
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}
