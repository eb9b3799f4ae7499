package handlers

import (
	"net/http"

	"github.com/portfolio-cms/backend/internal/api/types"
	"github.com/portfolio-cms/backend/internal/api/validators"
	"github.com/portfolio-cms/backend/internal/services"
	appErr "github.com/portfolio-cms/backend/pkg/errors"
)

// ProjectHandler serves project CRUD. Mutations sit behind the auth gate
// but carry no per-row ownership check: projects have no owner column in
// this single-admin system.
type ProjectHandler struct {
	projects services.ProjectService
}

func NewProjectHandler(projects services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.ProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if msgs := validators.Check(req); msgs != nil {
		writeError(w, appErr.Validation(msgs))
		return
	}

	p, err := h.projects.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	p, err := h.projects.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Update performs the destructive replace of both child collections: the
// entire incoming child set is authoritative and old child ids do not
// survive.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req types.ProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if msgs := validators.Check(req); msgs != nil {
		writeError(w, appErr.Validation(msgs))
		return
	}

	p, err := h.projects.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.projects.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.MessageResponse{Message: "Project deleted successfully"})
}

func (h *ProjectHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.projects.DeleteComment(r.Context(), id); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			writeError(w, appErr.New(appErr.CodeNotFound, "Comment not found"))
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.MessageResponse{Message: "Comment deleted successfully"})
}
