package handlers

import (
	"net/http"

	"github.com/portfolio-cms/backend/internal/api/middleware"
	"github.com/portfolio-cms/backend/internal/api/types"
	"github.com/portfolio-cms/backend/internal/api/validators"
	"github.com/portfolio-cms/backend/internal/models"
	"github.com/portfolio-cms/backend/internal/repository"
	appErr "github.com/portfolio-cms/backend/pkg/errors"
)

type SkillHandler struct {
	skills repository.SkillRepository
}

func NewSkillHandler(skills repository.SkillRepository) *SkillHandler {
	return &SkillHandler{skills: skills}
}

func (h *SkillHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req types.SkillRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if msgs := validators.Check(req); msgs != nil {
		writeError(w, appErr.Validation(msgs))
		return
	}

	s := models.Skill{Name: req.Skill, UserID: userID}
	if err := h.skills.Create(r.Context(), &s); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

func (h *SkillHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	id, err := urlID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req types.SkillRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if msgs := validators.Check(req); msgs != nil {
		writeError(w, appErr.Validation(msgs))
		return
	}

	s, err := h.ownedSkill(r, id, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	s.Name = req.Skill
	if err := h.skills.Update(r.Context(), s); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *SkillHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	id, err := urlID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if _, err := h.ownedSkill(r, id, userID); err != nil {
		writeError(w, err)
		return
	}
	if err := h.skills.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.MessageResponse{Message: "Skill deleted successfully"})
}

func (h *SkillHandler) ownedSkill(r *http.Request, id, userID uint) (*models.Skill, error) {
	var s models.Skill
	if err := h.skills.GetByID(r.Context(), id, &s); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return nil, appErr.New(appErr.CodeNotFound, "Skill not found")
		}
		return nil, err
	}
	if s.UserID != userID {
		return nil, appErr.New(appErr.CodeForbidden, "You are not authorized to modify this skill")
	}
	return &s, nil
}
