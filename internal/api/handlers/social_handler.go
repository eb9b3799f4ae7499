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

type SocialHandler struct {
	socials repository.SocialLinkRepository
}

func NewSocialHandler(socials repository.SocialLinkRepository) *SocialHandler {
	return &SocialHandler{socials: socials}
}

func (h *SocialHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req types.SocialLinkRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if msgs := validators.Check(req); msgs != nil {
		writeError(w, appErr.Validation(msgs))
		return
	}

	s := models.SocialLink{Platform: req.Platform, URL: req.URL, UserID: userID}
	if err := h.socials.Create(r.Context(), &s); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

func (h *SocialHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	links, err := h.socials.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, links)
}

func (h *SocialHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	id, err := urlID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req types.SocialLinkRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if msgs := validators.Check(req); msgs != nil {
		writeError(w, appErr.Validation(msgs))
		return
	}

	s, err := h.ownedSocial(r, id, userID, "update")
	if err != nil {
		writeError(w, err)
		return
	}

	s.Platform = req.Platform
	s.URL = req.URL
	if err := h.socials.Update(r.Context(), s); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *SocialHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	id, err := urlID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if _, err := h.ownedSocial(r, id, userID, "delete"); err != nil {
		writeError(w, err)
		return
	}
	if err := h.socials.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.MessageResponse{Message: "Social link deleted successfully"})
}

func (h *SocialHandler) ownedSocial(r *http.Request, id, userID uint, verb string) (*models.SocialLink, error) {
	var s models.SocialLink
	if err := h.socials.GetByID(r.Context(), id, &s); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return nil, appErr.New(appErr.CodeNotFound, "Social link not found")
		}
		return nil, err
	}
	if s.UserID != userID {
		return nil, appErr.New(appErr.CodeForbidden, "You are not authorized to "+verb+" this social link")
	}
	return &s, nil
}
