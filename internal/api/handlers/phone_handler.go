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

type PhoneHandler struct {
	phones repository.PhoneNumberRepository
}

func NewPhoneHandler(phones repository.PhoneNumberRepository) *PhoneHandler {
	return &PhoneHandler{phones: phones}
}

func (h *PhoneHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req types.PhoneNumberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if msgs := validators.Check(req); msgs != nil {
		writeError(w, appErr.Validation(msgs))
		return
	}

	p := models.PhoneNumber{Number: req.Number, Type: req.Type, UserID: userID}
	if err := h.phones.Create(r.Context(), &p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *PhoneHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	id, err := urlID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req types.PhoneNumberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if msgs := validators.Check(req); msgs != nil {
		writeError(w, appErr.Validation(msgs))
		return
	}

	p, err := h.ownedPhone(r, id, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	p.Number = req.Number
	p.Type = req.Type
	if err := h.phones.Update(r.Context(), p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PhoneHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	id, err := urlID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if _, err := h.ownedPhone(r, id, userID); err != nil {
		writeError(w, err)
		return
	}
	if err := h.phones.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.MessageResponse{Message: "Phone number deleted successfully"})
}

// ownedPhone loads the row and enforces ownership: absence is not-found,
// another owner is forbidden. The two are distinct failure kinds.
func (h *PhoneHandler) ownedPhone(r *http.Request, id, userID uint) (*models.PhoneNumber, error) {
	var p models.PhoneNumber
	if err := h.phones.GetByID(r.Context(), id, &p); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return nil, appErr.New(appErr.CodeNotFound, "Phone number not found")
		}
		return nil, err
	}
	if p.UserID != userID {
		return nil, appErr.New(appErr.CodeForbidden, "You are not authorized to modify this phone number")
	}
	return &p, nil
}
