package handlers

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/portfolio-cms/backend/internal/api/middleware"
	"github.com/portfolio-cms/backend/internal/api/types"
	"github.com/portfolio-cms/backend/internal/api/validators"
	"github.com/portfolio-cms/backend/internal/models"
	"github.com/portfolio-cms/backend/internal/repository"
	appErr "github.com/portfolio-cms/backend/pkg/errors"
)

type UserHandler struct {
	users repository.UserRepository
}

func NewUserHandler(users repository.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

// Create provisions a user row. Login is fixed to the configured admin id,
// so this is a bootstrap endpoint, not part of the authenticated flow.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if msgs := validators.Check(req); msgs != nil {
		writeError(w, appErr.Validation(msgs))
		return
	}

	var existing models.User
	switch err := h.users.GetByUsername(r.Context(), req.Username, &existing); {
	case err == nil:
		writeError(w, appErr.New(appErr.CodeConflict, "Username already taken"))
		return
	case !appErr.IsCode(err, appErr.CodeNotFound):
		writeError(w, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, appErr.Wrap(err, appErr.CodeInternal, "hash password failed"))
		return
	}

	u := models.User{
		Username: req.Username,
		Password: string(hash),
		Name:     req.Name,
		Email:    req.Email,
		Bio:      req.Bio,
		Resume:   req.Resume,
	}
	if err := h.users.Create(r.Context(), &u); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, types.UserResponse{
		Username: u.Username, Name: u.Name, Email: u.Email, Resume: u.Resume, Bio: u.Bio,
	})
}

// Me returns the caller's profile with phone numbers, social links and
// skills attached.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var u models.User
	if err := h.users.GetProfile(r.Context(), userID, &u); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// Update patches the caller's profile fields; username and password are not
// updatable through this endpoint.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req types.UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if msgs := validators.Check(req); msgs != nil {
		writeError(w, appErr.Validation(msgs))
		return
	}

	fields := map[string]any{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Email != "" {
		fields["email"] = req.Email
	}
	if req.Bio != "" {
		fields["bio"] = req.Bio
	}
	if req.Resume != "" {
		fields["resume"] = req.Resume
	}
	if len(fields) > 0 {
		if err := h.users.UpdateFields(r.Context(), userID, fields); err != nil {
			writeError(w, err)
			return
		}
	}

	var u models.User
	if err := h.users.GetByID(r.Context(), userID, &u); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.UserResponse{
		Username: u.Username, Name: u.Name, Email: u.Email, Resume: u.Resume, Bio: u.Bio,
	})
}
