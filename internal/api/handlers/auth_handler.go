package handlers

import (
	"net/http"

	"github.com/portfolio-cms/backend/internal/api/middleware"
	"github.com/portfolio-cms/backend/internal/api/types"
	"github.com/portfolio-cms/backend/internal/services"
)

type AuthHandler struct {
	auth services.AuthService
	// secureCookies turns on the Secure flag; set in production only.
	secureCookies bool
}

func NewAuthHandler(auth services.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{auth: auth, secureCookies: secureCookies}
}

// Login issues the credential cookie. All authentication failures share one
// response so a caller cannot tell a bad username from a bad password.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}

	token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(services.TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, types.MessageResponse{Message: "Login successful"})
}

// Logout clears the credential cookie. Always succeeds.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, types.MessageResponse{Message: "Logged out"})
}
