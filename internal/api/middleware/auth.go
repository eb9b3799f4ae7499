package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/portfolio-cms/backend/internal/api/types"
)

// CookieName is the credential cookie set on login and cleared on logout.
const CookieName = "token"

type userKeyType string

const userIDKey userKeyType = "user_id"

// ValidateToken is the hard auth gate. A missing cookie is unauthorized
// (401); a present but invalid or expired token is forbidden (403); a valid
// token puts the caller id into the request context.
func ValidateToken(hmacSecret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(CookieName)
			if err != nil || c.Value == "" {
				writeAuthError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			token, err := jwt.Parse(c.Value, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return hmacSecret, nil
			})
			if err != nil || !token.Valid {
				writeAuthError(w, http.StatusForbidden, "Invalid token")
				return
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				writeAuthError(w, http.StatusForbidden, "Invalid token")
				return
			}
			id, ok := claims["id"].(float64)
			if !ok || id < 1 {
				writeAuthError(w, http.StatusForbidden, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, uint(id))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID returns the authenticated caller id, or 0 when the request did
// not pass the auth gate.
func GetUserID(ctx context.Context) uint {
	if v := ctx.Value(userIDKey); v != nil {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg})
}
