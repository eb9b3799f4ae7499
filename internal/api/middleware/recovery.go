package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/portfolio-cms/backend/internal/api/types"
	"github.com/portfolio-cms/backend/pkg/logger"
)

// Recovery logs panics with their stack and returns a generic 500 body; no
// internal detail reaches the client.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.L().Error("panic recovered", zap.Any("panic", rec), zap.ByteString("stack", debug.Stack()))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: "Something went wrong. Server Error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
