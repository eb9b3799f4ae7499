package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/portfolio-cms/backend/internal/api/types"
	appErr "github.com/portfolio-cms/backend/pkg/errors"
	"github.com/portfolio-cms/backend/pkg/logger"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError translates the error taxonomy to the wire contract:
// validation failures become {"errors": [...]}, everything else
// {"error": "..."}. Unexpected failures are logged and masked.
func writeError(w http.ResponseWriter, err error) {
	status := types.StatusFor(err)
	if status == http.StatusInternalServerError {
		logger.L().Error("request failed", zap.Error(err))
	}
	if fields := appErr.FieldMessages(err); len(fields) > 0 {
		writeJSON(w, status, types.ErrorsResponse{Errors: fields})
		return
	}
	writeJSON(w, status, types.ErrorResponse{Error: types.ClientMessage(err)})
}

func writeErrorStr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.ErrorResponse{Error: msg})
}

func decodeJSON(r *http.Request, dest any) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return appErr.Wrap(err, appErr.CodeInvalid, "invalid json body")
	}
	return nil
}

// urlID parses the {id} route parameter.
func urlID(r *http.Request) (uint, error) {
	return parseUint(chi.URLParam(r, "id"))
}

func parseUint(s string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n == 0 {
		return 0, appErr.New(appErr.CodeInvalid, "invalid id")
	}
	return uint(n), nil
}
