package types

import (
	"errors"
	"net/http"

	appErr "github.com/portfolio-cms/backend/pkg/errors"
)

// StatusFor maps the internal error taxonomy to HTTP status codes.
// Anything outside the taxonomy is masked as a 500.
func StatusFor(err error) int {
	var ae *appErr.AppError
	if !errors.As(err, &ae) {
		return http.StatusInternalServerError
	}
	switch ae.Code {
	case appErr.CodeInvalid:
		return http.StatusBadRequest
	case appErr.CodeUnauthorized:
		return http.StatusUnauthorized
	case appErr.CodeForbidden:
		return http.StatusForbidden
	case appErr.CodeNotFound:
		return http.StatusNotFound
	case appErr.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ClientMessage returns the message safe to surface to the client. Internal
// and unknown failures collapse to a generic message so no store details
// leak into the response body.
func ClientMessage(err error) string {
	var ae *appErr.AppError
	if errors.As(err, &ae) {
		switch ae.Code {
		case appErr.CodeInternal, appErr.CodeUnknown:
			return "Something went wrong. Server Error"
		default:
			return ae.Message
		}
	}
	return "Something went wrong. Server Error"
}
