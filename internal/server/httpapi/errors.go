package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/newsroom/internal/common"
)

type errorBody struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps service errors onto HTTP status codes and client-safe detail
// messages.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrAuthenticationFailed):
		return http.StatusUnauthorized, "Incorrect email or password"
	case errors.Is(err, common.ErrUnauthenticated):
		return http.StatusUnauthorized, "Could not validate credentials"
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden, "Not authorized to perform this operation"
	case errors.Is(err, common.ErrDuplicateIdentifier):
		return http.StatusBadRequest, "Email already registered"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "Article not found"
	case errors.Is(err, common.ErrorValidation):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, common.ErrTooManyRequests):
		return http.StatusTooManyRequests, "Too many requests"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func (s *Server) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	code, detail := statusFor(err)
	if code == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	if code == http.StatusInternalServerError {
		logger(ctx, s.logger).Error(ctx, "request failed", "error", err)
	}
	writeJSON(w, code, errorBody{Detail: detail})
}
