package httptransport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"entryledger/internal/domain"
)

// statusForKind centralizes domain error translation to HTTP statuses so
// every handler reports the same way.
func statusForKind(kind domain.Kind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindInvalidTransition:
		return http.StatusConflict
	case domain.KindUnauthorizedRole, domain.KindAccessDenied, domain.KindUnknownRole:
		return http.StatusForbidden
	case domain.KindEventWrite:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeError renders a domain error as a JSON envelope. Unknown errors are
// masked as internal_error so storage details never leak.
func writeError(w http.ResponseWriter, err error) {
	kind := domain.KindOf(err)
	body := errorBody{Error: string(kind), Message: "internal error"}
	var derr *domain.Error
	if errors.As(err, &derr) {
		body.Message = derr.Reason
	}
	writeJSON(w, statusForKind(kind), body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON parses the request body and reports a validation error to the
// client on failure.
func decodeJSON[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger) (T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(r.Context(), "invalid request body",
			"path", r.URL.Path,
			"error", err,
		)
		writeError(w, domain.E(domain.KindValidation, "invalid request body"))
		var zero T
		return zero, false
	}
	return req, true
}
