package rest

import (
	"chat-mirror/errors"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Default().Warn("Failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondFailure maps a service error to its status. A delete refused to a non-sender
// answers 404 like an unknown message, so ids of others are not disclosed.
func (h *Handler) respondFailure(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Error("Request failed", "path", r.URL.Path, "error", err)
		respondError(w, status, "internal error")
		return
	}
	respondError(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case stderrors.Is(err, errors.ErrInvalidStatus),
		stderrors.Is(err, errors.ErrInvalidPagination),
		stderrors.Is(err, errors.ErrInvalidMessage),
		stderrors.Is(err, errors.ErrSelfChat):
		return http.StatusBadRequest
	case stderrors.Is(err, errors.ErrInvalidToken):
		return http.StatusUnauthorized
	case stderrors.Is(err, errors.ErrNotFound),
		stderrors.Is(err, errors.ErrForbidden),
		stderrors.Is(err, errors.ErrReferenceMissing):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
