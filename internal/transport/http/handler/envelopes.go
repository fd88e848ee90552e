package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/permahub/api/internal/domain"
)

// SuccessResponse wraps every successful payload.
type SuccessResponse struct {
	Success any `json:"success"`
}

// ErrorResponse wraps every failure.
type ErrorResponse struct {
	Error ErrorData `json:"error"`
}

type ErrorData struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// statusByKind is the total mapping from domain error kind to HTTP status.
// Kinds not present fall through to 500.
var statusByKind = map[domain.Kind]int{
	domain.KindBadInput:             http.StatusBadRequest,
	domain.KindDuplicateAccount:     http.StatusBadRequest,
	domain.KindNotFound:             http.StatusNotFound,
	domain.KindAuthenticationFailed: http.StatusUnauthorized,
	domain.KindUnverified:           http.StatusUnauthorized,
	domain.KindMalformedToken:       http.StatusUnauthorized,
	domain.KindTokenExpired:         http.StatusUnauthorized,
	domain.KindBadSignature:         http.StatusUnauthorized,
	domain.KindIdentityNotFound:     http.StatusUnauthorized,
	domain.KindUnauthenticated:      http.StatusUnauthorized,
	domain.KindForbidden:            http.StatusForbidden,
	domain.KindInternal:             http.StatusInternalServerError,
}

func writeSuccess(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(SuccessResponse{Success: payload})
}

// writeDomainError maps a service error onto the envelope. Token failures
// always read "Invalid token" to the client regardless of the precise reason,
// and a missing identity during refresh reads like bad credentials; the
// detail stays in the log.
func writeDomainError(w http.ResponseWriter, err error) {
	kind := domain.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	message := domain.MessageOf(err)
	switch kind {
	case domain.KindMalformedToken, domain.KindTokenExpired, domain.KindBadSignature:
		message = "Invalid token"
	case domain.KindIdentityNotFound:
		message = "Invalid email or password"
	case domain.KindInternal:
		slog.Error("unexpected error", "err", err)
		message = "internal server error"
	}
	writeError(w, status, string(kind), message)
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: ErrorData{Type: kind, Message: message}})
}
