package middleware

import (
	"encoding/json"
	"net/http"
)

// writeError emits the standard error envelope with the correct Content-Type.
func writeError(w http.ResponseWriter, status int, kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"type": kind, "message": message},
	})
}
