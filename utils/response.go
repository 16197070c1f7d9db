package utils

import (
	"encoding/json"
	"net/http"
)

// M is shorthand for an ad-hoc JSON object.
type M map[string]interface{}

// RespondWithJSON writes data as the JSON response body with the given
// status.
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// RespondWithError writes an {"error": msg} body with the given status.
func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, M{"error": msg})
}
