package handlers

import (
	"encoding/json"
	"net/http"
)

// DevMode widens error responses with the underlying error detail and
// relaxes cookie security. Set once at startup from the application
// environment, before the server accepts traffic.
var DevMode bool

// respondJSON writes v as the JSON response body.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError writes the {message} error shape the dashboard consumes. The
// underlying error detail is only included in development mode.
func respondError(w http.ResponseWriter, status int, message string, err error) {
	body := map[string]string{"message": message}
	if err != nil && DevMode {
		body["error"] = err.Error()
	}
	respondJSON(w, status, body)
}
