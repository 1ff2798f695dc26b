// Package handlers implements the JSON API that fronts the spreadsheet-
// backed stores. Handlers map domain results onto HTTP status codes:
// missing records become 404, invalid payloads 400, failed auth 401, and
// backing-store failures a generic 500 with the cause logged server-side.
package handlers

import (
	"encoding/json"
	"net/http"
)

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondData wraps a payload in the {"data": ...} envelope.
func respondData(w http.ResponseWriter, status int, v any) {
	respondJSON(w, status, map[string]any{"data": v})
}

// respondError writes an {"error": ...} envelope. The message is caller-
// visible; never put internal detail in it.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]any{"error": message})
}
