package handlers

import (
	"encoding/json"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// userIDFrom reads the authenticated user id stashed by the auth middleware.
func userIDFrom(r *http.Request) string {
	id, _ := r.Context().Value("user_id").(string)
	return id
}
