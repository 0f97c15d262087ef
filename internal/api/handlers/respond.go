package handlers

import (
	"encoding/json"
	"net/http"
)

// errorItem mirrors one express-validator style error entry.
type errorItem struct {
	Msg      string `json:"msg"`
	Param    string `json:"param,omitempty"`
	Location string `json:"location,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondMsg writes the API's single-message error/confirmation body.
func respondMsg(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"msg": msg})
}

// respondErrors writes a 400 with the field-error list body.
func respondErrors(w http.ResponseWriter, items []errorItem) {
	respondJSON(w, http.StatusBadRequest, map[string][]errorItem{"errors": items})
}

// respondServerError hides store detail behind the generic 500 body.
func respondServerError(w http.ResponseWriter) {
	respondMsg(w, http.StatusInternalServerError, "Server error")
}
