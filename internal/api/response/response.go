package response

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform response wrapper. Errors carry no data field.
type Envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Write sends a JSON envelope with the given status both as the HTTP status
// code and in the body.
func Write(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Envelope{Status: status, Message: message, Data: data})
}

// WriteError sends an error envelope without a data field.
func WriteError(w http.ResponseWriter, status int, message string) {
	Write(w, status, message, nil)
}
