package utilities

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ErrInvalidJSON is returned by DecodeJSON for unreadable or malformed bodies.
var ErrInvalidJSON = errors.New("invalid json body")

// Envelope is the response shape shared by every endpoint.
type Envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Fail writes {"success":false,"message":msg}.
func Fail(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, Envelope{Success: false, Message: msg})
}

// FailFields writes a 400 with a field -> message map.
func FailFields(w http.ResponseWriter, msg string, fields map[string]string) {
	WriteJSON(w, http.StatusBadRequest, Envelope{Success: false, Message: msg, Errors: fields})
}

// DecodeJSON decodes a request body into a generic value, keeping numbers as
// json.Number so prices and quantities are not rounded through float64.
func DecodeJSON(r *http.Request) (any, error) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, errors.Join(ErrInvalidJSON, err)
	}
	if dec.More() {
		return nil, ErrInvalidJSON
	}
	return v, nil
}
