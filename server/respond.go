package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
)

const maxJSONBody = 1 << 20

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := sonic.ConfigDefault.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"success": false, "error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes the failure envelope.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, errorResponse{Success: false, Error: message})
}

// decodeJSON reads a JSON body into v. An empty body leaves v untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)
		}
		return fmt.Errorf("failed to read request body: %w", err)
	}
	if len(body) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(body, v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}
