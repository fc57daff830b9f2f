package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/medo-health/assistant-api/internal/utils"
)

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, logger *utils.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode JSON response", "error", err)
	}
}

// respondError maps AppError to its status; anything else is a generic 500
// so internals never leak to callers.
func respondError(w http.ResponseWriter, logger *utils.Logger, err error) {
	status := http.StatusInternalServerError
	body := errorResponse{Error: "Internal server error"}

	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		status = appErr.StatusCode
		body.Error = appErr.Message
		body.Details = appErr.Details
	}

	logger.Error("Request error", "status", status, "error", body.Error)
	respondJSON(w, logger, status, body)
}
