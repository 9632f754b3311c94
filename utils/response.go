package utils

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/mapleleafu/spritedex/models"
	"github.com/mapleleafu/spritedex/responses"
)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

const internalErrorMessage = "An unexpected error occurred"

func HandleSuccess(w http.ResponseWriter, response models.ApiResponse) {
	writeJSON(w, http.StatusOK, response)
}

func HandleCreated(w http.ResponseWriter, response models.ApiResponse) {
	writeJSON(w, http.StatusCreated, response)
}

// HandleError checks the error type and sends an appropriate response.
// Errors that are not an APIError anywhere in their chain become a 500 whose
// cause is logged but never sent to the client.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	statusCode := http.StatusInternalServerError
	message := internalErrorMessage

	var apiErr responses.APIError
	if errors.As(err, &apiErr) {
		statusCode = apiErr.StatusCode()
		message = apiErr.Error()
	}

	path := ""
	if r != nil {
		path = r.URL.Path
	}

	logger := slog.Default().With("component", "http")
	if statusCode == http.StatusInternalServerError {
		logger.Error("exception caught", "path", path, "error", err)
		message = internalErrorMessage
	} else {
		logger.Warn("http exception", "path", path, "status", statusCode, "message", message)
	}

	writeJSON(w, statusCode, models.ErrorResponse(models.ErrorBody{
		StatusCode: statusCode,
		Timestamp:  time.Now().UTC().Format(timestampLayout),
		Path:       path,
		Message:    message,
	}))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Warn("write response", "component", "http", "error", err)
	}
}
