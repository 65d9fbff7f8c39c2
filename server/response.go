package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"openmusic/core/apperror"
	"openmusic/logger"
)

const (
	statusSuccess = "success"
	statusFail    = "fail"
	statusError   = "error"
)

// envelope is the body of every API response.
type envelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", logger.ErrorField(err))
	}
}

// writeSuccess writes a success envelope. data may be nil.
func writeSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, envelope{Status: statusSuccess, Message: message, Data: data})
}

// writeError is the only place errors become HTTP responses. Domain errors
// are shown to the client; anything else is logged and hidden behind a 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		logger.Warn("Request rejected",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.String("kind", appErr.Kind.String()),
			logger.ErrorField(err),
		)
		writeJSON(w, appErr.Status(), envelope{Status: statusFail, Message: appErr.Message})
		return
	}

	logger.Error("Request failed",
		logger.String("method", r.Method),
		logger.String("path", r.URL.Path),
		logger.ErrorField(err),
	)
	writeJSON(w, http.StatusInternalServerError, envelope{
		Status:  statusError,
		Message: "internal server error",
	})
}
