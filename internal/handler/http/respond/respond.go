// Package respond provides utilities for sending HTTP responses in JSON format.
// Internal failures are logged and replaced by a generic message so that
// error details never reach the client.
package respond

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"textdigest/internal/handler/http/requestid"
)

// InternalErrorMessage is the body returned for every unexpected failure.
const InternalErrorMessage = "internal server error"

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// ヘッダー送信済みのためログのみ
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes {"error": msg} with the given status code.
func Error(w http.ResponseWriter, code int, msg string) {
	JSON(w, code, ErrorResponse{Error: msg})
}

// AppError is an error type that carries a user-facing message.
type AppError struct {
	UserMsg string // Message to display to users
	Err     error  // Internal error (logged for debugging)
	Code    int    // HTTP status code
}

// Error returns the error message, implementing the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.UserMsg
}

// Unwrap returns the underlying error, implementing the errors.Unwrap interface.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError with the given parameters.
func NewAppError(code int, userMsg string, err error) *AppError {
	return &AppError{Code: code, UserMsg: userMsg, Err: err}
}

// SafeError writes err as a JSON error response.
//
// An *AppError anywhere in the chain is answered with its Code and UserMsg;
// 5xx AppErrors additionally log the wrapped error. Anything else is logged
// and answered with 500 and InternalErrorMessage.
func SafeError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	logger := slog.Default()
	if id := requestid.FromContext(ctx); id != "" {
		logger = logger.With(slog.String("request_id", id))
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Code >= http.StatusInternalServerError {
			logger.ErrorContext(ctx, "application error",
				slog.Int("code", appErr.Code),
				slog.String("user_message", appErr.UserMsg),
				slog.String("error", SanitizeError(appErr.Err)))
		}
		Error(w, appErr.Code, appErr.UserMsg)
		return
	}

	// 想定外のエラーは詳細を隠す
	logger.ErrorContext(ctx, "internal server error",
		slog.String("error", SanitizeError(err)))
	Error(w, http.StatusInternalServerError, InternalErrorMessage)
}
