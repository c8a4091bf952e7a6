package errors

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// StatusMode selects how error kinds map onto HTTP status codes
type StatusMode string

const (
	// StatusModeCompat answers every handled failure with 500.
	// Unmatched routes, rate limiting and authentication keep their own status.
	StatusModeCompat StatusMode = "compat"

	// StatusModeTyped answers with the status carried by the error kind
	StatusModeTyped StatusMode = "typed"
)

// ErrorResponse represents the API error response format
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler handles errors and sends appropriate HTTP responses
type ErrorHandler struct {
	logger        *zap.Logger
	mode          StatusMode
	debug         bool
	defaultStatus int
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *zap.Logger, mode StatusMode, debug bool) *ErrorHandler {
	if mode == "" {
		mode = StatusModeCompat
	}
	return &ErrorHandler{
		logger:        logger,
		mode:          mode,
		debug:         debug,
		defaultStatus: http.StatusInternalServerError,
	}
}

// Mode returns the configured status mode
func (h *ErrorHandler) Mode() StatusMode {
	return h.mode
}

// Handle processes an error and sends an HTTP response
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	requestID := r.Header.Get("X-Request-ID")

	var status int
	var response ErrorResponse

	if appErr := GetAppError(err); appErr != nil {
		status = h.StatusFor(appErr)
		response = ErrorResponse{Error: appErr.Message}

		h.logError(r, appErr, status)

		if h.debug && appErr.Cause != nil {
			response.Error = fmt.Sprintf("%s: %v", appErr.Message, appErr.Cause)
		}
	} else {
		status = h.defaultStatus
		response = ErrorResponse{Error: "Internal server error"}

		h.logger.Error("Unhandled error",
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", requestID),
			zap.Int("status", status),
		)

		if h.debug {
			response.Error = err.Error()
		}
	}

	h.sendJSON(w, status, response)
}

// StatusFor returns the HTTP status an application error is rendered with
func (h *ErrorHandler) StatusFor(appErr *AppError) int {
	switch appErr.Type {
	case ErrorTypeRoute, ErrorTypeRateLimit, ErrorTypeUnauthorized:
		return appErr.HTTPStatus
	}

	if h.mode == StatusModeTyped && appErr.HTTPStatus != 0 {
		return appErr.HTTPStatus
	}
	return h.defaultStatus
}

// logError logs an application error with appropriate level
func (h *ErrorHandler) logError(r *http.Request, err *AppError, status int) {
	fields := []zap.Field{
		zap.String("error_type", string(err.Type)),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("request_id", r.Header.Get("X-Request-ID")),
	}

	if err.Code != "" {
		fields = append(fields, zap.String("error_code", err.Code))
	}

	if err.Cause != nil {
		fields = append(fields, zap.Error(err.Cause))
	}

	if err.Details != nil {
		fields = append(fields, zap.Any("details", err.Details))
	}

	// Server-side kinds are errors even when compat mode hides them behind 500
	switch err.Type {
	case ErrorTypeDatabase, ErrorTypeInternal, ErrorTypeExternal:
		h.logger.Error(err.Message, fields...)
	default:
		h.logger.Warn(err.Message, fields...)
	}
}

// sendJSON sends a JSON response
func (h *ErrorHandler) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode error response",
			zap.Error(err),
			zap.Any("data", data),
		)
	}
}

// Middleware returns an HTTP middleware that turns panics into error responses
func (h *ErrorHandler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				err := NewInternalError("Internal server error").WithCause(fmt.Errorf("panic: %v", rec))
				h.Handle(w, r, err)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
