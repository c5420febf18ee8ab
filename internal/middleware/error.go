package middleware

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Response is the envelope every API endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// RespondWithJSON sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// RespondWithData wraps data in a successful envelope.
func RespondWithData(w http.ResponseWriter, data interface{}) {
	RespondWithJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

// RespondWithList is RespondWithData plus the number of items.
func RespondWithList[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	count := len(items)
	RespondWithJSON(w, http.StatusOK, Response{Success: true, Data: items, Count: &count})
}

// RespondWithMessage sends a failure envelope carrying a human readable
// message, used for 4xx answers.
func RespondWithMessage(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, Response{Success: false, Message: message})
}

// RespondWithError sends a failure envelope echoing err.
func RespondWithError(w http.ResponseWriter, statusCode int, err error) {
	RespondWithJSON(w, statusCode, Response{Success: false, Error: err.Error()})
}

// RespondWithValidationErrors sends validation error response
func RespondWithValidationErrors(w http.ResponseWriter, errors []ValidationError) {
	RespondWithJSON(w, http.StatusBadRequest, Response{
		Success: false,
		Message: "validation failed",
		Errors:  errors,
	})
}

// ErrorHandlingMiddleware catches panics and converts them to 500 errors
func ErrorHandlingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}

					logger.Error("Panic recovered",
						zap.Any("error", rec),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
					)

					RespondWithJSON(w, http.StatusInternalServerError, Response{
						Success: false,
						Error:   "internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
