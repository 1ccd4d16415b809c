package api

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/shaharia-lab/themify/internal/logger"
)

const (
	fileOperationFailed = "File operation failed"

	unknownExceptionMessage     = "Unknown exception"
	unknownExceptionDescription = "Ideally you should never receive this error, but if you are unlucky enough " +
		"to get one, please create a bug report. You can find more information about " +
		"what happened in the themify log."
)

// HandlerFunc is an HTTP handler that reports failures by returning them.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle adapts fn to http.HandlerFunc. Errors returned by fn, and panics
// raised by it, are converted into JSON error responses:
//
//   - *Error keeps its own status
//   - a missing file becomes 404, any other *fs.PathError 500
//   - an oversized body becomes 413
//   - everything else is logged and answered with a generic 500
func Handle(log logger.Logger, fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			requestLogger(log, r).Error("Error serving API request", map[string]interface{}{
				logger.ErrorKey: fmt.Errorf("panic: %v", rec),
				"stack":         string(debug.Stack()),
			})
			WriteError(w, http.StatusInternalServerError, unknownExceptionMessage, unknownExceptionDescription)
		}()

		if err := fn(w, r); err != nil {
			writeFailure(w, r, log, err)
		}
	}
}

func writeFailure(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	var apiErr *Error
	var pathErr *fs.PathError
	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.As(err, &apiErr):
		WriteError(w, apiErr.Status, apiErr.Message, apiErr.Description)

	case errors.As(err, &maxBytesErr):
		WriteError(w, http.StatusRequestEntityTooLarge, "Request entity too large",
			fmt.Sprintf("The request body must not exceed %d bytes", maxBytesErr.Limit))

	case errors.As(err, &pathErr):
		status := http.StatusInternalServerError
		if errors.Is(err, fs.ErrNotExist) {
			status = http.StatusNotFound
		}
		WriteError(w, status, fileOperationFailed, fmt.Sprintf("%s: '%s'", pathErr.Err, pathErr.Path))

	case errors.Is(err, fs.ErrNotExist):
		WriteError(w, http.StatusNotFound, fileOperationFailed, err.Error())

	default:
		requestLogger(log, r).Error("Error serving API request", map[string]interface{}{
			logger.ErrorKey: err,
			"stack":         string(debug.Stack()),
		})
		WriteError(w, http.StatusInternalServerError, unknownExceptionMessage, unknownExceptionDescription)
	}
}

func requestLogger(log logger.Logger, r *http.Request) logger.Logger {
	return log.WithFields(map[string]interface{}{
		"method":     r.Method,
		"path":       r.URL.Path,
		"request_id": middleware.GetReqID(r.Context()),
	})
}
