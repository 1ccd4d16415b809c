package themes

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shaharia-lab/themify/internal/api"
	"github.com/shaharia-lab/themify/internal/logger"
)

// ContentType must appear in the Content-Type header of a theme upload.
const ContentType = "application/text"

// Handler exposes a Store over HTTP.
type Handler struct {
	store        *Store
	maxSizeBytes int64
	log          logger.Logger
}

// NewHandler creates a Handler. Uploads larger than maxSizeBytes are rejected;
// zero or less disables the limit.
func NewHandler(store *Store, maxSizeBytes int64, log logger.Logger) *Handler {
	return &Handler{
		store:        store,
		maxSizeBytes: maxSizeBytes,
		log:          log,
	}
}

// ListThemesHTTPHandler answers with a JSON array of theme names
func (h *Handler) ListThemesHTTPHandler() http.HandlerFunc {
	return api.Handle(h.log, func(w http.ResponseWriter, r *http.Request) error {
		names, err := h.store.List()
		if err != nil {
			return err
		}
		api.WriteJSON(w, http.StatusOK, names)
		return nil
	})
}

// GetThemeHTTPHandler answers with the raw theme content as plain text
func (h *Handler) GetThemeHTTPHandler() http.HandlerFunc {
	return api.Handle(h.log, func(w http.ResponseWriter, r *http.Request) error {
		content, err := h.store.Read(themeName(r))
		if err != nil {
			return translate(err)
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		// the status line is already out, so a failed write can only be logged
		if _, err := w.Write(content); err != nil {
			h.log.Warn("failed to write theme response", map[string]interface{}{
				"theme":         themeName(r),
				logger.ErrorKey: err,
			})
		}
		return nil
	})
}

// SaveThemeHTTPHandler stores the request body as the named theme
func (h *Handler) SaveThemeHTTPHandler() http.HandlerFunc {
	return api.Handle(h.log, func(w http.ResponseWriter, r *http.Request) error {
		if !strings.Contains(r.Header.Get("Content-Type"), ContentType) {
			return api.BadRequest("Invalid content-type", "Expecting "+ContentType)
		}

		name := themeName(r)
		if err := ValidateName(name); err != nil {
			return translate(err)
		}

		body := r.Body
		if h.maxSizeBytes > 0 {
			body = http.MaxBytesReader(w, r.Body, h.maxSizeBytes)
		}
		content, err := io.ReadAll(body)
		if err != nil {
			return err
		}

		if err := h.store.Write(name, content); err != nil {
			return err
		}

		h.log.Info("theme saved", map[string]interface{}{"theme": name, "bytes": len(content)})
		api.NoContent(w)
		return nil
	})
}

// DeleteThemeHTTPHandler removes the named theme
func (h *Handler) DeleteThemeHTTPHandler() http.HandlerFunc {
	return api.Handle(h.log, func(w http.ResponseWriter, r *http.Request) error {
		name := themeName(r)
		if err := h.store.Delete(name); err != nil {
			return translate(err)
		}

		h.log.Info("theme deleted", map[string]interface{}{"theme": name})
		api.NoContent(w)
		return nil
	})
}

// themeName returns the decoded {name} route parameter. chi matches against
// the raw path when the request carries escaped separators, so those are
// decoded here and then rejected by ValidateName.
func themeName(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name
	}
	if decoded, err := url.PathUnescape(name); err == nil {
		return decoded
	}
	return name
}

func translate(err error) error {
	if errors.Is(err, ErrInvalidName) {
		return api.BadRequest("Invalid theme name", err.Error())
	}
	return err
}
