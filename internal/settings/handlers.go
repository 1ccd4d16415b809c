package settings

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/shaharia-lab/themify/internal/api"
	"github.com/shaharia-lab/themify/internal/logger"
	"github.com/shaharia-lab/themify/internal/themes"
)

const maxBodyBytes = 64 << 10

// Handler exposes the settings store over HTTP.
type Handler struct {
	store *Store
	log   logger.Logger
}

// NewHandler creates a Handler serving store.
func NewHandler(store *Store, log logger.Logger) *Handler {
	return &Handler{store: store, log: log}
}

// GetSettingsHTTPHandler answers with the current settings
func (h *Handler) GetSettingsHTTPHandler() http.HandlerFunc {
	return api.Handle(h.log, func(w http.ResponseWriter, r *http.Request) error {
		s, err := h.store.Get(r.Context())
		if err != nil {
			return err
		}
		api.WriteJSON(w, http.StatusOK, s)
		return nil
	})
}

// UpdateSettingsHTTPHandler applies a partial update and answers with the result
func (h *Handler) UpdateSettingsHTTPHandler() http.HandlerFunc {
	return api.Handle(h.log, func(w http.ResponseWriter, r *http.Request) error {
		var p Patch
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&p); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				return err
			}
			if errors.Is(err, io.EOF) {
				return api.BadRequest("Invalid request body", "request body is empty")
			}
			return api.BadRequest("Invalid request body", err.Error())
		}

		if p.Theme.Value != nil {
			if err := themes.ValidateName(*p.Theme.Value); err != nil {
				return api.BadRequest("Invalid theme name", err.Error())
			}
		}

		s, err := h.store.Apply(r.Context(), p)
		if err != nil {
			return err
		}

		h.log.Info("settings updated", map[string]interface{}{"enable": s.Enable, "theme": s.Theme})
		api.WriteJSON(w, http.StatusOK, s)
		return nil
	})
}
