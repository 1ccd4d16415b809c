package themes

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shaharia-lab/themify/internal/api"
	"github.com/shaharia-lab/themify/internal/logger"
)

func newTestRouter(t *testing.T, maxSize int64) (*chi.Mux, *Store) {
	t.Helper()
	store := NewStore(t.TempDir())
	h := NewHandler(store, maxSize, logger.Discard)

	r := chi.NewRouter()
	r.Get("/api/themes", h.ListThemesHTTPHandler())
	r.Get("/api/themes/{name}", h.GetThemeHTTPHandler())
	r.Post("/api/themes/{name}", h.SaveThemeHTTPHandler())
	r.Delete("/api/themes/{name}", h.DeleteThemeHTTPHandler())
	return r, store
}

func do(t *testing.T, h http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandler_ListThemes(t *testing.T) {
	r, store := newTestRouter(t, 0)

	rec := do(t, r, http.MethodGet, "/api/themes", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `[]`, rec.Body.String())

	require.NoError(t, store.Write("Zebra", []byte("z")))
	require.NoError(t, store.Write("alpha", []byte("a")))

	rec = do(t, r, http.MethodGet, "/api/themes", "", "")
	assert.JSONEq(t, `["alpha","Zebra"]`, rec.Body.String())
}

func TestHandler_SaveAndGetTheme(t *testing.T) {
	r, _ := newTestRouter(t, 0)

	rec := do(t, r, http.MethodPost, "/api/themes/red", "application/text", "body{color:red}")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = do(t, r, http.MethodGet, "/api/themes/red", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "body{color:red}", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")

	rec = do(t, r, http.MethodGet, "/api/themes", "", "")
	assert.JSONEq(t, `["red"]`, rec.Body.String())
}

func TestHandler_SaveThemeContentType(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		wantStatus  int
	}{
		{"exact", "application/text", http.StatusNoContent},
		{"with charset", "application/text; charset=UTF-8", http.StatusNoContent},
		{"json", "application/json", http.StatusBadRequest},
		{"plain text", "text/plain", http.StatusBadRequest},
		{"missing", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, store := newTestRouter(t, 0)

			rec := do(t, r, http.MethodPost, "/api/themes/t", tt.contentType, "a{}")
			assert.Equal(t, tt.wantStatus, rec.Code)

			names, err := store.List()
			require.NoError(t, err)
			if tt.wantStatus == http.StatusBadRequest {
				assert.Empty(t, names, "a rejected upload must not touch the filesystem")
				resp := decodeError(t, rec)
				assert.Equal(t, "Invalid content-type", resp.Message)
				assert.Equal(t, "Expecting application/text", resp.Description)
			} else {
				assert.Equal(t, []string{"t"}, names)
			}
		})
	}
}

func TestHandler_GetMissingTheme(t *testing.T) {
	r, _ := newTestRouter(t, 0)

	rec := do(t, r, http.MethodGet, "/api/themes/missing", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	resp := decodeError(t, rec)
	assert.Equal(t, "File operation failed", resp.Message)
	assert.Contains(t, resp.Description, "no such file or directory")
	assert.Contains(t, resp.Description, "missing.css")
}

func TestHandler_DeleteTheme(t *testing.T) {
	r, store := newTestRouter(t, 0)
	require.NoError(t, store.Write("old", []byte("x")))

	rec := do(t, r, http.MethodDelete, "/api/themes/old", "", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	names, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, names)

	rec = do(t, r, http.MethodDelete, "/api/themes/old", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, decodeError(t, rec).Description, "old.css")
}

func TestHandler_DeleteDirectory(t *testing.T) {
	r, store := newTestRouter(t, 0)
	dir := filepath.Join(store.Root(), "sub.css")
	require.NoError(t, os.Mkdir(dir, 0755))

	rec := do(t, r, http.MethodDelete, "/api/themes/sub", "", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	resp := decodeError(t, rec)
	assert.Equal(t, "File operation failed", resp.Message)
	assert.Equal(t, "is a directory: '"+dir+"'", resp.Description)

	_, err := os.Stat(dir)
	assert.NoError(t, err)
}

type failingWriter struct {
	*httptest.ResponseRecorder
	headers int
}

func (w *failingWriter) WriteHeader(code int) {
	w.headers++
	w.ResponseRecorder.WriteHeader(code)
}

func (w *failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestHandler_GetThemeWriteFailureIsOnlyLogged(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Write("red", []byte("body{}")))

	log := new(logger.MockLogger)
	log.On("Warn", "failed to write theme response", mock.MatchedBy(func(fields map[string]interface{}) bool {
		return fields["theme"] == "red" && fields[logger.ErrorKey] != nil
	})).Once()

	r := chi.NewRouter()
	r.Get("/api/themes/{name}", NewHandler(store, 0, log).GetThemeHTTPHandler())

	w := &failingWriter{ResponseRecorder: httptest.NewRecorder()}
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/themes/red", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, w.headers)
	log.AssertExpectations(t)
	log.AssertNotCalled(t, "Error", mock.Anything, mock.Anything)
}

func TestHandler_RejectsEscapedSeparators(t *testing.T) {
	r, store := newTestRouter(t, 0)

	rec := do(t, r, http.MethodPost, "/api/themes/..%2Fescape", "application/text", "x")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid theme name", decodeError(t, rec).Message)

	_, err := os.Stat(filepath.Join(filepath.Dir(store.Root()), "escape.css"))
	assert.True(t, os.IsNotExist(err))

	rec = do(t, r, http.MethodGet, "/api/themes/..", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_SaveThemeTooLarge(t *testing.T) {
	r, store := newTestRouter(t, 8)

	rec := do(t, r, http.MethodPost, "/api/themes/big", "application/text", "0123456789")
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "Request entity too large", decodeError(t, rec).Message)

	names, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestHandler_SaveThemeIOError(t *testing.T) {
	r, store := newTestRouter(t, 0)
	require.NoError(t, os.Mkdir(filepath.Join(store.Root(), "dir.css"), 0755))

	rec := do(t, r, http.MethodPost, "/api/themes/dir", "application/text", "x")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	resp := decodeError(t, rec)
	assert.Equal(t, "File operation failed", resp.Message)
	assert.Contains(t, resp.Description, "dir.css")
}
