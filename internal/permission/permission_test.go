package permission

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaharia-lab/themify/internal/api"
	"github.com/shaharia-lab/themify/internal/config"
)

func TestNewSet_ExpandsImplications(t *testing.T) {
	s := NewSet(Settings)
	assert.True(t, s.Has(Settings))
	assert.True(t, s.Has(SettingsRead))

	s = NewSet(SettingsRead)
	assert.False(t, s.Has(Settings))
	assert.Equal(t, []Capability{Settings}, s.Missing(SettingsRead, Settings))
}

func TestParseCapability(t *testing.T) {
	c, err := ParseCapability(" Settings_Read ")
	require.NoError(t, err)
	assert.Equal(t, SettingsRead, c)

	_, err = ParseCapability("admin")
	assert.EqualError(t, err, `unknown capability: "admin"`)
}

func TestKeyEvaluator(t *testing.T) {
	ev, err := NewKeyEvaluator(config.AuthConfig{
		APIKeys: []config.APIKeyConfig{
			{Name: "admin", Key: "admin-key", Capabilities: []string{"settings"}},
			{Name: "viewer", Key: "viewer-key", Capabilities: []string{"settings_read"}},
		},
		AnonymousCapabilities: []string{"settings_read"},
	})
	require.NoError(t, err)

	tests := []struct {
		name    string
		headers map[string]string
		want    []Capability
	}{
		{"x-api-key admin", map[string]string{"X-Api-Key": "admin-key"}, []Capability{Settings, SettingsRead}},
		{"bearer viewer", map[string]string{"Authorization": "Bearer viewer-key"}, []Capability{SettingsRead}},
		{"unknown key", map[string]string{"X-Api-Key": "nope"}, []Capability{SettingsRead}},
		{"anonymous", nil, []Capability{SettingsRead}},
		{"basic auth is ignored", map[string]string{"Authorization": "Basic YWRtaW4="}, []Capability{SettingsRead}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.ElementsMatch(t, tt.want, ev.Evaluate(req).Sorted())
		})
	}
}

func TestNewKeyEvaluator_InvalidConfig(t *testing.T) {
	_, err := NewKeyEvaluator(config.AuthConfig{
		APIKeys: []config.APIKeyConfig{{Name: "bad", Key: "k", Capabilities: []string{"root"}}},
	})
	assert.Error(t, err)

	_, err = NewKeyEvaluator(config.AuthConfig{AnonymousCapabilities: []string{"everything"}})
	assert.Error(t, err)
}

func TestRequire(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	})

	handler := Middleware(StaticEvaluator{Capabilities: NewSet(SettingsRead)})(Require(Settings)(next))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.False(t, called, "handler must not run without the capability")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Insufficient permissions", resp.Message)
	assert.Equal(t, "You need the following permissions to access this resource: Settings", resp.Description)

	handler = Middleware(StaticEvaluator{Capabilities: NewSet(Settings)})(Require(Settings)(next))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.True(t, called)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequire_WithoutMiddlewareDenies(t *testing.T) {
	rec := httptest.NewRecorder()
	Require(SettingsRead)(http.NotFoundHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
