package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	config "Olson/internal/config"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.Default()
	cfg.RateLimit.Burst = 100

	router := mux.NewRouter()
	HandleList(router, cfg)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestRoutes(t *testing.T) {
	srv := newTestServer(t)
	body := `{"pre_fire_fuel_load":"20.2","decay_constant":"0.35","fuel_remaining":"0.5","years_since_fire":"5"}`

	tests := []struct {
		method      string
		path        string
		body        string
		status      int
		contentType string
	}{
		{http.MethodGet, "/api/tools/olson/defaults", "", http.StatusOK, "application/json"},
		{http.MethodPost, "/api/tools/olson/calc", body, http.StatusOK, "application/json"},
		{http.MethodGet, "/api/tools/olson/chart", "", http.StatusOK, "application/pdf"},
		{http.MethodPost, "/api/tools/olson/chart", body, http.StatusOK, "application/pdf"},
		{http.MethodPost, "/api/tools/olson/export", body, http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, srv.URL+tt.path, strings.NewReader(tt.body))
			require.NoError(t, err)
			res, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer res.Body.Close()

			assert.Equal(t, tt.status, res.StatusCode)
			if tt.contentType != "" {
				assert.Equal(t, tt.contentType, res.Header.Get("Content-Type"))
			}
		})
	}
}

func TestRoutes_RejectHorizonAboveLimit(t *testing.T) {
	srv := newTestServer(t)
	body := `{"pre_fire_fuel_load":"20.2","decay_constant":"0.35","fuel_remaining":"0.5","years_since_fire":"9223372036854775807"}`

	for _, path := range []string{"/api/tools/olson/calc", "/api/tools/olson/chart", "/api/tools/olson/export"} {
		res, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
		require.NoError(t, err)
		var buf bytes.Buffer
		_, err = buf.ReadFrom(res.Body)
		res.Body.Close()
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, res.StatusCode, path)
		assert.Contains(t, buf.String(), "Time must be at most 10000 years.", path)
	}
}

func TestRoutes_DefaultsSeedForm(t *testing.T) {
	srv := newTestServer(t)

	res, err := http.Get(srv.URL + "/api/tools/olson/defaults")
	require.NoError(t, err)
	defer res.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(res.Body)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"pre_fire_fuel_load":"20.2","decay_constant":"0.35","fuel_remaining":"0.5","years_since_fire":"5"}`,
		buf.String())
}

func TestVersionCommand(t *testing.T) {
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "dev\n", out.String())
}
