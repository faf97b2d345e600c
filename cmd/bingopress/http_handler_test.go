package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diogomix/bingopress/internal/config"
	"github.com/diogomix/bingopress/internal/live"
	"github.com/diogomix/bingopress/internal/service"
)

func newTestHandler(t *testing.T) (*Handler, *httptest.Server) {
	t.Helper()

	cfg := config.Default()
	cfg.Storage.OutputRoot = t.TempDir()
	cfg.Storage.SimulationsRoot = t.TempDir()
	cfg.Game.MaxNumber = 20
	cfg.Game.NumbersPerCard = 5

	handler := &Handler{
		Config:    cfg,
		Generator: &service.Generator{OutputRoot: cfg.Storage.OutputRoot},
		Simulator: &service.Simulator{
			OutputRoot:  cfg.Storage.SimulationsRoot,
			LayoutsRoot: cfg.Storage.OutputRoot,
			MaxNumber:   cfg.Game.MaxNumber,
		},
		Registry: live.NewRegistry(nil),
	}

	mux := http.NewServeMux()
	handler.Register(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return handler, server
}

func doJSON(t *testing.T, method, url, body string) (int, map[string]any) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp.StatusCode, payload
}

func TestHealthEndpoint(t *testing.T) {
	_, server := newTestHandler(t)

	status, payload := doJSON(t, http.MethodGet, server.URL+"/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", payload["status"])
}

func TestGenerateEndpoint(t *testing.T) {
	_, server := newTestHandler(t)

	body := `{"seed": 42, "sheets": 4, "numbers_per_card": 5, "max_number": 20, "base_name": "Test"}`
	status, payload := doJSON(t, http.MethodPost, server.URL+"/api/generate", body)
	require.Equal(t, http.StatusCreated, status)
	assert.EqualValues(t, 12, payload["combinations"])

	status, payload = doJSON(t, http.MethodPost, server.URL+"/api/generate", `{"sheets": 7}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, payload["error"], "divisible")
}

func TestLiveLifecycle(t *testing.T) {
	_, server := newTestHandler(t)

	// Generate a set so live start can discover a layout.
	body := `{"seed": 42, "sheets": 4, "numbers_per_card": 5, "max_number": 20, "base_name": "Test"}`
	status, _ := doJSON(t, http.MethodPost, server.URL+"/api/generate", body)
	require.Equal(t, http.StatusCreated, status)

	status, payload := doJSON(t, http.MethodPost, server.URL+"/api/live", `{"game_id": "friday"}`)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "friday", payload["game_id"])

	status, payload = doJSON(t, http.MethodPost, server.URL+"/api/live/friday/call", `{"ball": 7}`)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 7, payload["ball"])

	// Repeating the ball is a conflict, not a server error.
	status, payload = doJSON(t, http.MethodPost, server.URL+"/api/live/friday/call", `{"ball": 7}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, payload["error"], "already called")

	status, payload = doJSON(t, http.MethodGet, server.URL+"/api/live/friday", "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, payload["total_called"])

	status, _ = doJSON(t, http.MethodPost, server.URL+"/api/live/friday/undo", "")
	assert.Equal(t, http.StatusOK, status)

	status, payload = doJSON(t, http.MethodPost, server.URL+"/api/live/friday/undo", "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, payload["error"], "undo")

	status, _ = doJSON(t, http.MethodGet, server.URL+"/api/live/friday/ranking?top=5", "")
	assert.Equal(t, http.StatusOK, status)

	req, err := http.NewRequest(http.MethodDelete, server.URL+"/api/live/friday", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	status, _ = doJSON(t, http.MethodGet, server.URL+"/api/live/friday", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestLiveStartWithoutLayouts(t *testing.T) {
	_, server := newTestHandler(t)

	status, payload := doJSON(t, http.MethodPost, server.URL+"/api/live", `{}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, payload["error"], "no paired layout files")
}

func TestSimulateEndpoint(t *testing.T) {
	_, server := newTestHandler(t)

	body := `{"seed": 42, "sheets": 4, "numbers_per_card": 5, "max_number": 20, "base_name": "Test"}`
	status, _ := doJSON(t, http.MethodPost, server.URL+"/api/generate", body)
	require.Equal(t, http.StatusCreated, status)

	status, payload := doJSON(t, http.MethodPost, server.URL+"/api/simulate", `{"trials": 10, "seed": 5}`)
	require.Equal(t, http.StatusCreated, status)

	stats, ok := payload["stats"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 10, stats["trials"])
}

func TestRankingRejectsBadTopParam(t *testing.T) {
	handler, server := newTestHandler(t)

	_, err := handler.Registry.Create("g", "x.csv", nil, 20)
	require.NoError(t, err)

	for _, top := range []string{"zero", "-3", "0"} {
		status, _ := doJSON(t, http.MethodGet,
			fmt.Sprintf("%s/api/live/g/ranking?top=%s", server.URL, top), "")
		assert.Equal(t, http.StatusBadRequest, status, "top=%s", top)
	}
}
