package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestHealthCheckReportsDependencyStatus(t *testing.T) {
	reachable := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer reachable.Close()

	app := fiber.New()
	ctrl := NewHealthController(nil, map[string]string{
		"ollama":  reachable.URL,
		"whisper": "http://127.0.0.1:1", // nothing listens here
	})
	ctrl.RegisterRoutes(app.Group("/api"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health/v1", nil), 5000)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			Status   string            `json:"status"`
			Services map[string]string `json:"services"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(body, &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, "up", envelope.Data.Status)
	assert.Equal(t, "up", envelope.Data.Services["ollama"])
	assert.Equal(t, "down", envelope.Data.Services["whisper"])
	assert.Equal(t, "down", envelope.Data.Services["database"])
}

func TestHealthCheckAnswersWithoutDependencies(t *testing.T) {
	app := fiber.New()
	NewHealthController(nil, nil).RegisterRoutes(app.Group("/api"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health/v1", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
