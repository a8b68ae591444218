package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/converse-ai/converse/internal/api/handler"
	"github.com/converse-ai/converse/internal/llm"
	"github.com/converse-ai/converse/internal/security"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestHealthCheck(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()

	handler.HealthCheck(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response map[string]any
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, true, response["success"])

	data, ok := response["data"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "ok", data["status"])
}

func TestListModels(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/models", nil)
	rec := httptest.NewRecorder()

	handler.ListModels(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			Models  []llm.Model `json:"models"`
			Default string      `json:"default"`
		} `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.True(t, response.Success)
	assert.NotEmpty(t, response.Data.Models)
	assert.Equal(t, llm.DefaultModelID, response.Data.Default)

	ids := make(map[string]bool)
	for _, m := range response.Data.Models {
		ids[m.ID] = true
	}
	assert.True(t, ids[response.Data.Default])
}

// BenchmarkJWTGeneration benchmarks token generation
func BenchmarkJWTGeneration(b *testing.B) {
	manager := security.NewJWTManager("benchmark-secret-key-32-chars!!", 15*time.Minute, 7*24*time.Hour)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = manager.GenerateAccessToken(uuid.New(), "test@example.com")
	}
}
