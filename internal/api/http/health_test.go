package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	NewHealthHandler("explorer-backend", "1.0.0", nil).RegisterRoutes(router)

	for _, path := range []string{"/health", "/healthz"} {
		req, err := http.NewRequest("GET", path, nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, "path %s", path)

		var resp HealthResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, "explorer-backend", resp.Service)
		assert.Equal(t, "1.0.0", resp.Version)
		assert.Equal(t, "disabled", resp.Postgres, "no pool wired in this setup")
		assert.False(t, resp.Timestamp.IsZero())
	}
}
