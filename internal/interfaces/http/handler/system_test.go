package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemHandlerHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	doHealth := func(t *testing.T, pinger func() error) (*httptest.ResponseRecorder, map[string]any) {
		t.Helper()
		h := NewSystemHandler(pinger)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request, _ = http.NewRequest(http.MethodGet, "/health", nil)

		h.Health(c)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		return w, body
	}

	t.Run("reports ok when the database responds", func(t *testing.T) {
		w, body := doHealth(t, func() error { return nil })

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", body["status"])
		assert.NotEmpty(t, body["uptime"])
	})

	t.Run("reports degraded when the database ping fails", func(t *testing.T) {
		w, body := doHealth(t, func() error { return errors.New("connection refused") })

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "degraded", body["status"])
	})

	t.Run("reports ok without a pinger", func(t *testing.T) {
		w, body := doHealth(t, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", body["status"])
	})
}
