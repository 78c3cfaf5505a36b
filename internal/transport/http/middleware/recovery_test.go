package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func panicEngine(dev bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ginzap.CustomRecoveryWithZap(zap.NewNop(), true, PanicResponse(dev)))
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })
	return r
}

func doBoom(t *testing.T, dev bool) map[string]string {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	panicEngine(dev).ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestPanicResponse_Dev(t *testing.T) {
	body := doBoom(t, true)
	assert.Equal(t, "Internal server error", body["error"])
	assert.Equal(t, "kaboom", body["message"], "dev mode exposes the panic detail")
}

func TestPanicResponse_Prod(t *testing.T) {
	body := doBoom(t, false)
	assert.Equal(t, "Internal server error", body["error"])
	assert.Equal(t, "Something went wrong", body["message"], "panic detail stays server-side")
	assert.NotContains(t, body["message"], "kaboom")
}
