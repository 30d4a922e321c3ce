package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hookRedis(t *testing.T) {
	origGet := redisGet
	origSet := redisSet
	origSetNX := redisSetNX
	origDel := redisDel
	t.Cleanup(func() {
		redisGet = origGet
		redisSet = origSet
		redisSetNX = origSetNX
		redisDel = origDel
	})
}

func idempotencyRouter(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(IdempotencyMiddleware())
	r.POST("/transfers", handler)
	return r
}

func TestIdempotencyMiddleware_PassthroughWithoutKey(t *testing.T) {
	hookRedis(t)
	redisGet = func(context.Context, string) (string, error) {
		t.Fatal("redis should not be touched without a key")
		return "", nil
	}

	r := idempotencyRouter(func(c *gin.Context) { c.String(http.StatusCreated, `{"id":"0xabc"}`) })

	req := httptest.NewRequest(http.MethodPost, "/transfers", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestIdempotencyMiddleware_ConflictWhileProcessing(t *testing.T) {
	hookRedis(t)
	redisGet = func(context.Context, string) (string, error) { return "processing", nil }

	r := idempotencyRouter(func(c *gin.Context) { c.String(http.StatusCreated, `{"id":"0xabc"}`) })

	req := httptest.NewRequest(http.MethodPost, "/transfers", nil)
	req.Header.Set(IdempotencyHeader, "key-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestIdempotencyMiddleware_ReplaysCachedResponse(t *testing.T) {
	hookRedis(t)
	redisGet = func(context.Context, string) (string, error) { return `{"transferId":"0xabc"}`, nil }

	handlerRuns := 0
	r := idempotencyRouter(func(c *gin.Context) {
		handlerRuns++
		c.String(http.StatusCreated, `{"transferId":"0xfresh"}`)
	})

	req := httptest.NewRequest(http.MethodPost, "/transfers", nil)
	req.Header.Set(IdempotencyHeader, "key-2")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"transferId":"0xabc"}`, w.Body.String())
	assert.Equal(t, "true", w.Header().Get("X-Idempotency-Hit"))
	assert.Zero(t, handlerRuns)
}

func TestIdempotencyMiddleware_StoresSuccessfulResponse(t *testing.T) {
	hookRedis(t)
	var stored string
	redisGet = func(context.Context, string) (string, error) { return "", errors.New("redis: nil") }
	redisSetNX = func(context.Context, string, interface{}, time.Duration) (bool, error) { return true, nil }
	redisSet = func(_ context.Context, _ string, value interface{}, _ time.Duration) error {
		stored = value.(string)
		return nil
	}

	r := idempotencyRouter(func(c *gin.Context) { c.String(http.StatusCreated, `{"transferId":"0xabc"}`) })

	req := httptest.NewRequest(http.MethodPost, "/transfers", nil)
	req.Header.Set(IdempotencyHeader, "key-3")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, `{"transferId":"0xabc"}`, stored)
}

func TestIdempotencyMiddleware_ClearsLockOnFailure(t *testing.T) {
	hookRedis(t)
	deleted := false
	redisGet = func(context.Context, string) (string, error) { return "", errors.New("redis: nil") }
	redisSetNX = func(context.Context, string, interface{}, time.Duration) (bool, error) { return true, nil }
	redisSet = func(context.Context, string, interface{}, time.Duration) error {
		t.Fatal("failed responses must not be cached")
		return nil
	}
	redisDel = func(context.Context, string) error {
		deleted = true
		return nil
	}

	r := idempotencyRouter(func(c *gin.Context) { c.String(http.StatusBadGateway, `{"error":"bridge down"}`) })

	req := httptest.NewRequest(http.MethodPost, "/transfers", nil)
	req.Header.Set(IdempotencyHeader, "key-4")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.True(t, deleted)
}
