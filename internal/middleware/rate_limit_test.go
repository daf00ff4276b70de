package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"poll-service/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func newRateLimitTestRouter(rm *RateLimitMiddleware, requests int, window time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/vote",
		func(c *gin.Context) {
			c.Request = c.Request.WithContext(withUser(c.Request.Context(), &models.AuthUser{ID: "voter-1"}))
		},
		rm.RateLimit(requests, window),
		func(c *gin.Context) {
			c.Status(http.StatusOK)
		},
	)
	return engine
}

func TestRateLimitRejectsOverLimit(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	engine := newRateLimitTestRouter(NewRateLimitMiddleware(client), 2, time.Minute)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("POST", "/vote", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("Request %d should pass, got %d", i+1, w.Code)
		}
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("POST", "/vote", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429 over the limit, got %d", w.Code)
	}
}

// Rejected requests must not occupy window slots: a throttled client
// hammering retries gets unblocked as soon as its accepted requests age out,
// not never.
func TestRateLimitRejectionsDoNotConsumeSlots(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	engine := newRateLimitTestRouter(NewRateLimitMiddleware(client), 2, time.Minute)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("POST", "/vote", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("Request %d should pass, got %d", i+1, w.Code)
		}
	}
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("POST", "/vote", nil))
		if w.Code != http.StatusTooManyRequests {
			t.Fatalf("Retry %d should be rejected, got %d", i+1, w.Code)
		}
	}

	n, err := client.ZCard(context.Background(), "rate_limit:voter-1:/vote").Result()
	if err != nil {
		t.Fatalf("ZCard failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected only the 2 accepted requests recorded, got %d", n)
	}
}

func TestRateLimitPassThroughWithoutRedis(t *testing.T) {
	engine := newRateLimitTestRouter(NewRateLimitMiddleware(nil), 1, time.Minute)

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("POST", "/vote", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("Request %d should pass without a redis client, got %d", i+1, w.Code)
		}
	}
}
