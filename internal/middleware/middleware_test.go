package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestLoggingMiddleware(t *testing.T) {
	handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest("POST", "/orders", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	// The recorder must pass the real status through to the client.
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	handler := RateLimitMiddleware(okHandler())

	t.Run("StrictTierBlocksAfterBurst", func(t *testing.T) {
		blocked := 0
		for i := 0; i < burstStrict+2; i++ {
			req := httptest.NewRequest("POST", "/webhook", nil)
			req.RemoteAddr = "10.0.0.1:5555"
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code == http.StatusTooManyRequests {
				blocked++
			}
		}
		assert.Greater(t, blocked, 0, "strict tier must throttle a burst")
	})

	t.Run("GeneralTierAllowsBurst", func(t *testing.T) {
		for i := 0; i < burstGeneral; i++ {
			req := httptest.NewRequest("GET", "/orders/order_x", nil)
			req.RemoteAddr = "10.0.0.2:5555"
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
		}
	})

	t.Run("SeparateIPsSeparateBuckets", func(t *testing.T) {
		for _, addr := range []string{"10.0.0.3:1", "10.0.0.4:1"} {
			req := httptest.NewRequest("POST", "/send_webhook", nil)
			req.RemoteAddr = addr
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
		}
	})
}

func TestResolveRateTier(t *testing.T) {
	t.Run("WebhookPathsAreStrict", func(t *testing.T) {
		for _, path := range []string{"/send_webhook", "/webhook"} {
			req := httptest.NewRequest("POST", path, nil)
			_, _, tier := resolveRateTier(req)
			assert.Equal(t, "strict", tier)
		}
	})

	t.Run("OtherPathsAreGeneral", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/orders", nil)
		_, _, tier := resolveRateTier(req)
		assert.Equal(t, "general", tier)
	})
}
