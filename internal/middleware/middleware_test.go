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

func TestLimitMiddleware_PerClient(t *testing.T) {
	limiter := NewIPRateLimiter(0.001, 2)
	h := limiter.LimitMiddleware(okHandler())

	codes := func(addr string, n int) []int {
		out := make([]int, n)
		for i := range out {
			req := httptest.NewRequest(http.MethodGet, "/api/tools/olson/defaults", nil)
			req.RemoteAddr = addr
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			out[i] = rec.Code
		}
		return out
	}

	assert.Equal(t, []int{200, 200, 429}, codes("10.0.0.1:5000", 3))
	// a new source port is the same client
	assert.Equal(t, []int{429}, codes("10.0.0.1:5001", 1))
	assert.Equal(t, []int{200}, codes("10.0.0.2:5000", 1))
}

func TestIPRateLimiter_AllowSharesBucketWithMiddleware(t *testing.T) {
	limiter := NewIPRateLimiter(0.001, 2)
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.RemoteAddr = "10.0.0.3:4000"

	assert.True(t, limiter.Allow(req))

	rec := httptest.NewRecorder()
	limiter.LimitMiddleware(okHandler()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.False(t, limiter.Allow(req))
}

func TestCORS_Preflight(t *testing.T) {
	h := CORS(okHandler())
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/tools/olson/calc", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLogging_PassesThrough(t *testing.T) {
	h := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "nope\n", rec.Body.String())
}
