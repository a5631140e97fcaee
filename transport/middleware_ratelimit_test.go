package transport_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bondyapp/bondy/transport"
)

func limitedHandler(t *testing.T, ceiling int, trustProxy bool) http.Handler {
	t.Helper()
	mw := transport.RateLimitMiddleware(time.Minute, ceiling, trustProxy)
	return mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func doRequest(h http.Handler, remoteAddr, forwardedFor string) int {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("ceiling reached returns 429 with Retry-After", func(t *testing.T) {
		h := limitedHandler(t, 2, false)

		for i := 0; i < 2; i++ {
			if code := doRequest(h, "10.0.0.1:4000", ""); code != http.StatusOK {
				t.Fatalf("request %d: status = %d, want 200", i+1, code)
			}
		}

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:4000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusTooManyRequests {
			t.Fatalf("status = %d, want 429", rec.Code)
		}
		if rec.Header().Get("Retry-After") == "" {
			t.Fatal("missing Retry-After header")
		}
	})

	t.Run("forwarded header cannot dodge the limiter by default", func(t *testing.T) {
		h := limitedHandler(t, 1, false)

		if code := doRequest(h, "10.0.0.1:4000", "1.1.1.1"); code != http.StatusOK {
			t.Fatalf("first request: status = %d, want 200", code)
		}
		// Same peer, different spoofed header: still the same bucket
		if code := doRequest(h, "10.0.0.1:4000", "2.2.2.2"); code != http.StatusTooManyRequests {
			t.Fatalf("spoofed request: status = %d, want 429", code)
		}
	})

	t.Run("behind a trusted proxy the right-most hop keys the bucket", func(t *testing.T) {
		h := limitedHandler(t, 1, true)

		if code := doRequest(h, "10.0.0.1:4000", "9.9.9.9, 1.1.1.1"); code != http.StatusOK {
			t.Fatalf("first client: status = %d, want 200", code)
		}
		// Different proxy-appended address, same socket: separate bucket
		if code := doRequest(h, "10.0.0.1:4000", "9.9.9.9, 2.2.2.2"); code != http.StatusOK {
			t.Fatalf("second client: status = %d, want 200", code)
		}
		// The first client is exhausted regardless of earlier hops it claims
		if code := doRequest(h, "10.0.0.1:4000", "8.8.8.8, 1.1.1.1"); code != http.StatusTooManyRequests {
			t.Fatalf("repeat client: status = %d, want 429", code)
		}
	})

	t.Run("different peers get independent buckets", func(t *testing.T) {
		h := limitedHandler(t, 1, false)

		if code := doRequest(h, "10.0.0.1:4000", ""); code != http.StatusOK {
			t.Fatalf("peer one: status = %d, want 200", code)
		}
		if code := doRequest(h, "10.0.0.2:4000", ""); code != http.StatusOK {
			t.Fatalf("peer two: status = %d, want 200", code)
		}
		if code := doRequest(h, "10.0.0.1:4000", ""); code != http.StatusTooManyRequests {
			t.Fatalf("peer one repeat: status = %d, want 429", code)
		}
	})
}
