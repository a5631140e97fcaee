package transport

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/bondyapp/bondy/constant"
	cerr "github.com/bondyapp/bondy/utils/errors"
)

// RateLimitMiddleware caps each client IP at ceiling requests per window
// using a token bucket. Idle buckets are dropped after a few windows.
// trustProxy must only be set when a proxy in front of the service
// overwrites X-Forwarded-For; otherwise clients pick their own bucket.
func RateLimitMiddleware(window time.Duration, ceiling int, trustProxy bool) mux.MiddlewareFunc {
	if window <= 0 {
		window = time.Minute
	}
	if ceiling <= 0 {
		ceiling = 120
	}

	type bucket struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}

	var (
		mu      sync.Mutex
		buckets = map[string]*bucket{}
	)

	limit := rate.Every(window / time.Duration(ceiling))

	// Periodic sweep of idle entries
	go func() {
		ticker := time.NewTicker(window)
		defer ticker.Stop()
		for range ticker.C {
			mu.Lock()
			for ip, b := range buckets {
				if time.Since(b.lastSeen) > 3*window {
					delete(buckets, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r, trustProxy)

			mu.Lock()
			b, ok := buckets[ip]
			if !ok {
				b = &bucket{limiter: rate.NewLimiter(limit, ceiling)}
				buckets[ip] = b
			}
			b.lastSeen = time.Now()
			mu.Unlock()

			if !b.limiter.Allow() {
				w.Header().Set("Retry-After", window.String())
				writeError(w, cerr.SetCustomError(constant.ErrTooManyRequests))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		// Right-most entry is the one appended by our own proxy
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			parts := strings.Split(fwd, ",")
			return strings.TrimSpace(parts[len(parts)-1])
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
