package server

import (
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/vocaai/console/internal/observability/obscontext"
	"github.com/vocaai/console/internal/storectx"
)

const HeaderStore = "X-Store-Id"

// StoreContext resolves the acting store from the X-Store-Id header and
// injects it into the request context. Console routes are store-scoped;
// the public surface never uses this.
func (s *Server) StoreContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(HeaderStore))
		if raw == "" {
			AbortWithError(c, ErrInvalidRequest)
			return
		}

		storeID, err := snowflake.ParseString(raw)
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}

		ctx := storectx.WithStoreID(c.Request.Context(), int64(storeID))
		ctx = obscontext.WithStoreID(ctx, storeID.String())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// rateLimiter is a fixed-window in-memory limiter for the public surface.
// It is per process; the redis submit guard handles cross-instance
// duplicate submits.
type rateLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	hits   map[string]*rateWindow
}

type rateWindow struct {
	count int
	reset time.Time
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		limit:  limit,
		window: window,
		hits:   make(map[string]*rateWindow),
	}
}

func (l *rateLimiter) Allow(key string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.hits[key]
	if w == nil || now.After(w.reset) {
		if len(l.hits) > 10000 {
			l.prune(now)
		}
		l.hits[key] = &rateWindow{count: 1, reset: now.Add(l.window)}
		return true
	}

	w.count++
	return w.count <= l.limit
}

func (l *rateLimiter) prune(now time.Time) {
	for key, w := range l.hits {
		if now.After(w.reset) {
			delete(l.hits, key)
		}
	}
}

func (s *Server) publicRateLimit(limiter *rateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			AbortWithError(c, ErrTooManyRequests)
			return
		}
		c.Next()
	}
}
