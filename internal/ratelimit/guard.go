// Package ratelimit holds the duplicate-submission guard for the public
// order endpoint. It is a best-effort redis lock: without redis configured
// every acquisition succeeds, so a dev setup never blocks on it.
package ratelimit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultGuardTTL = 30 * time.Second

type SubmitGuard struct {
	client *redis.Client
	log    *zap.Logger
	ttl    time.Duration
}

func NewSubmitGuard(client *redis.Client, log *zap.Logger) *SubmitGuard {
	return &SubmitGuard{
		client: client,
		log:    log.Named("ratelimit.guard"),
		ttl:    defaultGuardTTL,
	}
}

var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Acquire claims the key for the guard TTL. The returned release func
// frees it early on terminal failures so the caller can retry; on success
// the key is left to expire, covering rapid double submits. Redis errors
// fail open.
func (g *SubmitGuard) Acquire(ctx context.Context, key string) (release func(), ok bool) {
	noop := func() {}
	if g.client == nil || key == "" {
		return noop, true
	}

	token := uuid.NewString()
	acquired, err := g.client.SetNX(ctx, "order:submit:"+key, token, g.ttl).Result()
	if err != nil {
		g.log.Warn("submit guard unavailable", zap.Error(err))
		return noop, true
	}
	if !acquired {
		return noop, false
	}

	return func() {
		rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(rctx, g.client, []string{"order:submit:" + key}, token).Err(); err != nil && err != redis.Nil {
			g.log.Warn("submit guard release failed", zap.Error(err))
		}
	}, true
}
