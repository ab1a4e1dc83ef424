package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/heartlink/heartlink/internal/config"
	redis "github.com/redis/go-redis/v9"
)

const keyDonationSubmit = "donation:submit:donor:%s"

// DonationSubmitLimiter throttles donation submissions per donor. Disabled
// configuration yields a nil limiter, which allows everything.
type DonationSubmitLimiter struct {
	enabled bool

	bucket *TokenBucket
	rate   float64
	burst  int
}

func NewDonationSubmitLimiter(cfg config.Config) (*DonationSubmitLimiter, error) {
	limitCfg := cfg.RateLimit
	if !limitCfg.Enabled {
		return nil, nil
	}

	addr := strings.TrimSpace(limitCfg.RedisAddr)
	if addr == "" {
		return nil, errors.New("rate limit redis addr is required")
	}
	if limitCfg.DonationSubmitRate <= 0 || limitCfg.DonationSubmitBurst <= 0 {
		return nil, errors.New("donation submit rate limit must be positive")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(limitCfg.RedisPassword),
		DB:       limitCfg.RedisDB,
	})

	return &DonationSubmitLimiter{
		enabled: true,
		bucket:  NewTokenBucket(client),
		rate:    limitCfg.DonationSubmitRate,
		burst:   limitCfg.DonationSubmitBurst,
	}, nil
}

func (l *DonationSubmitLimiter) Enabled() bool {
	return l != nil && l.enabled
}

func (l *DonationSubmitLimiter) AllowDonor(ctx context.Context, donorID string) (bool, error) {
	if !l.Enabled() {
		return true, nil
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyDonationSubmit, strings.TrimSpace(donorID)), l.rate, l.burst)
}
