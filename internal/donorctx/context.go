package donorctx

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// DonorContextKey is the request context key for the acting donor ID.
type DonorContextKey struct{}

// OrphanageContextKey is the request context key for the acting orphanage ID.
type OrphanageContextKey struct{}

// WithDonorID stores the donor ID in the context.
func WithDonorID(ctx context.Context, donorID snowflake.ID) context.Context {
	return context.WithValue(ctx, DonorContextKey{}, donorID)
}

// WithOrphanageID stores the orphanage ID in the context.
func WithOrphanageID(ctx context.Context, orphanageID snowflake.ID) context.Context {
	return context.WithValue(ctx, OrphanageContextKey{}, orphanageID)
}

// DonorIDFromContext returns the donor ID from context, if set.
func DonorIDFromContext(ctx context.Context) (snowflake.ID, bool) {
	return idFromContext(ctx, DonorContextKey{})
}

// OrphanageIDFromContext returns the orphanage ID from context, if set.
func OrphanageIDFromContext(ctx context.Context) (snowflake.ID, bool) {
	return idFromContext(ctx, OrphanageContextKey{})
}

func idFromContext(ctx context.Context, key any) (snowflake.ID, bool) {
	if ctx == nil {
		return 0, false
	}

	switch typed := ctx.Value(key).(type) {
	case snowflake.ID:
		if typed != 0 {
			return typed, true
		}
	case int64:
		if typed != 0 {
			return snowflake.ID(typed), true
		}
	case string:
		parsed, err := snowflake.ParseString(strings.TrimSpace(typed))
		if err == nil && parsed != 0 {
			return parsed, true
		}
	}
	return 0, false
}
