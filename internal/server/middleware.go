package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/heartlink/heartlink/internal/donorctx"
)

const (
	HeaderDonor     = "X-Donor-ID"
	HeaderOrphanage = "X-Orphanage-ID"
)

// IdentityContext lifts the caller identity headers, set by the upstream
// auth gateway, into the request context. Missing headers are fine here,
// per-route guards decide what is required.
func IdentityContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if donorID, ok := parseIdentityHeader(c.GetHeader(HeaderDonor)); ok {
			ctx = donorctx.WithDonorID(ctx, donorID)
		}
		if orphanageID, ok := parseIdentityHeader(c.GetHeader(HeaderOrphanage)); ok {
			ctx = donorctx.WithOrphanageID(ctx, orphanageID)
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// DonorRequired rejects requests without a donor identity.
func (s *Server) DonorRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := donorctx.DonorIDFromContext(c.Request.Context()); !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		c.Next()
	}
}

// OrphanageRequired rejects requests without an orphanage identity.
func (s *Server) OrphanageRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := donorctx.OrphanageIDFromContext(c.Request.Context()); !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		c.Next()
	}
}

func parseIdentityHeader(value string) (snowflake.ID, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, false
	}
	parsed, err := snowflake.ParseString(trimmed)
	if err != nil || parsed == 0 {
		return 0, false
	}
	return parsed, true
}
