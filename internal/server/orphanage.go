package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	orphanagedomain "github.com/heartlink/heartlink/internal/orphanage/domain"
	"github.com/heartlink/heartlink/pkg/db/pagination"
)

func (s *Server) CreateOrphanage(c *gin.Context) {
	var req orphanagedomain.CreateOrphanageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.orphanageSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListOrphanages(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Search   string `form:"search"`
		Verified string `form:"verified"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	verified, err := parseOptionalBool(query.Verified)
	if err != nil {
		AbortWithError(c, newValidationError("verified", "invalid_verified", "invalid verified"))
		return
	}

	resp, err := s.orphanageSvc.List(c.Request.Context(), orphanagedomain.ListOrphanageRequest{
		Search:    strings.TrimSpace(query.Search),
		Verified:  verified,
		PageToken: query.PageToken,
		PageSize:  int32(query.PageSize),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetOrphanageByID(c *gin.Context) {
	resp, err := s.orphanageSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetOrphanageBySlug(c *gin.Context) {
	resp, err := s.orphanageSvc.GetBySlug(c.Request.Context(), strings.TrimSpace(c.Param("slug")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
