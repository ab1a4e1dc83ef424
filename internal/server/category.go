package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListCategories(c *gin.Context) {
	resp, err := s.categorySvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"categories": resp}})
}

func (s *Server) GetCategoryByID(c *gin.Context) {
	resp, err := s.categorySvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// ResolveCategory maps a category name onto its ID. Unknown names resolve
// to a null ID rather than an error.
func (s *Server) ResolveCategory(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		AbortWithError(c, newValidationError("name", "invalid_name", "name is required"))
		return
	}

	id, err := s.categorySvc.ResolveIDByName(c.Request.Context(), name)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if id == nil {
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"id": nil}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"id": id.String()}})
}
