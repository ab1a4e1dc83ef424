package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	needdomain "github.com/heartlink/heartlink/internal/need/domain"
)

type createNeedRequest struct {
	CategoryID  string `json:"category_id"`
	ItemName    string `json:"item_name"`
	Quantity    string `json:"quantity"`
	Priority    string `json:"priority"`
	Description string `json:"description"`
}

func (s *Server) CreateNeed(c *gin.Context) {
	var req createNeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.needSvc.Create(c.Request.Context(), needdomain.CreateNeedRequest{
		Form: needdomain.NeedForm{
			CategoryID:  strings.TrimSpace(req.CategoryID),
			ItemName:    req.ItemName,
			Quantity:    strings.TrimSpace(req.Quantity),
			Priority:    strings.TrimSpace(req.Priority),
			Description: req.Description,
		},
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) GetNeedByID(c *gin.Context) {
	resp, err := s.needSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateNeedRequest struct {
	ItemName    *string `json:"item_name"`
	Description *string `json:"description"`
	Quantity    *int    `json:"quantity"`
	Priority    *string `json:"priority"`
	CategoryID  *string `json:"category_id"`
}

func (s *Server) UpdateNeed(c *gin.Context) {
	var req updateNeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	update := needdomain.UpdateNeedRequest{
		ItemName:    req.ItemName,
		Description: req.Description,
		Quantity:    req.Quantity,
		CategoryID:  req.CategoryID,
	}
	if req.Priority != nil {
		priority, ok := needdomain.ParsePriority(*req.Priority)
		if !ok {
			AbortWithError(c, newValidationError("priority", "invalid_priority", "priority must be one of LOW, MEDIUM, HIGH, URGENT"))
			return
		}
		update.Priority = &priority
	}

	resp, err := s.needSvc.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) FulfillNeed(c *gin.Context) {
	resp, err := s.needSvc.MarkFulfilled(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CancelNeed(c *gin.Context) {
	resp, err := s.needSvc.Cancel(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteNeed(c *gin.Context) {
	if err := s.needSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) ListOrphanageNeeds(c *gin.Context) {
	var query struct {
		Status   string `form:"status"`
		Priority string `form:"priority"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.needSvc.ListByOrphanage(c.Request.Context(), strings.TrimSpace(c.Param("id")), needdomain.ListNeedRequest{
		Status:   strings.TrimSpace(query.Status),
		Priority: strings.TrimSpace(query.Priority),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"needs": resp}})
}

func (s *Server) OrphanageNeedsStatistics(c *gin.Context) {
	resp, err := s.needSvc.Statistics(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
