package server

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	donationdomain "github.com/heartlink/heartlink/internal/donation/domain"
	"github.com/heartlink/heartlink/internal/donorctx"
	"github.com/heartlink/heartlink/pkg/db/pagination"
)

type createDonationRequest struct {
	OrphanageID        string `json:"orphanage_id"`
	CategoryID         string `json:"category_id"`
	NeedID             string `json:"need_id"`
	Type               string `json:"type"`
	Amount             string `json:"amount"`
	Currency           string `json:"currency"`
	ItemDescription    string `json:"item_description"`
	Quantity           string `json:"quantity"`
	Note               string `json:"note"`
	IsAnonymous        bool   `json:"is_anonymous"`
	IsRecurring        bool   `json:"is_recurring"`
	RecurringFrequency string `json:"recurring_frequency"`
}

func (s *Server) CreateDonation(c *gin.Context) {
	var req createDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if s.submitLimiter.Enabled() {
		donorID, _ := donorctx.DonorIDFromContext(c.Request.Context())
		allowed, err := s.submitLimiter.AllowDonor(c.Request.Context(), donorID.String())
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if !allowed {
			AbortWithError(c, ErrRateLimited)
			return
		}
	}

	resp, err := s.donationSvc.Create(c.Request.Context(), donationdomain.CreateDonationRequest{
		Form: donationdomain.DonationForm{
			OrphanageID:        strings.TrimSpace(req.OrphanageID),
			CategoryID:         strings.TrimSpace(req.CategoryID),
			NeedID:             strings.TrimSpace(req.NeedID),
			Type:               strings.TrimSpace(req.Type),
			Amount:             strings.TrimSpace(req.Amount),
			Currency:           strings.TrimSpace(req.Currency),
			ItemDescription:    req.ItemDescription,
			Quantity:           strings.TrimSpace(req.Quantity),
			Note:               req.Note,
			IsAnonymous:        req.IsAnonymous,
			IsRecurring:        req.IsRecurring,
			RecurringFrequency: strings.TrimSpace(req.RecurringFrequency),
		},
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) GetDonationByID(c *gin.Context) {
	resp, err := s.donationSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ConfirmDonation(c *gin.Context) {
	resp, err := s.donationSvc.Confirm(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CompleteDonation(c *gin.Context) {
	resp, err := s.donationSvc.Complete(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CancelDonation(c *gin.Context) {
	resp, err := s.donationSvc.Cancel(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteDonation(c *gin.Context) {
	if err := s.donationSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) ListMyDonations(c *gin.Context) {
	req, err := bindDonationListQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.donationSvc.ListByDonor(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListOrphanageDonations(c *gin.Context) {
	req, err := bindDonationListQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.donationSvc.ListByOrphanage(c.Request.Context(), strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) MyDonationStatistics(c *gin.Context) {
	resp, err := s.donationSvc.StatisticsForDonor(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) OrphanageDonationStatistics(c *gin.Context) {
	resp, err := s.donationSvc.StatisticsForOrphanage(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DonationReceipt(c *gin.Context) {
	reader, err := s.donationSvc.Receipt(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `attachment; filename="donation-receipt.pdf"`)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}

func bindDonationListQuery(c *gin.Context) (donationdomain.ListDonationRequest, error) {
	var query struct {
		pagination.Pagination
		Status      string `form:"status"`
		Type        string `form:"type"`
		NeedID      string `form:"need_id"`
		CreatedFrom string `form:"created_from"`
		CreatedTo   string `form:"created_to"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		return donationdomain.ListDonationRequest{}, invalidRequestError()
	}

	createdFrom, err := parseOptionalTime(query.CreatedFrom, false)
	if err != nil {
		return donationdomain.ListDonationRequest{}, newValidationError("created_from", "invalid_created_from", "invalid created_from")
	}
	createdTo, err := parseOptionalTime(query.CreatedTo, true)
	if err != nil {
		return donationdomain.ListDonationRequest{}, newValidationError("created_to", "invalid_created_to", "invalid created_to")
	}

	return donationdomain.ListDonationRequest{
		Status:      strings.TrimSpace(query.Status),
		Type:        strings.TrimSpace(query.Type),
		NeedID:      strings.TrimSpace(query.NeedID),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
		PageToken:   query.PageToken,
		PageSize:    int32(query.PageSize),
	}, nil
}
