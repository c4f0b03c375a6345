package server

import (
	"net/http"

	premiumdomain "github.com/belifehq/belife/internal/premium/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

type createPremiumRequest struct {
	ContractID       string `json:"contractId" binding:"required"`
	Amount           int64  `json:"amount" binding:"required"`
	PaymentMode      string `json:"paymentMode" binding:"required"`
	PaymentReference string `json:"paymentReference" binding:"required"`
}

type premiumResponse struct {
	ID               string `json:"id"`
	ContractID       string `json:"contractId"`
	Amount           int64  `json:"amount"`
	PaymentMode      string `json:"paymentMode"`
	PaymentStatus    string `json:"paymentStatus"`
	PaymentReference string `json:"paymentReference"`
}

func toPremiumResponse(premium *premiumdomain.Premium) premiumResponse {
	return premiumResponse{
		ID:               premium.ID.String(),
		ContractID:       premium.ContractID.String(),
		Amount:           premium.Amount,
		PaymentMode:      string(premium.PaymentMode),
		PaymentStatus:    string(premium.PaymentStatus),
		PaymentReference: premium.PaymentReference,
	}
}

func (s *Server) createPremium(c *gin.Context) {
	var req createPremiumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contractID, err := snowflake.ParseString(req.ContractID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract id"})
		return
	}

	premium, err := s.premiumSvc.Create(c.Request.Context(), premiumdomain.CreatePremiumRequest{
		ContractID:       contractID,
		Amount:           req.Amount,
		PaymentMode:      premiumdomain.PaymentMode(req.PaymentMode),
		PaymentReference: req.PaymentReference,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"premium": toPremiumResponse(premium)})
}

func (s *Server) listPremiums(c *gin.Context) {
	contractID, err := snowflake.ParseString(c.Query("contractId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract id"})
		return
	}

	premiums, err := s.premiumSvc.ListByContract(c.Request.Context(), contractID)
	if err != nil {
		s.respondError(c, err)
		return
	}

	out := make([]premiumResponse, 0, len(premiums))
	for i := range premiums {
		out = append(out, toPremiumResponse(&premiums[i]))
	}
	c.JSON(http.StatusOK, gin.H{"premiums": out})
}

func (s *Server) confirmPremiumPayment(c *gin.Context) {
	id, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid premium id"})
		return
	}

	var req confirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	premium, err := s.premiumSvc.ConfirmPayment(c.Request.Context(), id, premiumdomain.PaymentStatus(req.Status))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"premium": toPremiumResponse(premium)})
}
