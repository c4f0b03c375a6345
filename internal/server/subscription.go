package server

import (
	"errors"
	"net/http"
	"time"

	subscriptiondomain "github.com/belifehq/belife/internal/subscription/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

type createSubscriptionRequest struct {
	CustomerFullName     string     `json:"customerFullName" binding:"required"`
	CustomerPhoneNumber  string     `json:"customerPhoneNumber" binding:"required"`
	CustomerBirthDate    *time.Time `json:"customerBirthDate"`
	BeneficiaryFullName  string     `json:"beneficiaryFullName" binding:"required"`
	BeneficiaryBirthDate *time.Time `json:"beneficiaryBirthDate"`
	InsuranceID          string     `json:"insuranceId" binding:"required"`
	PremiumFeeID         string     `json:"premiumFeeId" binding:"required"`
	PaymentMode          string     `json:"paymentMode" binding:"required"`
	PaymentReference     string     `json:"paymentReference" binding:"required"`
}

type subscriptionResponse struct {
	ID               string `json:"id"`
	CustomerID       string `json:"customerId"`
	PhoneNumber      string `json:"phoneNumber"`
	PremiumPlan      int64  `json:"premiumPlan"`
	PaymentMode      string `json:"paymentMode"`
	PaymentStatus    string `json:"paymentStatus"`
	PaymentReference string `json:"paymentReference"`
}

func toSubscriptionResponse(sub *subscriptiondomain.Subscription) subscriptionResponse {
	return subscriptionResponse{
		ID:               sub.ID.String(),
		CustomerID:       sub.CustomerID.String(),
		PhoneNumber:      sub.PhoneNumber,
		PremiumPlan:      sub.PremiumPlan,
		PaymentMode:      string(sub.PaymentMode),
		PaymentStatus:    string(sub.PaymentStatus),
		PaymentReference: sub.PaymentReference,
	}
}

// createSubscription runs the admission flow. Rejections are a normal USSD
// outcome, reported with accepted=false and the rule's message rather than
// an error status.
func (s *Server) createSubscription(c *gin.Context) {
	var req createSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	insuranceID, err := snowflake.ParseString(req.InsuranceID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid insuranceId"})
		return
	}
	feeID, err := snowflake.ParseString(req.PremiumFeeID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid premiumFeeId"})
		return
	}

	sub, err := s.subSvc.Create(c.Request.Context(), subscriptiondomain.CreateSubscriptionRequest{
		CustomerFullName:     req.CustomerFullName,
		CustomerPhoneNumber:  req.CustomerPhoneNumber,
		CustomerBirthDate:    req.CustomerBirthDate,
		BeneficiaryFullName:  req.BeneficiaryFullName,
		BeneficiaryBirthDate: req.BeneficiaryBirthDate,
		InsuranceID:          insuranceID,
		PremiumFeeID:         feeID,
		PaymentMode:          subscriptiondomain.PaymentMode(req.PaymentMode),
		PaymentReference:     req.PaymentReference,
	})
	if err != nil {
		if errors.Is(err, subscriptiondomain.ErrAdmissionRejected) {
			c.JSON(http.StatusOK, gin.H{"accepted": false, "message": err.Error()})
			return
		}
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"accepted":     true,
		"message":      "subscription accepted",
		"subscription": toSubscriptionResponse(sub),
	})
}

type confirmPaymentRequest struct {
	Status string `json:"status" binding:"required"`
}

func (s *Server) confirmSubscriptionPayment(c *gin.Context) {
	id, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subscription id"})
		return
	}

	var req confirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := s.subSvc.ConfirmPayment(c.Request.Context(), id, subscriptiondomain.PaymentStatus(req.Status))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscription": toSubscriptionResponse(sub)})
}

func (s *Server) listCustomerSubscriptions(c *gin.Context) {
	customerID, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
		return
	}

	subs, err := s.subSvc.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		s.respondError(c, err)
		return
	}

	out := make([]subscriptionResponse, 0, len(subs))
	for i := range subs {
		out = append(out, toSubscriptionResponse(&subs[i]))
	}
	c.JSON(http.StatusOK, gin.H{"subscriptions": out})
}

func (s *Server) listAutoDebitSubscriptions(c *gin.Context) {
	subs, err := s.subSvc.ListAutoDebitSuccessful(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}

	out := make([]subscriptionResponse, 0, len(subs))
	for i := range subs {
		out = append(out, toSubscriptionResponse(&subs[i]))
	}
	c.JSON(http.StatusOK, gin.H{"subscriptions": out})
}
