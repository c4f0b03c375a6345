package server

import (
	"errors"
	"net/http"

	contractdomain "github.com/belifehq/belife/internal/contract/domain"
	premiumdomain "github.com/belifehq/belife/internal/premium/domain"
	subscriptiondomain "github.com/belifehq/belife/internal/subscription/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps domain sentinels onto HTTP statuses. Anything unmapped
// is an internal error; its detail stays in the logs.
func (s *Server) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, subscriptiondomain.ErrNotFound),
		errors.Is(err, subscriptiondomain.ErrInsuranceNotFound),
		errors.Is(err, subscriptiondomain.ErrPremiumFeeNotFound),
		errors.Is(err, contractdomain.ErrNotFound),
		errors.Is(err, premiumdomain.ErrNotFound),
		errors.Is(err, premiumdomain.ErrContractNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, subscriptiondomain.ErrAlreadyConfirmed),
		errors.Is(err, premiumdomain.ErrAlreadyConfirmed),
		errors.Is(err, premiumdomain.ErrDuplicateReference),
		errors.Is(err, contractdomain.ErrAlreadyTerminated):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, subscriptiondomain.ErrInvalidRequest),
		errors.Is(err, subscriptiondomain.ErrInvalidPaymentStatus),
		errors.Is(err, subscriptiondomain.ErrInvalidPaymentMode),
		errors.Is(err, premiumdomain.ErrInvalidPaymentStatus),
		errors.Is(err, premiumdomain.ErrInvalidPaymentMode),
		errors.Is(err, premiumdomain.ErrInvalidAmount),
		errors.Is(err, contractdomain.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.log.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
