package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type insuranceResponse struct {
	ID               string `json:"id"`
	ProductName      string `json:"productName"`
	MembershipAmount int64  `json:"membershipAmount"`
}

func (s *Server) listInsurances(c *gin.Context) {
	insurances, err := s.insuranceRepo.ListInsurances(c.Request.Context(), s.db)
	if err != nil {
		s.respondError(c, err)
		return
	}

	out := make([]insuranceResponse, 0, len(insurances))
	for _, insurance := range insurances {
		out = append(out, insuranceResponse{
			ID:               insurance.ID.String(),
			ProductName:      insurance.ProductName,
			MembershipAmount: insurance.MembershipAmount,
		})
	}
	c.JSON(http.StatusOK, gin.H{"insurances": out})
}
