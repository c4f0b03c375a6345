package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// contractStatusByPhone serves the USSD "my contract" flow: the standing is
// reconciled on demand from the latest paid subscription for the phone.
func (s *Server) contractStatusByPhone(c *gin.Context) {
	phone := c.Query("phoneNumber")
	if phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phoneNumber is required"})
		return
	}

	standing, err := s.contractSvc.StatusByPhoneNumber(c.Request.Context(), phone)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, standing)
}

func (s *Server) contractStatusByNumber(c *gin.Context) {
	standing, err := s.contractSvc.StatusByContractNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, standing)
}
