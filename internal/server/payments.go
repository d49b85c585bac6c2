package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	paymentdomain "github.com/smallbiznis/storefront/internal/payment/domain"
)

type createPaymentRequest struct {
	Amount        int64                       `json:"amount"`
	Currency      string                      `json:"currency"`
	OrderID       string                      `json:"orderId"`
	PaymentMethod paymentdomain.MethodRequest `json:"paymentMethod"`
}

type createRefundRequest struct {
	Amount int64 `json:"amount"`
}

func (s *Server) CreatePayment(c *gin.Context) {
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.paymentSvc.Create(c.Request.Context(), paymentdomain.CreateRequest{
		Amount:        req.Amount,
		Currency:      strings.TrimSpace(req.Currency),
		OrderID:       strings.TrimSpace(req.OrderID),
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (s *Server) GetPaymentByID(c *gin.Context) {
	resp, err := s.paymentSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) CreateRefund(c *gin.Context) {
	var req createRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.paymentSvc.Refund(c.Request.Context(), c.Param("id"), req.Amount)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}
