package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
	"github.com/smallbiznis/storefront/pkg/pagination"
)

type createOrderRequest struct {
	CustomerID string                    `json:"customerId"`
	Items      []orderdomain.ItemRequest `json:"items"`
	Shipping   orderdomain.Shipping      `json:"shipping"`
}

func (s *Server) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.orderSvc.Create(c.Request.Context(), orderdomain.CreateRequest{
		CustomerID: strings.TrimSpace(req.CustomerID),
		Items:      req.Items,
		Shipping:   req.Shipping,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (s *Server) ListOrders(c *gin.Context) {
	page := pagination.NewOffset(
		parseIntParam(c.Query("limit"), pagination.DefaultLimit),
		parseIntParam(c.Query("offset"), 0),
	)

	resp, err := s.orderSvc.List(c.Request.Context(), page)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetOrderByID(c *gin.Context) {
	resp, err := s.orderSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
