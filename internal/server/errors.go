package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/storefront/internal/auth"
	"github.com/smallbiznis/storefront/internal/cardvault"
	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	customerdomain "github.com/smallbiznis/storefront/internal/customer/domain"
	directorydomain "github.com/smallbiznis/storefront/internal/directory/domain"
	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
	paymentdomain "github.com/smallbiznis/storefront/internal/payment/domain"
	"gorm.io/gorm"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrNotFound       = errors.New("not_found")
	ErrInternal       = errors.New("internal")
)

// ErrorHandlingMiddleware turns collected handler errors into the JSON
// error envelope. Handlers report failures with AbortWithError and
// never write error bodies themselves.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthenticated",
			Message: "missing or invalid bearer token",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "resource not found",
		}
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    err.Error(),
			Message: validationMessage(err),
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal",
			Message: "internal server error",
		}
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, paymentdomain.ErrNotFound),
		errors.Is(err, orderdomain.ErrNotFound),
		errors.Is(err, catalogdomain.ErrNotFound),
		errors.Is(err, directorydomain.ErrNotFound),
		errors.Is(err, customerdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, paymentdomain.ErrInvalidAmount),
		errors.Is(err, paymentdomain.ErrInvalidCurrency),
		errors.Is(err, paymentdomain.ErrInvalidMethod),
		errors.Is(err, paymentdomain.ErrInvalidOrder),
		errors.Is(err, paymentdomain.ErrInvalidState),
		errors.Is(err, orderdomain.ErrEmptyItems),
		errors.Is(err, orderdomain.ErrInvalidItem),
		errors.Is(err, orderdomain.ErrInvalidProduct),
		errors.Is(err, orderdomain.ErrInvalidCustomer),
		errors.Is(err, orderdomain.ErrInvalidTransition):
		return true
	default:
		return false
	}
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, paymentdomain.ErrInvalidAmount):
		return "amount must be a positive integer within the allowed range"
	case errors.Is(err, paymentdomain.ErrInvalidCurrency):
		return "currency is not supported"
	case errors.Is(err, paymentdomain.ErrInvalidOrder):
		return "order does not exist"
	case errors.Is(err, paymentdomain.ErrInvalidState),
		errors.Is(err, orderdomain.ErrInvalidTransition):
		return "operation not allowed in the current state"
	case errors.Is(err, orderdomain.ErrEmptyItems):
		return "order must contain at least one item"
	case errors.Is(err, orderdomain.ErrInvalidProduct):
		return "item references an unknown product"
	case errors.Is(err, orderdomain.ErrInvalidCustomer):
		return "customer does not exist"
	default:
		return "invalid request"
	}
}

// classifyErrorForLog keeps expected request failures out of the error
// log level.
func classifyErrorForLog(err error) string {
	if err == nil {
		return "none"
	}
	if errors.Is(err, auth.ErrInvalidToken) {
		return "auth"
	}
	if isNotFoundError(err) || isValidationError(err) {
		return "client"
	}
	if errors.Is(err, cardvault.ErrUnavailable) {
		return "dependency"
	}
	return "server"
}
