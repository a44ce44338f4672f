package http

import (
	"errors"
	"net/http"

	"github.com/basit438/popacart-backend/internal/entity"
	"github.com/basit438/popacart-backend/internal/logging"
	"github.com/basit438/popacart-backend/internal/usecase"
	"github.com/gin-gonic/gin"
)

// statusFor maps domain sentinels onto the HTTP taxonomy. Anything
// unrecognized is a 500 and its detail never reaches the client.
func statusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrInvalidQuantity),
		errors.Is(err, entity.ErrInvalidPrice),
		errors.Is(err, entity.ErrInvalidShipping),
		errors.Is(err, entity.ErrInvalidPayment),
		errors.Is(err, entity.ErrInvalidCouponInput),
		errors.Is(err, entity.ErrCouponInactive),
		errors.Is(err, entity.ErrCouponExpired),
		errors.Is(err, entity.ErrCouponExhausted),
		errors.Is(err, entity.ErrMinPurchaseNotMet):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrCartNotFound),
		errors.Is(err, entity.ErrCartLineNotFound),
		errors.Is(err, entity.ErrProductNotFound),
		errors.Is(err, entity.ErrCouponNotFound),
		errors.Is(err, entity.ErrOrderNotFound),
		errors.Is(err, entity.ErrUserNotFound),
		errors.Is(err, entity.ErrEmptyCart):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrCouponExists),
		errors.Is(err, entity.ErrUserExists),
		errors.Is(err, entity.ErrInsufficientStock),
		errors.Is(err, usecase.ErrDuplicateOrder):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logging.From(c).Error("request failed", "err", err)
		msg = "internal server error"
	}
	c.JSON(status, gin.H{"success": false, "message": msg})
}
