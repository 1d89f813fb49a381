package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brad-b-miller/miller-academy-fundraise/cart"
	"github.com/brad-b-miller/miller-academy-fundraise/models"
)

type CheckoutHandler struct {
	cartHandler *CartHandler
	payment     []models.PaymentOption
}

func NewCheckoutHandler(cartHandler *CartHandler, payment []models.PaymentOption) *CheckoutHandler {
	return &CheckoutHandler{
		cartHandler: cartHandler,
		payment:     payment,
	}
}

// Checkout handles POST /carts/{cartId}/checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	cartID := c.Param("cartId")

	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	composer, exists := h.cartHandler.Lookup(cartID)
	if !exists {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "NOT_FOUND",
			Message: "Cart not found",
		})
		return
	}

	customer := models.Customer{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Message: req.Message,
	}

	total, err := composer.Submit(c.Request.Context(), customer)
	if err != nil {
		h.renderSubmitError(c, cartID, err)
		return
	}

	log.Printf("Submitted order for cart %s, total %d", cartID, total)

	c.JSON(http.StatusOK, models.CheckoutResponse{
		Total:   total,
		Payment: h.payment,
	})
}

func (h *CheckoutHandler) renderSubmitError(c *gin.Context, cartID string, err error) {
	if errors.Is(err, cart.ErrSubmitInFlight) {
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "SUBMISSION_IN_FLIGHT",
			Message: "A submission for this cart is already in progress",
		})
		return
	}

	var validationErr *cart.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "VALIDATION_ERROR",
			Message: validationErr.Reason,
		})
		return
	}

	var submissionErr *cart.SubmissionError
	if errors.As(err, &submissionErr) {
		log.Printf("Order submission failed for cart %s: %v", cartID, submissionErr.Err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "SUBMISSION_ERROR",
			Message: "There was an issue submitting your order. Please try again or contact us directly.",
		})
		return
	}

	log.Printf("Unexpected checkout error for cart %s: %v", cartID, err)
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "INTERNAL_ERROR",
		Message: "Unexpected error",
	})
}
