package handlers

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/brad-b-miller/miller-academy-fundraise/cart"
	"github.com/brad-b-miller/miller-academy-fundraise/models"
)

// CartHandler owns the cart sessions. Each browser session gets its own
// composer, keyed by a uuid; sessions live in memory only and die with the
// process.
type CartHandler struct {
	mu         sync.RWMutex
	carts      map[string]*cart.Composer
	catalog    []models.Product
	dispatcher cart.Dispatcher
}

func NewCartHandler(catalog []models.Product, dispatcher cart.Dispatcher) *CartHandler {
	return &CartHandler{
		carts:      make(map[string]*cart.Composer),
		catalog:    catalog,
		dispatcher: dispatcher,
	}
}

// CreateCart handles POST /carts
func (h *CartHandler) CreateCart(c *gin.Context) {
	cartID := uuid.NewString()

	h.mu.Lock()
	h.carts[cartID] = cart.NewComposer(h.catalog, h.dispatcher)
	h.mu.Unlock()

	log.Printf("Created cart session %s", cartID)

	c.JSON(http.StatusCreated, models.CreateCartResponse{CartID: cartID})
}

// AdjustItem handles POST /carts/{cartId}/items. Adjusting by a delta
// mirrors the page's plus/minus controls; the response carries the
// recomputed cart view.
func (h *CartHandler) AdjustItem(c *gin.Context) {
	cartID := c.Param("cartId")

	var req models.AdjustItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	composer, exists := h.Lookup(cartID)
	if !exists {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "NOT_FOUND",
			Message: "Cart not found",
		})
		return
	}

	composer.SetQuantity(req.ProductID, req.Delta)

	c.JSON(http.StatusOK, cartView(cartID, composer))
}

// GetCart handles GET /carts/{cartId}
func (h *CartHandler) GetCart(c *gin.Context) {
	cartID := c.Param("cartId")

	composer, exists := h.Lookup(cartID)
	if !exists {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "NOT_FOUND",
			Message: "Cart not found",
		})
		return
	}

	c.JSON(http.StatusOK, cartView(cartID, composer))
}

// Lookup returns a cart session's composer (helper method for checkout).
func (h *CartHandler) Lookup(cartID string) (*cart.Composer, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	composer, exists := h.carts[cartID]
	return composer, exists
}

func cartView(cartID string, composer *cart.Composer) models.CartView {
	return models.CartView{
		CartID: cartID,
		Lines:  composer.Summary(),
		Total:  composer.Total(),
	}
}
