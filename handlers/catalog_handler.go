package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brad-b-miller/miller-academy-fundraise/models"
)

type CatalogHandler struct {
	products []models.Product
}

func NewCatalogHandler(products []models.Product) *CatalogHandler {
	return &CatalogHandler{products: products}
}

// ListProducts handles GET /catalog
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": h.products})
}
