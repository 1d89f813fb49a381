package models

// CartLine is one product with a non-zero quantity in the current cart,
// with its derived subtotal.
type CartLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int    `json:"price"`
	Quantity  int    `json:"quantity"`
	Subtotal  int    `json:"subtotal"`
}

type CreateCartResponse struct {
	CartID string `json:"cart_id"`
}

type AdjustItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Delta     int    `json:"delta" binding:"required"`
}

type CartView struct {
	CartID string     `json:"cart_id"`
	Lines  []CartLine `json:"lines"`
	Total  int        `json:"total"`
}

type CheckoutRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address" binding:"required"`
	Message string `json:"message"`
}

// PaymentOption points at one of the static payment QR codes shown on the
// confirmation view.
type PaymentOption struct {
	Method       string `json:"method"`
	QRCodeImage  string `json:"qr_code_image"`
	Instructions string `json:"instructions"`
}

type CheckoutResponse struct {
	Total   int             `json:"total"`
	Payment []PaymentOption `json:"payment"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
