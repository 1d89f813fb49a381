package models

// OrderItem is one line of a submitted order, in the wire shape the
// fulfillment webhook expects.
type OrderItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
	Subtotal int    `json:"subtotal"`
	Creator  string `json:"creator"`
	Age      string `json:"age"`
	Grade    string `json:"grade"`
}

// Customer is the contact information collected at checkout. Name, email,
// and address are required; phone and message are optional.
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Message string `json:"message"`
}

// Order is the one-shot snapshot handed to the external endpoint. It is
// built at submission time and never retained after handoff. Total always
// equals the sum of the line subtotals.
type Order struct {
	Items     []OrderItem `json:"items"`
	Customer  Customer    `json:"customer"`
	Total     int         `json:"total"`
	Timestamp string      `json:"timestamp"`
}
