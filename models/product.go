package models

// Product is one handcrafted item in the fundraiser catalog. The catalog
// is fixed for the lifetime of the process; products are never added,
// removed, or repriced at runtime.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	Creator     string `json:"creator"`
	Age         string `json:"age"`
	Grade       string `json:"grade"`
	Image       string `json:"image"`
}
