// Package cart implements the order composer: per-product quantity
// selections, the derived total and line-item summary, and the submission
// of a composed order to an external endpoint.
package cart

import (
	"context"
	"sync"
	"time"

	"github.com/brad-b-miller/miller-academy-fundraise/models"
)

// Dispatcher delivers a composed order to the external collaborator
// (the fulfillment webhook, or a queue in deployments that use one).
type Dispatcher interface {
	Dispatch(ctx context.Context, order models.Order) error
}

// ValidationError reports a submission rejected before any network call:
// empty selection, missing required customer fields, or a submission
// already in progress. The user recovers in place; cart state is untouched.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// SubmissionError reports a dispatch that failed in transit or was refused
// by the endpoint. Cart and customer state are left unchanged so the user
// can retry without re-entering anything.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return "order submission failed: " + e.Err.Error()
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// ErrSubmitInFlight rejects a second Submit while an earlier one is still
// waiting on the external endpoint.
var ErrSubmitInFlight = &ValidationError{Reason: "a submission is already in progress"}

// Composer owns one session's cart state: quantity selections over a fixed
// catalog, the customer info entered at checkout, and an in-flight flag
// that blocks overlapping submissions. Safe for concurrent use.
type Composer struct {
	mu         sync.Mutex
	catalog    []models.Product
	quantities map[string]int
	customer   models.Customer
	dispatcher Dispatcher
	inFlight   bool
}

// NewComposer creates an empty composer over the given catalog. Quantities
// start at zero for every product.
func NewComposer(catalog []models.Product, dispatcher Dispatcher) *Composer {
	return &Composer{
		catalog:    catalog,
		quantities: make(map[string]int),
		dispatcher: dispatcher,
	}
}

// SetQuantity adjusts the selected quantity for productID by delta,
// clamping at zero. Unknown product IDs are silently ignored. No upper
// bound is enforced.
func (c *Composer) SetQuantity(productID string, delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.knownProduct(productID) {
		return
	}
	q := c.quantities[productID] + delta
	if q < 0 {
		q = 0
	}
	c.quantities[productID] = q
}

// Quantity returns the current selection for productID, zero if none.
func (c *Composer) Quantity(productID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quantities[productID]
}

// Total returns the sum over all products of unit price times current
// quantity. Zero when nothing is selected.
func (c *Composer) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total()
}

// Summary returns the products with quantity greater than zero, in catalog
// order, each with its line subtotal.
func (c *Composer) Summary() []models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.summary()
}

// Customer returns the customer info recorded by the last Submit attempt.
func (c *Composer) Customer() models.Customer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.customer
}

// Submit validates the current selection and customer info, composes the
// order snapshot, and dispatches it once. On success the cart and customer
// info reset to empty and the submitted total is returned for the
// confirmation view. On dispatch failure all state is preserved for a
// user-initiated retry; nothing retries automatically.
func (c *Composer) Submit(ctx context.Context, customer models.Customer) (int, error) {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return 0, ErrSubmitInFlight
	}

	c.customer = customer

	if len(c.summary()) == 0 {
		c.mu.Unlock()
		return 0, &ValidationError{Reason: "please select at least one item to order"}
	}
	if err := validateCustomer(customer); err != nil {
		c.mu.Unlock()
		return 0, err
	}

	order := c.compose(customer)
	c.inFlight = true
	c.mu.Unlock()

	// Network call happens outside the lock; reads and quantity updates
	// stay responsive while the dispatch is outstanding.
	err := c.dispatcher.Dispatch(ctx, order)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false

	if err != nil {
		return 0, &SubmissionError{Err: err}
	}

	c.quantities = make(map[string]int)
	c.customer = models.Customer{}
	return order.Total, nil
}

func validateCustomer(customer models.Customer) *ValidationError {
	switch {
	case customer.Name == "":
		return &ValidationError{Reason: "name is required"}
	case customer.Email == "":
		return &ValidationError{Reason: "email is required"}
	case customer.Address == "":
		return &ValidationError{Reason: "address is required"}
	}
	return nil
}

// compose builds the one-shot order snapshot: only lines with quantity
// greater than zero, in catalog order. Caller holds the lock.
func (c *Composer) compose(customer models.Customer) models.Order {
	var items []models.OrderItem
	for _, p := range c.catalog {
		q := c.quantities[p.ID]
		if q == 0 {
			continue
		}
		items = append(items, models.OrderItem{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Quantity: q,
			Subtotal: p.Price * q,
			Creator:  p.Creator,
			Age:      p.Age,
			Grade:    p.Grade,
		})
	}
	return models.Order{
		Items:     items,
		Customer:  customer,
		Total:     c.total(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func (c *Composer) total() int {
	total := 0
	for _, p := range c.catalog {
		total += p.Price * c.quantities[p.ID]
	}
	return total
}

func (c *Composer) summary() []models.CartLine {
	var lines []models.CartLine
	for _, p := range c.catalog {
		q := c.quantities[p.ID]
		if q == 0 {
			continue
		}
		lines = append(lines, models.CartLine{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  q,
			Subtotal:  p.Price * q,
		})
	}
	return lines
}

func (c *Composer) knownProduct(productID string) bool {
	for _, p := range c.catalog {
		if p.ID == productID {
			return true
		}
	}
	return false
}
