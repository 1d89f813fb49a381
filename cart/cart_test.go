package cart

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/brad-b-miller/miller-academy-fundraise/models"
)

var testCatalog = []models.Product{
	{ID: "item-a", Name: "Item A", Price: 5, Creator: "Lydia", Age: "8", Grade: "3rd Grade"},
	{ID: "item-b", Name: "Item B", Price: 10, Creator: "Phoebe", Age: "11", Grade: "6th Grade"},
	{ID: "item-c", Name: "Item C", Price: 25, Creator: "Chloe", Age: "15", Grade: "Sophomore"},
}

var testCustomer = models.Customer{
	Name:    "Jane",
	Email:   "j@x.com",
	Address: "1 Main St",
}

// Mock Dispatcher
type mockDispatcher struct {
	mu        sync.Mutex
	orders    []models.Order
	err       error
	startedCh chan struct{}
	blockCh   chan struct{}
}

func (m *mockDispatcher) Dispatch(ctx context.Context, order models.Order) error {
	if m.startedCh != nil {
		m.startedCh <- struct{}{}
	}
	if m.blockCh != nil {
		<-m.blockCh
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append(m.orders, order)
	return m.err
}

func (m *mockDispatcher) dispatched() []models.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Order(nil), m.orders...)
}

func TestSetQuantity_ClampsAtZero(t *testing.T) {
	tests := []struct {
		name   string
		deltas []int
		want   int
	}{
		{"increments accumulate", []int{1, 1, 1}, 3},
		{"decrement below zero clamps", []int{-1}, 0},
		{"mixed sequence", []int{2, -1, 3}, 4},
		{"clamp applies per step", []int{2, -5, 4}, 4},
		{"down to zero and back", []int{3, -3, 1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			composer := NewComposer(testCatalog, &mockDispatcher{})
			for _, d := range tt.deltas {
				composer.SetQuantity("item-a", d)
			}
			if got := composer.Quantity("item-a"); got != tt.want {
				t.Errorf("quantity = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSetQuantity_UnknownProductIgnored(t *testing.T) {
	composer := NewComposer(testCatalog, &mockDispatcher{})

	composer.SetQuantity("no-such-item", 3)

	if got := composer.Quantity("no-such-item"); got != 0 {
		t.Errorf("unknown product quantity = %d, want 0", got)
	}
	if got := composer.Total(); got != 0 {
		t.Errorf("total = %d, want 0", got)
	}
}

func TestTotal(t *testing.T) {
	composer := NewComposer(testCatalog, &mockDispatcher{})

	if got := composer.Total(); got != 0 {
		t.Errorf("empty cart total = %d, want 0", got)
	}

	composer.SetQuantity("item-a", 2)
	composer.SetQuantity("item-c", 1)

	if got := composer.Total(); got != 35 {
		t.Errorf("total = %d, want 35", got)
	}

	composer.SetQuantity("item-c", -1)

	if got := composer.Total(); got != 10 {
		t.Errorf("total after decrement = %d, want 10", got)
	}
}

func TestSummary_CatalogOrderAndFiltering(t *testing.T) {
	composer := NewComposer(testCatalog, &mockDispatcher{})

	// Select out of catalog order; summary must come back in catalog order.
	composer.SetQuantity("item-c", 1)
	composer.SetQuantity("item-a", 2)

	lines := composer.Summary()
	if len(lines) != 2 {
		t.Fatalf("summary has %d lines, want 2", len(lines))
	}
	if lines[0].ProductID != "item-a" || lines[1].ProductID != "item-c" {
		t.Errorf("summary order = [%s, %s], want [item-a, item-c]", lines[0].ProductID, lines[1].ProductID)
	}
	if lines[0].Subtotal != 10 || lines[1].Subtotal != 25 {
		t.Errorf("subtotals = [%d, %d], want [10, 25]", lines[0].Subtotal, lines[1].Subtotal)
	}
}

func TestSubmit_EmptyCart(t *testing.T) {
	dispatcher := &mockDispatcher{}
	composer := NewComposer(testCatalog, dispatcher)

	_, err := composer.Submit(context.Background(), testCustomer)

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(dispatcher.dispatched()) != 0 {
		t.Error("empty cart submission must not dispatch")
	}
}

func TestSubmit_MissingCustomerFields(t *testing.T) {
	tests := []struct {
		name     string
		customer models.Customer
	}{
		{"missing name", models.Customer{Email: "j@x.com", Address: "1 Main St"}},
		{"missing email", models.Customer{Name: "Jane", Address: "1 Main St"}},
		{"missing address", models.Customer{Name: "Jane", Email: "j@x.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dispatcher := &mockDispatcher{}
			composer := NewComposer(testCatalog, dispatcher)
			composer.SetQuantity("item-a", 1)

			_, err := composer.Submit(context.Background(), tt.customer)

			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if len(dispatcher.dispatched()) != 0 {
				t.Error("invalid submission must not dispatch")
			}
			if composer.Quantity("item-a") != 1 {
				t.Error("cart must be unchanged after validation failure")
			}
		})
	}
}

func TestSubmit_Success(t *testing.T) {
	dispatcher := &mockDispatcher{}
	composer := NewComposer(testCatalog, dispatcher)
	composer.SetQuantity("item-a", 2)
	composer.SetQuantity("item-b", 1)

	total, err := composer.Submit(context.Background(), testCustomer)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if total != 20 {
		t.Errorf("total = %d, want 20", total)
	}

	orders := dispatcher.dispatched()
	if len(orders) != 1 {
		t.Fatalf("dispatched %d orders, want 1", len(orders))
	}
	order := orders[0]

	if len(order.Items) != 2 {
		t.Fatalf("order has %d items, want 2", len(order.Items))
	}
	if order.Items[0].Subtotal != 10 || order.Items[1].Subtotal != 10 {
		t.Errorf("item subtotals = [%d, %d], want [10, 10]", order.Items[0].Subtotal, order.Items[1].Subtotal)
	}
	if sum := order.Items[0].Subtotal + order.Items[1].Subtotal; sum != order.Total {
		t.Errorf("subtotal sum %d != order total %d", sum, order.Total)
	}
	if order.Items[0].Creator != "Lydia" || order.Items[0].Grade != "3rd Grade" {
		t.Errorf("creator attribution not carried onto order line: %+v", order.Items[0])
	}
	if order.Customer != testCustomer {
		t.Errorf("order customer = %+v, want %+v", order.Customer, testCustomer)
	}
	if _, err := time.Parse(time.RFC3339, order.Timestamp); err != nil {
		t.Errorf("timestamp %q is not RFC3339: %v", order.Timestamp, err)
	}

	// Successful submission resets cart and customer state.
	for _, p := range testCatalog {
		if q := composer.Quantity(p.ID); q != 0 {
			t.Errorf("quantity of %s after success = %d, want 0", p.ID, q)
		}
	}
	if composer.Customer() != (models.Customer{}) {
		t.Errorf("customer after success = %+v, want empty", composer.Customer())
	}
}

func TestSubmit_ExcludesZeroQuantityLines(t *testing.T) {
	dispatcher := &mockDispatcher{}
	composer := NewComposer(testCatalog, dispatcher)
	composer.SetQuantity("item-b", 3)
	composer.SetQuantity("item-a", 1)
	composer.SetQuantity("item-a", -1)

	if _, err := composer.Submit(context.Background(), testCustomer); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	order := dispatcher.dispatched()[0]
	if len(order.Items) != 1 || order.Items[0].ID != "item-b" {
		t.Errorf("order items = %+v, want only item-b", order.Items)
	}
}

func TestSubmit_DispatchFailurePreservesState(t *testing.T) {
	dispatcher := &mockDispatcher{err: errors.New("webhook unreachable")}
	composer := NewComposer(testCatalog, dispatcher)
	composer.SetQuantity("item-a", 2)
	composer.SetQuantity("item-b", 1)

	_, err := composer.Submit(context.Background(), testCustomer)

	var submissionErr *SubmissionError
	if !errors.As(err, &submissionErr) {
		t.Fatalf("expected SubmissionError, got %v", err)
	}

	// Cart and customer info stay put so the user can retry.
	if composer.Quantity("item-a") != 2 || composer.Quantity("item-b") != 1 {
		t.Error("quantities must be unchanged after dispatch failure")
	}
	if composer.Customer() != testCustomer {
		t.Errorf("customer after failure = %+v, want %+v", composer.Customer(), testCustomer)
	}

	// An explicit retry constructs and sends a new, independent request.
	dispatcher.mu.Lock()
	dispatcher.err = nil
	dispatcher.mu.Unlock()

	total, err := composer.Submit(context.Background(), testCustomer)
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if total != 20 {
		t.Errorf("retry total = %d, want 20", total)
	}
	if len(dispatcher.dispatched()) != 2 {
		t.Errorf("dispatched %d orders, want 2", len(dispatcher.dispatched()))
	}
}

func TestSubmit_RejectsOverlappingSubmission(t *testing.T) {
	dispatcher := &mockDispatcher{
		startedCh: make(chan struct{}, 1),
		blockCh:   make(chan struct{}),
	}
	composer := NewComposer(testCatalog, dispatcher)
	composer.SetQuantity("item-a", 1)

	firstDone := make(chan error, 1)
	go func() {
		_, err := composer.Submit(context.Background(), testCustomer)
		firstDone <- err
	}()

	// Wait until the first submission is in flight.
	select {
	case <-dispatcher.startedCh:
	case <-time.After(2 * time.Second):
		t.Fatal("first submission never reached the dispatcher")
	}

	if _, err := composer.Submit(context.Background(), testCustomer); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("second submission error = %v, want ErrSubmitInFlight", err)
	}

	close(dispatcher.blockCh)
	if err := <-firstDone; err != nil {
		t.Fatalf("first submission failed: %v", err)
	}

	if len(dispatcher.dispatched()) != 1 {
		t.Errorf("dispatched %d orders, want 1", len(dispatcher.dispatched()))
	}
}
