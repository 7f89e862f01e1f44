package client

import (
	"context"

	"github.com/shubham7227/ecommerce/models"
)

// CheckoutRequest is the order creation payload.
type CheckoutRequest struct {
	CartID        string `json:"cartId"`
	AddressID     string `json:"addressId"`
	PaymentMethod string `json:"paymentMethod"`
	PaymentID     string `json:"paymentId,omitempty"`
}

// OrderSlice caches the user's order history, the current detail view and
// the identifier of the most recently placed order.
type OrderSlice struct {
	store *Store

	Create  AsyncState
	History AsyncState
	Detail  AsyncState

	lastOrderID string
	orders      []models.OrderView
	detail      *models.OrderView
}

func newOrderSlice(store *Store) *OrderSlice {
	return &OrderSlice{store: store}
}

// PlaceOrder converts the cart into an order.
func (s *OrderSlice) PlaceOrder(ctx context.Context, req CheckoutRequest) error {
	s.store.write(func() { s.Create.loading() })

	var resp struct {
		OrderID string `json:"orderId"`
	}
	if err := s.store.api.post(ctx, "/orders", req, &resp); err != nil {
		s.store.write(func() { s.Create.failed(err) })
		return err
	}

	s.store.write(func() {
		s.Create.success()
		s.lastOrderID = resp.OrderID
	})
	return nil
}

// FetchHistory loads the user's orders, newest first, line items capped by
// the server for compact rendering.
func (s *OrderSlice) FetchHistory(ctx context.Context) error {
	s.store.write(func() { s.History.loading() })

	var resp struct {
		Data []models.OrderView `json:"data"`
	}
	if err := s.store.api.get(ctx, "/orders/mine", &resp); err != nil {
		s.store.write(func() { s.History.failed(err) })
		return err
	}

	s.store.write(func() {
		s.History.success()
		s.orders = resp.Data
	})
	return nil
}

// FetchOrder loads one order with all line items and the shipping address.
func (s *OrderSlice) FetchOrder(ctx context.Context, id string) error {
	s.store.write(func() { s.Detail.loading() })

	var resp struct {
		Data *models.OrderView `json:"data"`
	}
	if err := s.store.api.get(ctx, "/orders/"+id, &resp); err != nil {
		s.store.write(func() { s.Detail.failed(err) })
		return err
	}

	s.store.write(func() {
		s.Detail.success()
		s.detail = resp.Data
	})
	return nil
}

// ResetCreate clears the checkout operation state back to idle.
func (s *OrderSlice) ResetCreate() {
	s.store.write(func() {
		s.Create.reset()
		s.lastOrderID = ""
	})
}

func (s *OrderSlice) LastOrderID() string {
	var id string
	s.store.read(func() { id = s.lastOrderID })
	return id
}

func (s *OrderSlice) Orders() []models.OrderView {
	var orders []models.OrderView
	s.store.read(func() { orders = s.orders })
	return orders
}

func (s *OrderSlice) OrderDetail() *models.OrderView {
	var detail *models.OrderView
	s.store.read(func() { detail = s.detail })
	return detail
}

func (s *OrderSlice) CreateState() AsyncState {
	var state AsyncState
	s.store.read(func() { state = s.Create })
	return state
}

func (s *OrderSlice) resetState() {
	s.Create.reset()
	s.History.reset()
	s.Detail.reset()
	s.lastOrderID = ""
	s.orders = nil
	s.detail = nil
}
