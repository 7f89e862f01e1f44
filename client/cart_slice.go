package client

import (
	"context"

	"github.com/shubham7227/ecommerce/models"
)

// CartSlice caches the user's cart and the mutation operation states.
type CartSlice struct {
	store *Store

	Fetch  AsyncState
	Add    AsyncState
	Remove AsyncState

	cart *models.Cart
}

func newCartSlice(store *Store) *CartSlice {
	return &CartSlice{store: store}
}

func (s *CartSlice) FetchCart(ctx context.Context) error {
	s.store.write(func() { s.Fetch.loading() })

	var resp struct {
		Data *models.Cart `json:"data"`
	}
	if err := s.store.api.get(ctx, "/cart", &resp); err != nil {
		s.store.write(func() { s.Fetch.failed(err) })
		return err
	}

	s.store.write(func() {
		s.Fetch.success()
		s.cart = resp.Data
	})
	return nil
}

// AddItem adds a product to the cart, creating it on first add.
func (s *CartSlice) AddItem(ctx context.Context, productID string, quantity int) error {
	s.store.write(func() { s.Add.loading() })

	var resp struct {
		Data *models.Cart `json:"data"`
	}
	err := s.store.api.post(ctx, "/cart/items", map[string]interface{}{
		"id":       productID,
		"quantity": quantity,
	}, &resp)
	if err != nil {
		s.store.write(func() { s.Add.failed(err) })
		return err
	}

	s.store.write(func() {
		s.Add.success()
		s.cart = resp.Data
	})
	return nil
}

func (s *CartSlice) RemoveItem(ctx context.Context, productID string) error {
	s.store.write(func() { s.Remove.loading() })

	var resp struct {
		Data *models.Cart `json:"data"`
	}
	if err := s.store.api.delete(ctx, "/cart/items/"+productID, &resp); err != nil {
		s.store.write(func() { s.Remove.failed(err) })
		return err
	}

	s.store.write(func() {
		s.Remove.success()
		s.cart = resp.Data
	})
	return nil
}

func (s *CartSlice) Cart() *models.Cart {
	var cart *models.Cart
	s.store.read(func() { cart = s.cart })
	return cart
}

func (s *CartSlice) FetchState() AsyncState {
	var state AsyncState
	s.store.read(func() { state = s.Fetch })
	return state
}

func (s *CartSlice) resetState() {
	s.Fetch.reset()
	s.Add.reset()
	s.Remove.reset()
	s.cart = nil
}
