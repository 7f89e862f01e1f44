package client

import "sync"

type resettable interface {
	resetState()
}

// Store is the centralized client state: one slice per resource. Slices
// share the store's lock; subscribers are notified after every state write,
// which is the render hook for UI layers.
type Store struct {
	api    *API
	tokens TokenStore

	mu     sync.RWMutex
	subs   map[int]func()
	nextID int
	slices []resettable

	Auth    *AuthSlice
	Product *ProductSlice
	Cart    *CartSlice
	Order   *OrderSlice
}

func NewStore(api *API, tokens TokenStore) *Store {
	s := &Store{
		api:    api,
		tokens: tokens,
		subs:   map[int]func(){},
	}

	s.Auth = newAuthSlice(s)
	s.Product = newProductSlice(s)
	s.Cart = newCartSlice(s)
	s.Order = newOrderSlice(s)
	s.slices = []resettable{s.Auth, s.Product, s.Cart, s.Order}

	// Restore a persisted session, if any.
	if tokens != nil {
		if token, err := tokens.Load(); err == nil && token != "" {
			api.SetToken(token)
			s.Auth.accessToken = token
		}
	}
	return s
}

// Subscribe registers a callback invoked after every state change. The
// returned function unsubscribes.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// write applies a state mutation under the lock and notifies subscribers.
func (s *Store) write(mutate func()) {
	s.mu.Lock()
	mutate()
	subs := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

func (s *Store) read(view func()) {
	s.mu.RLock()
	view()
	s.mu.RUnlock()
}

// sessionEnded broadcasts a reset to every slice. Each slice owns its own
// reset handler; nothing inspects another slice's actions.
func (s *Store) sessionEnded() {
	s.write(func() {
		for _, slice := range s.slices {
			slice.resetState()
		}
	})
}
