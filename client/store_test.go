package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shubham7227/ecommerce/models"
)

func newTestStore(t *testing.T, handler http.Handler) (*Store, *MemoryTokenStore) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tokens := &MemoryTokenStore{}
	return NewStore(NewAPI(server.URL), tokens), tokens
}

func TestLoginTransitionsAndPersistsToken(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "jane@example.com", body["email"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"data":        models.User{Name: "Jane", Email: "jane@example.com", Role: models.RoleUser},
			"accessToken": "token-123",
		})
	})
	store, tokens := newTestStore(t, handler)

	require.Equal(t, StatusIdle, store.Auth.LoginState().Status)

	err := store.Auth.LoginUser(context.Background(), "jane@example.com", "secret")
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, store.Auth.LoginState().Status)
	assert.Equal(t, "token-123", store.Auth.AccessToken())
	assert.Equal(t, "Jane", store.Auth.User().Name)

	persisted, err := tokens.Load()
	require.NoError(t, err)
	assert.Equal(t, "token-123", persisted)
}

func TestLoginFailureCarriesServerMessage(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid email or password"})
	})
	store, tokens := newTestStore(t, handler)

	err := store.Auth.LoginUser(context.Background(), "jane@example.com", "wrong")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "invalid email or password", apiErr.Message)

	state := store.Auth.LoginState()
	assert.Equal(t, StatusFailed, state.Status)
	assert.Equal(t, "invalid email or password", state.Error)

	persisted, _ := tokens.Load()
	assert.Empty(t, persisted)
}

func TestTokenRestoredOnConstruction(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": models.User{Name: "Jane"},
		})
	})
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tokens := &MemoryTokenStore{}
	require.NoError(t, tokens.Save("persisted-token"))

	store := NewStore(NewAPI(server.URL), tokens)
	assert.Equal(t, "persisted-token", store.Auth.AccessToken())

	require.NoError(t, store.Auth.FetchUser(context.Background()))
	assert.Equal(t, "Bearer persisted-token", gotAuth)
}

func TestLogoutResetsEverySlice(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"data":        models.User{Name: "Jane"},
				"accessToken": "token-123",
			})
		case "/cart":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"data": models.Cart{Products: []models.CartItem{{Quantity: 2}}},
			})
		case "/products/featured":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"data": []models.ProductCard{{Title: "Widget"}},
			})
		case "/orders/mine":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"data": []models.OrderView{{Status: models.OrderStatusPlaced}},
			})
		default:
			http.NotFound(w, r)
		}
	})
	store, tokens := newTestStore(t, handler)

	ctx := context.Background()
	require.NoError(t, store.Auth.LoginUser(ctx, "jane@example.com", "secret"))
	require.NoError(t, store.Cart.FetchCart(ctx))
	require.NoError(t, store.Product.FetchFeatured(ctx))
	require.NoError(t, store.Order.FetchHistory(ctx))

	store.Auth.Logout()

	assert.Equal(t, StatusIdle, store.Auth.LoginState().Status)
	assert.Nil(t, store.Auth.User())
	assert.Empty(t, store.Auth.AccessToken())

	assert.Equal(t, StatusIdle, store.Cart.FetchState().Status)
	assert.Nil(t, store.Cart.Cart())

	assert.Empty(t, store.Product.FeaturedProducts())
	assert.Empty(t, store.Order.Orders())

	assert.Empty(t, store.api.Token())
	persisted, _ := tokens.Load()
	assert.Empty(t, persisted)
}

func TestSubscriberNotifiedAndUnsubscribed(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []models.ProductCard{},
		})
	})
	store, _ := newTestStore(t, handler)

	notified := 0
	unsubscribe := store.Subscribe(func() { notified++ })

	require.NoError(t, store.Product.FetchFeatured(context.Background()))
	// One notification for loading, one for success.
	assert.Equal(t, 2, notified)

	unsubscribe()
	require.NoError(t, store.Product.FetchFeatured(context.Background()))
	assert.Equal(t, 2, notified)
}

func TestPlaceOrderRecordsOrderID(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"orderId": "abc-123"})
	})
	store, _ := newTestStore(t, handler)

	err := store.Order.PlaceOrder(context.Background(), CheckoutRequest{
		CartID:        "64b000000000000000000001",
		AddressID:     "64b000000000000000000002",
		PaymentMethod: "card",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, store.Order.CreateState().Status)
	assert.Equal(t, "abc-123", store.Order.LastOrderID())

	store.Order.ResetCreate()
	assert.Equal(t, StatusIdle, store.Order.CreateState().Status)
	assert.Empty(t, store.Order.LastOrderID())
}
