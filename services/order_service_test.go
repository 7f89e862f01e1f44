package services

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shubham7227/ecommerce/apperrors"
	"github.com/shubham7227/ecommerce/kafka"
	"github.com/shubham7227/ecommerce/models"
)

type fakeCartStore struct {
	totals       *models.CartTotals
	totalsErr    error
	deletedCarts []primitive.ObjectID
}

func (f *fakeCartStore) Totals(ctx context.Context, cartID primitive.ObjectID) (*models.CartTotals, error) {
	if f.totalsErr != nil {
		return nil, f.totalsErr
	}
	return f.totals, nil
}

func (f *fakeCartStore) Delete(ctx context.Context, cartID primitive.ObjectID) error {
	f.deletedCarts = append(f.deletedCarts, cartID)
	return nil
}

type fakeOrderRepo struct {
	inserted []*models.Order
	statuses map[string]string
}

func (f *fakeOrderRepo) Insert(ctx context.Context, order *models.Order) error {
	f.inserted = append(f.inserted, order)
	return nil
}

func (f *fakeOrderRepo) FindDetail(ctx context.Context, id primitive.ObjectID) (*models.OrderView, error) {
	return nil, nil
}

func (f *fakeOrderRepo) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.OrderView, error) {
	return nil, nil
}

func (f *fakeOrderRepo) FindAll(ctx context.Context) ([]models.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepo) UpdateTitle(ctx context.Context, id primitive.ObjectID, title string) (*models.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	if f.statuses == nil {
		f.statuses = map[string]string{}
	}
	f.statuses[id.Hex()] = status
	return nil
}

type fakeStockStore struct {
	decrements map[string]int
}

func (f *fakeStockStore) DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) error {
	if f.decrements == nil {
		f.decrements = map[string]int{}
	}
	f.decrements[id.Hex()] += quantity
	return nil
}

// passthroughTx runs the function without a session, like a fake commit.
type passthroughTx struct{}

func (passthroughTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePublisher struct {
	events []kafka.OrderEvent
}

func (f *fakePublisher) PublishOrderEvent(ctx context.Context, event kafka.OrderEvent) error {
	f.events = append(f.events, event)
	return nil
}

func newRequest() *CreateOrderRequest {
	return &CreateOrderRequest{
		CartID:        primitive.NewObjectID().Hex(),
		AddressID:     primitive.NewObjectID().Hex(),
		PaymentMethod: "card",
	}
}

func TestCreateOrderSnapshotsCartTotals(t *testing.T) {
	p1 := primitive.NewObjectID()
	p2 := primitive.NewObjectID()

	carts := &fakeCartStore{totals: &models.CartTotals{
		TotalAmount: 25,
		Products: []models.LineItem{
			{ProductID: p1, Price: 10, Quantity: 2, SubTotal: 20},
			{ProductID: p2, Price: 5, Quantity: 1, SubTotal: 5},
		},
	}}
	orders := &fakeOrderRepo{}
	stock := &fakeStockStore{}
	publisher := &fakePublisher{}

	svc := NewOrderService(orders, carts, stock, passthroughTx{}, publisher)

	order, err := svc.CreateOrder(context.Background(), primitive.NewObjectID(), newRequest())
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}

	if order.TotalAmount != 25 {
		t.Fatalf("expected total 25, got %v", order.TotalAmount)
	}
	if len(order.Products) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(order.Products))
	}
	if order.Products[0].SubTotal != 20 || order.Products[1].SubTotal != 5 {
		t.Fatalf("unexpected subtotals: %+v", order.Products)
	}
	if order.Status != models.OrderStatusPlaced {
		t.Fatalf("expected status %q, got %q", models.OrderStatusPlaced, order.Status)
	}

	if len(orders.inserted) != 1 {
		t.Fatalf("expected 1 inserted order, got %d", len(orders.inserted))
	}
	if len(carts.deletedCarts) != 1 {
		t.Fatalf("expected cart to be consumed exactly once, got %d deletes", len(carts.deletedCarts))
	}
	if stock.decrements[p1.Hex()] != 2 || stock.decrements[p2.Hex()] != 1 {
		t.Fatalf("unexpected stock decrements: %+v", stock.decrements)
	}

	if len(publisher.events) != 1 || publisher.events[0].Event != kafka.EventOrderCreated {
		t.Fatalf("expected a single order.created event, got %+v", publisher.events)
	}
	if publisher.events[0].OrderID != order.OrderID {
		t.Fatalf("event order id mismatch")
	}
}

func TestCreateOrderFailsWhenCartIsGone(t *testing.T) {
	carts := &fakeCartStore{totalsErr: apperrors.ErrCartNotFound}
	orders := &fakeOrderRepo{}
	stock := &fakeStockStore{}

	svc := NewOrderService(orders, carts, stock, passthroughTx{}, &fakePublisher{})

	_, err := svc.CreateOrder(context.Background(), primitive.NewObjectID(), newRequest())
	if err == nil {
		t.Fatal("expected error for missing cart, got nil")
	}
	if len(orders.inserted) != 0 {
		t.Fatalf("no order must be created from an empty aggregation result, got %d", len(orders.inserted))
	}
	if len(stock.decrements) != 0 {
		t.Fatalf("no stock must be touched, got %+v", stock.decrements)
	}
}

func TestCreateOrderRejectsMalformedIDs(t *testing.T) {
	svc := NewOrderService(&fakeOrderRepo{}, &fakeCartStore{}, &fakeStockStore{}, passthroughTx{}, nil)

	_, err := svc.CreateOrder(context.Background(), primitive.NewObjectID(), &CreateOrderRequest{
		CartID:        "not-an-object-id",
		AddressID:     primitive.NewObjectID().Hex(),
		PaymentMethod: "card",
	})
	if err == nil {
		t.Fatal("expected error for malformed cart id")
	}
}

func TestCancelOrderIsIdempotent(t *testing.T) {
	orders := &fakeOrderRepo{}
	publisher := &fakePublisher{}
	svc := NewOrderService(orders, &fakeCartStore{}, &fakeStockStore{}, passthroughTx{}, publisher)

	id := primitive.NewObjectID()

	if err := svc.CancelOrder(context.Background(), id); err != nil {
		t.Fatalf("first cancel returned error: %v", err)
	}
	if err := svc.CancelOrder(context.Background(), id); err != nil {
		t.Fatalf("second cancel returned error: %v", err)
	}

	if orders.statuses[id.Hex()] != models.OrderStatusCancelled {
		t.Fatalf("expected status Cancelled, got %q", orders.statuses[id.Hex()])
	}
	if len(publisher.events) != 2 {
		t.Fatalf("expected 2 cancelled events, got %d", len(publisher.events))
	}
}
