package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/shubham7227/ecommerce/kafka"
	"github.com/shubham7227/ecommerce/models"
	"github.com/shubham7227/ecommerce/repository"
)

// CartStore is the slice of the cart repository the order flow needs.
type CartStore interface {
	Totals(ctx context.Context, cartID primitive.ObjectID) (*models.CartTotals, error)
	Delete(ctx context.Context, cartID primitive.ObjectID) error
}

// StockStore decrements product stock as a side effect of order creation.
type StockStore interface {
	DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) error
}

// OrderEventPublisher publishes order lifecycle events after commit.
type OrderEventPublisher interface {
	PublishOrderEvent(ctx context.Context, event kafka.OrderEvent) error
}

// TxRunner runs fn atomically. The mongo implementation uses a session
// transaction; fakes run fn directly.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// MongoTxRunner runs the function inside a MongoDB session transaction, so
// the insert/delete/decrement sequence of a checkout commits or aborts as a
// unit.
type MongoTxRunner struct {
	client *mongo.Client
}

func NewMongoTxRunner(client *mongo.Client) *MongoTxRunner {
	return &MongoTxRunner{client: client}
}

func (r *MongoTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	CartID        string `json:"cartId" binding:"required"`
	AddressID     string `json:"addressId" binding:"required"`
	PaymentMethod string `json:"paymentMethod" binding:"required"`
	PaymentID     string `json:"paymentId"`
}

type OrderService struct {
	orders   repository.OrderRepository
	carts    CartStore
	stock    StockStore
	tx       TxRunner
	producer OrderEventPublisher
}

func NewOrderService(orders repository.OrderRepository, carts CartStore, stock StockStore, tx TxRunner, producer OrderEventPublisher) *OrderService {
	return &OrderService{
		orders:   orders,
		carts:    carts,
		stock:    stock,
		tx:       tx,
		producer: producer,
	}
}

// CreateOrder converts a cart into an order: snapshot totals, insert the
// order, consume the cart and decrement stock, all inside one transaction.
// The total amount is frozen at creation time and never recomputed.
func (s *OrderService) CreateOrder(ctx context.Context, userID primitive.ObjectID, req *CreateOrderRequest) (*models.Order, error) {
	cartID, err := primitive.ObjectIDFromHex(req.CartID)
	if err != nil {
		return nil, err
	}
	addressID, err := primitive.ObjectIDFromHex(req.AddressID)
	if err != nil {
		return nil, err
	}

	var order *models.Order
	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		totals, err := s.carts.Totals(txCtx, cartID)
		if err != nil {
			return err
		}

		order = &models.Order{
			ID:            primitive.NewObjectID(),
			OrderID:       uuid.NewString(),
			UserID:        userID,
			AddressID:     addressID,
			PaymentMethod: req.PaymentMethod,
			PaymentID:     req.PaymentID,
			Products:      totals.Products,
			TotalAmount:   totals.TotalAmount,
			Status:        models.OrderStatusPlaced,
			OrderDate:     time.Now().UTC(),
		}

		if err := s.orders.Insert(txCtx, order); err != nil {
			return err
		}
		if err := s.carts.Delete(txCtx, cartID); err != nil {
			return err
		}
		for _, item := range totals.Products {
			if err := s.stock.DecrementStock(txCtx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, kafka.OrderEvent{
		Event:       kafka.EventOrderCreated,
		OrderID:     order.OrderID,
		UserID:      userID.Hex(),
		TotalAmount: order.TotalAmount,
		Timestamp:   time.Now().UTC(),
	})
	return order, nil
}

// CancelOrder sets the status to Cancelled. Cancelling twice is a no-op
// rewrite of the same status.
func (s *OrderService) CancelOrder(ctx context.Context, id primitive.ObjectID) error {
	if err := s.orders.SetStatus(ctx, id, models.OrderStatusCancelled); err != nil {
		return err
	}

	s.publish(ctx, kafka.OrderEvent{
		Event:     kafka.EventOrderCancelled,
		OrderID:   id.Hex(),
		Timestamp: time.Now().UTC(),
	})
	return nil
}

// publish is best effort: the order is already committed, so a broker
// failure is logged rather than surfaced to the client.
func (s *OrderService) publish(ctx context.Context, event kafka.OrderEvent) {
	if s.producer == nil {
		return
	}
	if err := s.producer.PublishOrderEvent(ctx, event); err != nil {
		zap.L().Warn("Order event not published",
			zap.String("event", event.Event),
			zap.String("order_id", event.OrderID),
			zap.Error(err))
	}
}
