package application

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/gadget-store-api/internal/domain/entity"
	repo "github.com/oksasatya/gadget-store-api/internal/domain/repository"
	"github.com/oksasatya/gadget-store-api/internal/metrics"
)

const (
	RejectProductNotFound = "product not found"
	RejectInvalidQuantity = "invalid quantity"
	defaultLineQuantity   = 1
)

// Quantity is a cart line quantity as submitted. Clients send numbers,
// numeric strings, null or nothing at all; Set is false for the last three
// cases and Invalid marks anything that is not a number.
type Quantity struct {
	Value   float64
	Set     bool
	Invalid bool
}

func Qty(v float64) Quantity { return Quantity{Value: v, Set: true} }

func (q *Quantity) UnmarshalJSON(b []byte) error {
	*q = Quantity{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			q.Set, q.Invalid = true, true
			return nil
		}
		q.Value, q.Set = v, true
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		q.Set, q.Invalid = true, true
		return nil
	}
	q.Value, q.Set = v, true
	return nil
}

// resolve returns the whole quantity for the line, or false when the line
// must be skipped.
func (q Quantity) resolve() (int, bool) {
	if !q.Set {
		return defaultLineQuantity, true
	}
	if q.Invalid || math.IsNaN(q.Value) || math.IsInf(q.Value, 0) {
		return 0, false
	}
	if q.Value < 1 || q.Value != math.Trunc(q.Value) || q.Value > math.MaxInt32 {
		return 0, false
	}
	return int(q.Value), true
}

// CartLine is one requested product. Any client-side price is ignored.
type CartLine struct {
	ProductID string   `json:"productId"`
	Quantity  Quantity `json:"quantity"`
}

type PlaceOrderInput struct {
	CustomerName     string     `json:"customerName"`
	CustomerEmail    string     `json:"customerEmail"`
	CustomerPhone    string     `json:"customerPhone"`
	CustomerLocation string     `json:"customerLocation"`
	Items            []CartLine `json:"items"`
}

// RejectedLine describes a cart line left out of the order.
type RejectedLine struct {
	Index     int    `json:"index"`
	ProductID string `json:"productId"`
	Reason    string `json:"reason"`
}

type PlaceOrderResult struct {
	Order    *entity.Order
	Rejected []RejectedLine
}

// OrderNotifier is told about order lifecycle events. Failures never affect
// the caller.
type OrderNotifier interface {
	OrderPlaced(ctx context.Context, o entity.Order) error
	OrderStatusChanged(ctx context.Context, o entity.Order) error
}

type OrderService struct {
	Orders   repo.OrderRepository
	Products repo.ProductRepository
	Notifier OrderNotifier // optional
	Logger   *logrus.Logger
}

func NewOrderService(orders repo.OrderRepository, products repo.ProductRepository, notifier OrderNotifier, logger *logrus.Logger) *OrderService {
	return &OrderService{Orders: orders, Products: products, Notifier: notifier, Logger: logger}
}

// productKey normalizes a client product id to the lowercase hex the
// repositories return.
func productKey(id string) string { return strings.ToLower(strings.TrimSpace(id)) }

// PlaceOrder assembles an order from a cart. Products are resolved in one
// batch lookup and every surviving line snapshots the catalog's current
// name, price and image. Lines with an unknown product or an unusable
// quantity are skipped and reported in the result.
//
// The lookup and the insert are not atomic: a product repriced or deleted in
// between is captured as it was at lookup time.
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*PlaceOrderResult, error) {
	name := strings.TrimSpace(in.CustomerName)
	email := entity.NormalizeEmail(in.CustomerEmail)
	phone := strings.TrimSpace(in.CustomerPhone)
	location := strings.TrimSpace(in.CustomerLocation)
	if name == "" || email == "" || phone == "" || location == "" {
		return nil, validationError("Customer name, email, phone, and location are required.")
	}
	if len(in.Items) == 0 {
		return nil, validationError("Cart items are required.")
	}

	ids := make([]string, 0, len(in.Items))
	seen := make(map[string]struct{}, len(in.Items))
	for _, line := range in.Items {
		id := productKey(line.ProductID)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	catalog := make(map[string]entity.Product, len(ids))
	if len(ids) > 0 {
		found, err := s.Products.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, p := range found {
			catalog[p.ID] = p
		}
	}

	var (
		items    []entity.OrderItem
		rejected []RejectedLine
		total    float64
	)
	for i, line := range in.Items {
		id := productKey(line.ProductID)
		p, ok := catalog[id]
		if !ok {
			rejected = append(rejected, RejectedLine{Index: i, ProductID: line.ProductID, Reason: RejectProductNotFound})
			continue
		}
		qty, ok := line.Quantity.resolve()
		if !ok {
			rejected = append(rejected, RejectedLine{Index: i, ProductID: line.ProductID, Reason: RejectInvalidQuantity})
			continue
		}
		item := entity.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  qty,
			Image:     p.Image,
		}
		items = append(items, item)
		total += item.LineTotal()
	}
	for _, r := range rejected {
		metrics.OrderLinesRejected.WithLabelValues(r.Reason).Inc()
	}

	if len(items) == 0 {
		return nil, ErrNoValidItems
	}

	order := &entity.Order{
		CustomerName:     name,
		CustomerEmail:    email,
		CustomerPhone:    phone,
		CustomerLocation: location,
		Items:            items,
		TotalAmount:      total,
		Status:           entity.OrderPending,
	}
	if err := s.Orders.Create(ctx, order); err != nil {
		return nil, err
	}
	metrics.OrdersCreated.Inc()
	metrics.OrderValue.Observe(order.TotalAmount)

	if s.Notifier != nil {
		if err := s.Notifier.OrderPlaced(ctx, *order); err != nil {
			s.warn(err, order.ID, "order placed notification failed")
		}
	}
	if len(rejected) > 0 && s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"order_id": order.ID, "rejected": len(rejected)}).Info("order placed with skipped lines")
	}
	return &PlaceOrderResult{Order: order, Rejected: rejected}, nil
}

func (s *OrderService) ListOrders(ctx context.Context) ([]entity.Order, error) {
	return s.Orders.List(ctx)
}

// UpdateStatus overwrites the status. Any transition is allowed.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status string) (*entity.Order, error) {
	st := entity.OrderStatus(status)
	if !st.Valid() {
		return nil, ErrInvalidStatus
	}
	o, err := s.Orders.UpdateStatus(ctx, id, st)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if s.Notifier != nil {
		if err := s.Notifier.OrderStatusChanged(ctx, *o); err != nil {
			s.warn(err, o.ID, "order status notification failed")
		}
	}
	return o, nil
}

func (s *OrderService) warn(err error, orderID, msg string) {
	if s.Logger == nil {
		return
	}
	s.Logger.WithError(err).WithField("order_id", orderID).Warn(msg)
}
