// Package messaging turns order lifecycle events into email jobs on the
// RabbitMQ queue consumed by cmd/order_worker.
package messaging

import (
	"context"

	"github.com/oksasatya/gadget-store-api/config"
	"github.com/oksasatya/gadget-store-api/internal/domain/entity"
	"github.com/oksasatya/gadget-store-api/pkg/mailer"
	mailtpl "github.com/oksasatya/gadget-store-api/pkg/mailer/templates"
)

// Publisher is satisfied by helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, msgType string, body any) error
}

type OrderNotifier struct {
	Pub Publisher
	Cfg *config.Config
}

func NewOrderNotifier(pub Publisher, cfg *config.Config) *OrderNotifier {
	return &OrderNotifier{Pub: pub, Cfg: cfg}
}

func (n *OrderNotifier) OrderPlaced(ctx context.Context, o entity.Order) error {
	data := mailtpl.NewOrderConfirmationData(n.Cfg, o.CustomerName, o.CustomerEmail, o.ID,
		mailtpl.WithItems(lines(o.Items)),
		mailtpl.WithTotal(o.TotalAmount),
		mailtpl.WithContact(o.CustomerPhone, o.CustomerLocation),
		mailtpl.WithPlacedAt(o.CreatedAt),
	)
	job := mailer.EmailJob{To: o.CustomerEmail, Template: mailtpl.OrderConfirmation, Data: data}
	return n.Pub.PublishJSON(ctx, mailer.TypeOrderPlaced, job)
}

func (n *OrderNotifier) OrderStatusChanged(ctx context.Context, o entity.Order) error {
	data := mailtpl.NewOrderStatusData(n.Cfg, o.CustomerName, o.CustomerEmail, o.ID, string(o.Status),
		mailtpl.WithTotal(o.TotalAmount),
	)
	job := mailer.EmailJob{To: o.CustomerEmail, Template: mailtpl.OrderStatus, Data: data}
	return n.Pub.PublishJSON(ctx, mailer.TypeOrderStatusChanged, job)
}

func lines(items []entity.OrderItem) []mailtpl.OrderLine {
	out := make([]mailtpl.OrderLine, 0, len(items))
	for _, it := range items {
		out = append(out, mailtpl.OrderLine{
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
			LineTotal: it.LineTotal(),
		})
	}
	return out
}
