package templates

import (
	"time"

	"github.com/oksasatya/gadget-store-api/config"
)

// Option pattern
type Option func(*EmailData)

func WithStatus(status string) Option { return func(d *EmailData) { d.Status = status } }
func WithContact(phone, location string) Option {
	return func(d *EmailData) { d.Phone, d.Location = phone, location }
}
func WithPlacedAt(t time.Time) Option {
	return func(d *EmailData) { d.PlacedAtText = t.UTC().Format("02 January 2006, 15:04") }
}

// WithItems sets the lines and derives the total from them.
func WithItems(items []OrderLine) Option {
	return func(d *EmailData) {
		d.Items = items
		d.TotalAmount = 0
		for _, it := range items {
			d.TotalAmount += it.LineTotal
		}
	}
}

// WithTotal overrides the total derived by WithItems.
func WithTotal(total float64) Option { return func(d *EmailData) { d.TotalAmount = total } }

// NewBaseEmailData fills the branding fields from config, then applies opts.
func NewBaseEmailData(cfg *config.Config, typ, name, recipient, orderID string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		RecipientEmail: recipient,
		Type:           typ,
		CompanyName:    cfg.CompanyName,
		AppName:        cfg.AppName,
		LogoURL:        cfg.LogoURL,
		SupportURL:     cfg.SupportURL,
		OrderID:        orderID,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewOrderConfirmationData(cfg *config.Config, name, recipient, orderID string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(cfg, OrderConfirmation, name, recipient, orderID, opts...))
}

func NewOrderStatusData(cfg *config.Config, name, recipient, orderID, status string, opts ...Option) map[string]any {
	opts = append([]Option{WithStatus(status)}, opts...)
	return ToMap(NewBaseEmailData(cfg, OrderStatus, name, recipient, orderID, opts...))
}
