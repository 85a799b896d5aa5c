package entity

import "time"

// OrderStatus is the closed set of states an order can be in.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists every status in display order.
var OrderStatuses = []OrderStatus{OrderPending, OrderProcessing, OrderCompleted, OrderCancelled}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// OrderItem is a snapshot of a product taken when the order was placed.
// ProductID is a weak reference kept for traceability only.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}

// LineTotal is price times quantity.
func (i OrderItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Order holds the customer's contact details as captured at checkout; it is
// not linked to a User.
type Order struct {
	ID               string      `json:"_id"`
	CustomerName     string      `json:"customerName"`
	CustomerEmail    string      `json:"customerEmail"`
	CustomerPhone    string      `json:"customerPhone"`
	CustomerLocation string      `json:"customerLocation"`
	Items            []OrderItem `json:"items"`
	TotalAmount      float64     `json:"totalAmount"`
	Status           OrderStatus `json:"status"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}
