package entity

import "time"

// Product is a catalog item. Price is authoritative for every order placed
// against it.
type Product struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	Desc      string    `json:"desc"`
	Specs     string    `json:"specs"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
