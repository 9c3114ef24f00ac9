// Package models defines the records exchanged with the bakery API.
// Field names mirror the server's JSON (Mongo-style "_id" keys).
package models

import "time"

// Product is a single catalog item.
type Product struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Subcategory  string    `json:"subcategory,omitempty"`
	Description  string    `json:"description,omitempty"`
	Image        string    `json:"image,omitempty"`
	IsTopSelling bool      `json:"isTopSelling"`
	Price        float64   `json:"price,omitempty"`
	Stock        int       `json:"stock,omitempty"`
	Variants     []Variant `json:"variants,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

// Variant is one purchasable size/weight option of a product.
type Variant struct {
	Label string  `json:"label"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// ProductDraft is the client-side payload for creating or updating a product.
// An empty ImagePath means no file accompanies the request. EventID links an
// inline-created product to a promotional event.
type ProductDraft struct {
	Name         string
	Category     string
	Subcategory  string
	Description  string
	IsTopSelling bool
	Variants     []Variant
	ImagePath    string
	EventID      string
}
