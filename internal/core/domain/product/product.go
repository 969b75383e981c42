package product

import "errors"

// ErrNotFound is returned by the catalog client when the upstream answers 404.
var ErrNotFound = errors.New("product not found")

// Product mirrors the external catalog representation.
type Product struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Brand       string   `json:"brand"`
	Price       float64  `json:"price"`
	Image       string   `json:"image"`
	ReviewScore *float64 `json:"reviewScore,omitempty"`
}

type PageMeta struct {
	PageNumber int `json:"page_number"`
	PageSize   int `json:"page_size"`
}

// Page is one page of the upstream product listing.
type Page struct {
	Meta     PageMeta  `json:"meta"`
	Products []Product `json:"products"`
}
