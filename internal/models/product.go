package models

import "time"

// ProductV1 is the flat product shape served by API version 1.0.
type ProductV1 struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ProductV2 is the enriched product shape served by API version 2.0.
// Description and Tags are populated only on single-item retrieval; list
// responses and create results omit them.
type ProductV2 struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	InStock     bool      `json:"inStock"`
	CreatedAt   time.Time `json:"createdAt"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
}

// ProductListEnvelope wraps v2 list responses with collection metadata.
// Total always equals len(Data) and Version is the literal "2.0".
type ProductListEnvelope struct {
	Data    []ProductV2 `json:"data"`
	Total   int         `json:"total"`
	Version string      `json:"version"`
}

// CreateProductRequest is the payload accepted by the v2 create endpoint.
// Category is passed through unvalidated.
type CreateProductRequest struct {
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"required,gt=0"`
	Category string  `json:"category"`
}
