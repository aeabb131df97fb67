package models

import (
	"time"
)

// Item is a single inventory record. ID and CreatedAt are assigned by the
// store on create and never change afterwards.
type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateItemRequest carries the four mutable fields of an item.
// Price and Quantity are pointers so a missing field is distinguishable
// from a legitimate zero.
type CreateItemRequest struct {
	Name        string   `json:"name" validate:"required,notblank"`
	Description string   `json:"description" validate:"required,notblank"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Quantity    *int     `json:"quantity" validate:"required,gte=0"`
}

// UpdateItemRequest replaces all four mutable fields in place; ID and
// CreatedAt are never touched by an update.
type UpdateItemRequest struct {
	Name        string   `json:"name" validate:"required,notblank"`
	Description string   `json:"description" validate:"required,notblank"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Quantity    *int     `json:"quantity" validate:"required,gte=0"`
}
