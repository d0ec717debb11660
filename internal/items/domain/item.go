package domain

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no item has the requested id.
var ErrNotFound = errors.New("item not found")

// Item is a row of the items table. ID and CreatedAt are assigned by the
// store on insert and never change afterwards.
type Item struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

const (
	DefaultSkip  = 0
	DefaultLimit = 100
)
