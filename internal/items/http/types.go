package http

import (
	"context"

	"github.com/GoSim-25-26J-441/items-api/internal/items/domain"
)

// Store is the data access the handlers need. *repository.Repo implements it.
type Store interface {
	List(ctx context.Context, offset, limit int) ([]domain.Item, error)
	Get(ctx context.Context, id int64) (*domain.Item, error)
	Insert(ctx context.Context, name string, description *string) (*domain.Item, error)
	Update(ctx context.Context, id int64, name string, description *string) (*domain.Item, error)
	Delete(ctx context.Context, id int64) error
}

// Handler bundles the dependencies for item HTTP endpoints.
type Handler struct {
	store Store
}

func New(store Store) *Handler {
	return &Handler{store: store}
}

// itemReq is the body of POST and PUT. Name must be present but may be empty.
type itemReq struct {
	Name        *string `json:"name" binding:"required"`
	Description *string `json:"description"`
}

const (
	msgNotFound = "Item not found"
	msgDeleted  = "Item deleted successfully"
	msgInternal = "Internal Server Error"
)
