// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/example/etaflow/internal/model"
)

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Purchase-order operations
	SavePOLines(ctx context.Context, batchID string, lines []model.POLine) error
	GetPOLines(ctx context.Context) ([]model.POLine, error)

	// Sales-order operations
	SaveSOLines(ctx context.Context, batchID string, lines []model.OrderLine) error
	GetSOLines(ctx context.Context) ([]model.OrderLine, error)
	ListOrders(ctx context.Context) ([]model.SalesOrder, error)
	UpdateLineNote(ctx context.Context, orderID, sku, note string) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
