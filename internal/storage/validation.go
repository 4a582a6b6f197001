package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/example/etaflow/internal/model"
)

// Validation errors.
var (
	ErrNilContext  = errors.New("context cannot be nil")
	ErrEmptyString = errors.New("string parameter cannot be empty")
	ErrEmptySlice  = errors.New("slice cannot be empty")
	ErrInvalidLine = errors.New("invalid line")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validatePOLines validates a slice of purchase-order lines.
func validatePOLines(lines []model.POLine) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: po lines", ErrEmptySlice)
	}
	for i, line := range lines {
		if line.POID == "" {
			return fmt.Errorf("%w: po line %d missing PO id", ErrInvalidLine, i)
		}
		if line.SKU == "" {
			return fmt.Errorf("%w: po line %d missing SKU", ErrInvalidLine, i)
		}
	}
	return nil
}

// validateSOLines validates a slice of sales-order lines. Quantity and date
// cells stay unvalidated: malformed values are an expected input condition
// handled downstream by the decision engine.
func validateSOLines(lines []model.OrderLine) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: so lines", ErrEmptySlice)
	}
	for i, line := range lines {
		if line.OrderID == "" {
			return fmt.Errorf("%w: so line %d missing order id", ErrInvalidLine, i)
		}
		if line.SKU == "" {
			return fmt.Errorf("%w: so line %d missing SKU", ErrInvalidLine, i)
		}
	}
	return nil
}
