package storage

import (
	"context"
	"fmt"

	"github.com/example/etaflow/internal/model"
)

// SavePOLines stores one import batch of purchase-order lines.
func (s *SQLiteStorage) SavePOLines(ctx context.Context, batchID string, lines []model.POLine) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(batchID, "batchID"); err != nil {
		return err
	}
	if err := validatePOLines(lines); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO po_lines (batch_id, po_id, sku, comment)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, line := range lines {
		if _, err := stmt.ExecContext(ctx, batchID, line.POID, line.SKU, line.Comment); err != nil {
			return fmt.Errorf("failed to insert po line: %w", err)
		}
	}

	return tx.Commit()
}

// GetPOLines returns all stored purchase-order lines in insertion order.
func (s *SQLiteStorage) GetPOLines(ctx context.Context) ([]model.POLine, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT po_id, sku, comment FROM po_lines ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query po lines: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var lines []model.POLine
	for rows.Next() {
		var line model.POLine
		if err := rows.Scan(&line.POID, &line.SKU, &line.Comment); err != nil {
			return nil, fmt.Errorf("failed to scan po line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate po lines: %w", err)
	}

	return lines, nil
}

// SaveSOLines stores one import batch of sales-order lines.
func (s *SQLiteStorage) SaveSOLines(ctx context.Context, batchID string, lines []model.OrderLine) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(batchID, "batchID"); err != nil {
		return err
	}
	if err := validateSOLines(lines); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO so_lines (
			batch_id, order_id, sku, email, qty_ordered, holding_qty,
			dispatch_qty, line_note, order_eta, order_created
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, line := range lines {
		_, err := stmt.ExecContext(ctx,
			batchID, line.OrderID, line.SKU, line.Email,
			line.QtyOrdered, line.HoldingQty, line.DispatchQty,
			line.LineNote, line.OrderETA, line.OrderCreated,
		)
		if err != nil {
			return fmt.Errorf("failed to insert so line: %w", err)
		}
	}

	return tx.Commit()
}

// GetSOLines returns all stored sales-order lines in insertion order.
func (s *SQLiteStorage) GetSOLines(ctx context.Context) ([]model.OrderLine, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT order_id, sku, email, qty_ordered, holding_qty,
		       dispatch_qty, line_note, order_eta, order_created
		FROM so_lines ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query so lines: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var lines []model.OrderLine
	for rows.Next() {
		var line model.OrderLine
		err := rows.Scan(
			&line.OrderID, &line.SKU, &line.Email,
			&line.QtyOrdered, &line.HoldingQty, &line.DispatchQty,
			&line.LineNote, &line.OrderETA, &line.OrderCreated,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan so line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate so lines: %w", err)
	}

	return lines, nil
}

// ListOrders returns all stored sales-order lines grouped by order, in order
// of first appearance.
func (s *SQLiteStorage) ListOrders(ctx context.Context) ([]model.SalesOrder, error) {
	lines, err := s.GetSOLines(ctx)
	if err != nil {
		return nil, err
	}
	return model.GroupOrders(lines), nil
}

// UpdateLineNote writes a merged note back to every stored line matching the
// order and SKU.
func (s *SQLiteStorage) UpdateLineNote(ctx context.Context, orderID, sku, note string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(orderID, "orderID"); err != nil {
		return err
	}
	if err := validateString(sku, "sku"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		UPDATE so_lines SET line_note = ? WHERE order_id = ? AND sku = ?
	`, note, orderID, sku)
	if err != nil {
		return fmt.Errorf("failed to update line note: %w", err)
	}

	return nil
}
