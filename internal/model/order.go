package model

// POLine represents a single purchase-order line from a supplier export.
type POLine struct {
	POID    string
	SKU     string
	Comment string // free-text ETD comment, first line carries the signal
}

// OrderLine represents a single sales-order line as exported from the order
// system. Quantity and date fields are kept as raw strings; the decision
// engine coerces them, treating anything malformed as zero or absent.
type OrderLine struct {
	OrderID      string
	SKU          string
	Email        string
	QtyOrdered   string
	HoldingQty   string
	DispatchQty  string
	LineNote     string // customer-facing note, first line is the ETD signal
	OrderETA     string // order-level estimated delivery, shared by all lines
	OrderCreated string // order creation date, shared by all lines
}

// SalesOrder is the ordered set of all lines sharing one order identifier.
// Email decisions are computed per SalesOrder, never per line.
type SalesOrder struct {
	ID    string
	Lines []OrderLine
}

// GroupOrders groups raw sales-order lines into SalesOrders, preserving both
// line order within an order and the order of first appearance across orders.
func GroupOrders(lines []OrderLine) []SalesOrder {
	index := make(map[string]int)
	var orders []SalesOrder

	for _, line := range lines {
		i, ok := index[line.OrderID]
		if !ok {
			i = len(orders)
			index[line.OrderID] = i
			orders = append(orders, SalesOrder{ID: line.OrderID})
		}
		orders[i].Lines = append(orders[i].Lines, line)
	}

	return orders
}
