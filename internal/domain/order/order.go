// Package order implements order-round processing: resolving requested
// items against the catalog, applying promotion rules, deducting stock, and
// calculating discounts.
package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a single requested (product, quantity) pair.
type Item struct {
	Name     string
	Quantity int
}

// LineItem is a finalized paid line on the receipt.
type LineItem struct {
	Name     string
	Quantity int
	Price    decimal.Decimal
}

// FreeItem records promotional units granted at no charge.
type FreeItem struct {
	Name     string
	Quantity int
}

// Receipt is the result of one completed order round.
type Receipt struct {
	ID        string
	Lines     []LineItem
	FreeItems []FreeItem
	// TotalAmount is the sum of paid-line prices before any discount.
	TotalAmount decimal.Decimal
	// TotalQuantity counts paid and free units across all lines.
	TotalQuantity      int
	PromotionDiscount  decimal.Decimal
	MembershipDiscount decimal.Decimal
	FinalAmount        decimal.Decimal
	CreatedAt          time.Time
}
