package order

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/minimart/checkout/internal/domain/catalog"
	"github.com/minimart/checkout/internal/domain/promo"
)

// ErrEmptyOrder is returned when an order round contains no items.
var ErrEmptyOrder = errors.New("order must contain at least one item")

// InvalidQuantityError indicates a line item has a non-positive quantity.
type InvalidQuantityError struct {
	Name string
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be greater than 0 for product %q", e.Name)
}

// Catalog is the product lookup surface the service depends on.
type Catalog interface {
	FindProduct(name string) (*catalog.Product, error)
	ApplicablePromotion(p *catalog.Product) *catalog.Promotion
}

// Service processes order rounds against the catalog.
type Service struct {
	catalog  Catalog
	prompter promo.Prompter
	now      func() time.Time
}

// NewService creates an order Service with the required dependencies.
func NewService(c Catalog, prompter promo.Prompter) *Service {
	return &Service{
		catalog:  c,
		prompter: prompter,
		now:      time.Now,
	}
}

// Process resolves every requested item in order, applies promotion rules
// through the evaluator, deducts stock per line, and returns the receipt
// with the promotion discount applied and no membership discount yet.
//
// Processing is fail-fast: the first error aborts the round, and stock
// already deducted for earlier lines stays deducted.
func (s *Service) Process(ctx context.Context, items []Item) (*Receipt, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	r := &Receipt{
		ID:          uuid.New().String(),
		TotalAmount: decimal.Zero,
		CreatedAt:   s.now(),
	}

	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, &InvalidQuantityError{Name: item.Name}
		}

		p, err := s.catalog.FindProduct(item.Name)
		if err != nil {
			return nil, err
		}

		paid, free := item.Quantity, 0
		if promotion := s.catalog.ApplicablePromotion(p); promotion != nil {
			res, err := promo.Evaluate(ctx, s.prompter, p, promotion, item.Quantity)
			if err != nil {
				return nil, err
			}
			paid, free = res.PaidQuantity, res.FreeQuantity
		} else if item.Quantity > p.Quantity {
			return nil, &catalog.InsufficientStockError{
				Name:      p.Name,
				Requested: item.Quantity,
				Available: p.Quantity,
			}
		}

		price := p.Price.Mul(decimal.NewFromInt(int64(paid)))
		r.TotalAmount = r.TotalAmount.Add(price)
		r.Lines = append(r.Lines, LineItem{Name: p.Name, Quantity: paid, Price: price})
		if free > 0 {
			r.FreeItems = append(r.FreeItems, FreeItem{Name: p.Name, Quantity: free})
		}
		r.TotalQuantity += paid + free

		if err := p.Deduct(paid + free); err != nil {
			return nil, err
		}
	}

	r.PromotionDiscount = promotionDiscount(r.Lines, r.FreeItems)
	r.MembershipDiscount = decimal.Zero
	r.FinalAmount = r.TotalAmount.Sub(r.PromotionDiscount)

	return r, nil
}
