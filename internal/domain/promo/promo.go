// Package promo implements the buy-N-get-M promotion evaluation rules for a
// single order line. It is the only place where interactive customer
// decisions occur, reached through the Prompter port.
package promo

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/minimart/checkout/internal/domain/catalog"
)

// QuestionKind enumerates the two customer decisions a promotion can require.
type QuestionKind string

const (
	// QuestionBonus asks whether to add promotional units to the line.
	QuestionBonus QuestionKind = "bonus"
	// QuestionShortage asks whether to keep buying when promotional stock
	// cannot cover the full bundle.
	QuestionShortage QuestionKind = "shortage"
)

// Question describes a single yes/no decision requested from the customer.
type Question struct {
	Kind     QuestionKind
	Product  string
	Quantity int
}

// Prompter is the confirmation port. Implementations ask the customer the
// given question and report the answer; any reply that is not affirmative
// counts as no.
type Prompter interface {
	Confirm(ctx context.Context, q Question) (bool, error)
}

// Result holds the outcome of evaluating one order line.
type Result struct {
	// PaidQuantity is the number of units the customer pays for. It may
	// exceed the requested quantity by one when the customer opts into a
	// single-unit bundle completion.
	PaidQuantity int
	// FreeQuantity is the number of units granted at no charge.
	FreeQuantity int
}

// Evaluate applies the promotion rules to a requested quantity. Declined
// confirmations leave the paid quantity and free grants unchanged; stock is
// never mutated here.
func Evaluate(ctx context.Context, prompter Prompter, p *catalog.Product, promotion *catalog.Promotion, requested int) (Result, error) {
	if requested > p.Quantity {
		return Result{}, &catalog.InsufficientStockError{
			Name:      p.Name,
			Requested: requested,
			Available: p.Quantity,
		}
	}

	switch {
	case promotion.Buy == 2 && (requested-2)%3 == 0:
		return bundleCompletion(ctx, prompter, p, promotion, requested)
	case promotion.Buy == 1 && requested%2 == 1 && requested < p.Quantity:
		return singleCompletion(ctx, prompter, p, promotion, requested)
	}

	return Result{PaidQuantity: requested}, nil
}

// bundleCompletion handles the buy-two pattern where the requested quantity
// is exactly one bundle short: the customer may claim the free units.
func bundleCompletion(ctx context.Context, prompter Prompter, p *catalog.Product, promotion *catalog.Promotion, requested int) (Result, error) {
	ok, err := prompter.Confirm(ctx, Question{
		Kind:     QuestionBonus,
		Product:  p.Name,
		Quantity: promotion.Get,
	})
	if err != nil {
		return Result{}, errors.Wrap(err, "confirm bonus")
	}
	if !ok {
		return Result{PaidQuantity: requested}, nil
	}

	free := requested / promotion.Buy * promotion.Get
	return settle(ctx, prompter, p, requested, free)
}

// singleCompletion handles the buy-one pattern with an odd quantity: the
// customer may add one paid unit to complete another bundle. Only offered
// when stock has room for the extra unit.
func singleCompletion(ctx context.Context, prompter Prompter, p *catalog.Product, promotion *catalog.Promotion, requested int) (Result, error) {
	ok, err := prompter.Confirm(ctx, Question{
		Kind:     QuestionBonus,
		Product:  p.Name,
		Quantity: 1,
	})
	if err != nil {
		return Result{}, errors.Wrap(err, "confirm bonus")
	}
	if !ok {
		return Result{PaidQuantity: requested}, nil
	}

	paid := requested + 1
	free := paid / promotion.Buy * promotion.Get
	return settle(ctx, prompter, p, paid, free)
}

// settle grants the full free quantity when stock covers paid+free.
// Otherwise the customer chooses: decline and keep the paid quantity with no
// free units, or accept and receive whatever free stock remains.
func settle(ctx context.Context, prompter Prompter, p *catalog.Product, paid, free int) (Result, error) {
	if p.Quantity >= paid+free {
		return Result{PaidQuantity: paid, FreeQuantity: free}, nil
	}

	shortage := paid + free - p.Quantity
	ok, err := prompter.Confirm(ctx, Question{
		Kind:     QuestionShortage,
		Product:  p.Name,
		Quantity: shortage,
	})
	if err != nil {
		return Result{}, errors.Wrap(err, "confirm shortage")
	}
	if !ok {
		return Result{PaidQuantity: paid}, nil
	}

	remaining := p.Quantity - paid
	if remaining < 0 {
		remaining = 0
	}
	return Result{PaidQuantity: paid, FreeQuantity: remaining}, nil
}
