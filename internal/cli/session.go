package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/minimart/checkout/internal/domain/catalog"
	"github.com/minimart/checkout/internal/domain/order"
	"github.com/minimart/checkout/internal/journal"
)

// Session drives the interactive checkout loop: list products, take an
// order, apply promotions and discounts, print the receipt, repeat until
// the customer declines another round.
type Session struct {
	catalog  *catalog.Catalog
	orders   *order.Service
	prompter *Prompter
	renderer *Renderer
	journal  *journal.Writer
}

// NewSession wires a Session. The journal may be nil to disable receipt
// journaling.
func NewSession(
	c *catalog.Catalog,
	orders *order.Service,
	prompter *Prompter,
	renderer *Renderer,
	j *journal.Writer,
) *Session {
	return &Session{
		catalog:  c,
		orders:   orders,
		prompter: prompter,
		renderer: renderer,
		journal:  j,
	}
}

// Run executes order rounds until the customer declines another purchase,
// input ends, or an order error ends the session. Stock deducted before a
// mid-round failure stays deducted.
func (s *Session) Run(ctx context.Context) error {
	lg := zctx.From(ctx)
	s.renderer.Welcome()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.renderer.Products(s.catalog.Products())

		input, err := s.prompter.ReadLine(
			"Enter the products and quantities you would like to buy. (e.g. [Cola-2],[Chips-1])",
		)
		if err != nil {
			return ignoreEOF(err)
		}

		items, err := ParseOrder(input)
		if err != nil {
			s.failRound(lg, err)
			return nil
		}

		receipt, err := s.orders.Process(ctx, items)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.failRound(lg, err)
			return nil
		}

		member, err := s.prompter.Ask("Would you like to apply the membership discount? (Y/N)")
		if err != nil {
			return ignoreEOF(err)
		}
		if member {
			order.ApplyMembership(receipt)
		}

		s.renderer.Receipt(receipt)
		lg.Info("order completed",
			zap.String("receipt_id", receipt.ID),
			zap.Int("total_quantity", receipt.TotalQuantity),
			zap.String("final_amount", receipt.FinalAmount.String()),
		)

		if s.journal != nil {
			if err := s.journal.Append(receipt); err != nil {
				lg.Warn("append receipt journal", zap.Error(err))
			}
		}

		again, err := s.prompter.Ask("Thank you. Is there anything else you would like to buy? (Y/N)")
		if err != nil {
			return ignoreEOF(err)
		}
		if !again {
			return nil
		}
	}
}

// failRound reports an order-round error to the customer. Any such error
// ends the whole session, matching the reference behavior.
func (s *Session) failRound(lg *zap.Logger, err error) {
	s.renderer.Error(errorMessage(err))
	lg.Warn("order round failed", zap.Error(err))
}

// errorMessage maps domain errors to customer-facing messages.
func errorMessage(err error) string {
	var (
		notFound *catalog.NotFoundError
		noStock  *catalog.InsufficientStockError
	)
	switch {
	case errors.Is(err, ErrInvalidOrderFormat), errors.Is(err, order.ErrEmptyOrder):
		return "That is not a valid order format. Please try again. (e.g. [Cola-2],[Chips-1])"
	case errors.As(err, &notFound):
		return fmt.Sprintf("We do not carry a product named %q. Please try again.", notFound.Name)
	case errors.As(err, &noStock):
		return "You cannot buy more than the available stock. Please try again."
	default:
		return err.Error()
	}
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
