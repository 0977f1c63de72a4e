// Package cli implements the terminal boundary of the checkout simulator:
// order-line parsing, yes/no prompting, receipt rendering, and the session
// loop.
package cli

import (
	"strconv"
	"strings"

	"github.com/go-faster/errors"

	"github.com/minimart/checkout/internal/domain/order"
)

// ErrInvalidOrderFormat is returned when the raw order input is empty or
// does not match the expected "[name-qty],[name-qty]" form.
var ErrInvalidOrderFormat = errors.New("invalid order format")

// ParseOrder parses raw order input into requested items. Each entry is a
// bracketed name-quantity pair; the quantity follows the last dash, so
// product names may contain dashes.
func ParseOrder(input string) ([]order.Item, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrInvalidOrderFormat
	}

	var items []order.Item
	for _, token := range strings.Split(input, ",") {
		token = strings.TrimSpace(token)
		if len(token) < 2 || !strings.HasPrefix(token, "[") || !strings.HasSuffix(token, "]") {
			return nil, errors.Wrapf(ErrInvalidOrderFormat, "item %q", token)
		}
		token = token[1 : len(token)-1]

		sep := strings.LastIndex(token, "-")
		if sep <= 0 || sep == len(token)-1 {
			return nil, errors.Wrapf(ErrInvalidOrderFormat, "item %q", token)
		}

		name := strings.TrimSpace(token[:sep])
		qty, err := strconv.Atoi(strings.TrimSpace(token[sep+1:]))
		if err != nil || qty <= 0 || name == "" {
			return nil, errors.Wrapf(ErrInvalidOrderFormat, "item %q", token)
		}

		items = append(items, order.Item{Name: name, Quantity: qty})
	}

	return items, nil
}
