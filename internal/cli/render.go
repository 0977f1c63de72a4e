package cli

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/minimart/checkout/internal/domain/catalog"
	"github.com/minimart/checkout/internal/domain/order"
	"github.com/minimart/checkout/pkg/moneyfmt"
)

// Renderer writes product listings and receipts to the terminal.
type Renderer struct {
	out       io.Writer
	storeName string
}

// NewRenderer creates a Renderer writing to out.
func NewRenderer(out io.Writer, storeName string) *Renderer {
	return &Renderer{out: out, storeName: storeName}
}

// Welcome prints the greeting banner.
func (r *Renderer) Welcome() {
	fmt.Fprintf(r.out, "Welcome to %s.\n", r.storeName)
	fmt.Fprintf(r.out, "Here are the products we currently carry.\n\n")
}

// Products prints one line per catalog record, in catalog order.
func (r *Renderer) Products(products []*catalog.Product) {
	for _, p := range products {
		qty := "Out of stock"
		if p.Quantity > 0 {
			qty = fmt.Sprintf("%d ea", p.Quantity)
		}
		line := fmt.Sprintf("- %s %s won %s", p.Name, moneyfmt.Format(p.Price), qty)
		if p.Promotion != "" {
			line += " " + p.Promotion
		}
		fmt.Fprintln(r.out, line)
	}
}

// Receipt prints the itemized receipt. Paid and free units are merged per
// line at gross value; the promotion discount then backs the free units
// out of the total.
func (r *Renderer) Receipt(rc *order.Receipt) {
	fmt.Fprintf(r.out, "==============%s================\n", r.storeName)
	fmt.Fprintln(r.out, "Product\t\tQty\tAmount")

	for _, line := range rc.Lines {
		free := freeQuantity(rc.FreeItems, line.Name)
		unit := line.Price.Div(decimal.NewFromInt(int64(line.Quantity)))
		total := line.Quantity + free
		gross := unit.Mul(decimal.NewFromInt(int64(total)))
		fmt.Fprintf(r.out, "%s\t%d\t%s\n", line.Name, total, moneyfmt.Format(gross))
	}

	if len(rc.FreeItems) > 0 {
		fmt.Fprintln(r.out, "=============Free items===============")
		for _, f := range rc.FreeItems {
			fmt.Fprintf(r.out, "%s\t%d\n", f.Name, f.Quantity)
		}
	}

	fmt.Fprintln(r.out, "====================================")

	gross := rc.TotalAmount.Add(rc.PromotionDiscount)
	due := gross.Sub(rc.PromotionDiscount).Sub(rc.MembershipDiscount)
	fmt.Fprintf(r.out, "Total\t\t%d\t%s\n", rc.TotalQuantity, moneyfmt.Format(gross))
	fmt.Fprintf(r.out, "Promotion discount\t\t-%s\n", moneyfmt.Format(rc.PromotionDiscount))
	fmt.Fprintf(r.out, "Membership discount\t\t-%s\n", moneyfmt.Format(rc.MembershipDiscount))
	fmt.Fprintf(r.out, "Amount due\t\t\t%s\n", moneyfmt.Format(due))
}

// Error prints a user-facing error message.
func (r *Renderer) Error(msg string) {
	fmt.Fprintf(r.out, "[ERROR] %s\n", msg)
}

func freeQuantity(free []order.FreeItem, name string) int {
	for _, f := range free {
		if f.Name == name {
			return f.Quantity
		}
	}
	return 0
}
