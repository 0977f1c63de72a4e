package order

import "github.com/shopspring/decimal"

var (
	membershipRate = decimal.RequireFromString("0.3")
	membershipCap  = decimal.NewFromInt(8000)
)

// promotionDiscount values every free item at the unit price derived from
// the matching paid line.
func promotionDiscount(lines []LineItem, free []FreeItem) decimal.Decimal {
	total := decimal.Zero
	for _, f := range free {
		for _, line := range lines {
			if line.Name != f.Name {
				continue
			}
			unit := line.Price.Div(decimal.NewFromInt(int64(line.Quantity)))
			total = total.Add(unit.Mul(decimal.NewFromInt(int64(f.Quantity))))
			break
		}
	}
	return total
}

// ApplyMembership applies the opt-in membership discount to the receipt:
// 30% of the post-promotion amount, floored and capped at 8,000.
func ApplyMembership(r *Receipt) {
	discountable := r.TotalAmount.Sub(r.PromotionDiscount)
	r.MembershipDiscount = decimal.Min(discountable.Mul(membershipRate).Floor(), membershipCap)
	r.FinalAmount = r.TotalAmount.Sub(r.PromotionDiscount).Sub(r.MembershipDiscount)
}
