// Package catalog holds the in-memory product and promotion catalog for a
// checkout session. It is loaded once at startup and mutated in place as
// stock is sold.
package catalog

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item. A product name may appear twice: once as a
// promotional variant and once as a regular variant.
type Product struct {
	Name     string
	Price    decimal.Decimal
	Quantity int
	// Promotion is the name of the linked promotion, empty when none.
	Promotion string
}

// Promotion is a buy-N-get-M-free rule with an inclusive validity window.
type Promotion struct {
	Name      string
	Buy       int
	Get       int
	StartDate time.Time
	EndDate   time.Time
}

// NotFoundError indicates a requested product does not exist in the catalog.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product %q not found", e.Name)
}

// InsufficientStockError indicates a purchase would exceed available stock.
type InsufficientStockError struct {
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q: requested %d, available %d",
		e.Name, e.Requested, e.Available)
}

// Deduct removes n units of stock. It fails without mutating the product
// when n exceeds the available quantity, so stock never goes negative.
func (p *Product) Deduct(n int) error {
	if n > p.Quantity {
		return &InsufficientStockError{Name: p.Name, Requested: n, Available: p.Quantity}
	}
	p.Quantity -= n
	return nil
}

// Catalog answers product and promotion lookups for a single session.
type Catalog struct {
	products   []*Product
	promotions map[string]Promotion
	now        func() time.Time
}

// New builds a catalog from raw product records and promotions. Product
// records are balanced per name: when a promotional variant with a currently
// applicable promotion exists, it is listed first, followed by the regular
// variant; a zero-stock regular twin is synthesized when the feed has none,
// so the product stays sellable once promotional stock runs out.
func New(records []Product, promotions []Promotion, now func() time.Time) *Catalog {
	if now == nil {
		now = time.Now
	}

	c := &Catalog{
		promotions: make(map[string]Promotion, len(promotions)),
		now:        now,
	}
	for _, pr := range promotions {
		c.promotions[pr.Name] = pr
	}

	type variants struct {
		promotional *Product
		regular     *Product
	}

	var names []string
	groups := make(map[string]*variants)
	for i := range records {
		r := records[i]
		g, ok := groups[r.Name]
		if !ok {
			g = &variants{}
			groups[r.Name] = g
			names = append(names, r.Name)
		}
		if pr, ok := c.promotions[r.Promotion]; ok && r.Promotion != "" && c.active(pr) {
			g.promotional = &r
		} else {
			g.regular = &r
		}
	}

	for _, name := range names {
		g := groups[name]
		switch {
		case g.promotional != nil:
			c.products = append(c.products, g.promotional)
			if g.regular != nil {
				c.products = append(c.products, g.regular)
			} else {
				c.products = append(c.products, &Product{
					Name:  name,
					Price: g.promotional.Price,
				})
			}
		case g.regular != nil:
			c.products = append(c.products, g.regular)
		}
	}

	return c
}

// Products returns all catalog records in display order.
func (c *Catalog) Products() []*Product {
	return c.products
}

// FindProduct returns the first product with the given name in catalog
// order. Promotional variants are listed before their regular twins, so
// they take precedence.
func (c *Catalog) FindProduct(name string) (*Product, error) {
	for _, p := range c.products {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, &NotFoundError{Name: name}
}

// ApplicablePromotion returns the promotion linked to the product when it is
// registered and the current moment falls inside its validity window.
func (c *Catalog) ApplicablePromotion(p *Product) *Promotion {
	if p.Promotion == "" {
		return nil
	}
	pr, ok := c.promotions[p.Promotion]
	if !ok || !c.active(pr) {
		return nil
	}
	return &pr
}

// active reports whether the promotion window contains the current moment.
// Both bounds are calendar days, inclusive.
func (c *Catalog) active(pr Promotion) bool {
	now := c.now()
	if now.Before(pr.StartDate) {
		return false
	}
	return now.Before(pr.EndDate.AddDate(0, 0, 1))
}
