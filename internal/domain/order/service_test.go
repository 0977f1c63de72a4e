package order

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minimart/checkout/internal/domain/catalog"
	"github.com/minimart/checkout/internal/domain/promo"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// scriptedPrompter answers promotion questions from a fixed script.
type scriptedPrompter struct {
	answers []bool
}

func (p *scriptedPrompter) Confirm(_ context.Context, _ promo.Question) (bool, error) {
	if len(p.answers) == 0 {
		return false, nil
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

func buyTwoGetOne(name string) catalog.Promotion {
	return catalog.Promotion{
		Name:      name,
		Buy:       2,
		Get:       1,
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	}
}

func newCatalog(records []catalog.Product, promotions []catalog.Promotion) *catalog.Catalog {
	return catalog.New(records, promotions, func() time.Time { return testNow })
}

func TestProcess_EmptyOrder(t *testing.T) {
	svc := NewService(newCatalog(nil, nil), &scriptedPrompter{})

	_, err := svc.Process(context.Background(), nil)
	require.ErrorIs(t, err, ErrEmptyOrder)
}

func TestProcess_InvalidQuantity(t *testing.T) {
	c := newCatalog([]catalog.Product{
		{Name: "Water", Price: decimal.NewFromInt(500), Quantity: 10},
	}, nil)
	svc := NewService(c, &scriptedPrompter{})

	_, err := svc.Process(context.Background(), []Item{{Name: "Water", Quantity: 0}})

	var iqErr *InvalidQuantityError
	require.ErrorAs(t, err, &iqErr)
	assert.Equal(t, "Water", iqErr.Name)
}

func TestProcess_ProductNotFound(t *testing.T) {
	c := newCatalog([]catalog.Product{
		{Name: "Water", Price: decimal.NewFromInt(500), Quantity: 10},
	}, nil)
	svc := NewService(c, &scriptedPrompter{})

	_, err := svc.Process(context.Background(), []Item{{Name: "Bread", Quantity: 1}})

	var nfErr *catalog.NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "Bread", nfErr.Name)

	water, err := c.FindProduct("Water")
	require.NoError(t, err)
	assert.Equal(t, 10, water.Quantity, "failed round must not mutate stock")
}

func TestProcess_InsufficientStockWithoutPromotion(t *testing.T) {
	c := newCatalog([]catalog.Product{
		{Name: "Water", Price: decimal.NewFromInt(500), Quantity: 3},
	}, nil)
	svc := NewService(c, &scriptedPrompter{})

	_, err := svc.Process(context.Background(), []Item{{Name: "Water", Quantity: 5}})

	var stockErr *catalog.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 5, stockErr.Requested)
	assert.Equal(t, 3, stockErr.Available)

	water, findErr := c.FindProduct("Water")
	require.NoError(t, findErr)
	assert.Equal(t, 3, water.Quantity)
}

func TestProcess_PromotionGrantsFreeUnits(t *testing.T) {
	c := newCatalog([]catalog.Product{
		{Name: "Cola", Price: decimal.NewFromInt(1000), Quantity: 10, Promotion: "Two Plus One"},
	}, []catalog.Promotion{buyTwoGetOne("Two Plus One")})
	svc := NewService(c, &scriptedPrompter{answers: []bool{true}})

	receipt, err := svc.Process(context.Background(), []Item{{Name: "Cola", Quantity: 2}})
	require.NoError(t, err)

	require.Len(t, receipt.Lines, 1)
	assert.Equal(t, 2, receipt.Lines[0].Quantity)
	assert.True(t, decimal.NewFromInt(2000).Equal(receipt.Lines[0].Price))

	require.Len(t, receipt.FreeItems, 1)
	assert.Equal(t, 1, receipt.FreeItems[0].Quantity)

	assert.True(t, decimal.NewFromInt(2000).Equal(receipt.TotalAmount))
	assert.True(t, decimal.NewFromInt(1000).Equal(receipt.PromotionDiscount))
	assert.True(t, decimal.Zero.Equal(receipt.MembershipDiscount))
	assert.True(t, decimal.NewFromInt(1000).Equal(receipt.FinalAmount))
	assert.Equal(t, 3, receipt.TotalQuantity)
	assert.NotEmpty(t, receipt.ID)

	cola, err := c.FindProduct("Cola")
	require.NoError(t, err)
	assert.Equal(t, 7, cola.Quantity, "paid and free units both deduct stock")
}

func TestProcess_PromotionDeclined(t *testing.T) {
	c := newCatalog([]catalog.Product{
		{Name: "Cola", Price: decimal.NewFromInt(1000), Quantity: 10, Promotion: "Two Plus One"},
	}, []catalog.Promotion{buyTwoGetOne("Two Plus One")})
	svc := NewService(c, &scriptedPrompter{answers: []bool{false}})

	receipt, err := svc.Process(context.Background(), []Item{{Name: "Cola", Quantity: 2}})
	require.NoError(t, err)

	assert.Empty(t, receipt.FreeItems)
	assert.True(t, decimal.Zero.Equal(receipt.PromotionDiscount))
	assert.Equal(t, 2, receipt.TotalQuantity)

	cola, err := c.FindProduct("Cola")
	require.NoError(t, err)
	assert.Equal(t, 8, cola.Quantity)
}

func TestProcess_MultipleLines(t *testing.T) {
	c := newCatalog([]catalog.Product{
		{Name: "Cola", Price: decimal.NewFromInt(1000), Quantity: 10, Promotion: "Two Plus One"},
		{Name: "Water", Price: decimal.NewFromInt(500), Quantity: 10},
	}, []catalog.Promotion{buyTwoGetOne("Two Plus One")})
	svc := NewService(c, &scriptedPrompter{answers: []bool{true}})

	receipt, err := svc.Process(context.Background(), []Item{
		{Name: "Cola", Quantity: 2},
		{Name: "Water", Quantity: 3},
	})
	require.NoError(t, err)

	require.Len(t, receipt.Lines, 2)
	assert.True(t, decimal.NewFromInt(3500).Equal(receipt.TotalAmount))
	assert.True(t, decimal.NewFromInt(1000).Equal(receipt.PromotionDiscount))
	assert.Equal(t, 6, receipt.TotalQuantity)
	assert.True(t, decimal.NewFromInt(2500).Equal(receipt.FinalAmount))
}

func TestProcess_StockKeptOnMidRoundFailure(t *testing.T) {
	// Fail-fast without rollback: the first line's deduction survives the
	// second line's error.
	c := newCatalog([]catalog.Product{
		{Name: "Water", Price: decimal.NewFromInt(500), Quantity: 10},
	}, nil)
	svc := NewService(c, &scriptedPrompter{})

	_, err := svc.Process(context.Background(), []Item{
		{Name: "Water", Quantity: 4},
		{Name: "Bread", Quantity: 1},
	})
	require.Error(t, err)

	water, findErr := c.FindProduct("Water")
	require.NoError(t, findErr)
	assert.Equal(t, 6, water.Quantity)
}

func TestApplyMembership(t *testing.T) {
	r := &Receipt{
		TotalAmount:       decimal.NewFromInt(10000),
		PromotionDiscount: decimal.NewFromInt(1000),
	}

	ApplyMembership(r)

	assert.True(t, decimal.NewFromInt(2700).Equal(r.MembershipDiscount))
	assert.True(t, decimal.NewFromInt(6300).Equal(r.FinalAmount))
}

func TestApplyMembership_Capped(t *testing.T) {
	r := &Receipt{
		TotalAmount:       decimal.NewFromInt(50000),
		PromotionDiscount: decimal.Zero,
	}

	ApplyMembership(r)

	assert.True(t, decimal.NewFromInt(8000).Equal(r.MembershipDiscount))
	assert.True(t, decimal.NewFromInt(42000).Equal(r.FinalAmount))
}

func TestApplyMembership_FloorsFraction(t *testing.T) {
	r := &Receipt{
		TotalAmount:       decimal.NewFromInt(1005),
		PromotionDiscount: decimal.Zero,
	}

	ApplyMembership(r)

	// 30% of 1005 is 301.5, floored to 301.
	assert.True(t, decimal.NewFromInt(301).Equal(r.MembershipDiscount))
	assert.True(t, decimal.NewFromInt(704).Equal(r.FinalAmount))
}

func TestPromotionDiscount_NoFreeItems(t *testing.T) {
	lines := []LineItem{{Name: "Water", Quantity: 2, Price: decimal.NewFromInt(1000)}}

	assert.True(t, decimal.Zero.Equal(promotionDiscount(lines, nil)))
}
