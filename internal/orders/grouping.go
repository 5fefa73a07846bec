package orders

import (
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/gocart/storefront/pkg/db/models"
)

var hundred = decimal.NewFromInt(100)

// pricedLine is a cart line after it has been matched to the catalog.
type pricedLine struct {
	Product  models.Product
	Quantity int
}

func (l pricedLine) total() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// storeGroup holds the lines that become a single order.
type storeGroup struct {
	StoreID uuid.UUID
	Lines   []pricedLine
}

func (g storeGroup) subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, line := range g.Lines {
		sum = sum.Add(line.total())
	}
	return sum
}

// mergeItems folds repeated product ids into one line, keeping the position
// of the first occurrence.
func mergeItems(items []CartItem) []CartItem {
	ids := lo.Uniq(lo.Map(items, func(item CartItem, _ int) uuid.UUID { return item.ID }))
	byID := lo.GroupBy(items, func(item CartItem) uuid.UUID { return item.ID })
	return lo.Map(ids, func(id uuid.UUID, _ int) CartItem {
		return CartItem{
			ID:       id,
			Quantity: lo.SumBy(byID[id], func(item CartItem) int { return item.Quantity }),
		}
	})
}

// groupByStore partitions lines by owning store in first-appearance order.
func groupByStore(lines []pricedLine) []storeGroup {
	storeIDs := lo.Uniq(lo.Map(lines, func(line pricedLine, _ int) uuid.UUID { return line.Product.StoreID }))
	byStore := lo.GroupBy(lines, func(line pricedLine) uuid.UUID { return line.Product.StoreID })
	return lo.Map(storeIDs, func(id uuid.UUID, _ int) storeGroup {
		return storeGroup{StoreID: id, Lines: byStore[id]}
	})
}

// percentOff returns pct percent of amount rounded to cents.
func percentOff(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(hundred).Round(2)
}
