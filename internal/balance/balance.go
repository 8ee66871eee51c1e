// Package balance aggregates a family's owed and paid totals. It mutates
// nothing; everything derives from the family's non-pending orders.
package balance

import (
	"github.com/shopspring/decimal"

	"github.com/aishnaga/cookie-ordering-system-2026/internal/directory"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/model"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/order"
)

// View computes family balances from order data.
type View struct {
	orders *order.Service
	dir    *directory.Service
}

// NewView wires the balance view to its sources.
func NewView(orders *order.Service, dir *directory.Service) *View {
	return &View{orders: orders, dir: dir}
}

// ComputeFamilyBalance sums amount owed and the three payment accumulators
// across every non-pending order of the family. Pending orders are not yet
// approved and count toward neither side.
func (v *View) ComputeFamilyBalance(familyID string) (model.FamilyBalance, error) {
	if !v.dir.Exists(familyID) {
		return model.FamilyBalance{}, model.ErrNotFound
	}
	b := model.FamilyBalance{
		FamilyID:   familyID,
		Owed:       decimal.Zero,
		Cash:       decimal.Zero,
		Check:      decimal.Zero,
		CreditCard: decimal.Zero,
	}
	for _, o := range v.orders.ListByFamily(familyID) {
		if o.Status == model.OrderPending {
			continue
		}
		b.Owed = b.Owed.Add(o.AmountOwed())
		b.Cash = b.Cash.Add(o.CashPaid)
		b.Check = b.Check.Add(o.CheckPaid)
		b.CreditCard = b.CreditCard.Add(o.CreditCardPaid)
	}
	b.Balance = b.Owed.Sub(b.Cash).Sub(b.Check).Sub(b.CreditCard)
	return b, nil
}
