package balance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aishnaga/cookie-ordering-system-2026/internal/catalog"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/directory"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/ledger"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/model"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/order"
)

func TestComputeFamilyBalance(t *testing.T) {
	l := ledger.New()
	c := catalog.New()
	d := directory.New()
	orders := order.New(l, c, d)
	view := NewView(orders, d)

	tm, err := c.Create("Thin Mints", decimal.RequireFromString("6.00"))
	require.NoError(t, err)
	fam, err := d.Create("Garcia", "")
	require.NoError(t, err)
	require.NoError(t, l.Credit(model.CentralPool(), tm.ID, model.StockOnHand, 100, model.ReasonCouncilDelivery))

	// approved order: 5 boxes = 30.00 owed, 10 cash + 5 check paid
	o1, err := orders.Create(fam.ID, []ledger.ItemQuantity{{VarietyID: tm.ID, Quantity: 5}})
	require.NoError(t, err)
	_, err = orders.TransitionStatus(o1.ID, model.OrderApproved)
	require.NoError(t, err)
	_, err = orders.RecordPayment(o1.ID, model.PayCash, decimal.RequireFromString("10"), "")
	require.NoError(t, err)
	_, err = orders.RecordPayment(o1.ID, model.PayCheck, decimal.RequireFromString("5"), "")
	require.NoError(t, err)

	// pending order: counts toward nothing yet
	_, err = orders.Create(fam.ID, []ledger.ItemQuantity{{VarietyID: tm.ID, Quantity: 50}})
	require.NoError(t, err)

	b, err := view.ComputeFamilyBalance(fam.ID)
	require.NoError(t, err)
	assert.True(t, b.Owed.Equal(decimal.RequireFromString("30.00")), "owed %s", b.Owed)
	assert.True(t, b.Cash.Equal(decimal.RequireFromString("10")))
	assert.True(t, b.Check.Equal(decimal.RequireFromString("5")))
	assert.True(t, b.CreditCard.Equal(decimal.Zero))
	assert.True(t, b.Balance.Equal(decimal.RequireFromString("15.00")), "balance %s", b.Balance)
}

func TestComputeFamilyBalanceEmpty(t *testing.T) {
	l := ledger.New()
	c := catalog.New()
	d := directory.New()
	view := NewView(order.New(l, c, d), d)

	fam, err := d.Create("Nguyen", "")
	require.NoError(t, err)

	b, err := view.ComputeFamilyBalance(fam.ID)
	require.NoError(t, err)
	assert.True(t, b.Owed.IsZero())
	assert.True(t, b.Balance.IsZero())
}

func TestComputeFamilyBalanceUnknownFamily(t *testing.T) {
	l := ledger.New()
	c := catalog.New()
	d := directory.New()
	view := NewView(order.New(l, c, d), d)

	_, err := view.ComputeFamilyBalance("missing")
	assert.ErrorIs(t, err, model.ErrNotFound)
}
