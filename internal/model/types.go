// Package model defines domain types shared across the service.
package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// StockStatus distinguishes boxes physically on hand from boxes still on
// order from the council. Family pools only ever hold on_hand stock.
type StockStatus string

const (
	StockOnHand  StockStatus = "on_hand"
	StockOrdered StockStatus = "ordered"
)

// Valid reports whether s is a known stock status.
func (s StockStatus) Valid() bool {
	return s == StockOnHand || s == StockOrdered
}

// TransferReason tags every audit row with why inventory moved.
type TransferReason string

const (
	ReasonCouncilDelivery  TransferReason = "council_delivery"
	ReasonOrderFulfillment TransferReason = "order_fulfillment"
	ReasonExchange         TransferReason = "exchange"
	ReasonAdminCorrection  TransferReason = "admin_correction"
)

// Valid reports whether r is a known transfer reason.
func (r TransferReason) Valid() bool {
	switch r {
	case ReasonCouncilDelivery, ReasonOrderFulfillment, ReasonExchange, ReasonAdminCorrection:
		return true
	}
	return false
}

// PoolKey identifies an inventory pool: the central troop pool or exactly
// one family's pool. The zero value is the central pool, so a pool can
// never degrade into an implicit-null foreign key.
type PoolKey struct {
	family string
}

// CentralPool returns the key of the troop-level pool.
func CentralPool() PoolKey { return PoolKey{} }

// FamilyPool returns the key of the given family's pool.
func FamilyPool(familyID string) PoolKey { return PoolKey{family: familyID} }

// IsCentral reports whether the key names the central pool.
func (k PoolKey) IsCentral() bool { return k.family == "" }

// FamilyID returns the owning family id, or "" for the central pool.
func (k PoolKey) FamilyID() string { return k.family }

func (k PoolKey) String() string {
	if k.IsCentral() {
		return "central"
	}
	return "family:" + k.family
}

// MarshalJSON renders the pool as its string form so audit rows serialize
// as "central" or "family:<id>".
func (k PoolKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// InventoryTransaction is one immutable audit row. From/To are nil when the
// movement crosses the system boundary (council delivery, correction).
type InventoryTransaction struct {
	ID        string         `json:"id"`
	Seq       uint64         `json:"seq"`
	VarietyID string         `json:"cookie_variety_id"`
	Quantity  int            `json:"quantity"`
	From      *PoolKey       `json:"from_pool,omitempty"`
	To        *PoolKey       `json:"to_pool,omitempty"`
	Reason    TransferReason `json:"reason"`
	CreatedAt time.Time      `json:"created_at"`
}

// PoolQuantity is one (variety, status, quantity) row of a pool listing.
type PoolQuantity struct {
	VarietyID string      `json:"cookie_variety_id"`
	Status    StockStatus `json:"status"`
	Quantity  int         `json:"quantity"`
}

// FamilyHolding is one row of the cross-family visibility listing.
type FamilyHolding struct {
	FamilyID  string `json:"family_id"`
	VarietyID string `json:"cookie_variety_id"`
	Quantity  int    `json:"quantity"`
}

// CookieVariety is a catalog entry. PricePerBox is the current catalog
// price; orders snapshot it into line items instead of referencing it.
type CookieVariety struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	PricePerBox decimal.Decimal `json:"price_per_box"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Family is a participating household.
type Family struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContactInfo string    `json:"contact_info,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// OrderStatus is the order lifecycle state.
type OrderStatus string

const (
	OrderPending        OrderStatus = "pending"
	OrderApproved       OrderStatus = "approved"
	OrderReadyForPickup OrderStatus = "ready_for_pickup"
	OrderPickedUp       OrderStatus = "picked_up"
	OrderPaid           OrderStatus = "paid"
)

// orderSuccessor is the transition table: each state maps to its single
// legal successor. The terminal state is absent.
var orderSuccessor = map[OrderStatus]OrderStatus{
	OrderPending:        OrderApproved,
	OrderApproved:       OrderReadyForPickup,
	OrderReadyForPickup: OrderPickedUp,
	OrderPickedUp:       OrderPaid,
}

// Next returns the single legal successor of s; ok is false for terminal
// or unknown states.
func (s OrderStatus) Next() (OrderStatus, bool) {
	n, ok := orderSuccessor[s]
	return n, ok
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	if _, ok := orderSuccessor[s]; ok {
		return true
	}
	return s == OrderPaid
}

// OrderLineItem is a child row of an order. UnitPrice is the catalog price
// snapshotted at creation or last edit; it is never re-derived afterwards.
type OrderLineItem struct {
	VarietyID string          `json:"cookie_variety_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// PaymentMethod names one of the three payment accumulators on an order.
type PaymentMethod string

const (
	PayCash       PaymentMethod = "cash"
	PayCheck      PaymentMethod = "check"
	PayCreditCard PaymentMethod = "credit_card"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	return m == PayCash || m == PayCheck || m == PayCreditCard
}

// Order is a family's order against the central pool.
type Order struct {
	ID             string          `json:"id"`
	FamilyID       string          `json:"family_id"`
	Status         OrderStatus     `json:"status"`
	LineItems      []OrderLineItem `json:"line_items"`
	CashPaid       decimal.Decimal `json:"cash_paid"`
	CheckPaid      decimal.Decimal `json:"check_paid"`
	CreditCardPaid decimal.Decimal `json:"credit_card_paid"`
	PaymentNotes   string          `json:"payment_notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// AmountOwed is the sum of quantity*unit_price over all line items.
func (o *Order) AmountOwed() decimal.Decimal {
	total := decimal.Zero
	for _, li := range o.LineItems {
		total = total.Add(li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity))))
	}
	return total
}

// AmountPaid is the sum of the three payment accumulators.
func (o *Order) AmountPaid() decimal.Decimal {
	return o.CashPaid.Add(o.CheckPaid).Add(o.CreditCardPaid)
}

// Balance is AmountOwed minus AmountPaid.
func (o *Order) Balance() decimal.Decimal {
	return o.AmountOwed().Sub(o.AmountPaid())
}

// ExchangeStatus is the peer-to-peer exchange lifecycle state. Approval and
// transfer happen as one atomic step, so there is no stored "approved".
type ExchangeStatus string

const (
	ExchangeRequested ExchangeStatus = "requested"
	ExchangeCompleted ExchangeStatus = "completed"
	ExchangeDeclined  ExchangeStatus = "declined"
)

// Terminal reports whether s admits no further transitions.
func (s ExchangeStatus) Terminal() bool {
	return s == ExchangeCompleted || s == ExchangeDeclined
}

// ExchangeDecision is the coordinator's resolution of a requested exchange.
type ExchangeDecision string

const (
	DecisionApprove ExchangeDecision = "approve"
	DecisionDecline ExchangeDecision = "decline"
)

// Exchange is a peer-to-peer transfer request between two family pools.
type Exchange struct {
	ID                 string         `json:"id"`
	RequestingFamilyID string         `json:"requesting_family_id"`
	ProvidingFamilyID  string         `json:"providing_family_id"`
	VarietyID          string         `json:"cookie_variety_id"`
	Quantity           int            `json:"quantity"`
	Status             ExchangeStatus `json:"status"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// FamilyBalance is the aggregated owed/paid position of one family across
// its non-pending orders.
type FamilyBalance struct {
	FamilyID   string          `json:"family_id"`
	Owed       decimal.Decimal `json:"owed"`
	Cash       decimal.Decimal `json:"cash"`
	Check      decimal.Decimal `json:"check"`
	CreditCard decimal.Decimal `json:"credit_card"`
	Balance    decimal.Decimal `json:"balance"`
}
