// Package order owns the order lifecycle: creation against central
// availability, the single-step status machine, line-item edits and
// payment recording.
package order

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aishnaga/cookie-ordering-system-2026/internal/catalog"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/directory"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/ledger"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/model"
)

// Service coordinates orders with the ledger, catalog and directory. Its
// mutex serializes every check-then-mutate sequence; the ledger's own lock
// is only ever taken while this one is held, never the other way around.
type Service struct {
	mu      sync.RWMutex
	orders  map[string]*model.Order
	ledger  *ledger.Ledger
	catalog *catalog.Service
	dir     *directory.Service
}

// New wires the order service to its collaborators.
func New(l *ledger.Ledger, c *catalog.Service, d *directory.Service) *Service {
	return &Service{
		orders:  make(map[string]*model.Order),
		ledger:  l,
		catalog: c,
		dir:     d,
	}
}

// snapshotItems validates requested items and snapshots each variety's
// current catalog price into a line item.
func (s *Service) snapshotItems(items []ledger.ItemQuantity) ([]model.OrderLineItem, error) {
	if len(items) == 0 {
		return nil, model.Validationf("order requires at least one item")
	}
	out := make([]model.OrderLineItem, 0, len(items))
	for _, it := range items {
		if it.Quantity <= 0 {
			return nil, model.Validationf("item quantity must be positive, got %d", it.Quantity)
		}
		price, err := s.catalog.PriceOf(it.VarietyID)
		if err != nil {
			return nil, model.Validationf("unknown cookie variety %q", it.VarietyID)
		}
		out = append(out, model.OrderLineItem{
			VarietyID: it.VarietyID,
			Quantity:  it.Quantity,
			UnitPrice: price,
		})
	}
	return out, nil
}

// Create validates every requested item against current central on-hand
// availability and persists the order with its line items as one unit.
// Any shortfall fails the whole call with per-item detail and nothing is
// persisted. Central stock is not debited here; that happens at pickup.
func (s *Service) Create(familyID string, items []ledger.ItemQuantity) (model.Order, error) {
	if familyID == "" {
		return model.Order{}, model.Validationf("family id is required")
	}
	if !s.dir.Exists(familyID) {
		return model.Order{}, model.ErrNotFound
	}
	lineItems, err := s.snapshotItems(items)
	if err != nil {
		return model.Order{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if short := s.ledger.CheckAvailability(model.CentralPool(), model.StockOnHand, items); len(short) > 0 {
		return model.Order{}, &model.InsufficientInventoryError{Shortfalls: short}
	}
	now := time.Now().UTC()
	o := &model.Order{
		ID:             uuid.NewString(),
		FamilyID:       familyID,
		Status:         model.OrderPending,
		LineItems:      lineItems,
		CashPaid:       decimal.Zero,
		CheckPaid:      decimal.Zero,
		CreditCardPaid: decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.orders[o.ID] = o
	return cloned(o), nil
}

// TransitionStatus moves an order to the single legal successor of its
// current status. Reaching picked_up transfers every line item from the
// central pool to the family pool as one atomic set; if any transfer
// fails the order stays in its prior status and no item moves.
func (s *Service) TransitionStatus(id string, next model.OrderStatus) (model.Order, error) {
	if !next.Valid() {
		return model.Order{}, model.Validationf("unknown order status %q", next)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return model.Order{}, model.ErrNotFound
	}
	succ, hasNext := o.Status.Next()
	if !hasNext || succ != next {
		return model.Order{}, &model.InvalidTransitionError{Entity: "order", From: string(o.Status), To: string(next)}
	}
	if next == model.OrderPickedUp {
		items := make([]ledger.ItemQuantity, 0, len(o.LineItems))
		for _, li := range o.LineItems {
			items = append(items, ledger.ItemQuantity{VarietyID: li.VarietyID, Quantity: li.Quantity})
		}
		if err := s.ledger.TransferBatch(model.CentralPool(), model.FamilyPool(o.FamilyID), items, model.ReasonOrderFulfillment); err != nil {
			return model.Order{}, err
		}
	}
	o.Status = next
	o.UpdatedAt = time.Now().UTC()
	return cloned(o), nil
}

// EditLineItems replaces the order's line items wholesale, re-snapshotting
// unit prices from the current catalog. Only pending and approved orders
// may be edited; past that point inventory has moved or is about to.
func (s *Service) EditLineItems(id string, items []ledger.ItemQuantity) (model.Order, error) {
	lineItems, err := s.snapshotItems(items)
	if err != nil {
		return model.Order{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return model.Order{}, model.ErrNotFound
	}
	if o.Status != model.OrderPending && o.Status != model.OrderApproved {
		return model.Order{}, &model.InvalidTransitionError{Entity: "order", From: string(o.Status), To: "edit"}
	}
	o.LineItems = lineItems
	o.UpdatedAt = time.Now().UTC()
	return cloned(o), nil
}

// RecordPayment adds a positive amount to the matching accumulator and
// appends notes to the order's payment log. Payments are purely additive.
func (s *Service) RecordPayment(id string, method model.PaymentMethod, amount decimal.Decimal, notes string) (model.Order, error) {
	if !method.Valid() {
		return model.Order{}, model.Validationf("unknown payment method %q", method)
	}
	if !amount.IsPositive() {
		return model.Order{}, &model.InvalidAmountError{Amount: amount.String()}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return model.Order{}, model.ErrNotFound
	}
	switch method {
	case model.PayCash:
		o.CashPaid = o.CashPaid.Add(amount)
	case model.PayCheck:
		o.CheckPaid = o.CheckPaid.Add(amount)
	case model.PayCreditCard:
		o.CreditCardPaid = o.CreditCardPaid.Add(amount)
	}
	if notes != "" {
		if o.PaymentNotes != "" {
			o.PaymentNotes += "; "
		}
		o.PaymentNotes += notes
	}
	o.UpdatedAt = time.Now().UTC()
	return cloned(o), nil
}

// SetPayments overwrites all three payment accumulators in one call, for
// coordinator corrections. Amounts must be non-negative.
func (s *Service) SetPayments(id string, cash, check, creditCard decimal.Decimal) (model.Order, error) {
	for _, amt := range []decimal.Decimal{cash, check, creditCard} {
		if amt.IsNegative() {
			return model.Order{}, model.Validationf("payment totals must not be negative")
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return model.Order{}, model.ErrNotFound
	}
	o.CashPaid = cash
	o.CheckPaid = check
	o.CreditCardPaid = creditCard
	o.UpdatedAt = time.Now().UTC()
	return cloned(o), nil
}

// Delete removes an order that is still pending. Once inventory has been
// promised or moved, deletion would orphan transferred boxes.
func (s *Service) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return model.ErrNotFound
	}
	if o.Status != model.OrderPending {
		return &model.InvalidTransitionError{Entity: "order", From: string(o.Status), To: "deleted"}
	}
	delete(s.orders, id)
	return nil
}

// Balance returns amount owed minus amount paid for one order.
func (s *Service) Balance(id string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return decimal.Zero, model.ErrNotFound
	}
	return o.Balance(), nil
}

// Get returns one order by id.
func (s *Service) Get(id string) (model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return model.Order{}, model.ErrNotFound
	}
	return cloned(o), nil
}

// List returns orders newest first, optionally filtered by status.
func (s *Service) List(status model.OrderStatus) ([]model.Order, error) {
	if status != "" && !status.Valid() {
		return nil, model.Validationf("unknown order status %q", status)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, cloned(o))
	}
	sortNewestFirst(out)
	return out, nil
}

// ListByFamily returns one family's orders newest first.
func (s *Service) ListByFamily(familyID string) []model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Order, 0)
	for _, o := range s.orders {
		if o.FamilyID == familyID {
			out = append(out, cloned(o))
		}
	}
	sortNewestFirst(out)
	return out
}

func sortNewestFirst(orders []model.Order) {
	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return orders[i].ID < orders[j].ID
	})
}

func cloned(o *model.Order) model.Order {
	out := *o
	out.LineItems = make([]model.OrderLineItem, len(o.LineItems))
	copy(out.LineItems, o.LineItems)
	return out
}
