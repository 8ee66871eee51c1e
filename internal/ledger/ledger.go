// Package ledger is the single source of truth for pool quantities and the
// append-only transfer audit log. All quantity changes in the system route
// through it.
package ledger

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/aishnaga/cookie-ordering-system-2026/internal/model"
)

// ItemQuantity pairs a variety with a box count in bulk operations.
type ItemQuantity struct {
	VarietyID string `json:"cookie_variety_id"`
	Quantity  int    `json:"quantity"`
}

type poolRow struct {
	pool    model.PoolKey
	variety string
	status  model.StockStatus
}

// Ledger holds every pool's quantities keyed by (pool, variety, status).
// A missing row is quantity zero; rows are created lazily on first credit
// and never deleted. One mutex guards both the quantities and the log, so
// every check-then-mutate sequence commits atomically.
type Ledger struct {
	mu  sync.Mutex
	qty map[poolRow]int
	log []model.InventoryTransaction
	seq atomic.Uint64
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{qty: make(map[poolRow]int)}
}

// record appends one audit row. Callers must hold l.mu.
func (l *Ledger) record(variety string, qty int, from, to *model.PoolKey, reason model.TransferReason) {
	l.log = append(l.log, model.InventoryTransaction{
		ID:        uuid.NewString(),
		Seq:       l.seq.Add(1),
		VarietyID: variety,
		Quantity:  qty,
		From:      from,
		To:        to,
		Reason:    reason,
		CreatedAt: time.Now().UTC(),
	})
}

// Pool lists the quantities of one pool, sorted by variety then status.
// Zero-quantity rows are included once they exist.
func (l *Ledger) Pool(pool model.PoolKey) []model.PoolQuantity {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []model.PoolQuantity
	for row, q := range l.qty {
		if row.pool != pool {
			continue
		}
		out = append(out, model.PoolQuantity{VarietyID: row.variety, Status: row.status, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].VarietyID != out[j].VarietyID {
			return out[i].VarietyID < out[j].VarietyID
		}
		return out[i].Status < out[j].Status
	})
	return out
}

// AllFamilyPools lists every family-held row with quantity > 0, for
// cross-family visibility.
func (l *Ledger) AllFamilyPools() []model.FamilyHolding {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []model.FamilyHolding
	for row, q := range l.qty {
		if row.pool.IsCentral() || q <= 0 {
			continue
		}
		out = append(out, model.FamilyHolding{
			FamilyID:  row.pool.FamilyID(),
			VarietyID: row.variety,
			Quantity:  q,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FamilyID != out[j].FamilyID {
			return out[i].FamilyID < out[j].FamilyID
		}
		return out[i].VarietyID < out[j].VarietyID
	})
	return out
}

// Available returns the quantity of one (pool, variety, status) row.
func (l *Ledger) Available(pool model.PoolKey, variety string, status model.StockStatus) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.qty[poolRow{pool: pool, variety: variety, status: status}]
}

// CheckAvailability compares requested quantities against one consistent
// snapshot of the pool and returns every shortfall. Requests for the same
// variety are summed before comparing.
func (l *Ledger) CheckAvailability(pool model.PoolKey, status model.StockStatus, items []ItemQuantity) []model.Shortfall {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.shortfalls(pool, status, items)
}

// shortfalls computes unmet demand. Callers must hold l.mu.
func (l *Ledger) shortfalls(pool model.PoolKey, status model.StockStatus, items []ItemQuantity) []model.Shortfall {
	need := make(map[string]int)
	order := make([]string, 0, len(items))
	for _, it := range items {
		if _, seen := need[it.VarietyID]; !seen {
			order = append(order, it.VarietyID)
		}
		need[it.VarietyID] += it.Quantity
	}
	var out []model.Shortfall
	for _, v := range order {
		have := l.qty[poolRow{pool: pool, variety: v, status: status}]
		if want := need[v]; want > have {
			out = append(out, model.Shortfall{VarietyID: v, Requested: want, Available: have})
		}
	}
	return out
}

// Credit adds qty boxes to a pool row and appends an audit transaction
// with the pool as destination. qty must be positive.
func (l *Ledger) Credit(pool model.PoolKey, variety string, status model.StockStatus, qty int, reason model.TransferReason) error {
	if qty <= 0 {
		return model.Validationf("credit quantity must be positive, got %d", qty)
	}
	if !status.Valid() {
		return model.Validationf("unknown stock status %q", status)
	}
	if !reason.Valid() {
		return model.Validationf("unknown transfer reason %q", reason)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.qty[poolRow{pool: pool, variety: variety, status: status}] += qty
	to := pool
	l.record(variety, qty, nil, &to, reason)
	return nil
}

// Debit removes qty boxes from a pool row, failing if the row would go
// negative. Debit alone appends no audit row; movements between pools go
// through Transfer, which records the pair as one transaction.
func (l *Ledger) Debit(pool model.PoolKey, variety string, status model.StockStatus, qty int) error {
	if qty <= 0 {
		return model.Validationf("debit quantity must be positive, got %d", qty)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	row := poolRow{pool: pool, variety: variety, status: status}
	have := l.qty[row]
	if have < qty {
		return model.Insufficient(variety, qty, have)
	}
	l.qty[row] = have - qty
	return nil
}

// Transfer atomically moves qty on-hand boxes between two pools and logs a
// single audit transaction. If the source cannot cover it, nothing changes.
func (l *Ledger) Transfer(from, to model.PoolKey, variety string, qty int, reason model.TransferReason) error {
	return l.TransferBatch(from, to, []ItemQuantity{{VarietyID: variety, Quantity: qty}}, reason)
}

// TransferBatch moves a set of varieties between two pools as one atomic
// unit: every debit is validated against the same snapshot before any row
// changes, and a failure leaves both pools untouched. One audit row is
// logged per item.
func (l *Ledger) TransferBatch(from, to model.PoolKey, items []ItemQuantity, reason model.TransferReason) error {
	if len(items) == 0 {
		return model.Validationf("transfer requires at least one item")
	}
	for _, it := range items {
		if it.Quantity <= 0 {
			return model.Validationf("transfer quantity must be positive, got %d", it.Quantity)
		}
	}
	if !reason.Valid() {
		return model.Validationf("unknown transfer reason %q", reason)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if short := l.shortfalls(from, model.StockOnHand, items); len(short) > 0 {
		return &model.InsufficientInventoryError{Shortfalls: short}
	}
	for _, it := range items {
		l.qty[poolRow{pool: from, variety: it.VarietyID, status: model.StockOnHand}] -= it.Quantity
		l.qty[poolRow{pool: to, variety: it.VarietyID, status: model.StockOnHand}] += it.Quantity
		f, t := from, to
		l.record(it.VarietyID, it.Quantity, &f, &t, reason)
	}
	return nil
}

// SetAbsolute overwrites one pool row. It is the administrative override
// path and the one operation allowed to change a variety's system-wide
// total outside of Credit; the audit row carries the size of the
// correction. Movement reasons are rejected so fulfillment and exchange
// totals stay conserved.
func (l *Ledger) SetAbsolute(pool model.PoolKey, variety string, status model.StockStatus, newQty int, reason model.TransferReason) error {
	if newQty < 0 {
		return model.Validationf("quantity must not be negative, got %d", newQty)
	}
	if !status.Valid() {
		return model.Validationf("unknown stock status %q", status)
	}
	if reason == "" {
		reason = model.ReasonAdminCorrection
	}
	if reason == model.ReasonOrderFulfillment || reason == model.ReasonExchange {
		return model.Validationf("reason %q is reserved for transfers", reason)
	}
	if !reason.Valid() {
		return model.Validationf("unknown transfer reason %q", reason)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	row := poolRow{pool: pool, variety: variety, status: status}
	old := l.qty[row]
	l.qty[row] = newQty
	delta := newQty - old
	if delta < 0 {
		delta = -delta
	}
	p := pool
	l.record(variety, delta, nil, &p, reason)
	return nil
}

// BulkSetFamilyPool overwrites every supplied variety of a family's
// on-hand pool in one atomic pass, for self-reported counts. Each changed
// row logs an admin_correction transaction attributed to the family.
func (l *Ledger) BulkSetFamilyPool(familyID string, items []ItemQuantity) error {
	if familyID == "" {
		return model.Validationf("family id is required")
	}
	for _, it := range items {
		if it.Quantity < 0 {
			return model.Validationf("quantity must not be negative, got %d", it.Quantity)
		}
	}
	pool := model.FamilyPool(familyID)
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, it := range items {
		row := poolRow{pool: pool, variety: it.VarietyID, status: model.StockOnHand}
		old := l.qty[row]
		if old == it.Quantity {
			continue
		}
		l.qty[row] = it.Quantity
		delta := it.Quantity - old
		if delta < 0 {
			delta = -delta
		}
		p := pool
		l.record(it.VarietyID, delta, nil, &p, model.ReasonAdminCorrection)
	}
	return nil
}

// Transactions returns a copy of the audit log, oldest first.
func (l *Ledger) Transactions() []model.InventoryTransaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.InventoryTransaction, len(l.log))
	copy(out, l.log)
	return out
}
