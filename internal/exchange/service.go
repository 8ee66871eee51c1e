// Package exchange owns the peer-to-peer exchange lifecycle between
// family pools. Approval and transfer are one atomic step so a request
// can never fund two transfers.
package exchange

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aishnaga/cookie-ordering-system-2026/internal/catalog"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/directory"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/ledger"
	"github.com/aishnaga/cookie-ordering-system-2026/internal/model"
)

// Service coordinates exchanges with the ledger. Its mutex serializes
// resolution so an exchange moves from requested to a terminal state
// exactly once; the ledger's lock is only taken while this one is held.
type Service struct {
	mu        sync.RWMutex
	exchanges map[string]*model.Exchange
	ledger    *ledger.Ledger
	catalog   *catalog.Service
	dir       *directory.Service
}

// New wires the exchange service to its collaborators.
func New(l *ledger.Ledger, c *catalog.Service, d *directory.Service) *Service {
	return &Service{
		exchanges: make(map[string]*model.Exchange),
		ledger:    l,
		catalog:   c,
		dir:       d,
	}
}

// Request records a new exchange in the requested state. The provider's
// pool is checked now as a courtesy to the requester; it is re-validated
// at resolution because time passes in between. No inventory moves here.
func (s *Service) Request(requestingFamilyID, providingFamilyID, varietyID string, qty int) (model.Exchange, error) {
	if qty <= 0 {
		return model.Exchange{}, model.Validationf("exchange quantity must be positive, got %d", qty)
	}
	if requestingFamilyID == "" || providingFamilyID == "" {
		return model.Exchange{}, model.Validationf("both families are required")
	}
	if requestingFamilyID == providingFamilyID {
		return model.Exchange{}, model.Validationf("a family cannot exchange with itself")
	}
	if !s.dir.Exists(requestingFamilyID) || !s.dir.Exists(providingFamilyID) {
		return model.Exchange{}, model.ErrNotFound
	}
	if _, err := s.catalog.Get(varietyID); err != nil {
		return model.Exchange{}, model.Validationf("unknown cookie variety %q", varietyID)
	}
	have := s.ledger.Available(model.FamilyPool(providingFamilyID), varietyID, model.StockOnHand)
	if have < qty {
		return model.Exchange{}, model.Insufficient(varietyID, qty, have)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	e := &model.Exchange{
		ID:                 uuid.NewString(),
		RequestingFamilyID: requestingFamilyID,
		ProvidingFamilyID:  providingFamilyID,
		VarietyID:          varietyID,
		Quantity:           qty,
		Status:             model.ExchangeRequested,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	s.exchanges[e.ID] = e
	return *e, nil
}

// Resolve moves a requested exchange to a terminal state. Decline has no
// inventory effect. Approve re-checks the provider's pool, transfers the
// boxes and marks the exchange completed as one atomic unit; on a
// shortfall the exchange stays requested so the coordinator can retry or
// decline. Resolving a terminal exchange fails with InvalidTransition and
// never moves inventory a second time.
func (s *Service) Resolve(id string, decision model.ExchangeDecision) (model.Exchange, error) {
	if decision != model.DecisionApprove && decision != model.DecisionDecline {
		return model.Exchange{}, model.Validationf("unknown decision %q", decision)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.exchanges[id]
	if !ok {
		return model.Exchange{}, model.ErrNotFound
	}
	if e.Status != model.ExchangeRequested {
		return model.Exchange{}, &model.InvalidTransitionError{Entity: "exchange", From: string(e.Status), To: string(decision)}
	}
	if decision == model.DecisionDecline {
		e.Status = model.ExchangeDeclined
		e.UpdatedAt = time.Now().UTC()
		return *e, nil
	}
	err := s.ledger.Transfer(
		model.FamilyPool(e.ProvidingFamilyID),
		model.FamilyPool(e.RequestingFamilyID),
		e.VarietyID, e.Quantity, model.ReasonExchange,
	)
	if err != nil {
		return model.Exchange{}, err
	}
	e.Status = model.ExchangeCompleted
	e.UpdatedAt = time.Now().UTC()
	return *e, nil
}

// Get returns one exchange by id.
func (s *Service) Get(id string) (model.Exchange, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.exchanges[id]
	if !ok {
		return model.Exchange{}, model.ErrNotFound
	}
	return *e, nil
}

// List returns all exchanges newest first.
func (s *Service) List() []model.Exchange {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Exchange, 0, len(s.exchanges))
	for _, e := range s.exchanges {
		out = append(out, *e)
	}
	sortNewestFirst(out)
	return out
}

// ListByFamily returns exchanges where the family is requester or
// provider, newest first.
func (s *Service) ListByFamily(familyID string) []model.Exchange {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Exchange, 0)
	for _, e := range s.exchanges {
		if e.RequestingFamilyID == familyID || e.ProvidingFamilyID == familyID {
			out = append(out, *e)
		}
	}
	sortNewestFirst(out)
	return out
}

func sortNewestFirst(exchanges []model.Exchange) {
	sort.Slice(exchanges, func(i, j int) bool {
		if !exchanges[i].CreatedAt.Equal(exchanges[j].CreatedAt) {
			return exchanges[i].CreatedAt.After(exchanges[j].CreatedAt)
		}
		return exchanges[i].ID < exchanges[j].ID
	})
}
