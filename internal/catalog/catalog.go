// Package catalog is the cookie-variety registry: names, current prices
// and the active flag. Order line items snapshot prices read from here.
package catalog

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aishnaga/cookie-ordering-system-2026/internal/model"
)

// Service holds the varieties behind one mutex.
type Service struct {
	mu        sync.RWMutex
	varieties map[string]model.CookieVariety
}

// New returns an empty catalog.
func New() *Service {
	return &Service{varieties: make(map[string]model.CookieVariety)}
}

// Create registers a variety. Names are unique.
func (s *Service) Create(name string, pricePerBox decimal.Decimal) (model.CookieVariety, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.CookieVariety{}, model.Validationf("variety name is required")
	}
	if pricePerBox.IsNegative() {
		return model.CookieVariety{}, model.Validationf("price_per_box must not be negative")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.varieties {
		if strings.EqualFold(v.Name, name) {
			return model.CookieVariety{}, &model.ConstraintViolationError{Msg: "variety name already exists: " + name}
		}
	}
	v := model.CookieVariety{
		ID:          uuid.NewString(),
		Name:        name,
		PricePerBox: pricePerBox,
		Active:      true,
		CreatedAt:   time.Now().UTC(),
	}
	s.varieties[v.ID] = v
	return v, nil
}

// Update overwrites a variety's name, price and active flag.
func (s *Service) Update(id, name string, pricePerBox decimal.Decimal, active bool) (model.CookieVariety, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.CookieVariety{}, model.Validationf("variety name is required")
	}
	if pricePerBox.IsNegative() {
		return model.CookieVariety{}, model.Validationf("price_per_box must not be negative")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.varieties[id]
	if !ok {
		return model.CookieVariety{}, model.ErrNotFound
	}
	for otherID, other := range s.varieties {
		if otherID != id && strings.EqualFold(other.Name, name) {
			return model.CookieVariety{}, &model.ConstraintViolationError{Msg: "variety name already exists: " + name}
		}
	}
	v.Name = name
	v.PricePerBox = pricePerBox
	v.Active = active
	s.varieties[id] = v
	return v, nil
}

// Get returns one variety by id.
func (s *Service) Get(id string) (model.CookieVariety, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.varieties[id]
	if !ok {
		return model.CookieVariety{}, model.ErrNotFound
	}
	return v, nil
}

// PriceOf returns the current catalog price of a variety, for snapshotting
// into order line items.
func (s *Service) PriceOf(id string) (decimal.Decimal, error) {
	v, err := s.Get(id)
	if err != nil {
		return decimal.Zero, err
	}
	return v.PricePerBox, nil
}

// List returns varieties sorted by name. Inactive varieties are included
// only when includeInactive is set.
func (s *Service) List(includeInactive bool) []model.CookieVariety {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.CookieVariety, 0, len(s.varieties))
	for _, v := range s.varieties {
		if !v.Active && !includeInactive {
			continue
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
