// Package directory is the family registry.
package directory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aishnaga/cookie-ordering-system-2026/internal/model"
)

// Service holds the families behind one mutex.
type Service struct {
	mu       sync.RWMutex
	families map[string]model.Family
}

// New returns an empty directory.
func New() *Service {
	return &Service{families: make(map[string]model.Family)}
}

// Create registers a family. Names are unique.
func (s *Service) Create(name, contactInfo string) (model.Family, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Family{}, model.Validationf("family name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.families {
		if strings.EqualFold(f.Name, name) {
			return model.Family{}, &model.ConstraintViolationError{Msg: "family name already exists: " + name}
		}
	}
	f := model.Family{
		ID:          uuid.NewString(),
		Name:        name,
		ContactInfo: contactInfo,
		CreatedAt:   time.Now().UTC(),
	}
	s.families[f.ID] = f
	return f, nil
}

// Update overwrites a family's name and contact info.
func (s *Service) Update(id, name, contactInfo string) (model.Family, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Family{}, model.Validationf("family name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.families[id]
	if !ok {
		return model.Family{}, model.ErrNotFound
	}
	for otherID, other := range s.families {
		if otherID != id && strings.EqualFold(other.Name, name) {
			return model.Family{}, &model.ConstraintViolationError{Msg: "family name already exists: " + name}
		}
	}
	f.Name = name
	f.ContactInfo = contactInfo
	s.families[id] = f
	return f, nil
}

// Delete removes a family record.
func (s *Service) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.families[id]; !ok {
		return model.ErrNotFound
	}
	delete(s.families, id)
	return nil
}

// Get returns one family by id.
func (s *Service) Get(id string) (model.Family, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.families[id]
	if !ok {
		return model.Family{}, model.ErrNotFound
	}
	return f, nil
}

// Exists reports whether a family id is registered.
func (s *Service) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.families[id]
	return ok
}

// List returns all families sorted by name.
func (s *Service) List() []model.Family {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Family, 0, len(s.families))
	for _, f := range s.families {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
