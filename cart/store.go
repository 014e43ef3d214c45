package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/appetiteclub/apt"

	"github.com/nilekitchen/storefront/storage"
)

// StorageKey is the durable key the cart persists under.
const StorageKey = "cart"

// Store owns the cart line items until checkout. Every mutating
// operation writes the full list through to durable storage; a failed
// write keeps the in-memory state authoritative for the session.
type Store struct {
	mu       sync.RWMutex
	kv       storage.KV
	logger   apt.Logger
	items    []LineItem
	hydrated bool
}

func NewStore(kv storage.KV, logger apt.Logger) *Store {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Store{
		kv:     kv,
		logger: logger,
	}
}

// Hydrate performs the one-time load of persisted state. An absent key
// or unreadable blob degrades to an empty cart; the store still reports
// hydrated so consumers can proceed.
func (s *Store) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hydrated {
		return nil
	}
	s.hydrated = true

	data, err := s.kv.Load(ctx, StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		s.logger.Error("cannot load cart from storage", "error", err)
		return nil
	}

	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Error("cannot decode persisted cart, starting empty", "error", err)
		return nil
	}

	for i := range items {
		items[i].Recalculate()
	}
	s.items = items
	return nil
}

// Hydrated reports whether the initial load has completed. Consumers
// must not treat the cart contents as authoritative before this is true.
func (s *Store) Hydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

// AddItem merges the candidate into an existing line with the same id
// and customization, or appends it as a new line.
func (s *Store) AddItem(ctx context.Context, item LineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].SameLine(&item) {
			s.items[i].Quantity += item.Quantity
			s.items[i].Recalculate()
			s.persistLocked(ctx)
			return
		}
	}

	added := item.clone()
	added.Recalculate()
	s.items = append(s.items, added)
	s.persistLocked(ctx)
}

// UpdateQuantity sets the quantity of the matching line and re-derives
// its total. A quantity of zero or less removes the line.
func (s *Store) UpdateQuantity(ctx context.Context, id string, customization *Customization, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(ctx, id, customization)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id && s.items[i].Customization.Equal(customization) {
			s.items[i].Quantity = quantity
			s.items[i].Recalculate()
			s.persistLocked(ctx)
			return
		}
	}
}

// RemoveItem deletes the line matching the given id and customization.
func (s *Store) RemoveItem(ctx context.Context, id string, customization *Customization) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	removed := false
	for _, item := range s.items {
		if item.ID == id && item.Customization.Equal(customization) {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	s.items = kept

	if removed {
		s.persistLocked(ctx)
	}
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.persistLocked(ctx)
}

// Items returns a deep copy of the current lines.
func (s *Store) Items() []LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]LineItem, len(s.items))
	for i, item := range s.items {
		out[i] = item.clone()
	}
	return out
}

// TotalAmount is the sum of all line totals.
func (s *Store) TotalAmount() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0.0
	for _, item := range s.items {
		total += item.TotalPrice
	}
	return total
}

// TotalItems is the sum of all line quantities.
func (s *Store) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// Flush persists the current state explicitly, for teardown paths.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := json.Marshal(s.itemsOrEmpty())
	if err != nil {
		return err
	}
	return s.kv.Save(ctx, StorageKey, data)
}

func (s *Store) persistLocked(ctx context.Context) {
	data, err := json.Marshal(s.itemsOrEmpty())
	if err != nil {
		s.logger.Error("cannot encode cart for storage", "error", err)
		return
	}
	if err := s.kv.Save(ctx, StorageKey, data); err != nil {
		s.logger.Error("cannot save cart to storage", "error", err)
	}
}

func (s *Store) itemsOrEmpty() []LineItem {
	if s.items == nil {
		return []LineItem{}
	}
	return s.items
}
