package orders

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"

	"github.com/nilekitchen/storefront/event"
	"github.com/nilekitchen/storefront/storage"
)

// StorageKey is the durable key the order list persists under.
const StorageKey = "orders"

// Store owns placed orders for the lifetime of the session. Every
// mutation writes the full list through to durable storage.
type Store struct {
	mu        sync.RWMutex
	kv        storage.KV
	logger    apt.Logger
	publisher events.Publisher
	orders    []Order
	hydrated  bool

	now   func() time.Time
	newID func() string
}

func NewStore(kv storage.KV, logger apt.Logger) *Store {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Store{
		kv:     kv,
		logger: logger,
		now:    time.Now,
		newID:  newOrderID,
	}
}

// SetPublisher wires the store to an event publisher for order
// lifecycle announcements. Optional; a nil publisher disables them.
func (s *Store) SetPublisher(pub events.Publisher) {
	s.publisher = pub
}

// newOrderID generates a random 6-digit numeric id. Collisions with
// existing ids are an accepted risk; no uniqueness check is performed.
func newOrderID() string {
	return strconv.Itoa(100000 + rand.IntN(900000))
}

// Hydrate performs the one-time load of persisted orders. Failures
// degrade to an empty list and are never fatal.
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
		s.logger.Error("cannot load orders from storage", "error", err)
		return nil
	}

	var orders []Order
	if err := json.Unmarshal(data, &orders); err != nil {
		s.logger.Error("cannot decode persisted orders, starting empty", "error", err)
		return nil
	}
	s.orders = orders
	return nil
}

// Hydrated reports whether the initial load has completed.
func (s *Store) Hydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

// PlaceOrder freezes the draft into a new order: a fresh 6-digit id,
// the initial status, placement time now, completed false. The draft is
// normalized rather than rejected, so the call always succeeds and
// returns the new id.
func (s *Store) PlaceOrder(ctx context.Context, draft Draft) string {
	draft = draft.normalize()

	order := Order{
		ID:            s.newID(),
		TotalAmount:   draft.TotalAmount,
		Type:          draft.Type,
		Status:        InitialStatus,
		EstimatedTime: draft.EstimatedTime,
		PlacedAt:      s.now(),
		Completed:     false,
		CustomerInfo:  draft.CustomerInfo,
		PickupInfo:    draft.PickupInfo,
	}
	if order.EstimatedTime == "" {
		order.EstimatedTime = EstimatedTime(InitialStatus, order.Type)
	}
	if len(draft.Items) > 0 {
		order.Items = make([]OrderItem, len(draft.Items))
		for i, item := range draft.Items {
			order.Items[i] = item.clone()
		}
	}

	s.mu.Lock()
	s.orders = append(s.orders, order)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.publish(ctx, event.NewOrderPlaced(order.ID, string(order.Type), order.TotalAmount, len(order.Items)))

	s.logger.Info("order placed", "order_id", order.ID, "type", order.Type, "total", order.TotalAmount)
	return order.ID
}

// UpdateOrderStatus sets the status of the matching order, re-derives
// its estimated-time string and completion flag, and persists. Unknown
// ids are a silent no-op.
func (s *Store) UpdateOrderStatus(ctx context.Context, id string, status Status) {
	s.mu.Lock()

	var updated *Order
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = status
			s.orders[i].EstimatedTime = EstimatedTime(status, s.orders[i].Type)
			s.orders[i].Completed = status.TerminalFor(s.orders[i].Type)
			updated = &s.orders[i]
			break
		}
	}

	if updated == nil {
		s.mu.Unlock()
		s.logger.Debug("status update for unknown order", "order_id", id, "status", status)
		return
	}

	s.persistLocked(ctx)
	completed := updated.Completed
	orderType := updated.Type
	s.mu.Unlock()

	if completed {
		s.publish(ctx, event.NewOrderCompleted(id, string(orderType), string(status)))
	}
}

// OrderByID returns a copy of the matching order, or false when absent.
func (s *Store) OrderByID(id string) (Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, order := range s.orders {
		if order.ID == id {
			return order.clone(), true
		}
	}
	return Order{}, false
}

// Orders returns a copy of all orders in placement order.
func (s *Store) Orders() []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Order, len(s.orders))
	for i, order := range s.orders {
		out[i] = order.clone()
	}
	return out
}

// ActiveOrders returns the orders still moving through their machine.
func (s *Store) ActiveOrders() []Order {
	return s.filter(func(o Order) bool { return !o.Completed })
}

// CompletedOrders returns the orders at a terminal status.
func (s *Store) CompletedOrders() []Order {
	return s.filter(func(o Order) bool { return o.Completed })
}

func (s *Store) filter(keep func(Order) bool) []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Order
	for _, order := range s.orders {
		if keep(order) {
			out = append(out, order.clone())
		}
	}
	return out
}

// Flush persists the current state explicitly, for teardown paths.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := json.Marshal(s.ordersOrEmpty())
	if err != nil {
		return err
	}
	return s.kv.Save(ctx, StorageKey, data)
}

func (s *Store) persistLocked(ctx context.Context) {
	data, err := json.Marshal(s.ordersOrEmpty())
	if err != nil {
		s.logger.Error("cannot encode orders for storage", "error", err)
		return
	}
	if err := s.kv.Save(ctx, StorageKey, data); err != nil {
		s.logger.Error("cannot save orders to storage", "error", err)
	}
}

func (s *Store) ordersOrEmpty() []Order {
	if s.orders == nil {
		return []Order{}
	}
	return s.orders
}

func (s *Store) publish(ctx context.Context, payload any) {
	if s.publisher == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("cannot encode order event", "error", err)
		return
	}
	if err := s.publisher.Publish(ctx, event.OrdersTopic, data); err != nil {
		s.logger.Error("cannot publish order event", "error", err)
	}
}
