package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"

	"github.com/nilekitchen/storefront/event"
)

// DefaultInterval is how often a simulated order advances one step.
const DefaultInterval = 10 * time.Second

// Simulator drives demo order progressions: one cancellable scheduled
// task per order id, each tick publishing a status-advance command for
// the subscriber to apply. It stops itself at the terminal step.
type Simulator struct {
	store     *Store
	publisher events.Publisher
	logger    apt.Logger
	interval  time.Duration

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
}

func NewSimulator(store *Store, publisher events.Publisher, interval time.Duration, logger apt.Logger) *Simulator {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Simulator{
		store:     store,
		publisher: publisher,
		logger:    logger,
		interval:  interval,
		cancels:   make(map[string]context.CancelFunc),
	}
}

// Start begins advancing the given order. Starting an already running
// or already completed order is a no-op; an unknown id is an error.
func (s *Simulator) Start(ctx context.Context, orderID string) error {
	if s.publisher == nil {
		return fmt.Errorf("simulator publisher not configured")
	}

	order, ok := s.store.OrderByID(orderID)
	if !ok {
		return fmt.Errorf("unknown order %s", orderID)
	}
	if order.Completed {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, running := s.cancels[orderID]; running {
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancels[orderID] = cancel

	s.logger.Info("starting order simulation", "order_id", orderID, "interval", s.interval.String())
	go s.run(runCtx, orderID)
	return nil
}

// Stop cancels the simulation for one order, if running.
func (s *Simulator) Stop(orderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cancel, ok := s.cancels[orderID]; ok {
		cancel()
		delete(s.cancels, orderID)
	}
}

// StopAll cancels every running simulation, for teardown.
func (s *Simulator) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, cancel := range s.cancels {
		cancel()
		delete(s.cancels, id)
	}
}

// Running reports whether the given order is being simulated.
func (s *Simulator) Running(orderID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.cancels[orderID]
	return ok
}

func (s *Simulator) run(ctx context.Context, orderID string) {
	defer s.clear(orderID)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			order, ok := s.store.OrderByID(orderID)
			if !ok {
				s.logger.Debug("simulated order disappeared", "order_id", orderID)
				return
			}
			if order.Completed {
				return
			}

			s.issueAdvance(ctx, orderID)

			if after, ok := s.store.OrderByID(orderID); ok && after.Completed {
				s.notifyCompleted(after)
				return
			}
		}
	}
}

func (s *Simulator) issueAdvance(ctx context.Context, orderID string) {
	cmd := event.NewStatusAdvance(orderID)
	data, err := json.Marshal(cmd)
	if err != nil {
		s.logger.Error("cannot encode advance command", "error", err)
		return
	}
	if err := s.publisher.Publish(ctx, event.OrderCommandsTopic, data); err != nil {
		s.logger.Error("cannot publish advance command", "order_id", orderID, "error", err)
	}
}

// notifyCompleted emits the user-visible completion notice.
func (s *Simulator) notifyCompleted(order Order) {
	if order.Type == TypePickup {
		s.logger.Infof("Order Picked Up! Order #%s has been picked up.", order.ID)
		return
	}
	s.logger.Infof("Order Delivered! Order #%s has been delivered.", order.ID)
}

func (s *Simulator) clear(orderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cancel, ok := s.cancels[orderID]; ok {
		cancel()
		delete(s.cancels, orderID)
	}
}
