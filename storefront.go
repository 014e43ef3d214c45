// Package storefront wires the menu catalog, the cart and order
// stores, the in-process event bus and the status simulator into one
// application with a hydrate-on-start, flush-on-stop lifecycle.
package storefront

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/appetiteclub/apt"

	"github.com/nilekitchen/storefront/cart"
	"github.com/nilekitchen/storefront/catalog"
	"github.com/nilekitchen/storefront/event"
	"github.com/nilekitchen/storefront/orders"
	"github.com/nilekitchen/storefront/storage"
)

const (
	appName    = "storefront"
	appVersion = "0.1.0"
)

// Options configures a new App. Zero values fall back to an in-memory
// store, the default simulation interval and a noop logger.
type Options struct {
	Storage  storage.KV
	Interval time.Duration
	DemoSeed bool
	Logger   apt.Logger
}

// App owns every storefront component. Stores are not usable until
// Start has hydrated them.
type App struct {
	Catalog   *catalog.Catalog
	Cart      *cart.Store
	Orders    *orders.Store
	Simulator *orders.Simulator

	bus      *event.Bus
	advance  *orders.AdvanceSubscriber
	logger   apt.Logger
	demoSeed bool

	cancelSeeds context.CancelFunc
}

func New(opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	kv := opts.Storage
	if kv == nil {
		kv = storage.NewMemKV()
	}

	menu, err := catalog.Default()
	if err != nil {
		return nil, fmt.Errorf("load menu catalog: %w", err)
	}

	bus := event.NewBus(logger)

	cartStore := cart.NewStore(kv, logger)
	orderStore := orders.NewStore(kv, logger)
	orderStore.SetPublisher(bus)

	return &App{
		Catalog:   menu,
		Cart:      cartStore,
		Orders:    orderStore,
		Simulator: orders.NewSimulator(orderStore, bus, opts.Interval, logger),
		bus:       bus,
		advance:   orders.NewAdvanceSubscriber(bus, orderStore, logger),
		logger:    logger,
		demoSeed:  opts.DemoSeed,
	}, nil
}

// FromConfig builds an App from an apt config. Recognized keys are
// log.level, storage.path, simulator.interval and seeding.demo. A nil
// logger is built from log.level.
func FromConfig(config *apt.Config, logger apt.Logger) (*App, error) {
	if logger == nil {
		logLevel, _ := config.GetString("log.level")
		logger = apt.NewLogger(logLevel)
	}

	interval := orders.DefaultInterval
	if raw := config.GetStringOrDef("simulator.interval", ""); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			logger.Error("invalid simulator interval, using default", "value", raw, "error", err)
		} else {
			interval = d
		}
	}

	return New(Options{
		Storage:  storage.NewFileKV(config.GetStringOrDef("storage.path", "data"), logger),
		Interval: interval,
		DemoSeed: config.GetStringOrDef("seeding.demo", "") == "true",
		Logger:   logger,
	})
}

// Start hydrates both stores and begins consuming status-advance
// commands. With demo seeding enabled it also places demo orders in
// the background.
func (a *App) Start(ctx context.Context) error {
	if err := a.Cart.Hydrate(ctx); err != nil {
		return fmt.Errorf("hydrate cart: %w", err)
	}
	if err := a.Orders.Hydrate(ctx); err != nil {
		return fmt.Errorf("hydrate orders: %w", err)
	}
	if err := a.advance.Start(ctx); err != nil {
		return fmt.Errorf("start status subscriber: %w", err)
	}

	if a.demoSeed {
		seedCtx, cancel := context.WithCancel(context.Background())
		a.cancelSeeds = cancel
		a.logger.Info("Demo seeding enabled")
		go a.seedDemo(seedCtx)
	}

	a.logger.Infof("Starting %s(%s)", appName, appVersion)
	return nil
}

// Stop cancels running simulations and writes both stores through to
// storage one last time.
func (a *App) Stop(ctx context.Context) error {
	if a.cancelSeeds != nil {
		a.cancelSeeds()
	}
	a.Simulator.StopAll()

	var errs []error
	if err := a.Cart.Flush(ctx); err != nil {
		errs = append(errs, fmt.Errorf("flush cart: %w", err))
	}
	if err := a.Orders.Flush(ctx); err != nil {
		errs = append(errs, fmt.Errorf("flush orders: %w", err))
	}
	if err := a.bus.Close(); err != nil {
		errs = append(errs, err)
	}

	a.logger.Infof("%s(%s) stopped", appName, appVersion)
	return errors.Join(errs...)
}

// Lifecycle exposes Start and Stop as apt lifecycle hooks.
func (a *App) Lifecycle() apt.LifecycleHooks {
	return apt.LifecycleHooks{
		OnStart: a.Start,
		OnStop:  a.Stop,
	}
}
