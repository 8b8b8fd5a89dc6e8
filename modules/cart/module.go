package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/example/storefront/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Module is the persisted cart store. Line items live in a local SQLite
// database; every mutation is written through before the operation returns
// and publishes a CartUpdated event with the resulting cart.
type Module struct {
	db       *gorm.DB
	repo     *Repository
	dbPath   string
	eventBus mono.EventBus
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.ServiceProviderModule = (*Module)(nil)
var _ mono.EventEmitterModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a cart module persisting to the SQLite file at dbPath.
func NewModule(dbPath string) *Module {
	return &Module{dbPath: dbPath}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "cart"
}

// SetEventBus receives the event bus from the framework.
func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.CartUpdatedV1.ToBase(),
	}
}

// RegisterServices registers the cart request-reply services.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "add", json.Unmarshal, json.Marshal, m.addService,
	); err != nil {
		return fmt.Errorf("failed to register add service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "remove", json.Unmarshal, json.Marshal, m.removeService,
	); err != nil {
		return fmt.Errorf("failed to register remove service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "clear", json.Unmarshal, json.Marshal, m.clearService,
	); err != nil {
		return fmt.Errorf("failed to register clear service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list", json.Unmarshal, json.Marshal, m.listService,
	); err != nil {
		return fmt.Errorf("failed to register list service: %w", err)
	}

	log.Printf("[cart] Registered services: add, remove, clear, list")
	return nil
}

// Start opens the cart database and loads the persisted cart. A database
// file that cannot be opened or a cart that cannot be decoded is treated
// as "no cart": the store starts empty instead of failing.
func (m *Module) Start(_ context.Context) error {
	db, err := m.open()
	if err != nil {
		log.Printf("[cart] Unreadable cart database, starting empty: %v", err)
		if rerr := os.Remove(m.dbPath); rerr != nil && !os.IsNotExist(rerr) {
			return fmt.Errorf("failed to reset cart database: %w", rerr)
		}
		if db, err = m.open(); err != nil {
			return fmt.Errorf("failed to recreate cart database: %w", err)
		}
	}
	m.db = db
	m.repo = NewRepository(db)

	items, err := m.repo.List()
	if err != nil {
		if !errors.Is(err, ErrCorruptSnapshot) {
			return err
		}
		log.Printf("[cart] Discarding undecodable persisted cart: %v", err)
		if err := m.repo.Reset(); err != nil {
			return err
		}
		items = nil
	}

	log.Printf("[cart] Module started with %d persisted line item(s)", len(items))
	return nil
}

// Stop closes the cart database.
func (m *Module) Stop(_ context.Context) error {
	if m.db == nil {
		return nil
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close cart database: %w", err)
	}

	log.Println("[cart] Module stopped")
	return nil
}

// Health performs a health check on the cart store.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get sql.DB: %v", err),
		}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver": "sqlite",
			"path":   m.dbPath,
		},
	}
}

func (m *Module) open() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open cart database: %w", err)
	}
	repo := NewRepository(db)
	if err := repo.Migrate(); err != nil {
		return nil, err
	}
	return db, nil
}
