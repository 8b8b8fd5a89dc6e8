// Package api is the driving adapter exposing the storefront over REST.
package api

import (
	"context"
	"fmt"
	"log"

	"github.com/example/storefront/modules/activity"
	"github.com/example/storefront/modules/cart"
	"github.com/example/storefront/modules/cartview"
	"github.com/example/storefront/modules/catalog"
	"github.com/example/storefront/modules/checkout"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Module exposes the storefront modules over HTTP. It talks to the other
// modules exclusively through their ports.
type Module struct {
	app  *fiber.App
	port int

	catalogPort  catalog.CatalogPort
	cartPort     cart.CartPort
	viewPort     cartview.ViewPort
	checkoutPort checkout.CheckoutPort
	activityPort activity.ActivityPort
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.DependentModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates an API module listening on the given port.
func NewModule(port int) *Module {
	return &Module{port: port}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "api"
}

// Dependencies lists the modules whose services this module calls.
func (m *Module) Dependencies() []string {
	return []string{"catalog", "cart", "cartview", "checkout", "activity"}
}

// SetDependencyServiceContainer wires the module ports.
func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "catalog":
		m.catalogPort = catalog.NewCatalogAdapter(container)
	case "cart":
		m.cartPort = cart.NewCartAdapter(container)
	case "cartview":
		m.viewPort = cartview.NewViewAdapter(container)
	case "checkout":
		m.checkoutPort = checkout.NewCheckoutAdapter(container)
	case "activity":
		m.activityPort = activity.NewActivityAdapter(container)
	}
}

// Start brings up the Fiber HTTP server.
func (m *Module) Start(_ context.Context) error {
	if m.catalogPort == nil || m.cartPort == nil || m.viewPort == nil ||
		m.checkoutPort == nil || m.activityPort == nil {
		return fmt.Errorf("api dependencies not set")
	}

	m.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})

	m.app.Use(recover.New())
	m.app.Use(cors.New())
	m.app.Use(logger.New())

	m.setupRoutes()

	go func() {
		if err := m.app.Listen(fmt.Sprintf(":%d", m.port)); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on :%d", m.port)
	return nil
}

// Stop shuts down the HTTP server.
func (m *Module) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.port,
		},
	}
}

// customErrorHandler converts Fiber errors into the JSON error shape.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}
