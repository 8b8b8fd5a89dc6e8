package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	activitymod "github.com/example/storefront/modules/activity"
	apimod "github.com/example/storefront/modules/api"
	cachemod "github.com/example/storefront/modules/cache"
	cartmod "github.com/example/storefront/modules/cart"
	cartviewmod "github.com/example/storefront/modules/cartview"
	catalogmod "github.com/example/storefront/modules/catalog"
	checkoutmod "github.com/example/storefront/modules/checkout"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load configuration from environment
	baseURL := catalogmod.ResolveBaseURL()
	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")
	cartDBPath := getEnv("CART_DB_PATH", "./cart.db")
	httpPort := getEnvInt("HTTP_PORT", 3000)
	cacheTTL := getEnvDuration("CACHE_TTL", 5*time.Minute)
	cachePrefix := getEnv("CACHE_PREFIX", "storefront:view:")

	log.Println("=== Storefront ===")
	log.Printf("Backend: %s", baseURL)
	log.Printf("Redis: %s", redisAddr)
	log.Printf("Cart database: %s", cartDBPath)
	log.Printf("HTTP Port: %d", httpPort)
	log.Printf("Cache TTL: %s", cacheTTL)

	// Create modules
	cacheModule := cachemod.NewModule(redisAddr, cachePrefix, cacheTTL)
	catalogModule := catalogmod.NewModule(baseURL)
	cartModule := cartmod.NewModule(cartDBPath)
	cartviewModule := cartviewmod.NewModule()
	checkoutModule := checkoutmod.NewModule()
	activityModule := activitymod.NewModule()
	apiModule := apimod.NewModule(httpPort)

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create mono application: %v", err)
	}

	// Register modules
	app.Register(activityModule)
	app.Register(cacheModule)
	app.Register(catalogModule)
	app.Register(cartModule)
	app.Register(cartviewModule)
	app.Register(checkoutModule)
	app.Register(apiModule)

	// Start modules (this handles Init and Start)
	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		log.Fatalf("Failed to start app: %v", err)
	}

	// Wire up the shared cache after start. Without Redis the view
	// fetches straight from the backend.
	cartviewModule.SetCache(cacheModule.GetCache())

	log.Println("=== Application Started ===")
	log.Printf("API available at http://localhost:%d", httpPort)
	log.Println("Endpoints:")
	log.Println("  GET    /health                             - Health check")
	log.Println("  GET    /api/v1/products                    - List products (?category=, ?keyword=)")
	log.Println("  POST   /api/v1/products/refresh            - Refresh the product listing")
	log.Println("  GET    /api/v1/products/:id                - Get product")
	log.Println("  PUT    /api/v1/products/:id                - Update product (multipart)")
	log.Println("  DELETE /api/v1/products/:id                - Delete product")
	log.Println("  GET    /api/v1/cart                        - Reconciled cart")
	log.Println("  POST   /api/v1/cart/items                  - Add product to cart")
	log.Println("  DELETE /api/v1/cart/items/:id              - Remove product from cart")
	log.Println("  POST   /api/v1/cart/items/:id/increase     - Increase quantity")
	log.Println("  POST   /api/v1/cart/items/:id/decrease     - Decrease quantity")
	log.Println("  DELETE /api/v1/cart                        - Clear cart")
	log.Println("  POST   /api/v1/checkout                    - Checkout")
	log.Println("  GET    /api/v1/activity                    - Recent activity (?limit=)")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown")

	// Setup graceful shutdown using gelmium/graceful-shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvDuration returns environment variable as duration or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Printf("Warning: invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}
