package api

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"time"

	domain "github.com/example/storefront/domain/catalog"
	"github.com/example/storefront/modules/cartview"
	"github.com/example/storefront/modules/catalog"
	"github.com/example/storefront/modules/checkout"
	"github.com/gofiber/fiber/v2"
)

// checkoutFailedMessage is the user-facing message for a failed purchase.
const checkoutFailedMessage = "Failed to complete purchase. Please try again."

// setupRoutes configures all HTTP routes.
func (m *Module) setupRoutes() {
	m.app.Get("/health", m.healthHandler)

	api := m.app.Group("/api/v1")

	products := api.Group("/products")
	products.Get("/", m.listProducts)
	products.Post("/refresh", m.refreshProducts)
	products.Get("/:id", m.getProduct)
	products.Put("/:id", m.updateProduct)
	products.Delete("/:id", m.deleteProduct)

	cartGroup := api.Group("/cart")
	cartGroup.Get("/", m.getCart)
	cartGroup.Delete("/", m.clearCart)
	cartGroup.Post("/items", m.addCartItem)
	cartGroup.Delete("/items/:id", m.removeCartItem)
	cartGroup.Post("/items/:id/increase", m.increaseCartItem)
	cartGroup.Post("/items/:id/decrease", m.decreaseCartItem)

	api.Post("/checkout", m.runCheckout)
	api.Get("/activity", m.listActivity)
}

// healthHandler handles GET /health.
func (m *Module) healthHandler(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
	})
}

// listProducts handles GET /api/v1/products.
// ?keyword= runs a backend search; ?category= filters the cached list.
func (m *Module) listProducts(c *fiber.Ctx) error {
	keyword := c.Query("keyword", "")
	category := c.Query("category", "")

	if keyword != "" {
		products, err := m.catalogPort.Search(c.Context(), keyword)
		if err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
				Error:   "search_failed",
				Message: err.Error(),
			})
		}
		return c.JSON(ListProductsResponse{
			Products: toProductResponses(products),
			Total:    len(products),
		})
	}

	resp, err := m.catalogPort.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "list_failed",
			Message: err.Error(),
		})
	}

	filtered := resp.Products
	if category != "" {
		filtered = make([]domain.Product, 0, len(resp.Products))
		for _, p := range resp.Products {
			if p.MatchesCategory(category) {
				filtered = append(filtered, p)
			}
		}
	}

	return c.JSON(ListProductsResponse{
		Products: toProductResponses(filtered),
		Total:    len(filtered),
		Loading:  resp.Loading,
		Error:    resp.Error,
	})
}

// refreshProducts handles POST /api/v1/products/refresh.
func (m *Module) refreshProducts(c *fiber.Ctx) error {
	resp, err := m.catalogPort.Refresh(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "refresh_failed",
			Message: err.Error(),
		})
	}
	return c.JSON(RefreshResponse{Count: resp.Count, Error: resp.Error})
}

// getProduct handles GET /api/v1/products/:id.
func (m *Module) getProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	product, err := m.catalogPort.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Error:   "not_found",
				Message: "Product not found",
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error:   "get_failed",
			Message: err.Error(),
		})
	}
	return c.JSON(toProductResponse(*product))
}

// updateProduct handles PUT /api/v1/products/:id. The body is multipart:
// a "product" part with the full JSON representation and an optional
// "imageFile" part; without one the backend keeps the stored image.
func (m *Module) updateProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var product domain.Product
	if err := json.Unmarshal([]byte(c.FormValue("product")), &product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid product JSON",
		})
	}

	req := &catalog.UpdateRequest{ID: id, Product: product}
	if file, err := c.FormFile("imageFile"); err == nil && file.Size > 0 {
		f, err := file.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_request",
				Message: "Unreadable image file",
			})
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_request",
				Message: "Unreadable image file",
			})
		}
		req.Image = data
		req.ImageName = file.Filename
		req.ImageType = file.Header.Get("Content-Type")
	}

	updated, err := m.catalogPort.Update(c.Context(), req)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Error:   "not_found",
				Message: "Product not found",
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error:   "update_failed",
			Message: err.Error(),
		})
	}
	return c.JSON(toProductResponse(*updated))
}

// deleteProduct handles DELETE /api/v1/products/:id and refreshes the
// cached listing afterwards.
func (m *Module) deleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := m.catalogPort.Delete(c.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Error:   "not_found",
				Message: "Product not found",
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error:   "delete_failed",
			Message: err.Error(),
		})
	}

	if _, err := m.catalogPort.Refresh(c.Context()); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error:   "refresh_failed",
			Message: err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// getCart handles GET /api/v1/cart.
func (m *Module) getCart(c *fiber.Ctx) error {
	resp, err := m.viewPort.Get(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "cart_failed",
			Message: err.Error(),
		})
	}
	return c.JSON(toCartResponse(resp.View, resp.Stale))
}

// addCartItem handles POST /api/v1/cart/items.
func (m *Module) addCartItem(c *fiber.Ctx) error {
	var req AddCartItemRequest
	if err := c.BodyParser(&req); err != nil || req.ProductID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Product ID is required",
		})
	}

	product, err := m.catalogPort.Get(c.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Error:   "not_found",
				Message: "Product not found",
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error:   "get_failed",
			Message: err.Error(),
		})
	}

	if _, err := m.cartPort.Add(c.Context(), *product); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "add_failed",
			Message: err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusCreated)
}

// removeCartItem handles DELETE /api/v1/cart/items/:id. Removing an id
// that is not in the cart is a no-op.
func (m *Module) removeCartItem(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if _, _, err := m.cartPort.Remove(c.Context(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "remove_failed",
			Message: err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// clearCart handles DELETE /api/v1/cart.
func (m *Module) clearCart(c *fiber.Ctx) error {
	if err := m.cartPort.Clear(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "clear_failed",
			Message: err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// increaseCartItem handles POST /api/v1/cart/items/:id/increase.
func (m *Module) increaseCartItem(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	resp, err := m.viewPort.Increase(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "increase_failed",
			Message: err.Error(),
		})
	}
	switch resp.Error {
	case "":
	case cartview.ErrStockLimit.Error():
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error:   "stock_limit",
			Message: resp.Error,
		})
	default:
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: resp.Error,
		})
	}
	return c.JSON(toCartResponse(resp.View, false))
}

// decreaseCartItem handles POST /api/v1/cart/items/:id/decrease.
func (m *Module) decreaseCartItem(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	resp, err := m.viewPort.Decrease(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "decrease_failed",
			Message: err.Error(),
		})
	}
	if resp.Error != "" {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: resp.Error,
		})
	}
	return c.JSON(toCartResponse(resp.View, false))
}

// runCheckout handles POST /api/v1/checkout.
func (m *Module) runCheckout(c *fiber.Ctx) error {
	resp, err := m.checkoutPort.Checkout(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "checkout_failed",
			Message: err.Error(),
		})
	}
	if resp.Error != "" {
		if resp.Error == checkout.ErrEmptyCart.Error() {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error:   "empty_cart",
				Message: resp.Error,
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error:   "checkout_failed",
			Message: checkoutFailedMessage,
		})
	}
	return c.JSON(CheckoutResponse{
		OrderRef:       resp.OrderRef,
		ItemCount:      resp.ItemCount,
		Total:          resp.Total,
		FormattedTotal: resp.FormattedTotal,
	})
}

// listActivity handles GET /api/v1/activity.
func (m *Module) listActivity(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	entries, err := m.activityPort.Recent(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "activity_failed",
			Message: err.Error(),
		})
	}
	return c.JSON(ActivityResponse{Entries: entries})
}

// parseID reads the :id route parameter. The returned error is a Fiber
// error rendered by the module's error handler.
func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid product ID")
	}
	return id, nil
}
