package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	domain "github.com/example/storefront/domain/catalog"
	"github.com/example/storefront/modules/activity"
	"github.com/example/storefront/modules/cart"
	"github.com/example/storefront/modules/cartview"
	"github.com/example/storefront/modules/catalog"
	"github.com/example/storefront/modules/checkout"
	"github.com/gofiber/fiber/v2"
)

type mockCatalogPort struct {
	listFn    func(ctx context.Context) (*catalog.ListResponse, error)
	getFn     func(ctx context.Context, id int64) (*domain.Product, error)
	searchFn  func(ctx context.Context, keyword string) ([]domain.Product, error)
	updateFn  func(ctx context.Context, req *catalog.UpdateRequest) (*domain.Product, error)
	deleteFn  func(ctx context.Context, id int64) error
	refreshed bool
}

func (m *mockCatalogPort) Refresh(_ context.Context) (*catalog.RefreshResponse, error) {
	m.refreshed = true
	return &catalog.RefreshResponse{}, nil
}

func (m *mockCatalogPort) List(ctx context.Context) (*catalog.ListResponse, error) {
	if m.listFn == nil {
		return &catalog.ListResponse{}, nil
	}
	return m.listFn(ctx)
}

func (m *mockCatalogPort) Get(ctx context.Context, id int64) (*domain.Product, error) {
	if m.getFn == nil {
		return nil, catalog.ErrNotFound
	}
	return m.getFn(ctx, id)
}

func (m *mockCatalogPort) Search(ctx context.Context, keyword string) ([]domain.Product, error) {
	if m.searchFn == nil {
		return nil, nil
	}
	return m.searchFn(ctx, keyword)
}

func (m *mockCatalogPort) FetchAll(_ context.Context) ([]domain.Product, error) {
	return nil, nil
}

func (m *mockCatalogPort) Update(ctx context.Context, req *catalog.UpdateRequest) (*domain.Product, error) {
	if m.updateFn == nil {
		return nil, catalog.ErrBackend
	}
	return m.updateFn(ctx, req)
}

func (m *mockCatalogPort) Delete(ctx context.Context, id int64) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, id)
}

type mockCartPort struct {
	added   []domain.Product
	cleared bool
}

func (m *mockCartPort) Add(_ context.Context, p domain.Product) ([]cart.LineItem, error) {
	m.added = append(m.added, p)
	return nil, nil
}

func (m *mockCartPort) Remove(_ context.Context, _ int64) (bool, []cart.LineItem, error) {
	return false, nil, nil
}

func (m *mockCartPort) Clear(_ context.Context) error {
	m.cleared = true
	return nil
}

func (m *mockCartPort) List(_ context.Context) ([]cart.LineItem, error) {
	return nil, nil
}

type mockViewPort struct {
	getFn      func(ctx context.Context) (*cartview.GetResponse, error)
	increaseFn func(ctx context.Context, id int64) (*cartview.IncreaseResponse, error)
}

func (m *mockViewPort) Get(ctx context.Context) (*cartview.GetResponse, error) {
	if m.getFn == nil {
		return &cartview.GetResponse{}, nil
	}
	return m.getFn(ctx)
}

func (m *mockViewPort) Increase(ctx context.Context, id int64) (*cartview.IncreaseResponse, error) {
	if m.increaseFn == nil {
		return &cartview.IncreaseResponse{}, nil
	}
	return m.increaseFn(ctx, id)
}

func (m *mockViewPort) Decrease(_ context.Context, _ int64) (*cartview.DecreaseResponse, error) {
	return &cartview.DecreaseResponse{}, nil
}

type mockCheckoutPort struct {
	checkoutFn func(ctx context.Context) (*checkout.CheckoutResponse, error)
}

func (m *mockCheckoutPort) Checkout(ctx context.Context) (*checkout.CheckoutResponse, error) {
	return m.checkoutFn(ctx)
}

type mockActivityPort struct {
	entries []activity.Entry
}

func (m *mockActivityPort) Recent(_ context.Context, limit int) ([]activity.Entry, error) {
	if limit > 0 && limit < len(m.entries) {
		return m.entries[:limit], nil
	}
	return m.entries, nil
}

// newTestAPI wires an API module with mocked ports and no running server.
func newTestAPI(t *testing.T, m *Module) *Module {
	t.Helper()
	if m.catalogPort == nil {
		m.catalogPort = &mockCatalogPort{}
	}
	if m.cartPort == nil {
		m.cartPort = &mockCartPort{}
	}
	if m.viewPort == nil {
		m.viewPort = &mockViewPort{}
	}
	if m.checkoutPort == nil {
		m.checkoutPort = &mockCheckoutPort{
			checkoutFn: func(_ context.Context) (*checkout.CheckoutResponse, error) {
				return &checkout.CheckoutResponse{}, nil
			},
		}
	}
	if m.activityPort == nil {
		m.activityPort = &mockActivityPort{}
	}

	m.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})
	m.setupRoutes()
	return m
}

func decodeBody(t *testing.T, resp *http.Response, dest interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}

func sampleProduct(id int64, category string) domain.Product {
	return domain.Product{
		ID:            id,
		Name:          "Product",
		Brand:         "Brand",
		Price:         99.99,
		Category:      category,
		StockQuantity: 5,
	}
}

func TestListProductsCategoryFilter(t *testing.T) {
	m := newTestAPI(t, &Module{
		catalogPort: &mockCatalogPort{
			listFn: func(_ context.Context) (*catalog.ListResponse, error) {
				return &catalog.ListResponse{Products: []domain.Product{
					sampleProduct(1, "Laptop"),
					sampleProduct(2, "Toys"),
					sampleProduct(3, "laptop"),
				}}, nil
			},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?category=Laptop", nil)
	resp, err := m.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body ListProductsResponse
	decodeBody(t, resp, &body)
	if body.Total != 2 {
		t.Errorf("expected 2 products after case-insensitive filter, got %d", body.Total)
	}
	for _, p := range body.Products {
		if p.FormattedPrice == "" {
			t.Error("expected a formatted price on every product")
		}
	}
}

func TestListProductsKeywordSearch(t *testing.T) {
	var gotKeyword string
	m := newTestAPI(t, &Module{
		catalogPort: &mockCatalogPort{
			searchFn: func(_ context.Context, keyword string) ([]domain.Product, error) {
				gotKeyword = keyword
				return []domain.Product{sampleProduct(1, "Mobile")}, nil
			},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?keyword=phone", nil)
	resp, err := m.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if gotKeyword != "phone" {
		t.Errorf("expected search keyword %q, got %q", "phone", gotKeyword)
	}
}

func TestGetProductNotFound(t *testing.T) {
	m := newTestAPI(t, &Module{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/42", nil)
	resp, err := m.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestGetProductInvalidID(t *testing.T) {
	m := newTestAPI(t, &Module{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/abc", nil)
	resp, err := m.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestUpdateProductMultipart(t *testing.T) {
	var gotReq *catalog.UpdateRequest
	m := newTestAPI(t, &Module{
		catalogPort: &mockCatalogPort{
			updateFn: func(_ context.Context, req *catalog.UpdateRequest) (*domain.Product, error) {
				gotReq = req
				p := req.Product
				return &p, nil
			},
		},
	})

	product := sampleProduct(5, "Laptop")
	productJSON, _ := json.Marshal(product)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.WriteField("product", string(productJSON))
	fw, _ := w.CreateFormFile("imageFile", "photo.png")
	io.Copy(fw, strings.NewReader("png-bytes"))
	w.Close()

	req := httptest.NewRequest(http.MethodPut, "/api/v1/products/5", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := m.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	if gotReq == nil {
		t.Fatal("update was not forwarded to the catalog")
	}
	if gotReq.ID != 5 || gotReq.Product.Name != product.Name {
		t.Errorf("unexpected update request %+v", gotReq)
	}
	if string(gotReq.Image) != "png-bytes" || gotReq.ImageName != "photo.png" {
		t.Errorf("image part not forwarded: name %q, %d bytes", gotReq.ImageName, len(gotReq.Image))
	}
}

func TestUpdateProductWithoutImage(t *testing.T) {
	var gotReq *catalog.UpdateRequest
	m := newTestAPI(t, &Module{
		catalogPort: &mockCatalogPort{
			updateFn: func(_ context.Context, req *catalog.UpdateRequest) (*domain.Product, error) {
				gotReq = req
				p := req.Product
				return &p, nil
			},
		},
	})

	productJSON, _ := json.Marshal(sampleProduct(5, "Laptop"))
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.WriteField("product", string(productJSON))
	w.Close()

	req := httptest.NewRequest(http.MethodPut, "/api/v1/products/5", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := m.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if len(gotReq.Image) != 0 {
		t.Errorf("expected no image bytes, got %d", len(gotReq.Image))
	}
}

func TestDeleteProductRefreshesListing(t *testing.T) {
	catalogPort := &mockCatalogPort{}
	m := newTestAPI(t, &Module{catalogPort: catalogPort})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/3", nil)
	resp, err := m.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	if !catalogPort.refreshed {
		t.Error("expected a catalog refresh after delete")
	}
}

func TestAddCartItemFetchesProduct(t *testing.T) {
	cartPort := &mockCartPort{}
	m := newTestAPI(t, &Module{
		catalogPort: &mockCatalogPort{
			getFn: func(_ context.Context, id int64) (*domain.Product, error) {
				p := sampleProduct(id, "Laptop")
				return &p, nil
			},
		},
		cartPort: cartPort,
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"productId":7}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := m.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if len(cartPort.added) != 1 || cartPort.added[0].ID != 7 {
		t.Errorf("expected product 7 added to cart, got %+v", cartPort.added)
	}
}

func TestAddCartItemUnknownProduct(t *testing.T) {
	cartPort := &mockCartPort{}
	m := newTestAPI(t, &Module{cartPort: cartPort})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"productId":9}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := m.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if len(cartPort.added) != 0 {
		t.Error("nothing should be added for an unknown product")
	}
}

func TestIncreaseCartItemStockLimit(t *testing.T) {
	m := newTestAPI(t, &Module{
		viewPort: &mockViewPort{
			increaseFn: func(_ context.Context, _ int64) (*cartview.IncreaseResponse, error) {
				return &cartview.IncreaseResponse{Error: cartview.ErrStockLimit.Error()}, nil
			},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items/1/increase", nil)
	resp, err := m.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409, got %d", resp.StatusCode)
	}
}

func TestCheckoutFailureUsesFixedMessage(t *testing.T) {
	m := newTestAPI(t, &Module{
		checkoutPort: &mockCheckoutPort{
			checkoutFn: func(_ context.Context) (*checkout.CheckoutResponse, error) {
				return &checkout.CheckoutResponse{Error: "failed to purchase Mouse: backend request failed"}, nil
			},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil)
	resp, err := m.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}

	var body ErrorResponse
	decodeBody(t, resp, &body)
	if body.Message != checkoutFailedMessage {
		t.Errorf("expected fixed failure message, got %q", body.Message)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	m := newTestAPI(t, &Module{
		checkoutPort: &mockCheckoutPort{
			checkoutFn: func(_ context.Context) (*checkout.CheckoutResponse, error) {
				return &checkout.CheckoutResponse{Error: checkout.ErrEmptyCart.Error()}, nil
			},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil)
	resp, err := m.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCheckoutSuccess(t *testing.T) {
	m := newTestAPI(t, &Module{
		checkoutPort: &mockCheckoutPort{
			checkoutFn: func(_ context.Context) (*checkout.CheckoutResponse, error) {
				return &checkout.CheckoutResponse{
					OrderRef:       "ORD-TEST123",
					ItemCount:      2,
					Total:          250,
					FormattedTotal: "₹250.00",
				}, nil
			},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil)
	resp, err := m.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body CheckoutResponse
	decodeBody(t, resp, &body)
	if body.OrderRef != "ORD-TEST123" || body.ItemCount != 2 {
		t.Errorf("unexpected checkout body %+v", body)
	}
}

func TestGetCartReportsStale(t *testing.T) {
	m := newTestAPI(t, &Module{
		viewPort: &mockViewPort{
			getFn: func(_ context.Context) (*cartview.GetResponse, error) {
				return &cartview.GetResponse{
					View: cartview.View{
						Items: []cartview.ReconciledItem{
							{Product: sampleProduct(1, "Laptop"), Quantity: 2},
						},
						Total:          199.98,
						FormattedTotal: "₹199.98",
					},
					Stale: true,
				}, nil
			},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp, err := m.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}

	var body CartResponse
	decodeBody(t, resp, &body)
	if !body.Stale {
		t.Error("expected stale flag to pass through")
	}
	if len(body.Items) != 1 || body.Items[0].Subtotal != 199.98 {
		t.Errorf("unexpected cart body %+v", body)
	}
}

func TestListActivity(t *testing.T) {
	m := newTestAPI(t, &Module{
		activityPort: &mockActivityPort{
			entries: []activity.Entry{
				{ID: "a", Type: "cart_add", Message: "Cart add"},
				{ID: "b", Type: "checkout_completed", Message: "Order placed"},
			},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/activity?limit=1", nil)
	resp, err := m.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}

	var body ActivityResponse
	decodeBody(t, resp, &body)
	if len(body.Entries) != 1 {
		t.Errorf("expected limit applied, got %d entries", len(body.Entries))
	}
}
