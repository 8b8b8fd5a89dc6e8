package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	domain "github.com/example/storefront/domain/catalog"
)

// Backend addresses for the two runtime environments. BACKEND_BASE_URL
// overrides both.
const (
	localBaseURL    = "http://localhost:8080/api"
	deployedBaseURL = "https://e-com-webapp.onrender.com/api"
)

const requestTimeout = 30 * time.Second

// ResolveBaseURL picks the backend address for the current environment.
func ResolveBaseURL() string {
	if v := os.Getenv("BACKEND_BASE_URL"); v != "" {
		return v
	}
	if os.Getenv("APP_ENV") == "production" {
		return deployedBaseURL
	}
	return localBaseURL
}

// Client talks to the collaborator-owned product backend over REST.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a backend client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// ListProducts fetches the full product catalog (GET /products).
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.getJSON(ctx, c.baseURL+"/products", &products); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetProduct fetches a single product (GET /product/{id}).
func (c *Client) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	if err := c.getJSON(ctx, c.productURL(id), &product); err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return &product, nil
}

// SearchProducts fetches products matching a keyword
// (GET /product/search?keyword={q}).
func (c *Client) SearchProducts(ctx context.Context, keyword string) ([]domain.Product, error) {
	u := c.baseURL + "/product/search?keyword=" + url.QueryEscape(keyword)
	var products []domain.Product
	if err := c.getJSON(ctx, u, &products); err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

// UpdateProduct submits the product's full updated representation
// (PUT /product/{id}). The body is multipart: a "product" part holding the
// JSON payload and an "imageFile" part holding the image bytes. An empty
// image part tells the backend to keep the stored image.
func (c *Client) UpdateProduct(ctx context.Context, id int64, p domain.Product, image []byte, imageName, imageType string) (*domain.Product, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	productHeader := textproto.MIMEHeader{}
	productHeader.Set("Content-Disposition", `form-data; name="product"`)
	productHeader.Set("Content-Type", "application/json")
	productPart, err := writer.CreatePart(productHeader)
	if err != nil {
		return nil, fmt.Errorf("failed to create product part: %w", err)
	}
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal product: %w", err)
	}
	if _, err := productPart.Write(payload); err != nil {
		return nil, fmt.Errorf("failed to write product part: %w", err)
	}

	if imageType == "" {
		imageType = "application/octet-stream"
	}
	if imageName == "" {
		// The part must carry a filename to be parsed as a file on the
		// server; an empty one degrades it to a plain form value.
		imageName = "blob"
	}
	imageHeader := textproto.MIMEHeader{}
	imageHeader.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="imageFile"; filename=%q`, imageName))
	imageHeader.Set("Content-Type", imageType)
	imagePart, err := writer.CreatePart(imageHeader)
	if err != nil {
		return nil, fmt.Errorf("failed to create image part: %w", err)
	}
	if len(image) > 0 {
		if _, err := imagePart.Write(image); err != nil {
			return nil, fmt.Errorf("failed to write image part: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.productURL(id), &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build update request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to update product %d: %w", id, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, fmt.Errorf("failed to update product %d: %w", id, err)
	}

	var updated domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		// Some backends answer the update with a plain confirmation body.
		updated = p
		updated.ID = id
	}
	return &updated, nil
}

// DeleteProduct removes a product (DELETE /product/{id}).
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.productURL(id), nil)
	if err != nil {
		return fmt.Errorf("failed to build delete request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if err := checkStatus(resp); err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	return nil
}

func (c *Client) productURL(id int64) string {
	return c.baseURL + "/product/" + strconv.FormatInt(id, 10)
}

func (c *Client) getJSON(ctx context.Context, url string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: status %d", ErrBackend, resp.StatusCode)
	}
	return nil
}
