package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domain "github.com/example/storefront/domain/catalog"
	"gorm.io/gorm"
)

// ErrCorruptSnapshot is returned when a persisted product snapshot cannot
// be decoded. The store treats it as "no cart" rather than erroring.
var ErrCorruptSnapshot = errors.New("corrupt cart snapshot")

// Repository provides access to the persisted cart. Every mutation is
// written through to SQLite before it returns, so the durable state never
// diverges from what callers observe.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new cart repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates the cart table.
func (r *Repository) Migrate() error {
	if err := r.db.AutoMigrate(&Item{}); err != nil {
		return fmt.Errorf("failed to migrate cart table: %w", err)
	}
	return nil
}

// List returns all cart items in insertion order.
func (r *Repository) List() ([]Item, error) {
	var items []Item
	if err := r.db.Order("row_id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	for _, item := range items {
		if _, err := decodeSnapshot(item); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// Add puts the product in the cart: an existing line item's quantity is
// incremented by one, otherwise a new line item with quantity 1 and a
// snapshot of the product is appended. Returns the resulting cart.
func (r *Repository) Add(product domain.Product) ([]Item, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing Item
		err := tx.First(&existing, "product_id = ?", product.ID).Error
		switch {
		case err == nil:
			return tx.Model(&existing).Update("quantity", existing.Quantity+1).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			snapshot, merr := json.Marshal(product)
			if merr != nil {
				return merr
			}
			return tx.Create(&Item{
				ProductID: product.ID,
				Quantity:  1,
				Snapshot:  snapshot,
				AddedAt:   time.Now(),
			}).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add product %d to cart: %w", product.ID, err)
	}
	return r.List()
}

// Remove deletes the line item for productID. Removing an absent id is a
// no-op, not an error. Returns whether a row was removed and the resulting
// cart.
func (r *Repository) Remove(productID int64) (bool, []Item, error) {
	result := r.db.Delete(&Item{}, "product_id = ?", productID)
	if result.Error != nil {
		return false, nil, fmt.Errorf("failed to remove product %d from cart: %w", productID, result.Error)
	}
	items, err := r.List()
	if err != nil {
		return false, nil, err
	}
	return result.RowsAffected > 0, items, nil
}

// Clear empties the cart.
func (r *Repository) Clear() error {
	if err := r.db.Exec("DELETE FROM cart_items").Error; err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// Reset drops all rows, including ones with undecodable snapshots.
func (r *Repository) Reset() error {
	return r.Clear()
}

// decodeSnapshot unpacks an item's product snapshot.
func decodeSnapshot(item Item) (domain.Product, error) {
	var product domain.Product
	if err := json.Unmarshal(item.Snapshot, &product); err != nil {
		return domain.Product{}, fmt.Errorf("%w: product %d", ErrCorruptSnapshot, item.ProductID)
	}
	return product, nil
}
