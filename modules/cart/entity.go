package cart

import "time"

// Item is one persisted cart line: a product id, its requested quantity,
// and a JSON snapshot of the product taken when it was first added. The
// auto-increment row id preserves insertion order across restarts.
type Item struct {
	RowID     uint      `gorm:"primarykey" json:"-"`
	ProductID int64     `gorm:"uniqueIndex;not null" json:"product_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	Snapshot  []byte    `gorm:"type:blob" json:"-"`
	AddedAt   time.Time `json:"added_at"`
}

// TableName returns the table name for the Item model.
func (Item) TableName() string {
	return "cart_items"
}
