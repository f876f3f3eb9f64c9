package models

import "time"

// CartItem is one line of a user's cart. (user_id, product_id, size, color) is
// the identity key: adding the same key again merges quantities instead of
// creating a second row. Size and color use "" for "no variant" so the unique
// index stays stable — Postgres treats NULLs as always-distinct in unique
// indexes, which would break the merge.
type CartItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_identity" json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_identity" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Size      string    `gorm:"not null;default:'';uniqueIndex:idx_cart_identity" json:"size"`
	Color     string    `gorm:"not null;default:'';uniqueIndex:idx_cart_identity" json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
