package cartControllers

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pngmarketplace/marketplace-api/models"
)

var (
	// ErrInvalidQuantity rejects non-positive quantities on add and update.
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")

	// ErrCartInconsistent means a cart row references a product that no
	// longer exists. That is a consistency fault, never a silent skip.
	ErrCartInconsistent = errors.New("cart references a missing product")
)

// CartItemDetail is a cart line enriched with catalog fields for display.
// Field names are contractual with the storefront client.
type CartItemDetail struct {
	ID        uint            `json:"id"`
	UserID    uint            `json:"user_id"`
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"image_url"`
}

// GetCartItems returns the user's cart lines joined with product name, price
// and image, ordered by line id.
func GetCartItems(db *gorm.DB, userID uint) ([]CartItemDetail, error) {
	var lineCount int64
	if err := db.Model(&models.CartItem{}).
		Where("user_id = ?", userID).
		Count(&lineCount).Error; err != nil {
		return nil, err
	}

	items := []CartItemDetail{}
	err := db.Table("cart_items").
		Select("cart_items.id, cart_items.user_id, cart_items.product_id, cart_items.quantity, cart_items.size, cart_items.color, products.name, products.price, products.image_url").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.user_id = ?", userID).
		Order("cart_items.id").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}

	// The inner join drops lines whose product vanished; surface that.
	if int64(len(items)) != lineCount {
		return nil, ErrCartInconsistent
	}

	return items, nil
}

// AddToCart inserts a cart line or, when a line with the same
// (user, product, size, color) identity key exists, increments its quantity.
// The merge is a single atomic upsert so concurrent adds for the same key can
// neither duplicate the row nor lose an increment.
func AddToCart(db *gorm.DB, userID, productID uint, quantity int, size, color string) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	item := models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		Size:      size,
		Color:     color,
	}

	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
			{Name: "product_id"},
			{Name: "size"},
			{Name: "color"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("quantity + excluded.quantity"),
		}),
	}).Create(&item).Error
	if err != nil {
		return fmt.Errorf("add to cart: %w", err)
	}
	return nil
}

// UpdateCartItem sets a line's quantity outright. The line must belong to the
// given user; an unknown or foreign id is a no-op reported as false.
func UpdateCartItem(db *gorm.DB, userID, itemID uint, quantity int) (bool, error) {
	if quantity <= 0 {
		return false, ErrInvalidQuantity
	}

	res := db.Model(&models.CartItem{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		Update("quantity", quantity)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// RemoveFromCart deletes one line. Removing an unknown id is a no-op success.
func RemoveFromCart(db *gorm.DB, userID, itemID uint) error {
	return db.Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&models.CartItem{}).Error
}

// ClearCart deletes every line for the user. Idempotent.
func ClearCart(db *gorm.DB, userID uint) error {
	return db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

// ComputeTotals returns the display total (2 decimal places) and the unit
// count, the sum of quantities rather than the number of lines.
func ComputeTotals(items []CartItemDetail) (decimal.Decimal, int) {
	total := decimal.Zero
	count := 0
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		count += item.Quantity
	}
	return total.Round(2), count
}
