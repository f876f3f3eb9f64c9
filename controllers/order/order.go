package orderControllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pngmarketplace/marketplace-api/models"
)

var (
	// ErrEmptyCart rejects checkout with no cart lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrTotalMismatch means the client-supplied total does not equal the
	// sum of line price x quantity in the snapshot.
	ErrTotalMismatch = errors.New("total amount does not match cart items")

	// ErrCartConflict means the user's cart rows were already consumed,
	// typically by a concurrent checkout of the same cart.
	ErrCartConflict = errors.New("cart already checked out")
)

// SnapshotItem is one cart line as supplied by the caller at checkout. Price
// is the cart-time price and is copied to the order line verbatim.
type SnapshotItem struct {
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
}

// OrderLineDetail is an order line with product name and image joined in for
// display. Product rows may have been deleted since the order was placed, so
// the join is a left join and the denormalized fields may be empty.
type OrderLineDetail struct {
	ID          uint            `json:"id"`
	OrderID     uint            `json:"order_id"`
	ProductID   uint            `json:"product_id"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Size        string          `json:"size"`
	Color       string          `json:"color"`
	ProductName string          `json:"product_name"`
	ImageURL    string          `json:"image_url"`
}

// OrderDetail is one order with its lines.
type OrderDetail struct {
	models.Order
	Items []OrderLineDetail `json:"items"`
}

// CreateOrder converts a cart snapshot into a persisted order in a single
// transaction: one order row, one order line per snapshot item, and a full
// clear of the user's cart. Any failure rolls the whole thing back, leaving
// no order and the cart untouched.
//
// The supplied total is verified against the snapshot inside the transaction
// rather than trusted. The cart delete doubles as a checkout guard: if it
// touches no rows the cart was consumed concurrently and the transaction
// aborts, so one cart cannot be spent twice.
func CreateOrder(db *gorm.DB, userID uint, totalAmount decimal.Decimal, shippingAddress models.ShippingAddress, paymentMethod string, cartItems []SnapshotItem) (uint, error) {
	if len(cartItems) == 0 {
		return 0, ErrEmptyCart
	}

	var orderID uint
	err := db.Transaction(func(tx *gorm.DB) error {
		order := models.Order{
			UserID:            userID,
			TotalAmount:       totalAmount.Round(2),
			ShippingAddress:   shippingAddress,
			PaymentMethod:     paymentMethod,
			Status:            models.OrderStatusPlaced,
			EstimatedDelivery: time.Now().Add(7 * 24 * time.Hour),
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		expected := decimal.Zero
		for i, item := range cartItems {
			if item.Quantity <= 0 {
				return fmt.Errorf("item %d: quantity must be positive, got %d", i, item.Quantity)
			}

			line := models.OrderItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price,
				Size:      item.Size,
				Color:     item.Color,
			}
			if err := tx.Create(&line).Error; err != nil {
				return fmt.Errorf("create order item %d: %w", i, err)
			}

			expected = expected.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		if !expected.Round(2).Equal(totalAmount.Round(2)) {
			return ErrTotalMismatch
		}

		res := tx.Where("user_id = ?", userID).Delete(&models.CartItem{})
		if res.Error != nil {
			return fmt.Errorf("clear cart: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrCartConflict
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return orderID, nil
}

// GetUserOrders returns the user's orders, newest first.
func GetUserOrders(db *gorm.DB, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// GetOrder returns one order with its lines and denormalized product fields.
func GetOrder(db *gorm.DB, orderID uint) (OrderDetail, error) {
	var order models.Order
	if err := db.First(&order, "id = ?", orderID).Error; err != nil {
		return OrderDetail{}, err
	}

	lines := []OrderLineDetail{}
	err := db.Table("order_items").
		Select("order_items.id, order_items.order_id, order_items.product_id, order_items.quantity, order_items.price, order_items.size, order_items.color, products.name AS product_name, products.image_url").
		Joins("LEFT JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id = ?", orderID).
		Order("order_items.id").
		Scan(&lines).Error
	if err != nil {
		return OrderDetail{}, err
	}

	return OrderDetail{Order: order, Items: lines}, nil
}
