package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const OrderStatusPlaced = "placed"

// ShippingAddress is persisted as an opaque JSON blob on the order row. The
// structure is for the storefront client; the backend never inspects it beyond
// the serialize/deserialize boundary here.
type ShippingAddress struct {
	FullName   string `json:"full_name"`
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

func (a ShippingAddress) Value() (driver.Value, error) {
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *ShippingAddress) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*a = ShippingAddress{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into ShippingAddress", src)
	}
	if len(data) == 0 {
		*a = ShippingAddress{}
		return nil
	}
	return json.Unmarshal(data, a)
}

// Order is immutable once created: there is no update path.
type Order struct {
	ID                uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID            uint            `gorm:"not null;index" json:"user_id"`
	TotalAmount       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	ShippingAddress   ShippingAddress `gorm:"type:text" json:"shipping_address"`
	PaymentMethod     string          `json:"payment_method"`
	Status            string          `gorm:"type:varchar(20);not null;default:'placed'" json:"status"`
	EstimatedDelivery time.Time       `json:"estimated_delivery"`
	CreatedAt         time.Time       `json:"created_at"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem snapshots one cart line at checkout. Price is copied from the
// cart, not re-read from the catalog, so later price changes never touch
// placed orders.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint            `gorm:"not null;index" json:"order_id"`
	ProductID uint            `gorm:"not null" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
