package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// StringList is a []string persisted as a JSON-encoded column. The encoded
// form never leaves this boundary; everything above works with plain slices.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = StringList{}
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}

	if len(data) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

type Product struct {
	ID            uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string          `gorm:"not null" json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CategoryID    *uint           `gorm:"index" json:"category_id"`
	ImageURL      string          `json:"image_url"`
	GalleryImages StringList      `gorm:"type:text" json:"gallery_images"`
	Sizes         StringList      `gorm:"type:text" json:"sizes"`
	Colors        StringList      `gorm:"type:text" json:"colors"`
	StockQuantity int             `gorm:"not null;default:0" json:"stock_quantity"`
	Featured      bool            `gorm:"not null;default:false" json:"featured"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}
