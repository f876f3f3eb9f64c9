package models

type Category struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"unique;not null" json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

func (Category) TableName() string {
	return "categories"
}
