package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pngmarketplace/marketplace-api/models"
)

// UpdateProductInput carries a partial update: only non-nil fields are
// written.
type UpdateProductInput struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	CategoryID    *uint            `json:"category_id"`
	ImageURL      *string          `json:"image_url"`
	GalleryImages *[]string        `json:"gallery_images"`
	Sizes         *[]string        `json:"sizes"`
	Colors        *[]string        `json:"colors"`
	StockQuantity *int             `json:"stock_quantity"`
	Featured      *bool            `json:"featured"`
}

// PUT /admin/products/:id
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			}
			return
		}

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.Price != nil {
			if input.Price.LessThanOrEqual(decimal.Zero) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
				return
			}
			updates["price"] = *input.Price
		}
		if input.CategoryID != nil {
			updates["category_id"] = *input.CategoryID
		}
		if input.ImageURL != nil {
			updates["image_url"] = *input.ImageURL
		}
		if input.GalleryImages != nil {
			updates["gallery_images"] = models.StringList(*input.GalleryImages)
		}
		if input.Sizes != nil {
			updates["sizes"] = models.StringList(*input.Sizes)
		}
		if input.Colors != nil {
			updates["colors"] = models.StringList(*input.Colors)
		}
		if input.StockQuantity != nil {
			if *input.StockQuantity < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock_quantity"})
				return
			}
			updates["stock_quantity"] = *input.StockQuantity
		}
		if input.Featured != nil {
			updates["featured"] = *input.Featured
		}

		if len(updates) > 0 {
			if err := db.Model(&product).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
				return
			}
		}

		view, err := GetProduct(db, product.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			return
		}
		c.JSON(http.StatusOK, view)
	}
}
