package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pngmarketplace/marketplace-api/models"
)

type CreateProductInput struct {
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description" binding:"required"`
	Price         decimal.Decimal `json:"price"`
	CategoryID    *uint           `json:"category_id" binding:"required"`
	ImageURL      string          `json:"image_url"`
	GalleryImages []string        `json:"gallery_images"`
	Sizes         []string        `json:"sizes"`
	Colors        []string        `json:"colors"`
	StockQuantity int             `json:"stock_quantity"`
	Featured      bool            `json:"featured"`
}

// POST /admin/products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Price.LessThanOrEqual(decimal.Zero) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}
		if input.StockQuantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock_quantity"})
			return
		}

		product := models.Product{
			Name:          input.Name,
			Description:   input.Description,
			Price:         input.Price,
			CategoryID:    input.CategoryID,
			ImageURL:      input.ImageURL,
			GalleryImages: models.StringList(input.GalleryImages),
			Sizes:         models.StringList(input.Sizes),
			Colors:        models.StringList(input.Colors),
			StockQuantity: input.StockQuantity,
			Featured:      input.Featured,
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		view, err := GetProduct(db, product.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			return
		}
		c.JSON(http.StatusOK, view)
	}
}
