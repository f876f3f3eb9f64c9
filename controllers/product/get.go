package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pngmarketplace/marketplace-api/models"
)

// GetProduct loads one product with its category name.
func GetProduct(db *gorm.DB, id uint) (ProductView, error) {
	var product models.Product
	if err := db.First(&product, "id = ?", id).Error; err != nil {
		return ProductView{}, err
	}

	views, err := attachCategoryNames(db, []models.Product{product})
	if err != nil {
		return ProductView{}, err
	}
	return views[0], nil
}

// GET /products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		product, err := GetProduct(db, uint(id))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			}
			return
		}

		c.JSON(http.StatusOK, product)
	}
}
