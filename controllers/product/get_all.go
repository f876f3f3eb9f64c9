package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pngmarketplace/marketplace-api/models"
)

// ProductView is a product with its category name denormalized in, matching
// what the storefront renders on listing pages.
type ProductView struct {
	models.Product
	CategoryName string `json:"category_name"`
}

// ListProducts applies the storefront filters and joins category names.
func ListProducts(db *gorm.DB, categoryID *uint, featured bool, search string) ([]ProductView, error) {
	query := db.Model(&models.Product{})

	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	if featured {
		query = query.Where("featured = ?", true)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}

	var products []models.Product
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}

	return attachCategoryNames(db, products)
}

func attachCategoryNames(db *gorm.DB, products []models.Product) ([]ProductView, error) {
	ids := make([]uint, 0, len(products))
	for _, p := range products {
		if p.CategoryID != nil {
			ids = append(ids, *p.CategoryID)
		}
	}

	names := map[uint]string{}
	if len(ids) > 0 {
		var categories []models.Category
		if err := db.Where("id IN ?", ids).Find(&categories).Error; err != nil {
			return nil, err
		}
		for _, cat := range categories {
			names[cat.ID] = cat.Name
		}
	}

	views := make([]ProductView, len(products))
	for i, p := range products {
		views[i] = ProductView{Product: p}
		if p.CategoryID != nil {
			views[i].CategoryName = names[*p.CategoryID]
		}
	}
	return views, nil
}

// GET /products
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categoryID *uint
		if raw := c.Query("category_id"); raw != "" {
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
				return
			}
			cid := uint(id)
			categoryID = &cid
		}

		featured := c.Query("featured") == "true"
		search := c.Query("search")

		products, err := ListProducts(db, categoryID, featured, search)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		c.JSON(http.StatusOK, products)
	}
}
