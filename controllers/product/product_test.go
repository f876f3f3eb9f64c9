package productcontroller

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pngmarketplace/marketplace-api/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func seedCatalog(t *testing.T, db *gorm.DB) (models.Category, models.Category) {
	t.Helper()

	crafts := models.Category{Name: "Handicrafts", Description: "Traditional crafts"}
	food := models.Category{Name: "Food", Description: "Local produce"}
	require.NoError(t, db.Create(&crafts).Error)
	require.NoError(t, db.Create(&food).Error)

	now := time.Now()
	products := []models.Product{
		{
			Name:        "Bilum Bag",
			Description: "Hand-woven bilum",
			Price:       decimal.RequireFromString("45.00"),
			CategoryID:  &crafts.ID,
			Featured:    true,
			CreatedAt:   now.Add(-3 * time.Hour),
		},
		{
			Name:        "Kundu Drum",
			Description: "Carved kundu drum",
			Price:       decimal.RequireFromString("120.00"),
			CategoryID:  &crafts.ID,
			CreatedAt:   now.Add(-2 * time.Hour),
		},
		{
			Name:        "Highlands Coffee",
			Description: "Arabica beans from the highlands",
			Price:       decimal.RequireFromString("18.50"),
			CategoryID:  &food.ID,
			Featured:    true,
			CreatedAt:   now.Add(-1 * time.Hour),
		},
	}
	for i := range products {
		require.NoError(t, db.Create(&products[i]).Error)
	}

	return crafts, food
}

func TestListProductsNewestFirstWithCategoryNames(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	views, err := ListProducts(db, nil, false, "")
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Equal(t, "Highlands Coffee", views[0].Name)
	assert.Equal(t, "Food", views[0].CategoryName)
	assert.Equal(t, "Kundu Drum", views[1].Name)
	assert.Equal(t, "Handicrafts", views[1].CategoryName)
	assert.Equal(t, "Bilum Bag", views[2].Name)
}

func TestListProductsByCategory(t *testing.T) {
	db := setupTestDB(t)
	crafts, _ := seedCatalog(t, db)

	views, err := ListProducts(db, &crafts.ID, false, "")
	require.NoError(t, err)
	require.Len(t, views, 2)
	for _, v := range views {
		assert.Equal(t, "Handicrafts", v.CategoryName)
	}
}

func TestListProductsFeaturedOnly(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	views, err := ListProducts(db, nil, true, "")
	require.NoError(t, err)
	require.Len(t, views, 2)
	for _, v := range views {
		assert.True(t, v.Featured)
	}
}

func TestListProductsSearchMatchesNameAndDescription(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	byName, err := ListProducts(db, nil, false, "kundu")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Kundu Drum", byName[0].Name)

	byDescription, err := ListProducts(db, nil, false, "arabica")
	require.NoError(t, err)
	require.Len(t, byDescription, 1)
	assert.Equal(t, "Highlands Coffee", byDescription[0].Name)

	none, err := ListProducts(db, nil, false, "volcano")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetProductNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := GetProduct(db, 404)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProductListColumnsRoundTrip(t *testing.T) {
	db := setupTestDB(t)

	product := models.Product{
		Name:          "Meri Blouse",
		Description:   "Printed meri blouse",
		Price:         decimal.RequireFromString("25.00"),
		GalleryImages: models.StringList{"/img/a.jpg", "/img/b.jpg"},
		Sizes:         models.StringList{"S", "M", "L"},
		Colors:        models.StringList{"red", "blue"},
	}
	require.NoError(t, db.Create(&product).Error)

	var loaded models.Product
	require.NoError(t, db.First(&loaded, product.ID).Error)

	assert.Equal(t, models.StringList{"/img/a.jpg", "/img/b.jpg"}, loaded.GalleryImages)
	assert.Equal(t, models.StringList{"S", "M", "L"}, loaded.Sizes)
	assert.Equal(t, models.StringList{"red", "blue"}, loaded.Colors)
}

func TestProductWithoutCategory(t *testing.T) {
	db := setupTestDB(t)

	product := models.Product{
		Name:        "Uncategorized",
		Description: "No category yet",
		Price:       decimal.RequireFromString("1.00"),
	}
	require.NoError(t, db.Create(&product).Error)

	view, err := GetProduct(db, product.ID)
	require.NoError(t, err)
	assert.Empty(t, view.CategoryName)
	assert.Nil(t, view.CategoryID)
}
