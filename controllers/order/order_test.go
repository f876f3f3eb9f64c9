package orderControllers

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	cartControllers "github.com/pngmarketplace/marketplace-api/controllers/cart"
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

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name, price string) models.Product {
	t.Helper()

	product := models.Product{
		Name:        name,
		Description: name + " description",
		Price:       decimal.RequireFromString(price),
		ImageURL:    "/images/" + name + ".jpg",
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

// seedCart puts two lines (2 x 10.00, 1 x 5.00) into user 1's cart and
// returns the matching checkout snapshot.
func seedCart(t *testing.T, db *gorm.DB) []SnapshotItem {
	t.Helper()

	first := seedProduct(t, db, "bilum", "10.00")
	second := seedProduct(t, db, "kundu", "5.00")

	require.NoError(t, cartControllers.AddToCart(db, 1, first.ID, 2, "", ""))
	require.NoError(t, cartControllers.AddToCart(db, 1, second.ID, 1, "", ""))

	return []SnapshotItem{
		{ProductID: first.ID, Quantity: 2, Price: decimal.RequireFromString("10.00")},
		{ProductID: second.ID, Quantity: 1, Price: decimal.RequireFromString("5.00")},
	}
}

func testAddress() models.ShippingAddress {
	return models.ShippingAddress{
		FullName:   "Kila Aihi",
		Street:     "Ela Beach Road",
		City:       "Port Moresby",
		Province:   "NCD",
		PostalCode: "121",
		Country:    "Papua New Guinea",
	}
}

func TestCreateOrderSnapshotsCartAndClearsIt(t *testing.T) {
	db := setupTestDB(t)
	snapshot := seedCart(t, db)

	before := time.Now()
	orderID, err := CreateOrder(db, 1, decimal.RequireFromString("25.00"), testAddress(), "cash_on_delivery", snapshot)
	require.NoError(t, err)
	require.NotZero(t, orderID)

	var order models.Order
	require.NoError(t, db.First(&order, orderID).Error)
	assert.Equal(t, uint(1), order.UserID)
	assert.Equal(t, "25.00", order.TotalAmount.StringFixed(2))
	assert.Equal(t, models.OrderStatusPlaced, order.Status)
	assert.Equal(t, "cash_on_delivery", order.PaymentMethod)
	assert.Equal(t, "Port Moresby", order.ShippingAddress.City)

	// Estimated delivery is seven days out.
	assert.WithinDuration(t, before.Add(7*24*time.Hour), order.EstimatedDelivery, time.Minute)

	var lines []models.OrderItem
	require.NoError(t, db.Where("order_id = ?", orderID).Order("id").Find(&lines).Error)
	require.Len(t, lines, 2)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "10.00", lines[0].Price.StringFixed(2))
	assert.Equal(t, 1, lines[1].Quantity)
	assert.Equal(t, "5.00", lines[1].Price.StringFixed(2))

	items, err := cartControllers.GetCartItems(db, 1)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCreateOrderPriceLockIgnoresLaterCatalogChanges(t *testing.T) {
	db := setupTestDB(t)
	snapshot := seedCart(t, db)

	orderID, err := CreateOrder(db, 1, decimal.RequireFromString("25.00"), testAddress(), "card", snapshot)
	require.NoError(t, err)

	// Reprice the catalog after checkout.
	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", snapshot[0].ProductID).
		Update("price", decimal.RequireFromString("99.99")).Error)

	var line models.OrderItem
	require.NoError(t, db.First(&line, "order_id = ? AND product_id = ?", orderID, snapshot[0].ProductID).Error)
	assert.Equal(t, "10.00", line.Price.StringFixed(2))
}

func TestCreateOrderRollsBackOnLineFailure(t *testing.T) {
	db := setupTestDB(t)
	snapshot := seedCart(t, db)

	// A zero quantity fails validation after the first line was written,
	// so the whole transaction must unwind.
	broken := []SnapshotItem{snapshot[0], {ProductID: snapshot[1].ProductID, Quantity: 0, Price: snapshot[1].Price}, snapshot[1]}

	_, err := CreateOrder(db, 1, decimal.RequireFromString("25.00"), testAddress(), "card", broken)
	require.Error(t, err)

	var orderCount, lineCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&lineCount).Error)
	assert.Equal(t, int64(0), orderCount)
	assert.Equal(t, int64(0), lineCount)

	// Cart untouched.
	items, err := cartControllers.GetCartItems(db, 1)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestCreateOrderRejectsTotalMismatch(t *testing.T) {
	db := setupTestDB(t)
	snapshot := seedCart(t, db)

	_, err := CreateOrder(db, 1, decimal.RequireFromString("19.99"), testAddress(), "card", snapshot)
	assert.ErrorIs(t, err, ErrTotalMismatch)

	var orderCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Equal(t, int64(0), orderCount)

	items, err := cartControllers.GetCartItems(db, 1)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestCreateOrderRejectsEmptySnapshot(t *testing.T) {
	db := setupTestDB(t)

	_, err := CreateOrder(db, 1, decimal.Zero, testAddress(), "card", nil)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCreateOrderConflictOnDoubleCheckout(t *testing.T) {
	db := setupTestDB(t)
	snapshot := seedCart(t, db)
	total := decimal.RequireFromString("25.00")

	_, err := CreateOrder(db, 1, total, testAddress(), "card", snapshot)
	require.NoError(t, err)

	// Same snapshot again: the cart rows are gone, so the second checkout
	// must abort instead of minting a second order.
	_, err = CreateOrder(db, 1, total, testAddress(), "card", snapshot)
	assert.ErrorIs(t, err, ErrCartConflict)

	var orderCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Equal(t, int64(1), orderCount)
}

func TestGetUserOrdersNewestFirst(t *testing.T) {
	db := setupTestDB(t)

	older := models.Order{
		UserID:      1,
		TotalAmount: decimal.RequireFromString("5.00"),
		Status:      models.OrderStatusPlaced,
		CreatedAt:   time.Now().Add(-48 * time.Hour),
	}
	newer := models.Order{
		UserID:      1,
		TotalAmount: decimal.RequireFromString("9.00"),
		Status:      models.OrderStatusPlaced,
		CreatedAt:   time.Now().Add(-1 * time.Hour),
	}
	foreign := models.Order{
		UserID:      2,
		TotalAmount: decimal.RequireFromString("3.00"),
		Status:      models.OrderStatusPlaced,
		CreatedAt:   time.Now(),
	}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)
	require.NoError(t, db.Create(&foreign).Error)

	orders, err := GetUserOrders(db, 1)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, newer.ID, orders[0].ID)
	assert.Equal(t, older.ID, orders[1].ID)
}

func TestGetOrderJoinsLineDetails(t *testing.T) {
	db := setupTestDB(t)
	snapshot := seedCart(t, db)

	orderID, err := CreateOrder(db, 1, decimal.RequireFromString("25.00"), testAddress(), "card", snapshot)
	require.NoError(t, err)

	detail, err := GetOrder(db, orderID)
	require.NoError(t, err)
	assert.Equal(t, orderID, detail.ID)
	require.Len(t, detail.Items, 2)
	assert.Equal(t, "bilum", detail.Items[0].ProductName)
	assert.Equal(t, "/images/bilum.jpg", detail.Items[0].ImageURL)
	assert.Equal(t, "kundu", detail.Items[1].ProductName)
}

func TestGetOrderUnknownID(t *testing.T) {
	db := setupTestDB(t)

	_, err := GetOrder(db, 12345)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
