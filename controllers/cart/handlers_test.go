package cartControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestRouter wires the cart handlers behind a stub auth middleware that
// injects a fixed user id, the way the session middleware does in production.
func newTestRouter(db *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	authed := r.Group("/user", func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	authed.GET("/cart", GetUserCartHandler(db))
	authed.POST("/cart", AddToCartHandler(db))
	authed.PUT("/cart/:id", UpdateCartItemHandler(db))
	authed.DELETE("/cart/:id", RemoveFromCartHandler(db))
	authed.DELETE("/cart", ClearCartHandler(db))
	return r
}

func TestGetUserCartHandlerSummaryShape(t *testing.T) {
	db := setupTestDB(t)
	first := createTestProduct(t, db, "bilum", "10.00")
	second := createTestProduct(t, db, "kundu", "5.00")

	require.NoError(t, AddToCart(db, 1, first.ID, 2, "", ""))
	require.NoError(t, AddToCart(db, 1, second.ID, 1, "", ""))

	r := newTestRouter(db, 1)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/user/cart", nil)
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items []map[string]interface{} `json:"items"`
		Total string                   `json:"total"`
		Count int                      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "25.00", resp.Total)
	assert.Equal(t, 3, resp.Count)
	require.Len(t, resp.Items, 2)
	for _, key := range []string{"id", "user_id", "product_id", "quantity", "size", "color", "name", "price", "image_url"} {
		assert.Contains(t, resp.Items[0], key)
	}
}

func TestAddToCartHandlerUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db, 1)

	body, _ := json.Marshal(gin.H{"product_id": 999, "quantity": 1})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/user/cart", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateCartItemHandlerRejectsZeroQuantity(t *testing.T) {
	db := setupTestDB(t)
	product := createTestProduct(t, db, "laplap", "12.00")
	require.NoError(t, AddToCart(db, 1, product.ID, 1, "", ""))

	r := newTestRouter(db, 1)

	body, _ := json.Marshal(gin.H{"quantity": -1})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/user/cart/1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRemoveFromCartHandlerIdempotent(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db, 1)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/user/cart/42", nil)
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
