package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/bean-buzz/beanbuzz-backend/models"
)

func newMenuRouter(menu *stubMenuStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewMenuHandler(menu, zap.NewNop())

	r := gin.New()
	r.GET("/menu", h.List)
	r.GET("/menu/:categoryName", h.ListByCategory)
	r.GET("/menu/item/:itemId", h.GetItem)
	r.POST("/menu/item", h.CreateItem)
	r.PUT("/menu/item/:itemId", h.UpdateItem)
	r.DELETE("/menu/item/:itemId", h.DeleteItem)
	return r
}

func TestListMenu(t *testing.T) {
	menu, _, _ := testMenu()
	r := newMenuRouter(menu)

	rec := doJSON(t, r, http.MethodGet, "/menu", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []models.MenuItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Len(t, items, 2)
}

func TestListMenuByCategory(t *testing.T) {
	menu, _, _ := testMenu()
	r := newMenuRouter(menu)

	rec := doJSON(t, r, http.MethodGet, "/menu/coffee", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []models.MenuItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Latte", items[0].ItemName)

	rec = doJSON(t, r, http.MethodGet, "/menu/smoothies", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No items found for the category: smoothies.")
}

func TestGetMenuItem(t *testing.T) {
	menu, latte, _ := testMenu()
	r := newMenuRouter(menu)

	rec := doJSON(t, r, http.MethodGet, "/menu/item/"+latte.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/menu/item/"+primitive.NewObjectID().Hex(), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/menu/item/bogus", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateMenuItem(t *testing.T) {
	menu := newStubMenuStore()
	r := newMenuRouter(menu)

	rec := doJSON(t, r, http.MethodPost, "/menu/item", gin.H{
		"itemName":     "Espresso",
		"category":     "coffee",
		"isAvailable":  true,
		"defaultPrice": 3.0,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Len(t, menu.items, 1)
}

func TestCreateMenuItem_PricingModeInvariant(t *testing.T) {
	r := newMenuRouter(newStubMenuStore())

	t.Run("multi-size without sizes", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/menu/item", gin.H{
			"itemName":      "Mocha",
			"category":      "coffee",
			"multipleSizes": true,
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("single price without default", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/menu/item", gin.H{
			"itemName": "Mocha",
			"category": "coffee",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown size key", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/menu/item", gin.H{
			"itemName":      "Mocha",
			"category":      "coffee",
			"multipleSizes": true,
			"sizes":         gin.H{"venti": 6.0},
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateMenuItem(t *testing.T) {
	menu, latte, _ := testMenu()
	r := newMenuRouter(menu)

	rec := doJSON(t, r, http.MethodPut, "/menu/item/"+latte.ID.Hex(), gin.H{
		"itemName":      "Latte",
		"category":      "coffee",
		"isAvailable":   false,
		"multipleSizes": true,
		"sizes":         gin.H{"small": 4.5, "large": 6.0},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.False(t, menu.items[latte.ID].IsAvailable)
	assert.Equal(t, 6.0, menu.items[latte.ID].Sizes["large"])

	rec = doJSON(t, r, http.MethodPut, "/menu/item/"+primitive.NewObjectID().Hex(), gin.H{
		"itemName":     "Ghost",
		"category":     "coffee",
		"defaultPrice": 1.0,
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteMenuItem(t *testing.T) {
	menu, latte, _ := testMenu()
	r := newMenuRouter(menu)

	rec := doJSON(t, r, http.MethodDelete, "/menu/item/"+latte.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, menu.items, 1)

	rec = doJSON(t, r, http.MethodDelete, "/menu/item/"+latte.ID.Hex(), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
