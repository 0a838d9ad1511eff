package Controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/JarkkoKarki/Web-Project-Backend/controllers"
	"github.com/JarkkoKarki/Web-Project-Backend/models"
	"github.com/JarkkoKarki/Web-Project-Backend/utils"
)

// Seeded products come back to the caller because the shared in-memory
// database keeps its AUTOINCREMENT sequences between tests.
func setupTestDBForOrders(t *testing.T) (*gorm.DB, []models.Product) {
	db, err := gorm.Open(sqlite.Open("file:orderstest?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	err = db.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{}, &models.OrderLine{})
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	db.Exec("DELETE FROM order_lines")
	db.Exec("DELETE FROM orders")
	db.Exec("DELETE FROM products")
	db.Exec("DELETE FROM users")

	products := []models.Product{
		{NameFi: "Hampurilainen", NameEn: "Burger", DescFi: "Mehukas", DescEn: "Juicy", Price: 10.00},
		{NameFi: "Ranskalaiset", NameEn: "Fries", DescFi: "Rapeat", DescEn: "Crispy", Price: 4.50},
	}
	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			t.Fatalf("failed to seed product: %v", err)
		}
	}
	return db, products
}

// fakeAuth stands in for AuthMiddleware so tests control the caller.
func fakeAuth(userID uint, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

func setupOrderRouter(db *gorm.DB, userID uint, role models.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	orderCtrl := controllers.NewOrderController(db)
	r.POST("/orders", fakeAuth(userID, role), orderCtrl.CreateOrder)
	r.GET("/orders/:lang", fakeAuth(userID, role), orderCtrl.GetAllOrders)
	r.GET("/orders/myorders/:lang", fakeAuth(userID, role), orderCtrl.GetMyOrders)
	r.PUT("/orders/:id", fakeAuth(userID, role), orderCtrl.UpdateOrder)
	return r
}

func TestCreateOrderComputesTotalFromCatalog(t *testing.T) {
	utils.InitLogger()
	db, products := setupTestDBForOrders(t)
	r := setupOrderRouter(db, 1, models.RoleUser)

	w := doJSON(t, r, "POST", "/orders", "", map[string]interface{}{
		"items": []map[string]interface{}{
			{"product_id": products[0].ID, "quantity": 2},
			{"product_id": products[1].ID, "quantity": 3},
		},
		"address": "Testikatu 1",
		"name":    "Customer",
		"email":   "customer@example.com",
		"phone":   "0401234567",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	// 2*10.00 + 3*4.50, priced server-side.
	assert.InDelta(t, 33.50, data["total_price"].(float64), 0.001)
	orderID := uint(data["order_id"].(float64))

	// A later price edit never rewrites a persisted order.
	db.Model(&models.Product{}).Where("id = ?", products[0].ID).Update("price", 99.99)

	var order models.Order
	assert.NoError(t, db.Preload("Lines").First(&order, orderID).Error)
	assert.InDelta(t, 33.50, order.TotalPrice, 0.001)
	assert.Len(t, order.Lines, 2)
	for _, line := range order.Lines {
		if line.ProductID == products[0].ID {
			assert.Equal(t, 10.00, line.Price)
			assert.Equal(t, "Burger", line.NameEn)
			assert.Equal(t, "Hampurilainen", line.NameFi)
		}
	}
}

func TestCreateOrderUnknownProductPersistsNothing(t *testing.T) {
	utils.InitLogger()
	db, products := setupTestDBForOrders(t)
	r := setupOrderRouter(db, 1, models.RoleUser)

	w := doJSON(t, r, "POST", "/orders", "", map[string]interface{}{
		"items": []map[string]interface{}{
			{"product_id": products[0].ID, "quantity": 1},
			{"product_id": products[1].ID + 1000, "quantity": 1},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var orderCount, lineCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	db.Model(&models.OrderLine{}).Count(&lineCount)
	assert.Equal(t, int64(0), orderCount)
	assert.Equal(t, int64(0), lineCount)
}

func TestCreateOrderRejectsBadCarts(t *testing.T) {
	utils.InitLogger()
	db, products := setupTestDBForOrders(t)
	r := setupOrderRouter(db, 1, models.RoleUser)

	w := doJSON(t, r, "POST", "/orders", "", map[string]interface{}{
		"items": []map[string]interface{}{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, "POST", "/orders", "", map[string]interface{}{
		"items": []map[string]interface{}{
			{"product_id": products[0].ID, "quantity": 0},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, "POST", "/orders", "", map[string]interface{}{
		"items": []map[string]interface{}{
			{"product_id": products[0].ID, "quantity": -2},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderListingsAndLocalization(t *testing.T) {
	utils.InitLogger()
	db, products := setupTestDBForOrders(t)
	r := setupOrderRouter(db, 1, models.RoleUser)

	w := doJSON(t, r, "POST", "/orders", "", map[string]interface{}{
		"items": []map[string]interface{}{{"product_id": products[0].ID, "quantity": 1}},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Plain users cannot list everyone's orders.
	w = doJSON(t, r, "GET", "/orders/en", "", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Their own, localized.
	w = doJSON(t, r, "GET", "/orders/myorders/fi", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	orders := resp["data"].([]interface{})
	assert.Len(t, orders, 1)
	line := orders[0].(map[string]interface{})["lines"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "Hampurilainen", line["name"])

	// Employees see the lot and can update status.
	staff := setupOrderRouter(db, 2, models.RoleEmployee)
	w = doJSON(t, staff, "GET", "/orders/en", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	orders = resp["data"].([]interface{})
	assert.Len(t, orders, 1)
	orderID := uint(orders[0].(map[string]interface{})["id"].(float64))

	w = doJSON(t, staff, "PUT", "/orders/"+itoa(orderID), "", map[string]string{"status": "delivered"})
	assert.Equal(t, http.StatusOK, w.Code)

	var order models.Order
	db.First(&order, orderID)
	assert.Equal(t, "delivered", order.Status)
}
