package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/JarkkoKarki/Web-Project-Backend/controllers"
	"github.com/JarkkoKarki/Web-Project-Backend/middlewares"
	"github.com/JarkkoKarki/Web-Project-Backend/models"
	"github.com/JarkkoKarki/Web-Project-Backend/utils"
)

func setupTestDBForAuth(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:authtest?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	db.Exec("DELETE FROM users")

	hashed, _ := bcrypt.GenerateFromPassword([]byte("adminpass123"), bcrypt.DefaultCost)
	db.Create(&models.User{
		Username: "admin",
		Email:    "admin@example.com",
		Password: string(hashed),
		Role:     models.RoleAdmin,
	})
	return db
}

func setupAuthRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	authCtrl := controllers.NewAuthController(db)
	r.POST("/auth/login", authCtrl.Login)
	r.GET("/auth/me", middlewares.AuthMiddleware(), authCtrl.Me)
	r.POST("/auth/register",
		middlewares.AuthMiddleware(),
		middlewares.RequireRoles(models.RoleAdmin),
		authCtrl.Register)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, body)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginWrongPassword(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForAuth(t)
	r := setupAuthRouter(db)

	w := doJSON(t, r, "POST", "/auth/login", "", map[string]string{
		"username": "admin",
		"password": "not-the-password",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["status"])
	assert.Nil(t, resp["data"])
}

func TestLoginAndMe(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForAuth(t)
	r := setupAuthRouter(db)

	w := doJSON(t, r, "POST", "/auth/login", "", map[string]string{
		"username": "admin",
		"password": "adminpass123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	token, _ := data["token"].(string)
	assert.NotEmpty(t, token)

	user := data["user"].(map[string]interface{})
	assert.Equal(t, "admin", user["username"])
	// Password hash must never appear in a response.
	_, leaked := user["password"]
	assert.False(t, leaked)

	w = doJSON(t, r, "GET", "/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	me := resp["data"].(map[string]interface{})
	assert.Equal(t, "admin@example.com", me["email"])
	assert.Equal(t, "admin", me["role"])
}

func TestAdminRegisterAndDuplicate(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForAuth(t)
	r := setupAuthRouter(db)

	var admin models.User
	db.Where("username = ?", "admin").First(&admin)
	token, err := utils.GenerateToken(admin)
	assert.NoError(t, err)

	payload := map[string]string{
		"username": "employee1",
		"email":    "employee1@example.com",
		"password": "password123",
		"role":     "employee",
	}
	w := doJSON(t, r, "POST", "/auth/register", token, payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Same username again -> client error, not a 500.
	w = doJSON(t, r, "POST", "/auth/register", token, payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown role -> rejected.
	w = doJSON(t, r, "POST", "/auth/register", token, map[string]string{
		"username": "employee2",
		"email":    "employee2@example.com",
		"password": "password123",
		"role":     "superuser",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Non-admin token cannot reach the endpoint.
	var employee models.User
	db.Where("username = ?", "employee1").First(&employee)
	empToken, _ := utils.GenerateToken(employee)
	w = doJSON(t, r, "POST", "/auth/register", empToken, map[string]string{
		"username": "employee3",
		"email":    "employee3@example.com",
		"password": "password123",
		"role":     "user",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
