package Controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/JarkkoKarki/Web-Project-Backend/controllers"
	"github.com/JarkkoKarki/Web-Project-Backend/middlewares"
	"github.com/JarkkoKarki/Web-Project-Backend/models"
	"github.com/JarkkoKarki/Web-Project-Backend/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:userstest?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	db.Exec("DELETE FROM users")
	return db
}

func setupRouterForTest(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	userCtrl := controllers.NewUserController(db)
	authCtrl := controllers.NewAuthController(db)

	r.POST("/users", userCtrl.Register)
	r.POST("/auth/login", authCtrl.Login)
	r.GET("/users/:id",
		middlewares.AuthMiddleware(),
		middlewares.OwnerOrAdmin("id"),
		userCtrl.GetUserByID)
	r.PUT("/users/:id",
		middlewares.AuthMiddleware(),
		middlewares.OwnerOrAdmin("id"),
		userCtrl.UpdateUser)
	r.DELETE("/users/:id",
		middlewares.AuthMiddleware(),
		middlewares.OwnerOrAdmin("id"),
		userCtrl.DeleteUser)
	return r
}

func postForm(t *testing.T, r *gin.Engine, method, path, token string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, path, strings.NewReader(form.Encode()))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterAndLogin(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupRouterForTest(db)

	w := postForm(t, r, "POST", "/users", "", url.Values{
		"first_name": {"Test"},
		"last_name":  {"User"},
		"username":   {"testuser"},
		"email":      {"test@example.com"},
		"password":   {"password123"},
		"address":    {"Testikatu 1"},
		"phone":      {"0401234567"},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var registerResponse map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &registerResponse))
	assert.Equal(t, true, registerResponse["status"])
	data := registerResponse["data"].(map[string]interface{})
	assert.NotNil(t, data["user_id"])

	// Self-registration never grants a privileged role.
	var created models.User
	db.Where("username = ?", "testuser").First(&created)
	assert.Equal(t, models.RoleUser, created.Role)

	w = doJSON(t, r, "POST", "/auth/login", "", map[string]string{
		"username": "testuser",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var loginResponse map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResponse))
	assert.Equal(t, true, loginResponse["status"])
	data = loginResponse["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
}

func TestRegisterDuplicateUsername(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupRouterForTest(db)

	form := url.Values{
		"username": {"dupe"},
		"email":    {"dupe@example.com"},
		"password": {"password123"},
	}
	w := postForm(t, r, "POST", "/users", "", form)
	assert.Equal(t, http.StatusCreated, w.Code)

	form.Set("email", "other@example.com")
	w = postForm(t, r, "POST", "/users", "", form)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestOwnershipGuard(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupRouterForTest(db)

	alice := models.User{Username: "alice", Email: "alice@example.com", Password: "x", Role: models.RoleUser}
	bob := models.User{Username: "bob", Email: "bob@example.com", Password: "x", Role: models.RoleUser}
	admin := models.User{Username: "boss", Email: "boss@example.com", Password: "x", Role: models.RoleAdmin}
	db.Create(&alice)
	db.Create(&bob)
	db.Create(&admin)

	aliceToken, _ := utils.GenerateToken(alice)
	adminToken, _ := utils.GenerateToken(admin)

	// Alice may read herself.
	w := doJSON(t, r, "GET", "/users/"+itoa(alice.ID), aliceToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Alice may not read Bob.
	w = doJSON(t, r, "GET", "/users/"+itoa(bob.ID), aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admin may read anyone.
	w = doJSON(t, r, "GET", "/users/"+itoa(bob.ID), adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Alice cannot promote herself.
	w = postForm(t, r, "PUT", "/users/"+itoa(alice.ID), aliceToken, url.Values{"role": {"admin"}})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admin can.
	w = postForm(t, r, "PUT", "/users/"+itoa(alice.ID), adminToken, url.Values{"role": {"employee"}})
	assert.Equal(t, http.StatusOK, w.Code)
	var reloaded models.User
	db.First(&reloaded, alice.ID)
	assert.Equal(t, models.RoleEmployee, reloaded.Role)

	// Missing token -> 401.
	w = doJSON(t, r, "GET", "/users/"+itoa(alice.ID), "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
