package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/handsome-restaurant/restaurant-app/controllers"
	"github.com/handsome-restaurant/restaurant-app/middlewares"
	"github.com/handsome-restaurant/restaurant-app/models"
	"github.com/handsome-restaurant/restaurant-app/utils"
)

func setupTestDBForUsers(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, email, password, role string, active bool) models.User {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	assert.NoError(t, err)
	user := models.User{Name: name, Email: email, Password: string(hashed), Role: role, IsActive: active}
	assert.NoError(t, db.Create(&user).Error)
	return user
}

func setupUserRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	authCtrl := controllers.NewAuthController(db)
	userCtrl := controllers.NewUserController(db)
	router.POST("/api/auth/login", authCtrl.Login)
	authed := router.Group("/api", middlewares.AuthMiddleware(db))
	authed.GET("/auth/me", authCtrl.Me)
	admin := authed.Group("", middlewares.AdminOnly())
	admin.GET("/users", userCtrl.GetAllUsers)
	admin.POST("/users", userCtrl.CreateUser)
	admin.PUT("/users/:user_id", userCtrl.UpdateUser)
	admin.DELETE("/users/:user_id", userCtrl.DeleteUser)
	return router
}

func doLogin(router *gin.Engine, email, password string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req, _ := http.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLoginSuccess(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForUsers(t)
	seedUser(t, db, "Admin", "admin@resto.test", "rahasia123", models.RoleAdmin, true)
	router := setupUserRouter(db)

	w := doLogin(router, "admin@resto.test", "rahasia123")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])

	user := data["user"].(map[string]interface{})
	assert.Equal(t, "admin@resto.test", user["email"])
	assert.Equal(t, models.RoleAdmin, user["role"])
	// Hash password tidak boleh bocor
	assert.NotContains(t, w.Body.String(), "rahasia123")
	assert.NotContains(t, w.Body.String(), "$2a$")
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForUsers(t)
	seedUser(t, db, "Waiter", "waiter@resto.test", "rahasia123", models.RoleWaiter, true)
	seedUser(t, db, "Dormant", "dormant@resto.test", "rahasia123", models.RoleCashier, false)
	router := setupUserRouter(db)

	cases := []struct {
		email    string
		password string
	}{
		{"nobody@resto.test", "rahasia123"},   // email tidak terdaftar
		{"waiter@resto.test", "salah"},        // password salah
		{"dormant@resto.test", "rahasia123"},  // akun nonaktif
	}

	var bodies []string
	for _, tc := range cases {
		w := doLogin(router, tc.email, tc.password)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		bodies = append(bodies, w.Body.String())
	}
	// Semua kegagalan mengembalikan respons identik
	assert.Equal(t, bodies[0], bodies[1])
	assert.Equal(t, bodies[1], bodies[2])
}

func TestMeReturnsCurrentUser(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForUsers(t)
	seedUser(t, db, "Kitchen", "kitchen@resto.test", "rahasia123", models.RoleKitchen, true)
	router := setupUserRouter(db)

	w := doLogin(router, "kitchen@resto.test", "rahasia123")
	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	token := resp["data"].(map[string]interface{})["token"].(string)

	req, _ := http.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	me := resp["data"].(map[string]interface{})["user"].(map[string]interface{})
	assert.Equal(t, "kitchen@resto.test", me["email"])
	assert.Equal(t, models.RoleKitchen, me["role"])

	// Tanpa token -> 401
	req, _ = http.NewRequest("GET", "/api/auth/me", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func adminToken(t *testing.T, db *gorm.DB, router *gin.Engine) string {
	seedUser(t, db, "Boss", "boss@resto.test", "rahasia123", models.RoleAdmin, true)
	w := doLogin(router, "boss@resto.test", "rahasia123")
	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp["data"].(map[string]interface{})["token"].(string)
}

func TestUserCRUDRequiresAdmin(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForUsers(t)
	seedUser(t, db, "Waiter", "waiter@resto.test", "rahasia123", models.RoleWaiter, true)
	router := setupUserRouter(db)

	w := doLogin(router, "waiter@resto.test", "rahasia123")
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	waiterToken := resp["data"].(map[string]interface{})["token"].(string)

	req, _ := http.NewRequest("GET", "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+waiterToken)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateUpdateDeleteUser(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForUsers(t)
	router := setupUserRouter(db)
	token := adminToken(t, db, router)

	do := func(method, path string, payload interface{}) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if payload != nil {
			assert.NoError(t, json.NewEncoder(&buf).Encode(payload))
		}
		req, _ := http.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := do("POST", "/api/users", map[string]interface{}{
		"name": "New Waiter", "email": "new@resto.test", "password": "rahasia123", "role": models.RoleWaiter,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Email duplikat -> 409
	w = do("POST", "/api/users", map[string]interface{}{
		"name": "Dup", "email": "new@resto.test", "password": "rahasia123", "role": models.RoleWaiter,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Role di luar enum -> 400
	w = do("POST", "/api/users", map[string]interface{}{
		"name": "Bad", "email": "bad@resto.test", "password": "rahasia123", "role": "owner",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var created models.User
	assert.NoError(t, db.Where("email = ?", "new@resto.test").First(&created).Error)
	assert.True(t, created.IsActive)
	// Password tersimpan sebagai hash bcrypt
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("rahasia123")))

	// Update parsial: hanya nama, password lama tetap berlaku
	w = do("PUT", fmt.Sprintf("/api/users/%d", created.ID), map[string]interface{}{"name": "Renamed"})
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.User
	db.First(&updated, created.ID)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, created.Password, updated.Password)

	// Nonaktifkan akun, login harus ditolak
	active := false
	w = do("PUT", fmt.Sprintf("/api/users/%d", created.ID), map[string]interface{}{"isActive": &active})
	assert.Equal(t, http.StatusOK, w.Code)
	lw := doLogin(router, "new@resto.test", "rahasia123")
	assert.Equal(t, http.StatusUnauthorized, lw.Code)

	w = do("DELETE", fmt.Sprintf("/api/users/%d", created.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var count int64
	db.Model(&models.User{}).Where("id = ?", created.ID).Count(&count)
	assert.Zero(t, count)
}
