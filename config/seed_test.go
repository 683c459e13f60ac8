package config

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/handsome-restaurant/restaurant-app/models"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestSeedAdminCreatesLoginableAccount(t *testing.T) {
	db := setupSeedDB(t)

	admin, err := SeedAdmin(db, "boss@resto.test", "rahasia123", "Boss")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.True(t, admin.IsActive)
	assert.Equal(t, "boss@resto.test", admin.Email)

	var stored models.User
	assert.NoError(t, db.Where("email = ?", "boss@resto.test").First(&stored).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("rahasia123")))
}

func TestSeedAdminRejectsExistingEmail(t *testing.T) {
	db := setupSeedDB(t)

	_, err := SeedAdmin(db, "boss@resto.test", "rahasia123", "Boss")
	assert.NoError(t, err)

	_, err = SeedAdmin(db, "Boss@Resto.Test", "other", "Other")
	assert.Error(t, err)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSeedAdminDefaultsFromEnv(t *testing.T) {
	db := setupSeedDB(t)

	t.Setenv("ADMIN_EMAIL", "env@resto.test")
	t.Setenv("ADMIN_PASSWORD", "env-password")
	t.Setenv("ADMIN_NAME", "Env Admin")

	admin, err := SeedAdmin(db, "", "", "")
	assert.NoError(t, err)
	assert.Equal(t, "env@resto.test", admin.Email)
	assert.Equal(t, "Env Admin", admin.Name)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("env-password")))
}
