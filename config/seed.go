package config

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/handsome-restaurant/restaurant-app/models"
)

// SeedAdmin membuat akun admin pertama. Instalasi baru tidak bisa login
// sebelum akun ini ada karena pembuatan user lewat API di-gate admin.
// Argumen kosong diisi dari env ADMIN_EMAIL / ADMIN_PASSWORD / ADMIN_NAME,
// lalu default development.
func SeedAdmin(db *gorm.DB, email, password, name string) (*models.User, error) {
	if email == "" {
		email = envOr("ADMIN_EMAIL", "admin@handsome.com")
	}
	if password == "" {
		password = envOr("ADMIN_PASSWORD", "admin123")
	}
	if name == "" {
		name = envOr("ADMIN_NAME", "Admin")
	}
	email = strings.ToLower(strings.TrimSpace(email))

	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("user %s already exists", email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return nil, err
	}

	return &admin, nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
