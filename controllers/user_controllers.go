package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/handsome-restaurant/restaurant-app/models"
	"github.com/handsome-restaurant/restaurant-app/utils"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// GetAllUsers -> seluruh akun staff, terbaru dulu, tanpa password
func (uc *UserController) GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := uc.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All users", users)
}

// GetUserByID -> detail satu akun
func (uc *UserController) GetUserByID(c *gin.Context) {
	idStr := c.Param("user_id")
	id, _ := strconv.Atoi(idStr)

	var user models.User
	if err := uc.DB.First(&user, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "User detail", user)
}

// CreateUser -> admin menambahkan akun staff baru
func (uc *UserController) CreateUser(c *gin.Context) {
	type request struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Role     string `json:"role" binding:"required"`
		IsActive *bool  `json:"isActive"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.ValidRole(req.Role) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid role"))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	if err := uc.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		utils.RespondError(c, http.StatusConflict, errors.New("user already exists"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    email,
		Password: string(hashed),
		Role:     req.Role,
		IsActive: true,
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := uc.DB.Create(&user).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New user created: %s (role=%s)", user.Email, user.Role)

	utils.RespondJSON(c, http.StatusCreated, "User created", user)
}

// UpdateUser -> partial update; password hanya di-hash ulang jika dikirim
func (uc *UserController) UpdateUser(c *gin.Context) {
	idStr := c.Param("user_id")
	id, _ := strconv.Atoi(idStr)

	var user models.User
	if err := uc.DB.First(&user, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
		return
	}

	var req struct {
		Name     *string `json:"name"`
		Email    *string `json:"email"`
		Password *string `json:"password"`
		Role     *string `json:"role"`
		IsActive *bool   `json:"isActive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil && *req.Name != "" {
		user.Name = *req.Name
	}
	if req.Email != nil && *req.Email != "" {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		var existing models.User
		if err := uc.DB.Where("email = ? AND id != ?", email, user.ID).First(&existing).Error; err == nil {
			utils.RespondError(c, http.StatusConflict, errors.New("email already in use"))
			return
		}
		user.Email = email
	}
	if req.Role != nil {
		if !models.ValidRole(*req.Role) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid role"))
			return
		}
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Password != nil && *req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		user.Password = string(hashed)
	}

	if err := uc.DB.Save(&user).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "User updated", user)
}

// DeleteUser -> menghapus akun; deaktivasi via isActive=false juga didukung
// lewat UpdateUser.
func (uc *UserController) DeleteUser(c *gin.Context) {
	idStr := c.Param("user_id")
	id, _ := strconv.Atoi(idStr)

	var user models.User
	if err := uc.DB.First(&user, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
		return
	}

	if err := uc.DB.Delete(&user).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("User %d deleted", user.ID)
	utils.RespondJSON(c, http.StatusOK, "User deleted", gin.H{"user_id": user.ID})
}
