package controllers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/handsome-restaurant/restaurant-app/models"
	"github.com/handsome-restaurant/restaurant-app/utils"
)

const uploadDir = "public/uploads"

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetMenu -> daftar menu untuk customer. Selalu menyembunyikan item yang
// tidak tersedia; filter kategori opsional.
func (mc *MenuController) GetMenu(c *gin.Context) {
	query := mc.DB.Where("is_available = ?", true)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var items []models.MenuItem
	if err := query.Order("category ASC, name ASC").Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

// GetCategories -> daftar kategori distinct
func (mc *MenuController) GetCategories(c *gin.Context) {
	var categories []string
	if err := mc.DB.Model(&models.MenuItem{}).
		Where("category != ''").
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu categories", categories)
}

// GetMenuItemByID -> detail satu item, termasuk yang tidak tersedia
func (mc *MenuController) GetMenuItemByID(c *gin.Context) {
	idStr := c.Param("menu_id")
	id, _ := strconv.Atoi(idStr)

	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item detail", item)
}

// menuForm holds fields accepted both as multipart form data (with an image
// file) and as a JSON body (with an image URL).
type menuForm struct {
	Name        string  `json:"name" form:"name"`
	Description string  `json:"description" form:"description"`
	Price       float64 `json:"price" form:"price"`
	Category    string  `json:"category" form:"category"`
	Image       *string `json:"image" form:"image"`
	IsAvailable *bool   `json:"isAvailable" form:"isAvailable"`
}

// CreateMenuItem -> admin menambahkan menu baru
func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	var form menuForm
	if err := c.ShouldBind(&form); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	form.Name = strings.TrimSpace(form.Name)
	form.Category = strings.TrimSpace(form.Category)
	if form.Name == "" || form.Category == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("name and category are required"))
		return
	}
	if form.Price < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("price must be a non-negative number"))
		return
	}

	item := models.MenuItem{
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
		Category:    form.Category,
		IsAvailable: true,
	}
	if form.IsAvailable != nil {
		item.IsAvailable = *form.IsAvailable
	}

	// Gambar: file upload atau URL string
	if file, err := c.FormFile("image"); err == nil {
		path, err := mc.saveImage(c, file)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		item.Image = path
	} else if form.Image != nil {
		item.Image = strings.TrimSpace(*form.Image)
	}

	if err := mc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Menu item created: %s (%s)", item.Name, item.Category)
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

// UpdateMenuItem -> admin mengubah menu; gambar lokal lama dihapus saat
// diganti. Perubahan harga tidak mempengaruhi order yang sudah dibuat
// karena line item menyimpan snapshot.
func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	idStr := c.Param("menu_id")
	id, _ := strconv.Atoi(idStr)

	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}

	var form menuForm
	if err := c.ShouldBind(&form); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if name := strings.TrimSpace(form.Name); name != "" {
		item.Name = name
	}
	if category := strings.TrimSpace(form.Category); category != "" {
		item.Category = category
	}
	if form.Description != "" {
		item.Description = form.Description
	}
	if form.Price < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("price must be a non-negative number"))
		return
	}
	if form.Price > 0 {
		item.Price = form.Price
	}
	if form.IsAvailable != nil {
		item.IsAvailable = *form.IsAvailable
	}

	if file, err := c.FormFile("image"); err == nil {
		mc.removeLocalImage(item.Image)
		path, err := mc.saveImage(c, file)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		item.Image = path
	} else if form.Image != nil {
		newImage := strings.TrimSpace(*form.Image)
		if newImage != item.Image {
			mc.removeLocalImage(item.Image)
			item.Image = newImage
		}
	}

	if err := mc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

// DeleteMenuItem
func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	idStr := c.Param("menu_id")
	id, _ := strconv.Atoi(idStr)

	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}

	if err := mc.DB.Delete(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	mc.removeLocalImage(item.Image)

	utils.InfoLogger.Printf("Menu item %d deleted", item.ID)
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", gin.H{"menu_id": item.ID})
}

// saveImage menyimpan file upload dengan nama unik dan mengembalikan path
// publiknya.
func (mc *MenuController) saveImage(c *gin.Context, file *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", errors.New("error creating upload directory")
	}

	filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(file.Filename))
	dst := filepath.Join(uploadDir, filename)

	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", errors.New("error saving image")
	}

	return "/uploads/" + filename, nil
}

// removeLocalImage menghapus file gambar lama. URL eksternal dibiarkan.
func (mc *MenuController) removeLocalImage(image string) {
	if image == "" || strings.HasPrefix(image, "http") {
		return
	}
	// "/uploads/<name>" disimpan di disk sebagai "public/uploads/<name>"
	localPath := filepath.Join("public", strings.TrimPrefix(image, "/"))
	if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
		utils.ErrorLogger.Printf("Error removing image %s: %v", localPath, err)
	}
}
