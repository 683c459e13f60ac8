package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/handsome-restaurant/restaurant-app/models"
	"github.com/handsome-restaurant/restaurant-app/realtime"
	"github.com/handsome-restaurant/restaurant-app/utils"
)

type TableController struct {
	DB       *gorm.DB
	Notifier realtime.Notifier
}

func NewTableController(db *gorm.DB, notifier realtime.Notifier) *TableController {
	return &TableController{DB: db, Notifier: notifier}
}

// tableView is a Table with its occupancy derived live from the order
// ledger. The stored status column is only a fallback.
type tableView struct {
	models.Table
	EffectiveStatus string `json:"status"`
	ActiveOrderID   *uint  `json:"currentOrder,omitempty"`
}

// GetAllTables -> seluruh meja urut nomor. Meja dianggap occupied bila masih
// ada order unpaid untuknya, apa pun status masakannya.
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Order("number ASC").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Satu query untuk semua order aktif, bukan satu per meja
	var activeOrders []models.Order
	if err := tc.DB.
		Where("payment_status = ? AND status IN ?", models.PaymentUnpaid, models.ActiveOrderStatuses).
		Find(&activeOrders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	activeByTable := make(map[int]*models.Order, len(activeOrders))
	for i := range activeOrders {
		if _, ok := activeByTable[activeOrders[i].TableNumber]; !ok {
			activeByTable[activeOrders[i].TableNumber] = &activeOrders[i]
		}
	}

	views := make([]tableView, 0, len(tables))
	for _, table := range tables {
		view := tableView{
			Table:           table,
			EffectiveStatus: table.Status,
			ActiveOrderID:   table.CurrentOrderID,
		}
		if active, ok := activeByTable[table.Number]; ok {
			view.EffectiveStatus = models.TableOccupied
			view.ActiveOrderID = &active.ID
		}
		views = append(views, view)
	}

	utils.RespondJSON(c, http.StatusOK, "List of tables", views)
}

// GetTableByID -> detail satu meja
func (tc *TableController) GetTableByID(c *gin.Context) {
	idStr := c.Param("table_id")
	id, _ := strconv.Atoi(idStr)

	var table models.Table
	if err := tc.DB.First(&table, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// CreateTable -> admin menambahkan meja baru
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		Number   int `json:"number" binding:"required,min=1"`
		Capacity int `json:"capacity" binding:"required,min=1"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var existing models.Table
	if err := tc.DB.Where("number = ?", req.Number).First(&existing).Error; err == nil {
		utils.RespondError(c, http.StatusConflict, errors.New("table number already exists"))
		return
	}

	table := models.Table{
		Number:   req.Number,
		Capacity: req.Capacity,
		Status:   models.TableFree,
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New table created: %d (capacity=%d)", table.Number, table.Capacity)
	utils.RespondJSON(c, http.StatusCreated, "Table created", table)
}

// UpdateTable -> admin mengubah kapasitas/status meja
func (tc *TableController) UpdateTable(c *gin.Context) {
	idStr := c.Param("table_id")
	id, _ := strconv.Atoi(idStr)

	var table models.Table
	if err := tc.DB.First(&table, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
		return
	}

	var body struct {
		Capacity *int    `json:"capacity"`
		Status   *string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Capacity != nil {
		if *body.Capacity < 1 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("capacity must be at least 1"))
			return
		}
		table.Capacity = *body.Capacity
	}

	statusChanged := false
	if body.Status != nil {
		if !models.ValidTableStatus(*body.Status) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid table status"))
			return
		}
		statusChanged = table.Status != *body.Status
		table.Status = *body.Status
	}

	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if statusChanged {
		tc.Notifier.TableUpdated(table.Number, table.Status)
	}

	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

// DeleteTable -> menghapus meja
func (tc *TableController) DeleteTable(c *gin.Context) {
	idStr := c.Param("table_id")
	id, _ := strconv.Atoi(idStr)

	var table models.Table
	if err := tc.DB.First(&table, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
		return
	}

	if err := tc.DB.Delete(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Table %d deleted", table.Number)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"id": table.ID})
}
