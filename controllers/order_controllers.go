package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/handsome-restaurant/restaurant-app/models"
	"github.com/handsome-restaurant/restaurant-app/realtime"
	"github.com/handsome-restaurant/restaurant-app/utils"
)

type OrderController struct {
	DB       *gorm.DB
	Notifier realtime.Notifier
}

func NewOrderController(db *gorm.DB, notifier realtime.Notifier) *OrderController {
	return &OrderController{DB: db, Notifier: notifier}
}

// GetAllOrders -> list orders beserta items, terbaru dulu.
// ?status=a,b membatasi ke salah satu status (match-any),
// ?tableNumber=n membatasi ke satu meja.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	query := oc.DB.Preload("Items").Preload("Waiter")

	if status := c.Query("status"); status != "" {
		statuses := strings.Split(status, ",")
		for i := range statuses {
			statuses[i] = strings.TrimSpace(statuses[i])
		}
		if len(statuses) > 1 {
			query = query.Where("status IN ?", statuses)
		} else {
			query = query.Where("status = ?", statuses[0])
		}
	}

	if tableNumber := c.Query("tableNumber"); tableNumber != "" {
		n, err := strconv.Atoi(tableNumber)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid table number"))
			return
		}
		query = query.Where("table_number = ?", n)
	}

	var orders []models.Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> detail 1 order dengan snapshot items-nya
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var order models.Order
	if err := oc.DB.Preload("Items").Preload("Waiter").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

type orderItemReq struct {
	MenuItem            uint   `json:"menuItem" binding:"required"`
	Quantity            int    `json:"quantity" binding:"required,min=1"`
	SpecialInstructions string `json:"specialInstructions"`
}

// CreateOrder -> customer membuat order baru (status=pending, unpaid).
// Semua menu item divalidasi sebelum ada tulisan apa pun: order yang ditolak
// tidak meninggalkan order ataupun mutasi meja.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var body struct {
		TableNumber int            `json:"tableNumber" binding:"required,min=1"`
		Items       []orderItemReq `json:"items" binding:"required,min=1"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	// Resolve seluruh menu item dulu; snapshot name/price/image agar edit
	// menu di kemudian hari tidak mengubah riwayat order.
	var total float64
	orderItems := make([]models.OrderItem, 0, len(body.Items))
	for _, item := range body.Items {
		var menuItem models.MenuItem
		if err := oc.DB.First(&menuItem, item.MenuItem).Error; err != nil {
			utils.RespondError(c, http.StatusBadRequest,
				fmt.Errorf("menu item %d not found", item.MenuItem))
			return
		}
		if !menuItem.IsAvailable {
			utils.RespondError(c, http.StatusBadRequest,
				fmt.Errorf("menu item %s is unavailable", menuItem.Name))
			return
		}

		total += menuItem.Price * float64(item.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			MenuItemID:          menuItem.ID,
			Name:                menuItem.Name,
			Price:               menuItem.Price,
			Image:               menuItem.Image,
			Quantity:            item.Quantity,
			SpecialInstructions: item.SpecialInstructions,
		})
	}

	order := models.Order{
		TableNumber:   body.TableNumber,
		Items:         orderItems,
		Status:        models.OrderPending,
		TotalAmount:   total,
		PaymentStatus: models.PaymentUnpaid,
		WaiterID:      oc.waiterFromRequest(c),
	}

	if err := oc.DB.Create(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Tandai meja occupied. Langkah terpisah tanpa transaksi lintas entitas;
	// GetAllTables menurunkan status dari ledger sehingga kegagalan di sini
	// tidak membuat tampilan meja salah.
	var table models.Table
	if err := oc.DB.Where("number = ?", body.TableNumber).First(&table).Error; err == nil {
		table.Status = models.TableOccupied
		table.CurrentOrderID = &order.ID
		if err := oc.DB.Save(&table).Error; err != nil {
			utils.ErrorLogger.Printf("Error updating table %d after order %d: %v", table.Number, order.ID, err)
		} else {
			oc.Notifier.TableUpdated(table.Number, models.TableOccupied)
		}
	}

	utils.InfoLogger.Printf("Order %d created for table %d (total=%.2f)", order.ID, order.TableNumber, order.TotalAmount)

	oc.Notifier.OrderUpdated(realtime.KindNew, order)

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// UpdateOrderStatus -> kitchen/waiter memajukan status order. Keanggotaan
// enum divalidasi; transisi bebas (API tidak memaksa forward-only).
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.ValidOrderStatus(body.Status) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid status: %s", body.Status))
		return
	}

	var order models.Order
	if err := oc.DB.Preload("Items").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	order.Status = body.Status
	if body.Status == models.OrderServed {
		now := time.Now()
		order.CompletedAt = &now
	}

	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order %d status changed to %s", order.ID, order.Status)
	oc.Notifier.OrderUpdated(realtime.KindStatusChange, order)

	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// UpdatePaymentStatus -> waiter/cashier menandai pembayaran. Sumbu
// independen dari status masakan; transisi ke paid membebaskan meja.
func (oc *OrderController) UpdatePaymentStatus(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var body struct {
		PaymentStatus string `json:"paymentStatus" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.ValidPaymentStatus(body.PaymentStatus) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid payment status: %s", body.PaymentStatus))
		return
	}

	var order models.Order
	if err := oc.DB.Preload("Items").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	order.PaymentStatus = body.PaymentStatus
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if body.PaymentStatus == models.PaymentPaid {
		var table models.Table
		if err := oc.DB.Where("number = ?", order.TableNumber).First(&table).Error; err == nil {
			table.Status = models.TableFree
			table.CurrentOrderID = nil
			if err := oc.DB.Save(&table).Error; err != nil {
				utils.ErrorLogger.Printf("Error freeing table %d after payment: %v", table.Number, err)
			} else {
				oc.Notifier.TableUpdated(order.TableNumber, models.TableFree)
			}
		}
		utils.InfoLogger.Printf("Order %d paid, table %d freed", order.ID, order.TableNumber)
	}

	oc.Notifier.OrderUpdated(realtime.KindPayment, order)

	utils.RespondJSON(c, http.StatusOK, "Payment status updated", order)
}

// AddOrderItems -> waiter menambahkan item ke order yang sudah berjalan.
// Item yang tidak ditemukan atau tidak tersedia dilewati.
func (oc *OrderController) AddOrderItems(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var order models.Order
	if err := oc.DB.Preload("Items").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	var body struct {
		Items []orderItemReq `json:"items"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	tx := oc.DB.Begin()
	for _, item := range body.Items {
		var menuItem models.MenuItem
		if err := tx.First(&menuItem, item.MenuItem).Error; err != nil || !menuItem.IsAvailable {
			continue
		}

		orderItem := models.OrderItem{
			OrderID:             order.ID,
			MenuItemID:          menuItem.ID,
			Name:                menuItem.Name,
			Price:               menuItem.Price,
			Image:               menuItem.Image,
			Quantity:            item.Quantity,
			SpecialInstructions: item.SpecialInstructions,
		}
		if err := tx.Create(&orderItem).Error; err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		order.TotalAmount += menuItem.Price * float64(item.Quantity)
	}

	if err := tx.Save(&order).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	tx.Commit()

	// Muat ulang agar respons memuat item yang baru ditambahkan
	if err := oc.DB.Preload("Items").First(&order, order.ID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	oc.Notifier.OrderUpdated(realtime.KindUpdated, order)

	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}

// waiterFromRequest mengembalikan user id jika request membawa token waiter
// yang valid. Order customer tanpa token tetap sah.
func (oc *OrderController) waiterFromRequest(c *gin.Context) *uint {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil
	}

	claims, err := utils.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil || claims == nil {
		return nil
	}

	var user models.User
	if err := oc.DB.First(&user, claims.UserID).Error; err != nil {
		return nil
	}
	if user.Role != models.RoleWaiter {
		return nil
	}

	return &user.ID
}
