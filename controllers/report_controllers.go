package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/handsome-restaurant/restaurant-app/models"
	"github.com/handsome-restaurant/restaurant-app/utils"
)

// ReportController menghitung laporan langsung dari order ledger; tidak ada
// agregat tersimpan. Scope "paid" (default) hanya menghitung order yang
// sudah dibayar; "all" menyertakan semuanya.
type ReportController struct {
	DB    *gorm.DB
	Scope string
}

func NewReportController(db *gorm.DB, scope string) *ReportController {
	if scope != "all" {
		scope = "paid"
	}
	return &ReportController{DB: db, Scope: scope}
}

func (rc *ReportController) scoped(query *gorm.DB) *gorm.DB {
	if rc.Scope == "paid" {
		return query.Where("payment_status = ?", models.PaymentPaid)
	}
	return query
}

// DailyReport -> omzet dan jumlah order dalam satu hari (waktu lokal server)
func (rc *ReportController) DailyReport(c *gin.Context) {
	target := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid date, expected YYYY-MM-DD"))
			return
		}
		target = parsed
	}

	startOfDay := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.Local)
	endOfDay := startOfDay.Add(24*time.Hour - time.Nanosecond)

	var orders []models.Order
	if err := rc.scoped(rc.DB.Preload("Items")).
		Where("created_at BETWEEN ? AND ?", startOfDay, endOfDay).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var totalRevenue float64
	for _, order := range orders {
		totalRevenue += order.TotalAmount
	}

	utils.RespondJSON(c, http.StatusOK, "Daily report", gin.H{
		"date":         startOfDay.Format("2006-01-02"),
		"totalRevenue": totalRevenue,
		"totalOrders":  len(orders),
		"orders":       orders,
	})
}

type dayBucket struct {
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// MonthlyReport -> omzet satu bulan kalender plus breakdown per hari
func (rc *ReportController) MonthlyReport(c *gin.Context) {
	now := time.Now()
	year := now.Year()
	month := int(now.Month())

	if yearStr := c.Query("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid year"))
			return
		}
		year = parsed
	}
	if monthStr := c.Query("month"); monthStr != "" {
		parsed, err := strconv.Atoi(monthStr)
		if err != nil || parsed < 1 || parsed > 12 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid month"))
			return
		}
		month = parsed
	}

	startOfMonth := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	endOfMonth := startOfMonth.AddDate(0, 1, 0).Add(-time.Nanosecond)

	var orders []models.Order
	if err := rc.scoped(rc.DB.Model(&models.Order{})).
		Where("created_at BETWEEN ? AND ?", startOfMonth, endOfMonth).
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var totalRevenue float64
	dailyBreakdown := make(map[string]*dayBucket)
	for _, order := range orders {
		totalRevenue += order.TotalAmount
		day := strconv.Itoa(order.CreatedAt.Day())
		if _, ok := dailyBreakdown[day]; !ok {
			dailyBreakdown[day] = &dayBucket{}
		}
		dailyBreakdown[day].Revenue += order.TotalAmount
		dailyBreakdown[day].Orders++
	}

	utils.RespondJSON(c, http.StatusOK, "Monthly report", gin.H{
		"year":           year,
		"month":          month,
		"totalRevenue":   totalRevenue,
		"totalOrders":    len(orders),
		"dailyBreakdown": dailyBreakdown,
	})
}

type topSellingItem struct {
	MenuItem uint    `json:"menuItem"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// TopSelling -> item terlaris berdasarkan quantity dari snapshot line item
func (rc *ReportController) TopSelling(c *gin.Context) {
	limit := 10
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid limit"))
			return
		}
		limit = parsed
	}

	query := rc.scoped(rc.DB.Preload("Items"))
	query, err := applyDateRange(query, c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	counts := make(map[uint]*topSellingItem)
	for _, order := range orders {
		for _, item := range order.Items {
			entry, ok := counts[item.MenuItemID]
			if !ok {
				entry = &topSellingItem{MenuItem: item.MenuItemID, Name: item.Name}
				counts[item.MenuItemID] = entry
			}
			entry.Quantity += item.Quantity
			entry.Revenue += item.Subtotal()
		}
	}

	topSelling := make([]*topSellingItem, 0, len(counts))
	for _, entry := range counts {
		topSelling = append(topSelling, entry)
	}
	sort.Slice(topSelling, func(i, j int) bool {
		return topSelling[i].Quantity > topSelling[j].Quantity
	})
	if len(topSelling) > limit {
		topSelling = topSelling[:limit]
	}

	utils.RespondJSON(c, http.StatusOK, "Top selling items", topSelling)
}

// OrderHistory -> riwayat order terbaru untuk admin, semua status kecuali
// difilter eksplisit. Scope pembayaran tidak berlaku di sini.
func (rc *ReportController) OrderHistory(c *gin.Context) {
	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid limit"))
			return
		}
		limit = parsed
	}

	query := rc.DB.Preload("Items").Preload("Waiter")
	query, err := applyDateRange(query, c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Order("created_at DESC").Limit(limit).Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order history", orders)
}

func applyDateRange(query *gorm.DB, startDate, endDate string) (*gorm.DB, error) {
	if startDate == "" || endDate == "" {
		return query, nil
	}

	start, err := time.ParseInLocation("2006-01-02", startDate, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid startDate, expected YYYY-MM-DD")
	}
	end, err := time.ParseInLocation("2006-01-02", endDate, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid endDate, expected YYYY-MM-DD")
	}
	end = end.Add(24*time.Hour - time.Nanosecond)

	return query.Where("created_at BETWEEN ? AND ?", start, end), nil
}
