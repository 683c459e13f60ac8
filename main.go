package main

import (
	"flag"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/handsome-restaurant/restaurant-app/config"
	"github.com/handsome-restaurant/restaurant-app/models"
	"github.com/handsome-restaurant/restaurant-app/realtime"
	"github.com/handsome-restaurant/restaurant-app/router"
	"github.com/handsome-restaurant/restaurant-app/utils"
)

// -createadmin membuat akun admin pertama lalu keluar; tanpa akun ini
// instalasi baru tidak pernah bisa login (pembuatan user di-gate admin).
// Argumen posisi opsional: email password nama.
var createAdmin = flag.Bool("createadmin", false, "create the initial admin account and exit")

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	flag.Parse()

	// Koneksi DB dibuat sekali dan di-inject ke semua controller
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	if *createAdmin {
		admin, err := config.SeedAdmin(db, flag.Arg(0), flag.Arg(1), flag.Arg(2))
		if err != nil {
			utils.ErrorLogger.Fatalf("Failed to create admin: %v", err)
		}
		utils.InfoLogger.Printf("Admin account created: %s", admin.Email)
		return
	}

	// Pilih notifier sesuai topologi deployment: websocket hub untuk server
	// always-on, no-op untuk deployment poll-only.
	var r *gin.Engine
	if config.RealtimeEnabled() {
		hub := realtime.NewHub()
		r = router.SetupRouterWithHub(db, hub)
	} else {
		utils.InfoLogger.Println("Realtime disabled, clients must poll")
		r = router.SetupRouter(db, realtime.Noop{})
	}

	port := config.Port()
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Table{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
