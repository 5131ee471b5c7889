package database

import (
	"fmt"
	"log"

	config "github.com/manelteacher/spanish_classes/configs"
	"github.com/manelteacher/spanish_classes/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:            false,
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Class{},
		&models.RecurringSchedule{},
		&models.Booking{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.ChatRoom{},
		&models.Message{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}

	// Released bookings stay in the table for history, so slot uniqueness
	// must only cover live rows. Predicate matches models.LiveStatuses.
	err = DB.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_live_slot
		ON bookings (class_id, start_time)
		WHERE status IN ('pending', 'accepted')`).Error
	if err != nil {
		log.Fatalf("🔥 Failed to create booking slot index: %v", err)
	}

	fmt.Println("✅ Database migration successful")
}
