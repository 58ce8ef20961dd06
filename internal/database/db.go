package database

import (
	"log"
	"time"

	"github.com/HavishJadav/mkonnekt-assignment/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect opens the MySQL order store and syncs the schema. The DSN comes
// from config; a hosted database can take a moment to come up, so we retry.
func Connect(dsn string) {
	if dsn == "" {
		log.Fatal("❌ Error: DB_DSN not configured. Please set it in .env to use the order store.")
	}

	var err error
	for i := 0; i < 5; i++ {
		DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err == nil {
			break
		}
		log.Printf("Failed to connect to database. Retrying in 2 seconds... (%d/5)", i+1)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Fatal("Failed to connect to database after 5 attempts:", err)
	}

	log.Println("✅ Successfully connected to MySQL!")

	if err := migrate(DB); err != nil {
		log.Fatal("Failed to sync database schema:", err)
	}
	log.Println("✅ Database Schema Synced!")
}

// Open is the test seam: the store tests run against in-memory SQLite
// through the same migration path.
func Open(dialector gorm.Dialector) error {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return err
	}
	if err := migrate(db); err != nil {
		return err
	}
	DB = db
	return nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Order{},
		&models.LineItem{},
		&models.Discount{},
	)
}
