package database

import (
	"log"
	"os"
	"time"

	"mingle/backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect initializes the database connection and runs migrations.
func Connect(dsn string) {
	var err error

	customLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         customLogger,
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established.")

	err = DB.AutoMigrate(&models.User{}, &models.UserRelation{}, &models.Post{}, &models.Like{}, &models.Comment{})
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// AutoMigrate cannot express an expression index, and the composite
	// primary key alone would still allow crossed pending rows (1->2 and
	// 2->1). This index makes the unordered pair unique.
	err = DB.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_user_relations_pair
		ON user_relations (LEAST(from_user_id, to_user_id), GREATEST(from_user_id, to_user_id))`).Error
	if err != nil {
		log.Fatalf("Failed to create user_relations pair index: %v", err)
	}

	log.Println("Database migrated successfully.")
}
