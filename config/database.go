package config

import (
	"log"
	"os"

	"github.com/cardfolio/cardfolio-api/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var Database *gorm.DB

// Connect opens the database and runs migrations. Postgres is used when
// DB_URL is set; otherwise a local sqlite file keeps development setup-free.
func Connect() error {
	var err error
	if dbURL := os.Getenv("DB_URL"); dbURL != "" {
		Database, err = gorm.Open(postgres.Open(dbURL), &gorm.Config{})
	} else {
		dbPath := os.Getenv("SQLITE_PATH")
		if dbPath == "" {
			dbPath = "cardfolio.db"
		}
		log.Printf("Connect: DB_URL not set, using sqlite file %s", dbPath)
		Database, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	}
	if err != nil {
		panic("failed to connect database")
	}

	err = Database.AutoMigrate(&models.User{}, &models.Folder{}, &models.Set{}, &models.Card{})
	if err != nil {
		panic("failed to auto migrate database")
	}

	return nil
}
