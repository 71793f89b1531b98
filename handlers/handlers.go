package handlers

import (
	"gorm.io/gorm"

	"github.com/cardfolio/cardfolio-api/storage"
)

// DBHandler carries the gateways every handler needs: the database, the file
// store holding card images, and the registry of open study sessions.
type DBHandler struct {
	*gorm.DB
	Files    storage.FileStore
	Sessions *StudySessions
}
