package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/cardfolio/cardfolio-api/middleware"
	"github.com/cardfolio/cardfolio-api/models"
)

// GET /api/library
//
// The sidebar view: sets that live in no folder, plus every folder with the
// sets it holds. Both lists come out of one transaction so the snapshot is
// consistent.
func (h *DBHandler) GetLibrary(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var sets []models.Set
	var folders []models.Folder

	err := h.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND folder_id IS NULL", user.ID).
			Order("created_at DESC").
			Find(&sets).Error; err != nil {
			return err
		}
		return tx.Preload("Sets").
			Where("user_id = ?", user.ID).
			Find(&folders).Error
	})
	if err != nil {
		log.Printf("GetLibrary: failed to fetch library for userID=%d: %v", user.ID, err)
		http.Error(w, "Failed to fetch library", http.StatusInternalServerError)
		return
	}

	if sets == nil {
		sets = []models.Set{}
	}
	if folders == nil {
		folders = []models.Folder{}
	}
	for i := range folders {
		if folders[i].Sets == nil {
			folders[i].Sets = []models.Set{}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"sets":    sets,
		"folders": folders,
	})
}
