package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cardfolio/cardfolio-api/middleware"
	"github.com/cardfolio/cardfolio-api/models"
	"github.com/cardfolio/cardfolio-api/reconcile"
)

func orderedCards(tx *gorm.DB) *gorm.DB {
	return tx.Order("cards.id")
}

// GET /api/sets/{setID}
//
// Owner-scoped: a set belonging to someone else answers 404, same as a set
// that does not exist.
func (h *DBHandler) GetSetByID(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	setID := r.PathValue("setID")
	var set models.Set
	if err := h.Preload("Cards", orderedCards).
		Where("id = ? AND user_id = ?", setID, user.ID).
		First(&set).Error; err != nil {
		log.Printf("GetSetByID: set not found for id=%s: %v", setID, err)
		http.Error(w, fmt.Sprintf("Set with ID %s not found", setID), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(set)
}

// POST /api/sets
func (h *DBHandler) CreateSet(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Name        string             `json:"name"`
		Description string             `json:"description"`
		FolderID    string             `json:"folderId"`
		Cards       []models.CardInput `json:"cards"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("CreateSet: invalid request body: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	req.Cards = models.NormalizeCardInputs(req.Cards)
	errs := models.ValidateSetInput(req.Name, req.Cards)
	if req.FolderID != "" {
		var folder models.Folder
		if err := h.Where("id = ? AND user_id = ?", req.FolderID, user.ID).First(&folder).Error; err != nil {
			errs = append(errs, models.FieldError{Field: "folderId", Message: "Folder not found"})
		}
	}
	if len(errs) > 0 {
		log.Printf("CreateSet: validation failed for userID=%d: %v", user.ID, errs)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "errors": errs})
		return
	}

	setID, err := gonanoid.New()
	if err != nil {
		log.Printf("CreateSet: failed to generate set id: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	set := models.Set{
		ID:          setID,
		UserID:      user.ID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	}
	if req.FolderID != "" {
		folderID := req.FolderID
		set.FolderID = &folderID
	}

	// The set row and its cards land as one unit
	tx := h.Begin()
	if tx.Error != nil {
		http.Error(w, "Could not begin transaction", http.StatusInternalServerError)
		return
	}

	if err := tx.Create(&set).Error; err != nil {
		tx.Rollback()
		log.Printf("CreateSet: failed to create set: %v", err)
		http.Error(w, "Failed to create set", http.StatusInternalServerError)
		return
	}

	cards := make([]models.Card, 0, len(req.Cards))
	for _, in := range req.Cards {
		cards = append(cards, in.Card(setID))
	}
	if err := tx.Create(&cards).Error; err != nil {
		tx.Rollback()
		log.Printf("CreateSet: failed to create cards for setID=%s: %v", setID, err)
		http.Error(w, "Failed to create set", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("CreateSet: failed to commit setID=%s: %v", setID, err)
		http.Error(w, "Could not commit transaction", http.StatusInternalServerError)
		return
	}

	if err := h.Preload("Cards", orderedCards).First(&set, "id = ?", setID).Error; err != nil {
		http.Error(w, "Error retrieving created set", http.StatusInternalServerError)
		return
	}

	log.Printf("CreateSet: created setID=%s with %d cards for userID=%d", setID, len(cards), user.ID)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(set)
}

// PUT /api/sets/{setID}
//
// The submitted card list is reconciled against the persisted rows: sentinel
// ids insert, real ids overwrite, everything else is deleted and its files
// purged. Set fields and all card changes apply in one transaction; the
// ownership check rides on the conditional update, so a foreign set rolls
// back as a 404 with nothing written.
func (h *DBHandler) UpdateSetByID(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	setID := r.PathValue("setID")

	var req struct {
		Name        string             `json:"name"`
		Description string             `json:"description"`
		Cards       []models.CardInput `json:"cards"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("UpdateSetByID: invalid request body: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	req.Cards = models.NormalizeCardInputs(req.Cards)
	if errs := models.ValidateSetInput(req.Name, req.Cards); len(errs) > 0 {
		log.Printf("UpdateSetByID: validation failed for setID=%s: %v", setID, errs)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "errors": errs})
		return
	}

	var existing models.Set
	if err := h.Preload("Cards", orderedCards).
		Where("id = ? AND user_id = ?", setID, user.ID).
		First(&existing).Error; err != nil {
		log.Printf("UpdateSetByID: set not found for id=%s: %v", setID, err)
		http.Error(w, fmt.Sprintf("Set with ID %s not found", setID), http.StatusNotFound)
		return
	}

	plan := reconcile.Plan(setID, existing.Cards, req.Cards)

	// Orphaned uploads go first: once a card row is gone its storage keys are
	// gone with it, so the files must already be deleted by then.
	if len(plan.OrphanedFileKeys) > 0 {
		if err := h.Files.DeleteFiles(r.Context(), plan.OrphanedFileKeys); err != nil {
			log.Printf("UpdateSetByID: failed to delete files for setID=%s: %v", setID, err)
			http.Error(w, "Failed to delete files", http.StatusBadGateway)
			return
		}
	}

	tx := h.Begin()
	if tx.Error != nil {
		http.Error(w, "Could not begin transaction", http.StatusInternalServerError)
		return
	}

	result := tx.Model(&models.Set{}).
		Where("id = ? AND user_id = ?", setID, user.ID).
		Updates(map[string]any{
			"name":        strings.TrimSpace(req.Name),
			"description": req.Description,
		})
	if result.Error != nil {
		tx.Rollback()
		log.Printf("UpdateSetByID: failed to update setID=%s: %v", setID, result.Error)
		http.Error(w, fmt.Sprintf("Failed to update set with ID %s", setID), http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		http.Error(w, fmt.Sprintf("Set with ID %s not found", setID), http.StatusNotFound)
		return
	}

	if len(plan.DeleteIDs) > 0 {
		if err := tx.Where("set_id = ? AND id IN ?", setID, plan.DeleteIDs).
			Delete(&models.Card{}).Error; err != nil {
			tx.Rollback()
			log.Printf("UpdateSetByID: failed to delete cards for setID=%s: %v", setID, err)
			http.Error(w, fmt.Sprintf("Failed to update set with ID %s", setID), http.StatusInternalServerError)
			return
		}
	}

	if len(plan.ToUpsert) > 0 {
		// Last write wins: every field of a resubmitted card is overwritten
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&plan.ToUpsert).Error; err != nil {
			tx.Rollback()
			log.Printf("UpdateSetByID: failed to upsert cards for setID=%s: %v", setID, err)
			http.Error(w, fmt.Sprintf("Failed to update set with ID %s", setID), http.StatusInternalServerError)
			return
		}
	}

	if len(plan.ToInsert) > 0 {
		if err := tx.Create(&plan.ToInsert).Error; err != nil {
			tx.Rollback()
			log.Printf("UpdateSetByID: failed to insert cards for setID=%s: %v", setID, err)
			http.Error(w, fmt.Sprintf("Failed to update set with ID %s", setID), http.StatusInternalServerError)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("UpdateSetByID: failed to commit setID=%s: %v", setID, err)
		http.Error(w, "Could not commit transaction", http.StatusInternalServerError)
		return
	}

	var updated models.Set
	if err := h.Preload("Cards", orderedCards).First(&updated, "id = ?", setID).Error; err != nil {
		http.Error(w, "Error retrieving updated set", http.StatusInternalServerError)
		return
	}

	log.Printf("UpdateSetByID: updated setID=%s (%d inserts, %d upserts, %d deletes)",
		setID, len(plan.ToInsert), len(plan.ToUpsert), len(plan.DeleteIDs))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// DELETE /api/sets/{setID}
//
// File purge happens before the row goes away; a failed purge leaves the set
// untouched rather than stranding files nothing references anymore.
func (h *DBHandler) DeleteSetByID(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	setID := r.PathValue("setID")

	var set models.Set
	if err := h.Preload("Cards", orderedCards).
		Where("id = ? AND user_id = ?", setID, user.ID).
		First(&set).Error; err != nil {
		log.Printf("DeleteSetByID: set not found for id=%s: %v", setID, err)
		http.Error(w, fmt.Sprintf("Set with ID %s not found", setID), http.StatusNotFound)
		return
	}

	if keys := set.FileKeys(); len(keys) > 0 {
		if err := h.Files.DeleteFiles(r.Context(), keys); err != nil {
			log.Printf("DeleteSetByID: failed to delete files for setID=%s: %v", setID, err)
			http.Error(w, "Failed to delete files", http.StatusBadGateway)
			return
		}
	}

	if err := h.Select(clause.Associations).Delete(&set).Error; err != nil {
		log.Printf("DeleteSetByID: failed to delete setID=%s: %v", setID, err)
		http.Error(w, fmt.Sprintf("Failed to delete set with ID %s", setID), http.StatusInternalServerError)
		return
	}

	log.Printf("DeleteSetByID: deleted setID=%s", setID)
	w.WriteHeader(http.StatusNoContent)
}
