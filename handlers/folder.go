package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/cardfolio/cardfolio-api/middleware"
	"github.com/cardfolio/cardfolio-api/models"
)

// POST /api/folders
func (h *DBHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("CreateFolder: invalid request body: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if errs := models.ValidateFolderInput(req.Name, req.Color); len(errs) > 0 {
		log.Printf("CreateFolder: validation failed for userID=%d: %v", user.ID, errs)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "errors": errs})
		return
	}
	color, _ := models.ParseColor(req.Color)

	folderID, err := gonanoid.New()
	if err != nil {
		log.Printf("CreateFolder: failed to generate folder id: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	folder := models.Folder{
		ID:     folderID,
		UserID: user.ID,
		Name:   strings.TrimSpace(req.Name),
		Color:  color,
	}
	if err := h.Create(&folder).Error; err != nil {
		log.Printf("CreateFolder: failed to create folder: %v", err)
		http.Error(w, "Failed to create folder", http.StatusInternalServerError)
		return
	}
	folder.Sets = []models.Set{}

	log.Printf("CreateFolder: created folderID=%s for userID=%d", folderID, user.ID)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(folder)
}

// PUT /api/folders/{folderID}/color
//
// The color is checked against the palette before anything touches the row;
// the owner scope rides on the conditional update.
func (h *DBHandler) ChangeFolderColor(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	folderID := r.PathValue("folderID")

	var req struct {
		Color string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("ChangeFolderColor: invalid request body: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	color := models.Color(req.Color)
	if !color.Valid() {
		log.Printf("ChangeFolderColor: rejected color %q for folderID=%s", req.Color, folderID)
		http.Error(w, "Invalid folder color", http.StatusBadRequest)
		return
	}

	result := h.Model(&models.Folder{}).
		Where("id = ? AND user_id = ?", folderID, user.ID).
		Update("color", color)
	if result.Error != nil {
		log.Printf("ChangeFolderColor: failed to update folderID=%s: %v", folderID, result.Error)
		http.Error(w, "Failed to update folder", http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, fmt.Sprintf("Folder with ID %s not found", folderID), http.StatusNotFound)
		return
	}

	var folder models.Folder
	if err := h.First(&folder, "id = ?", folderID).Error; err != nil {
		http.Error(w, "Error retrieving updated folder", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(folder)
}
