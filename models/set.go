package models

import "time"

// Set is a named, owned collection of study cards. The ID is a nanoid
// generated when the set is created. A set is never persisted without at
// least one card.
type Set struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"-"`
	User        User      `gorm:"foreignKey:UserID" json:"-"`
	FolderID    *string   `gorm:"index" json:"folderId,omitempty"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`

	Cards []Card `gorm:"foreignKey:SetID;constraint:OnDelete:CASCADE" json:"cards"`
}

// FileKeys returns the storage keys of every image attached to any card in
// the set, in card order.
func (s Set) FileKeys() []string {
	var keys []string
	for _, card := range s.Cards {
		keys = append(keys, card.FileKeys()...)
	}
	return keys
}
