package models

import "gorm.io/gorm"

// User is the local row for an identity-provider account. Rows are created
// lazily by the sync middleware the first time a token is seen.
type User struct {
	gorm.Model
	Auth0ID  string `gorm:"unique;not null;size:200" json:"-"`
	Nickname string `gorm:"size:100" json:"nickname"`

	Sets    []Set    `gorm:"foreignKey:UserID" json:"-"`
	Folders []Folder `gorm:"foreignKey:UserID" json:"-"`
}
