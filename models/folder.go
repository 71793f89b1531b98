package models

// Folder groups sets in the sidebar. Deleting a folder is not an operation
// this API exposes; sets only reference folders.
type Folder struct {
	ID     string `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;index" json:"-"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`
	Name   string `gorm:"not null" json:"name"`
	Color  Color  `gorm:"type:varchar(16);not null;default:blue" json:"color"`

	Sets []Set `gorm:"foreignKey:FolderID" json:"sets"`
}
