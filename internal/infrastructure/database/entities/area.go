package entities

import "time"

// Area is a point of interest in a project's tree. ParentID is nil for
// roots; Weight orders siblings.
type Area struct {
	ID           string            `gorm:"type:varchar(40);primaryKey"`
	ProjectID    string            `gorm:"type:varchar(40);not null;index"`
	ParentID     *string           `gorm:"type:varchar(40);index"`
	Weight       int               `gorm:"not null;default:0"`
	Translations []AreaTranslation `gorm:"foreignKey:AreaID;constraint:OnDelete:CASCADE"`
	Files        []AreaFile        `gorm:"foreignKey:AreaID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time         `gorm:"autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"autoUpdateTime"`
}

func (Area) TableName() string {
	return "areas"
}

type AreaTranslation struct {
	ID          uint64   `gorm:"primaryKey;autoIncrement"`
	AreaID      string   `gorm:"type:varchar(40);not null;uniqueIndex:idx_area_language"`
	LanguageID  string   `gorm:"type:varchar(40);not null;uniqueIndex:idx_area_language"`
	Language    Language `gorm:"foreignKey:LanguageID"`
	Title       string   `gorm:"type:varchar(255)"`
	Subtitle    string   `gorm:"type:varchar(255)"`
	Description string   `gorm:"type:text"`
}

func (AreaTranslation) TableName() string {
	return "area_translations"
}

// AreaFile attaches a stored file to an area.
type AreaFile struct {
	AreaID string `gorm:"type:varchar(40);primaryKey"`
	FileID string `gorm:"type:varchar(40);primaryKey"`
	File   File   `gorm:"foreignKey:FileID"`
}

func (AreaFile) TableName() string {
	return "area_files"
}
