package entities

import "time"

// File is the persisted metadata for one stored object. StorageKey and
// ThumbnailKey reference blobs in the configured storage backend; URLs are
// derived at read time so the backend can move without a data migration.
type File struct {
	ID           string            `gorm:"type:varchar(40);primaryKey"`
	ProjectID    string            `gorm:"type:varchar(40);not null;index"`
	Type         string            `gorm:"type:varchar(16);not null"`
	OriginalName string            `gorm:"type:varchar(255);not null"`
	StorageKey   string            `gorm:"type:varchar(255);not null"`
	ThumbnailKey *string           `gorm:"type:varchar(255)"`
	MimeType     string            `gorm:"type:varchar(64);not null"`
	Bytes        int64             `gorm:"not null"`
	Translations []FileTranslation `gorm:"foreignKey:FileID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time         `gorm:"autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"autoUpdateTime"`
}

func (File) TableName() string {
	return "files"
}

// FileTranslation holds the localized title block for a file. The composite
// unique index makes one-translation-per-language a database invariant, not
// just application logic.
type FileTranslation struct {
	ID          uint64   `gorm:"primaryKey;autoIncrement"`
	FileID      string   `gorm:"type:varchar(40);not null;uniqueIndex:idx_file_language"`
	LanguageID  string   `gorm:"type:varchar(40);not null;uniqueIndex:idx_file_language"`
	Language    Language `gorm:"foreignKey:LanguageID"`
	Title       string   `gorm:"type:varchar(255)"`
	Subtitle    string   `gorm:"type:varchar(255)"`
	Description string   `gorm:"type:text"`
}

func (FileTranslation) TableName() string {
	return "file_translations"
}
