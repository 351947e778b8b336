package entities

import "time"

// Language is a locale enabled for one project. The (project_id, locale)
// pair is the lookup key used when resolving submitted translations.
type Language struct {
	ID        string    `gorm:"type:varchar(40);primaryKey"`
	ProjectID string    `gorm:"type:varchar(40);not null;uniqueIndex:idx_project_locale"`
	Locale    string    `gorm:"type:varchar(16);not null;uniqueIndex:idx_project_locale"`
	Name      string    `gorm:"type:varchar(64);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Language) TableName() string {
	return "languages"
}
