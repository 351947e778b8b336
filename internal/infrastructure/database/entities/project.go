package entities

import "time"

// Project is a tenant. Every file, area and language row is scoped to one.
type Project struct {
	ID        string    `gorm:"type:varchar(40);primaryKey"`
	Name      string    `gorm:"type:varchar(128);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Project) TableName() string {
	return "projects"
}
