package language

import (
	"context"
	"time"
)

// Language is a locale enabled for a project.
type Language struct {
	ID        string
	ProjectID string
	Locale    string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository defines read access to a project's languages. Management of
// the language set itself is out of scope; upload clients only need to
// discover which locales a project accepts.
type Repository interface {
	ListByProject(ctx context.Context, projectID string) ([]Language, error)
}

// Service exposes the read-only language listing.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, projectID string) ([]Language, error) {
	return s.repo.ListByProject(ctx, projectID)
}
