package area

import (
	"context"

	"github.com/rs/zerolog"

	"atlas-cms/internal/utils/platformerrors"
)

// Repository defines persistence operations needed by the service. Insert
// and Update run locale resolution, translation writes and file links in
// one transaction, mirroring the file repository.
type Repository interface {
	Insert(ctx context.Context, req CreateRequest) (*Area, error)
	Update(ctx context.Context, req UpdateRequest) (*Area, error)
	GetByID(ctx context.Context, projectID, id string) (*Area, error)
	List(ctx context.Context, q ListQuery) ([]*Area, int64, error)
	Dropdown(ctx context.Context, projectID string) ([]DropdownItem, error)
	CountChildren(ctx context.Context, projectID, id string) (int64, error)
	Delete(ctx context.Context, projectID, id string) error
}

// Service manages the area tree.
type Service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("component", "area-service").Logger(),
	}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Area, error) {
	if req.ParentID != nil {
		// The parent must exist and belong to the same project.
		if _, err := s.repo.GetByID(ctx, req.ProjectID, *req.ParentID); err != nil {
			return nil, err
		}
	}
	return s.repo.Insert(ctx, req)
}

func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Area, error) {
	if req.ParentID != nil {
		if *req.ParentID == req.AreaID {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
				platformerrors.ErrorTypeValidation, "an area cannot be its own parent", nil,
				"d16f42c8-0a97-4be5-93d2-78c05e3a1f69")
		}
		if _, err := s.repo.GetByID(ctx, req.ProjectID, *req.ParentID); err != nil {
			return nil, err
		}
	}
	return s.repo.Update(ctx, req)
}

func (s *Service) Get(ctx context.Context, projectID, id string) (*Area, error) {
	return s.repo.GetByID(ctx, projectID, id)
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]*Area, int64, error) {
	return s.repo.List(ctx, q)
}

func (s *Service) Dropdown(ctx context.Context, projectID string) ([]DropdownItem, error) {
	return s.repo.Dropdown(ctx, projectID)
}

// Delete removes a leaf area. Areas with children must have the children
// deleted first.
func (s *Service) Delete(ctx context.Context, projectID, id string) error {
	children, err := s.repo.CountChildren(ctx, projectID, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "area still has child areas", nil,
			"9ae14d70-5c82-4f36-b09e-d63a28c17f05",
			map[string]any{"children": children})
	}
	return s.repo.Delete(ctx, projectID, id)
}
