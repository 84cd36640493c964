package services

import (
	"context"

	"asset-brain/models"
	"asset-brain/storage"
	"asset-brain/utils"
)

// PropertyService reads and writes properties and their issues.
type PropertyService struct {
	properties storage.PropertyRepository
	issues     storage.IssueRepository
	cleaner    *Cleaner
	logger     *utils.Logger
}

func NewPropertyService(properties storage.PropertyRepository, issues storage.IssueRepository, logger *utils.Logger) *PropertyService {
	return &PropertyService{
		properties: properties,
		issues:     issues,
		cleaner:    NewCleaner(logger),
		logger:     logger,
	}
}

func (s *PropertyService) List(ctx context.Context) ([]models.Property, error) {
	return s.properties.ListProperties(ctx)
}

// Detail returns a property with its maintenance history, most recent first.
func (s *PropertyService) Detail(ctx context.Context, id string) (*models.PropertyDetail, error) {
	p, err := s.properties.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}
	history, err := s.issues.IssuesForProperty(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.PropertyDetail{Property: *p, MaintenanceHistory: history}, nil
}

// Create validates p and stores it. When p.ID is empty it is derived from the
// address.
func (s *PropertyService) Create(ctx context.Context, p *models.Property) error {
	if err := s.cleaner.CleanProperty(p); err != nil {
		return err
	}
	if err := s.properties.CreateProperty(ctx, p); err != nil {
		return err
	}
	s.logger.Info("[properties] Created %s (%s)", p.ID, p.Address)
	return nil
}

// Update replaces the mutable fields of property id. The ID in the body is
// ignored.
func (s *PropertyService) Update(ctx context.Context, id string, p *models.Property) error {
	p.ID = id
	if err := s.cleaner.CleanProperty(p); err != nil {
		return err
	}
	if err := s.properties.UpdateProperty(ctx, p); err != nil {
		return err
	}
	s.logger.Info("[properties] Updated %s", p.ID)
	return nil
}
