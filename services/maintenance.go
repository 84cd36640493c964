package services

import (
	"context"

	"asset-brain/models"
	"asset-brain/storage"
	"asset-brain/utils"
)

// MaintenanceService records and lists maintenance issues.
type MaintenanceService struct {
	issues  storage.IssueRepository
	cleaner *Cleaner
	logger  *utils.Logger
}

func NewMaintenanceService(issues storage.IssueRepository, logger *utils.Logger) *MaintenanceService {
	return &MaintenanceService{issues: issues, cleaner: NewCleaner(logger), logger: logger}
}

func (s *MaintenanceService) List(ctx context.Context) ([]models.IssueWithAddress, error) {
	return s.issues.ListIssues(ctx)
}

// Create validates and stores issue. The referenced property must exist.
func (s *MaintenanceService) Create(ctx context.Context, issue *models.MaintenanceIssue) error {
	if err := s.cleaner.CleanIssue(issue); err != nil {
		return err
	}
	if err := s.issues.CreateIssue(ctx, issue); err != nil {
		return err
	}
	s.logger.Info("[maintenance] Recorded %s issue #%d for %s", issue.Category, issue.ID, issue.PropertyID)
	return nil
}

// Update replaces the mutable fields of issue id.
func (s *MaintenanceService) Update(ctx context.Context, id int64, issue *models.MaintenanceIssue) error {
	issue.ID = id
	if err := s.cleaner.CleanIssue(issue); err != nil {
		return err
	}
	if err := s.issues.UpdateIssue(ctx, issue); err != nil {
		return err
	}
	s.logger.Info("[maintenance] Updated issue #%d (%s)", issue.ID, issue.Status)
	return nil
}
