package storage

import (
	"context"

	"asset-brain/models"
)

// QueryReader runs the fixed read statements behind plain-text questions.
// Every argument is a literal chosen by the caller's intent table or a
// server-computed bound; none of them is user text.
type QueryReader interface {
	IssuesByPropertyAndCategory(propertyID, category string) ([]models.MaintenanceIssue, error)
	IssuesInYear(category, year string) ([]models.IssueWithAddress, error)
	LeasesEndingBetween(from, to string) ([]models.Property, error)
	MaintenanceCostByProperty() ([]models.PropertyCost, error)
	PropertiesByLeaseType(leaseType string) ([]models.Property, error)
	RecurringIssues() ([]models.RecurringIssue, error)
	PortfolioTotals() (*models.PortfolioTotals, error)
	CategoryStats() ([]models.CategoryStat, error)
	TotalMaintenanceCost() (float64, error)
}

// Snapshotter hands out a QueryReader bound to one read transaction. The
// transaction is released when fn returns, whatever the outcome.
type Snapshotter interface {
	Snapshot(ctx context.Context, fn func(QueryReader) error) error
}

// PropertyRepository persists properties.
type PropertyRepository interface {
	ListProperties(ctx context.Context) ([]models.Property, error)
	GetProperty(ctx context.Context, id string) (*models.Property, error)
	CreateProperty(ctx context.Context, p *models.Property) error
	UpdateProperty(ctx context.Context, p *models.Property) error
}

// IssueRepository persists maintenance issues.
type IssueRepository interface {
	ListIssues(ctx context.Context) ([]models.IssueWithAddress, error)
	IssuesForProperty(ctx context.Context, propertyID string) ([]models.MaintenanceIssue, error)
	GetIssue(ctx context.Context, id int64) (*models.MaintenanceIssue, error)
	CreateIssue(ctx context.Context, issue *models.MaintenanceIssue) error
	UpdateIssue(ctx context.Context, issue *models.MaintenanceIssue) error
}

// DocumentRepository persists uploaded document metadata.
type DocumentRepository interface {
	CreateDocument(ctx context.Context, doc *models.Document) error
	ListDocuments(ctx context.Context) ([]models.Document, error)
}

// IssueExporter is the interface for writing maintenance issues to a flat file.
type IssueExporter interface {
	WriteIssues(issues []models.IssueWithAddress) error
	Close() error
}
