package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"asset-brain/models"
)

// Store is the gorm-backed implementation of every repository interface.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// NewStore wraps an opened and bootstrapped database.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, now: time.Now}
}

var (
	_ PropertyRepository = (*Store)(nil)
	_ IssueRepository    = (*Store)(nil)
	_ DocumentRepository = (*Store)(nil)
	_ Snapshotter        = (*Store)(nil)
)

// Snapshot runs fn against a reader bound to one transaction. Errors returned
// by fn are passed through unchanged; failures to begin or commit are wrapped
// with ErrUnavailable.
func (s *Store) Snapshot(ctx context.Context, fn func(QueryReader) error) error {
	var fnErr error
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(&queryReader{db: tx})
		return fnErr
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return storeErr("snapshot", err)
	}
	return nil
}

// Properties

func (s *Store) ListProperties(ctx context.Context) ([]models.Property, error) {
	properties := []models.Property{}
	if err := s.db.WithContext(ctx).Order("created_at, id").Find(&properties).Error; err != nil {
		return nil, storeErr("list properties", err)
	}
	return properties, nil
}

func (s *Store) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	var p models.Property
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, storeErr("get property", err)
	}
	return &p, nil
}

// CreateProperty inserts p, stamping CreatedAt. A taken ID yields ErrConflict.
func (s *Store) CreateProperty(ctx context.Context, p *models.Property) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Property{}).Where("id = ?", p.ID).Count(&count).Error; err != nil {
			return storeErr("create property", err)
		}
		if count > 0 {
			return ErrConflict
		}
		p.CreatedAt = s.now().Format(models.TimestampLayout)
		if err := tx.Create(p).Error; err != nil {
			return storeErr("create property", err)
		}
		return nil
	})
}

// UpdateProperty overwrites every mutable column of the row identified by p.ID.
func (s *Store) UpdateProperty(ctx context.Context, p *models.Property) error {
	res := s.db.WithContext(ctx).
		Model(&models.Property{}).
		Where("id = ?", p.ID).
		Select("address", "type", "tenant_name", "lease_type", "rent_amount", "lease_start_date", "lease_end_date").
		Updates(p)
	if res.Error != nil {
		return storeErr("update property", res.Error)
	}
	if res.RowsAffected == 0 {
		return storeErr("update property", gorm.ErrRecordNotFound)
	}
	return s.reload(ctx, p, "id = ?", p.ID)
}

// Maintenance issues

func (s *Store) ListIssues(ctx context.Context) ([]models.IssueWithAddress, error) {
	issues := []models.IssueWithAddress{}
	err := s.db.WithContext(ctx).Raw(`
		SELECT m.*, p.address
		FROM maintenance_issues m
		JOIN properties p ON m.property_id = p.id
		ORDER BY m.date DESC, m.id DESC
	`).Scan(&issues).Error
	if err != nil {
		return nil, storeErr("list issues", err)
	}
	return issues, nil
}

func (s *Store) IssuesForProperty(ctx context.Context, propertyID string) ([]models.MaintenanceIssue, error) {
	issues := []models.MaintenanceIssue{}
	err := s.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("date DESC, id DESC").
		Find(&issues).Error
	if err != nil {
		return nil, storeErr("issues for property", err)
	}
	return issues, nil
}

func (s *Store) GetIssue(ctx context.Context, id int64) (*models.MaintenanceIssue, error) {
	var issue models.MaintenanceIssue
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&issue).Error; err != nil {
		return nil, storeErr("get issue", err)
	}
	return &issue, nil
}

// CreateIssue inserts issue after checking that its property exists.
func (s *Store) CreateIssue(ctx context.Context, issue *models.MaintenanceIssue) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireProperty(tx, issue.PropertyID); err != nil {
			return storeErr("create issue", err)
		}
		issue.ID = 0
		issue.CreatedAt = s.now().Format(models.TimestampLayout)
		if err := tx.Create(issue).Error; err != nil {
			return storeErr("create issue", err)
		}
		return nil
	})
}

// UpdateIssue overwrites the mutable columns of the issue identified by
// issue.ID. The property reference may change but must exist.
func (s *Store) UpdateIssue(ctx context.Context, issue *models.MaintenanceIssue) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireProperty(tx, issue.PropertyID); err != nil {
			return err
		}
		res := tx.Model(&models.MaintenanceIssue{}).
			Where("id = ?", issue.ID).
			Select("property_id", "category", "description", "date", "status", "cost", "vendor").
			Updates(issue)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return storeErr("update issue", err)
	}
	return s.reload(ctx, issue, "id = ?", issue.ID)
}

func requireProperty(tx *gorm.DB, id string) error {
	var count int64
	if err := tx.Model(&models.Property{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Documents

func (s *Store) CreateDocument(ctx context.Context, doc *models.Document) error {
	doc.ID = 0
	if err := s.db.WithContext(ctx).Create(doc).Error; err != nil {
		return storeErr("create document", err)
	}
	return nil
}

func (s *Store) ListDocuments(ctx context.Context) ([]models.Document, error) {
	docs := []models.Document{}
	if err := s.db.WithContext(ctx).Order("upload_date DESC, id DESC").Find(&docs).Error; err != nil {
		return nil, storeErr("list documents", err)
	}
	return docs, nil
}

func (s *Store) reload(ctx context.Context, dest any, query string, args ...any) error {
	err := s.db.WithContext(ctx).Where(query, args...).First(dest).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return storeErr("reload", err)
	}
	return nil
}
