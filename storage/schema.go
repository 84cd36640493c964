package storage

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"asset-brain/models"
	"asset-brain/utils"
)

// Bootstrap creates the schema and, when the portfolio is empty, inserts the
// sample dataset. Running it again is a no-op.
func Bootstrap(ctx context.Context, db *gorm.DB, logger *utils.Logger) error {
	tx := db.WithContext(ctx)
	if err := tx.AutoMigrate(&models.Property{}, &models.MaintenanceIssue{}, &models.Document{}); err != nil {
		return fmt.Errorf("storage: migrate: %w", err)
	}

	return tx.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Property{}).Count(&count).Error; err != nil {
			return fmt.Errorf("storage: count properties: %w", err)
		}
		if count > 0 {
			logger.Debug("[storage] %d properties present, skipping seed", count)
			return nil
		}
		return seed(tx, logger, time.Now())
	})
}

func seed(tx *gorm.DB, logger *utils.Logger, now time.Time) error {
	createdAt := now.Format(models.TimestampLayout)

	properties := sampleProperties()
	for i := range properties {
		properties[i].CreatedAt = createdAt
	}
	if err := tx.Create(&properties).Error; err != nil {
		return fmt.Errorf("storage: seed properties: %w", err)
	}

	issues := sampleIssues()
	for i := range issues {
		issues[i].CreatedAt = createdAt
	}
	if err := tx.Create(&issues).Error; err != nil {
		return fmt.Errorf("storage: seed issues: %w", err)
	}

	logger.Info("[storage] Seeded %d properties and %d maintenance issues", len(properties), len(issues))
	return nil
}

func sampleProperties() []models.Property {
	return []models.Property{
		{ID: "12_elm_street", Address: "12 Elm Street", Type: "Commercial", TenantName: "Acme Corp",
			LeaseType: "Triple Net", RentAmount: 5000, LeaseStartDate: "2023-01-15", LeaseEndDate: "2028-01-14"},
		{ID: "45_oak_avenue", Address: "45 Oak Avenue", Type: "Residential", TenantName: "Smith Family",
			LeaseType: "Gross Lease", RentAmount: 2500, LeaseStartDate: "2024-01-01", LeaseEndDate: "2025-06-30"},
		{ID: "78_pine_road", Address: "78 Pine Road", Type: "Mixed Use", TenantName: "Tech Startup Inc",
			LeaseType: "Modified Gross", RentAmount: 7500, LeaseStartDate: "2024-06-01", LeaseEndDate: "2026-12-31"},
	}
}

func sampleIssues() []models.MaintenanceIssue {
	return []models.MaintenanceIssue{
		{PropertyID: "12_elm_street", Category: "roof", Description: "Water infiltration northeast corner",
			Date: "2023-03-15", Status: models.StatusResolved, Cost: 3200, Vendor: "ABC Roofing"},
		{PropertyID: "45_oak_avenue", Category: "heating", Description: "HVAC system failure - no heat",
			Date: "2023-11-20", Status: models.StatusResolved, Cost: 1500, Vendor: "Climate Control Co"},
		{PropertyID: "12_elm_street", Category: "plumbing", Description: "Bathroom leak on 2nd floor",
			Date: "2024-02-10", Status: models.StatusResolved, Cost: 450, Vendor: "Quick Plumbers"},
		{PropertyID: "78_pine_road", Category: "electrical", Description: "Circuit breaker tripping issues",
			Date: "2024-05-22", Status: models.StatusInProgress, Cost: 0, Vendor: "ElectroFix"},
		{PropertyID: "12_elm_street", Category: "plumbing", Description: "Kitchen sink backup",
			Date: "2024-08-15", Status: models.StatusResolved, Cost: 350, Vendor: "Quick Plumbers"},
	}
}
