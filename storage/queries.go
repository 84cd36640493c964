package storage

import (
	"gorm.io/gorm"

	"asset-brain/models"
)

// queryReader runs the question statements on one transaction handle.
type queryReader struct {
	db *gorm.DB
}

var _ QueryReader = (*queryReader)(nil)

// IssuesByPropertyAndCategory lists matching issues, most recent first.
func (q *queryReader) IssuesByPropertyAndCategory(propertyID, category string) ([]models.MaintenanceIssue, error) {
	issues := []models.MaintenanceIssue{}
	err := q.db.Raw(`
		SELECT * FROM maintenance_issues
		WHERE property_id = ? AND category = ?
		ORDER BY date DESC, id DESC
	`, propertyID, category).Scan(&issues).Error
	if err != nil {
		return nil, storeErr("issues by property and category", err)
	}
	return issues, nil
}

// IssuesInYear lists issues of a category whose date starts with year.
func (q *queryReader) IssuesInYear(category, year string) ([]models.IssueWithAddress, error) {
	issues := []models.IssueWithAddress{}
	err := q.db.Raw(`
		SELECT m.*, p.address
		FROM maintenance_issues m
		JOIN properties p ON m.property_id = p.id
		WHERE m.category = ? AND m.date LIKE ?
		ORDER BY m.date, m.id
	`, category, year+"%").Scan(&issues).Error
	if err != nil {
		return nil, storeErr("issues in year", err)
	}
	return issues, nil
}

// LeasesEndingBetween lists properties whose lease ends in [from, to].
func (q *queryReader) LeasesEndingBetween(from, to string) ([]models.Property, error) {
	properties := []models.Property{}
	err := q.db.Raw(`
		SELECT * FROM properties
		WHERE lease_end_date >= ? AND lease_end_date <= ?
		ORDER BY lease_end_date, id
	`, from, to).Scan(&properties).Error
	if err != nil {
		return nil, storeErr("leases ending between", err)
	}
	return properties, nil
}

// MaintenanceCostByProperty sums issue costs per address. Properties sharing
// an address collapse into one row; addresses with no issues are omitted.
func (q *queryReader) MaintenanceCostByProperty() ([]models.PropertyCost, error) {
	costs := []models.PropertyCost{}
	err := q.db.Raw(`
		SELECT p.address AS address,
			COALESCE(SUM(m.cost), 0) AS total_cost,
			COUNT(m.id) AS issue_count
		FROM properties p
		JOIN maintenance_issues m ON m.property_id = p.id
		GROUP BY p.address
		ORDER BY p.address
	`).Scan(&costs).Error
	if err != nil {
		return nil, storeErr("maintenance cost by property", err)
	}
	return costs, nil
}

// PropertiesByLeaseType matches lease_type exactly.
func (q *queryReader) PropertiesByLeaseType(leaseType string) ([]models.Property, error) {
	properties := []models.Property{}
	err := q.db.Raw(`
		SELECT * FROM properties
		WHERE lease_type = ?
		ORDER BY created_at, id
	`, leaseType).Scan(&properties).Error
	if err != nil {
		return nil, storeErr("properties by lease type", err)
	}
	return properties, nil
}

// RecurringIssues groups issues by (property, category) and keeps groups seen
// more than once. Dates within a group are joined in insertion order.
func (q *queryReader) RecurringIssues() ([]models.RecurringIssue, error) {
	issues := []models.RecurringIssue{}
	if err := q.db.Raw(recurringSQL(q.db.Dialector.Name())).Scan(&issues).Error; err != nil {
		return nil, storeErr("recurring issues", err)
	}
	return issues, nil
}

func recurringSQL(dialect string) string {
	if dialect == "postgres" {
		return `
		SELECT property_id, category,
			COUNT(*) AS occurrence_count,
			STRING_AGG(date, ',' ORDER BY id) AS dates,
			COALESCE(SUM(cost), 0) AS total_cost
		FROM maintenance_issues
		GROUP BY property_id, category
		HAVING COUNT(*) > 1
		ORDER BY occurrence_count DESC, MIN(id) ASC
	`
	}
	// SQLite concatenates in scan order, so feed it an id-ordered subquery.
	return `
		SELECT property_id, category,
			COUNT(*) AS occurrence_count,
			GROUP_CONCAT(date) AS dates,
			COALESCE(SUM(cost), 0) AS total_cost
		FROM (SELECT * FROM maintenance_issues ORDER BY id)
		GROUP BY property_id, category
		HAVING COUNT(*) > 1
		ORDER BY occurrence_count DESC, MIN(id) ASC
	`
}

// PortfolioTotals counts properties, sums rent and counts in-progress issues.
func (q *queryReader) PortfolioTotals() (*models.PortfolioTotals, error) {
	var totals models.PortfolioTotals
	err := q.db.Raw(`
		SELECT COUNT(*) AS property_count,
			COALESCE(SUM(rent_amount), 0) AS total_rent
		FROM properties
	`).Scan(&totals).Error
	if err != nil {
		return nil, storeErr("portfolio totals", err)
	}

	err = q.db.Model(&models.MaintenanceIssue{}).
		Where("status = ?", models.StatusInProgress).
		Count(&totals.ActiveIssues).Error
	if err != nil {
		return nil, storeErr("active issues", err)
	}
	return &totals, nil
}

// CategoryStats counts and costs issues per category, busiest first.
func (q *queryReader) CategoryStats() ([]models.CategoryStat, error) {
	stats := []models.CategoryStat{}
	err := q.db.Raw(`
		SELECT category,
			COUNT(*) AS count,
			COALESCE(SUM(cost), 0) AS total_cost
		FROM maintenance_issues
		GROUP BY category
		ORDER BY count DESC, category
	`).Scan(&stats).Error
	if err != nil {
		return nil, storeErr("category stats", err)
	}
	return stats, nil
}

// TotalMaintenanceCost sums the cost of every issue.
func (q *queryReader) TotalMaintenanceCost() (float64, error) {
	var total float64
	err := q.db.Raw(`SELECT COALESCE(SUM(cost), 0) FROM maintenance_issues`).Scan(&total).Error
	if err != nil {
		return 0, storeErr("total maintenance cost", err)
	}
	return total, nil
}
