package models

// CategoryStat aggregates issues sharing a category.
type CategoryStat struct {
	Category  string  `json:"category"`
	Count     int64   `json:"count"`
	TotalCost float64 `json:"total_cost"`
}

// AnalyticsReport holds portfolio-wide figures for dashboards.
type AnalyticsReport struct {
	TotalProperties      int64          `json:"total_properties"`
	TotalMonthlyRent     float64        `json:"total_monthly_rent"`
	ActiveIssues         int64          `json:"active_issues"`
	TotalMaintenanceCost float64        `json:"total_maintenance_cost"`
	IssuesByCategory     []CategoryStat `json:"issues_by_category"`
}
