package models

// QueryResponse is the answer to a plain-text question. Data holds the raw
// result rows of the query that produced Answer.
type QueryResponse struct {
	Answer    string `json:"answer"`
	Data      any    `json:"data"`
	QueryType string `json:"query_type"`
}

// PropertyCost is one row of the per-property maintenance cost breakdown.
type PropertyCost struct {
	Address    string  `json:"address"`
	TotalCost  float64 `json:"total_cost"`
	IssueCount int64   `json:"issue_count"`
}

// RecurringIssue is a (property, category) pair seen more than once.
// Dates is the comma-joined list of the group's issue dates.
type RecurringIssue struct {
	PropertyID      string  `json:"property_id"`
	Category        string  `json:"category"`
	OccurrenceCount int64   `json:"occurrence_count"`
	Dates           string  `json:"dates"`
	TotalCost       float64 `json:"total_cost"`
}

// PortfolioTotals backs the system overview answer.
type PortfolioTotals struct {
	PropertyCount int64
	TotalRent     float64
	ActiveIssues  int64
}
