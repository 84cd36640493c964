package models

// Well-known issue statuses. Status is free text; only these two carry meaning.
const (
	StatusResolved   = "Resolved"
	StatusInProgress = "In Progress"
)

// MaintenanceIssue is one recorded repair or complaint against a property.
// Date is an ISO-8601 string and is compared lexicographically.
type MaintenanceIssue struct {
	ID          int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	PropertyID  string  `gorm:"type:varchar(128);not null;index" json:"property_id"`
	Category    string  `gorm:"index" json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Status      string  `json:"status"`
	Cost        float64 `json:"cost"`
	Vendor      string  `json:"vendor"`
	CreatedAt   string  `json:"created_at"`
}

func (MaintenanceIssue) TableName() string {
	return "maintenance_issues"
}

// IssueWithAddress is an issue joined with its property's address.
type IssueWithAddress struct {
	ID          int64   `json:"id"`
	PropertyID  string  `json:"property_id"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Status      string  `json:"status"`
	Cost        float64 `json:"cost"`
	Vendor      string  `json:"vendor"`
	CreatedAt   string  `json:"created_at"`
	Address     string  `json:"address"`
}
