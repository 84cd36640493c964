package models

// Property is a leased asset. ID is an immutable slug such as "12_elm_street"
// and is the foreign key target for issues and documents.
type Property struct {
	ID             string             `gorm:"primaryKey;type:varchar(128)" json:"id"`
	Address        string             `gorm:"not null" json:"address"`
	Type           string             `json:"type"`
	TenantName     string             `json:"tenant_name"`
	LeaseType      string             `gorm:"index" json:"lease_type"`
	RentAmount     float64            `json:"rent_amount"`
	LeaseStartDate string             `json:"lease_start_date"`
	LeaseEndDate   string             `gorm:"index" json:"lease_end_date"`
	CreatedAt      string             `json:"created_at"`
	Issues         []MaintenanceIssue `gorm:"foreignKey:PropertyID;references:ID" json:"-"`
}

func (Property) TableName() string {
	return "properties"
}

// PropertyDetail is a property together with its maintenance history.
type PropertyDetail struct {
	Property           Property           `json:"property"`
	MaintenanceHistory []MaintenanceIssue `json:"maintenance_history"`
}
