package models

import "gorm.io/datatypes"

// UnassignedProperty is stored when an upload names no property.
const UnassignedProperty = "unassigned"

// Document is an uploaded file's metadata. Rows are written once and never
// updated.
type Document struct {
	ID             int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	PropertyID     string         `gorm:"type:varchar(128);index" json:"property_id"`
	Type           string         `json:"type"`
	Filename       string         `json:"filename"`
	UploadDate     string         `gorm:"index" json:"upload_date"`
	ExtractedData  datatypes.JSON `json:"extracted_data"`
	ContentSummary string         `json:"content_summary"`
}

func (Document) TableName() string {
	return "documents"
}

// ExtractedData is the metadata captured from a file at upload time.
type ExtractedData struct {
	Filename   string `json:"filename"`
	UploadDate string `json:"upload_date"`
	Size       int64  `json:"size"`
	Type       string `json:"type"`
}

// UploadResult is returned to the uploader.
type UploadResult struct {
	Status        string        `json:"status"`
	DocumentID    int64         `json:"document_id"`
	ExtractedData ExtractedData `json:"extracted_data"`
	Message       string        `json:"message"`
}
