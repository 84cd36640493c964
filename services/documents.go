package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"asset-brain/metrics"
	"asset-brain/models"
	"asset-brain/storage"
	"asset-brain/utils"
)

// Upload is one received file. Body is read to measure the size; its bytes
// are not kept.
type Upload struct {
	Filename    string
	ContentType string
	PropertyID  string
	Body        io.Reader
}

// DocumentService simulates document ingestion: it records metadata about an
// uploaded file and discards the content.
type DocumentService struct {
	docs   storage.DocumentRepository
	logger *utils.Logger
	now    func() time.Time
}

func NewDocumentService(docs storage.DocumentRepository, logger *utils.Logger) *DocumentService {
	return &DocumentService{docs: docs, logger: logger, now: time.Now}
}

// Ingest stores one documents row for u and reports what was extracted.
func (s *DocumentService) Ingest(ctx context.Context, u Upload) (*models.UploadResult, error) {
	result, size, err := s.ingest(ctx, u)
	metrics.ObserveUpload(size, err)
	return result, err
}

func (s *DocumentService) ingest(ctx context.Context, u Upload) (*models.UploadResult, int64, error) {
	filename := strings.TrimSpace(u.Filename)
	if filename == "" {
		return nil, 0, fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}
	propertyID := strings.TrimSpace(u.PropertyID)
	if propertyID == "" {
		propertyID = models.UnassignedProperty
	}
	contentType := u.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	size, err := io.Copy(io.Discard, u.Body)
	if err != nil {
		return nil, size, fmt.Errorf("%w: read upload: %w", ErrInvalidInput, err)
	}

	extracted := models.ExtractedData{
		Filename:   filename,
		UploadDate: s.now().Format(models.TimestampLayout),
		Size:       size,
		Type:       contentType,
	}
	blob, err := json.Marshal(extracted)
	if err != nil {
		return nil, size, fmt.Errorf("documents: encode metadata: %w", err)
	}

	doc := &models.Document{
		PropertyID:     propertyID,
		Type:           contentType,
		Filename:       filename,
		UploadDate:     extracted.UploadDate,
		ExtractedData:  blob,
		ContentSummary: "Uploaded " + filename,
	}
	if err := s.docs.CreateDocument(ctx, doc); err != nil {
		return nil, size, err
	}

	s.logger.Info("[documents] Indexed %q (%d bytes) for %s", filename, size, propertyID)
	return &models.UploadResult{
		Status:        "success",
		DocumentID:    doc.ID,
		ExtractedData: extracted,
		Message:       fmt.Sprintf("Document '%s' processed and indexed successfully", filename),
	}, size, nil
}

func (s *DocumentService) List(ctx context.Context) ([]models.Document, error) {
	return s.docs.ListDocuments(ctx)
}
