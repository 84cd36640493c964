package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"asset-brain/models"
)

var issueHeader = []string{
	"id", "property_id", "address", "category", "description", "date", "status", "cost", "vendor",
}

// CSVWriter exports maintenance issues as CSV. It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	closer io.Closer
	writer *csv.Writer
}

var _ IssueExporter = (*CSVWriter)(nil)

// NewCSVWriter creates (or truncates) the CSV file at path and writes the
// header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w, err := newCSVWriter(f, f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return w, nil
}

// NewCSVStream writes CSV to out, for example stdout. Close flushes but does
// not close out.
func NewCSVStream(out io.Writer) (*CSVWriter, error) {
	return newCSVWriter(out, nil)
}

func newCSVWriter(out io.Writer, closer io.Closer) (*CSVWriter, error) {
	w := csv.NewWriter(out)
	if err := w.Write(issueHeader); err != nil {
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	return &CSVWriter{closer: closer, writer: w}, nil
}

// WriteIssues appends one row per issue.
func (c *CSVWriter) WriteIssues(issues []models.IssueWithAddress) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, m := range issues {
		row := []string{
			strconv.FormatInt(m.ID, 10),
			m.PropertyID,
			m.Address,
			m.Category,
			m.Description,
			m.Date,
			m.Status,
			strconv.FormatFloat(m.Cost, 'f', 2, 64),
			m.Vendor,
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		return err
	}
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}
