package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/hashicorp/go-multierror"

	"asset-brain/models"
	"asset-brain/utils"
)

// ErrInvalidInput marks a request whose fields failed validation.
var ErrInvalidInput = errors.New("invalid input")

var (
	// isoDateRegexp matches the zero-padded YYYY-MM-DD shape that keeps
	// lexicographic date comparison correct.
	isoDateRegexp = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	// slugRegexp matches property identifiers such as "12_elm_street".
	slugRegexp = regexp.MustCompile(`^[a-z0-9]+(?:_[a-z0-9]+)*$`)
	// nonSlugRegexp captures runs of characters that cannot appear in a slug
	nonSlugRegexp = regexp.MustCompile(`[^a-z0-9]+`)
)

// Cleaner normalises and validates property and issue input before it is
// written.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// CleanProperty trims free text, derives a missing ID from the address and
// checks the result. Every problem is reported in one error wrapping
// ErrInvalidInput.
func (c *Cleaner) CleanProperty(p *models.Property) error {
	p.ID = strings.TrimSpace(p.ID)
	p.Address = normaliseText(p.Address)
	p.Type = normaliseText(p.Type)
	p.TenantName = normaliseText(p.TenantName)
	p.LeaseType = normaliseText(p.LeaseType)
	p.LeaseStartDate = strings.TrimSpace(p.LeaseStartDate)
	p.LeaseEndDate = strings.TrimSpace(p.LeaseEndDate)

	if p.ID == "" && p.Address != "" {
		p.ID = Slug(p.Address)
		c.logger.Debug("[cleaner] Derived property id %q from %q", p.ID, p.Address)
	}

	var result *multierror.Error
	if p.Address == "" {
		result = multierror.Append(result, errors.New("address is required"))
	}
	if p.ID != "" && !slugRegexp.MatchString(p.ID) {
		result = multierror.Append(result, fmt.Errorf("id %q must be lower-case words joined by underscores", p.ID))
	}
	if p.RentAmount < 0 {
		result = multierror.Append(result, errors.New("rent_amount must not be negative"))
	}
	result = checkDate(result, "lease_start_date", p.LeaseStartDate, false)
	result = checkDate(result, "lease_end_date", p.LeaseEndDate, false)
	if p.LeaseStartDate != "" && p.LeaseEndDate != "" && p.LeaseEndDate < p.LeaseStartDate {
		result = multierror.Append(result, errors.New("lease_end_date must not precede lease_start_date"))
	}

	return invalid(result)
}

// CleanIssue trims free text and checks a maintenance issue.
func (c *Cleaner) CleanIssue(m *models.MaintenanceIssue) error {
	m.PropertyID = strings.TrimSpace(m.PropertyID)
	m.Category = strings.ToLower(normaliseText(m.Category))
	m.Description = normaliseText(m.Description)
	m.Date = strings.TrimSpace(m.Date)
	m.Status = normaliseText(m.Status)
	m.Vendor = normaliseText(m.Vendor)

	var result *multierror.Error
	if m.PropertyID == "" {
		result = multierror.Append(result, errors.New("property_id is required"))
	}
	if m.Category == "" {
		result = multierror.Append(result, errors.New("category is required"))
	}
	if m.Description == "" {
		result = multierror.Append(result, errors.New("description is required"))
	}
	if m.Status == "" {
		result = multierror.Append(result, errors.New("status is required"))
	}
	if m.Cost < 0 {
		result = multierror.Append(result, errors.New("cost must not be negative"))
	}
	result = checkDate(result, "date", m.Date, true)

	return invalid(result)
}

func checkDate(result *multierror.Error, field, value string, required bool) *multierror.Error {
	switch {
	case value == "" && required:
		return multierror.Append(result, fmt.Errorf("%s is required", field))
	case value != "" && !isoDateRegexp.MatchString(value):
		return multierror.Append(result, fmt.Errorf("%s %q must look like YYYY-MM-DD", field, value))
	}
	return result
}

func invalid(result *multierror.Error) error {
	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}

// Slug turns an address into a property identifier: "12 Elm Street" ->
// "12_elm_street".
func Slug(address string) string {
	s := nonSlugRegexp.ReplaceAllString(strings.ToLower(address), "_")
	return strings.Trim(s, "_")
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}
