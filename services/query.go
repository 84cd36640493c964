package services

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"asset-brain/metrics"
	"asset-brain/models"
	"asset-brain/storage"
	"asset-brain/utils"
)

// Fixed filter values selected by intent. None of them come from the question.
const (
	elmStreetID       = "12_elm_street"
	roofCategory      = "roof"
	heatingCategory   = "heating"
	heatingYear       = "2023"
	tripleNetLease    = "Triple Net"
	leaseWindowInDays = 180
)

// QueryService answers plain-text questions about the portfolio.
type QueryService struct {
	store  storage.Snapshotter
	logger *utils.Logger
	now    func() time.Time
}

// NewQueryService creates a QueryService reading through store.
func NewQueryService(store storage.Snapshotter, logger *utils.Logger) *QueryService {
	return &QueryService{store: store, logger: logger, now: time.Now}
}

// WithClock replaces the source of "today" used for lease windows.
func (s *QueryService) WithClock(now func() time.Time) *QueryService {
	s.now = now
	return s
}

// Answer classifies text and runs the matching query inside one read
// snapshot. Store failures are returned wrapped; an unmatched or empty
// question is answered with the system overview.
func (s *QueryService) Answer(ctx context.Context, text string) (*models.QueryResponse, error) {
	intent := Classify(text)
	start := time.Now()

	var resp *models.QueryResponse
	err := s.store.Snapshot(ctx, func(q storage.QueryReader) error {
		var err error
		resp, err = s.execute(q, intent)
		return err
	})

	queryType := intent.QueryType()
	if resp != nil {
		queryType = resp.QueryType
	}
	metrics.ObserveQuery(queryType, start, rowCount(resp), err)

	if err != nil {
		s.logger.Error("[query] %s failed: %v", intent, err)
		return nil, fmt.Errorf("query %s: %w", intent.QueryType(), err)
	}
	s.logger.Debug("[query] %q -> %s in %s", text, resp.QueryType, time.Since(start))
	return resp, nil
}

func (s *QueryService) execute(q storage.QueryReader, intent Intent) (*models.QueryResponse, error) {
	switch intent {
	case RoofRepairAtElm:
		return s.roofRepair(q)
	case HeatingComplaints2023:
		return heatingComplaints(q)
	case ExpiringLeases:
		return s.expiringLeases(q)
	case MaintenanceCostSummary:
		return costSummary(q)
	case TripleNetLeaseInfo:
		return tripleNet(q)
	case RecurringIssues:
		return recurring(q)
	default:
		return overview(q)
	}
}

func (s *QueryService) roofRepair(q storage.QueryReader) (*models.QueryResponse, error) {
	issues, err := q.IssuesByPropertyAndCategory(elmStreetID, roofCategory)
	if err != nil {
		return nil, err
	}
	if len(issues) == 0 {
		s.logger.Info("[query] No roof records for %s, answering with the system overview", elmStreetID)
		return overview(q)
	}

	latest := issues[0]
	return &models.QueryResponse{
		Answer: fmt.Sprintf("The roof at 12 Elm Street was last repaired on %s by %s ($%s). Issue: %s",
			latest.Date, latest.Vendor, FormatCurrency(latest.Cost), latest.Description),
		Data:      issues,
		QueryType: RoofRepairAtElm.QueryType(),
	}, nil
}

func heatingComplaints(q storage.QueryReader) (*models.QueryResponse, error) {
	issues, err := q.IssuesInYear(heatingCategory, heatingYear)
	if err != nil {
		return nil, err
	}
	return &models.QueryResponse{
		Answer:    fmt.Sprintf("Found %s heating complaint(s) in 2023.", FormatCount(len(issues))),
		Data:      issues,
		QueryType: HeatingComplaints2023.QueryType(),
	}, nil
}

func (s *QueryService) expiringLeases(q storage.QueryReader) (*models.QueryResponse, error) {
	today := s.now()
	from := today.Format(models.DateLayout)
	to := today.AddDate(0, 0, leaseWindowInDays).Format(models.DateLayout)

	properties, err := q.LeasesEndingBetween(from, to)
	if err != nil {
		return nil, err
	}
	return &models.QueryResponse{
		Answer:    fmt.Sprintf("Found %s lease(s) expiring in the next 6 months.", FormatCount(len(properties))),
		Data:      properties,
		QueryType: ExpiringLeases.QueryType(),
	}, nil
}

func costSummary(q storage.QueryReader) (*models.QueryResponse, error) {
	costs, err := q.MaintenanceCostByProperty()
	if err != nil {
		return nil, err
	}
	var total float64
	for _, c := range costs {
		total += c.TotalCost
	}
	return &models.QueryResponse{
		Answer:    fmt.Sprintf("Total maintenance costs across all properties: $%s", FormatCurrency(total)),
		Data:      costs,
		QueryType: MaintenanceCostSummary.QueryType(),
	}, nil
}

func tripleNet(q storage.QueryReader) (*models.QueryResponse, error) {
	properties, err := q.PropertiesByLeaseType(tripleNetLease)
	if err != nil {
		return nil, err
	}
	return &models.QueryResponse{
		Answer: fmt.Sprintf("Found %s Triple Net Lease properties. In NNN leases, tenants pay property taxes, "+
			"insurance, and maintenance costs in addition to base rent.", FormatCount(len(properties))),
		Data:      properties,
		QueryType: TripleNetLeaseInfo.QueryType(),
	}, nil
}

func recurring(q storage.QueryReader) (*models.QueryResponse, error) {
	groups, err := q.RecurringIssues()
	if err != nil {
		return nil, err
	}
	return &models.QueryResponse{
		Answer:    fmt.Sprintf("Found %s recurring maintenance issues across properties.", FormatCount(len(groups))),
		Data:      groups,
		QueryType: RecurringIssues.QueryType(),
	}, nil
}

func overview(q storage.QueryReader) (*models.QueryResponse, error) {
	totals, err := q.PortfolioTotals()
	if err != nil {
		return nil, err
	}
	return &models.QueryResponse{
		Answer: fmt.Sprintf("System Overview: %s properties, $%s total monthly rent, %s active maintenance issues. "+
			"Try asking about specific properties, maintenance history, or expiring leases.",
			FormatCount(totals.PropertyCount), FormatCurrency(totals.TotalRent), FormatCount(totals.ActiveIssues)),
		Data:      []any{},
		QueryType: SystemOverview.QueryType(),
	}, nil
}

func rowCount(resp *models.QueryResponse) int {
	if resp == nil || resp.Data == nil {
		return 0
	}
	v := reflect.ValueOf(resp.Data)
	if v.Kind() != reflect.Slice {
		return 0
	}
	return v.Len()
}
