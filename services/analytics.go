package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"asset-brain/models"
	"asset-brain/storage"
	"asset-brain/utils"
)

// AnalyticsService builds portfolio-wide reports.
type AnalyticsService struct {
	store  storage.Snapshotter
	logger *utils.Logger
}

func NewAnalyticsService(store storage.Snapshotter, logger *utils.Logger) *AnalyticsService {
	return &AnalyticsService{store: store, logger: logger}
}

// Generate reads every figure of the report from one snapshot.
func (s *AnalyticsService) Generate(ctx context.Context) (*models.AnalyticsReport, error) {
	report := &models.AnalyticsReport{}
	err := s.store.Snapshot(ctx, func(q storage.QueryReader) error {
		totals, err := q.PortfolioTotals()
		if err != nil {
			return err
		}
		report.TotalProperties = totals.PropertyCount
		report.TotalMonthlyRent = totals.TotalRent
		report.ActiveIssues = totals.ActiveIssues

		if report.TotalMaintenanceCost, err = q.TotalMaintenanceCost(); err != nil {
			return err
		}
		report.IssuesByCategory, err = q.CategoryStats()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("analytics: %w", err)
	}
	s.logger.Debug("[analytics] %d properties, %d categories", report.TotalProperties, len(report.IssuesByCategory))
	return report, nil
}

// Print renders r as a terminal dashboard.
func (s *AnalyticsService) Print(w io.Writer, r *models.AnalyticsReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  🏢 PORTFOLIO ANALYTICS\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	fmt.Fprintf(w, "\033[1;33m  Overview\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Properties             : \033[1m%s\033[0m\n", FormatCount(r.TotalProperties))
	fmt.Fprintf(w, "  Monthly rent           : \033[1;32m$%s\033[0m\n", FormatCurrency(r.TotalMonthlyRent))
	fmt.Fprintf(w, "  Active issues          : \033[1m%s\033[0m\n", FormatCount(r.ActiveIssues))
	fmt.Fprintf(w, "  Maintenance spend      : \033[1;31m$%s\033[0m\n", FormatCurrency(r.TotalMaintenanceCost))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Issues by Category\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.IssuesByCategory) == 0 {
		fmt.Fprintf(w, "  No maintenance issues recorded\n")
	} else {
		for _, c := range r.IssuesByCategory {
			bar := strings.Repeat("█", int(c.Count))
			fmt.Fprintf(w, "  %-18s %-10s (%d)  $%s\n", truncate(c.Category, 16), bar, c.Count, FormatCurrency(c.TotalCost))
		}
	}

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
