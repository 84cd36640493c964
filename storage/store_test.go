package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"asset-brain/config"
	"asset-brain/models"
	"asset-brain/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.Config{DBDriver: config.DriverSQLite, DataDir: t.TempDir(), MaxRetries: 1}
	logger := utils.NewNopLogger()

	db, err := Open(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, Bootstrap(context.Background(), db, logger))
	return db
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(newTestDB(t))
}

func snapshot(t *testing.T, s *Store, fn func(QueryReader)) {
	t.Helper()
	err := s.Snapshot(context.Background(), func(q QueryReader) error {
		fn(q)
		return nil
	})
	require.NoError(t, err)
}

func TestBootstrapIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, Bootstrap(context.Background(), db, utils.NewNopLogger()))

	var properties, issues int64
	require.NoError(t, db.Model(&models.Property{}).Count(&properties).Error)
	require.NoError(t, db.Model(&models.MaintenanceIssue{}).Count(&issues).Error)
	assert.Equal(t, int64(3), properties)
	assert.Equal(t, int64(5), issues)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(&config.Config{DBDriver: "oracle", MaxRetries: 1}, utils.NewNopLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported driver")
}

func TestPropertyCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	list, err := s.ListProperties(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "12_elm_street", list[0].ID)

	p := &models.Property{
		ID: "9_birch_lane", Address: "9 Birch Lane", Type: "Residential",
		TenantName: "Lee", LeaseType: "Gross Lease", RentAmount: 1800,
		LeaseStartDate: "2025-01-01", LeaseEndDate: "2026-01-01",
	}
	require.NoError(t, s.CreateProperty(ctx, p))
	assert.NotEmpty(t, p.CreatedAt)

	err = s.CreateProperty(ctx, &models.Property{ID: "9_birch_lane", Address: "dup"})
	assert.ErrorIs(t, err, ErrConflict)

	p.RentAmount = 1900
	p.TenantName = "Lee & Co"
	require.NoError(t, s.UpdateProperty(ctx, p))

	got, err := s.GetProperty(ctx, "9_birch_lane")
	require.NoError(t, err)
	assert.Equal(t, 1900.0, got.RentAmount)
	assert.Equal(t, "Lee & Co", got.TenantName)

	_, err = s.GetProperty(ctx, "nowhere")
	assert.ErrorIs(t, err, ErrNotFound)

	err = s.UpdateProperty(ctx, &models.Property{ID: "nowhere", Address: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIssueCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	issue := &models.MaintenanceIssue{
		PropertyID: "78_pine_road", Category: "hvac", Description: "Filter swap",
		Date: "2025-02-01", Status: models.StatusInProgress, Cost: 120, Vendor: "AirCo",
	}
	require.NoError(t, s.CreateIssue(ctx, issue))
	require.NotZero(t, issue.ID)

	issue.Status = models.StatusResolved
	require.NoError(t, s.UpdateIssue(ctx, issue))

	got, err := s.GetIssue(ctx, issue.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusResolved, got.Status)

	err = s.CreateIssue(ctx, &models.MaintenanceIssue{PropertyID: "nowhere", Category: "roof"})
	assert.ErrorIs(t, err, ErrNotFound)

	err = s.UpdateIssue(ctx, &models.MaintenanceIssue{ID: 9999, PropertyID: "78_pine_road"})
	assert.ErrorIs(t, err, ErrNotFound)

	history, err := s.IssuesForProperty(ctx, "78_pine_road")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "2025-02-01", history[0].Date, "most recent first")

	all, err := s.ListIssues(ctx)
	require.NoError(t, err)
	require.Len(t, all, 6)
	assert.Equal(t, "78 Pine Road", all[0].Address)
}

func TestDocuments(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := &models.Document{PropertyID: "12_elm_street", Type: "application/pdf", Filename: "a.pdf",
		UploadDate: "2025-01-01T10:00:00.000000", ExtractedData: []byte(`{"size":10}`)}
	second := &models.Document{PropertyID: models.UnassignedProperty, Type: "text/plain", Filename: "b.txt",
		UploadDate: "2025-01-02T10:00:00.000000", ExtractedData: []byte(`{"size":20}`)}
	require.NoError(t, s.CreateDocument(ctx, first))
	require.NoError(t, s.CreateDocument(ctx, second))

	docs, err := s.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "b.txt", docs[0].Filename)
	assert.JSONEq(t, `{"size":10}`, string(docs[1].ExtractedData))
}

func TestSnapshotPassesThroughCallbackError(t *testing.T) {
	s := newTestStore(t)
	boom := errors.New("boom")

	err := s.Snapshot(context.Background(), func(QueryReader) error { return boom })
	assert.Same(t, boom, err)
	assert.False(t, errors.Is(err, ErrUnavailable))
}

func TestSnapshotReportsUnavailableStore(t *testing.T) {
	db := newTestDB(t)
	s := NewStore(db)
	require.NoError(t, Close(db))

	err := s.Snapshot(context.Background(), func(q QueryReader) error {
		_, err := q.PortfolioTotals()
		return err
	})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestRoofIssuesMostRecentFirst(t *testing.T) {
	s := newTestStore(t)
	// Older than the seeded 2023-03-15 repair but inserted later.
	require.NoError(t, s.CreateIssue(context.Background(), &models.MaintenanceIssue{
		PropertyID: "12_elm_street", Category: "roof", Description: "Flashing replaced",
		Date: "2022-06-01", Status: models.StatusResolved, Cost: 900, Vendor: "Top Roofs",
	}))

	snapshot(t, s, func(q QueryReader) {
		issues, err := q.IssuesByPropertyAndCategory("12_elm_street", "roof")
		require.NoError(t, err)
		require.Len(t, issues, 2)
		assert.Equal(t, "2023-03-15", issues[0].Date)
		assert.Equal(t, "ABC Roofing", issues[0].Vendor)
	})
}

func TestIssuesInYear(t *testing.T) {
	s := newTestStore(t)
	snapshot(t, s, func(q QueryReader) {
		issues, err := q.IssuesInYear("heating", "2023")
		require.NoError(t, err)
		require.Len(t, issues, 1)
		assert.Equal(t, "45 Oak Avenue", issues[0].Address)
		assert.Equal(t, "2023-11-20", issues[0].Date)

		none, err := q.IssuesInYear("heating", "2024")
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}

func TestLeasesEndingBetweenIsInclusive(t *testing.T) {
	s := newTestStore(t)
	snapshot(t, s, func(q QueryReader) {
		props, err := q.LeasesEndingBetween("2025-06-30", "2026-12-31")
		require.NoError(t, err)
		require.Len(t, props, 2)
		assert.Equal(t, "45_oak_avenue", props[0].ID)
		assert.Equal(t, "78_pine_road", props[1].ID)
	})
}

func TestMaintenanceCostByProperty(t *testing.T) {
	s := newTestStore(t)
	snapshot(t, s, func(q QueryReader) {
		costs, err := q.MaintenanceCostByProperty()
		require.NoError(t, err)
		require.Len(t, costs, 3)

		assert.Equal(t, models.PropertyCost{Address: "12 Elm Street", TotalCost: 4000, IssueCount: 3}, costs[0])
		assert.Equal(t, models.PropertyCost{Address: "45 Oak Avenue", TotalCost: 1500, IssueCount: 1}, costs[1])
		assert.Equal(t, models.PropertyCost{Address: "78 Pine Road", TotalCost: 0, IssueCount: 1}, costs[2])

		var sum float64
		for _, c := range costs {
			sum += c.TotalCost
		}
		total, err := q.TotalMaintenanceCost()
		require.NoError(t, err)
		assert.Equal(t, 5500.0, total)
		assert.Equal(t, total, sum)
	})
}

func TestMaintenanceCostGroupsByAddress(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.CreateProperty(ctx, &models.Property{
		ID: "12_elm_street_unit_b", Address: "12 Elm Street", LeaseType: "Gross Lease", RentAmount: 900,
	}))
	require.NoError(t, s.CreateIssue(ctx, &models.MaintenanceIssue{
		PropertyID: "12_elm_street_unit_b", Category: "plumbing", Description: "Dripping tap",
		Date: "2025-01-10", Status: models.StatusResolved, Cost: 10, Vendor: "Quick Plumbers",
	}))

	snapshot(t, s, func(q QueryReader) {
		costs, err := q.MaintenanceCostByProperty()
		require.NoError(t, err)
		require.Len(t, costs, 3)
		assert.Equal(t, models.PropertyCost{Address: "12 Elm Street", TotalCost: 4010, IssueCount: 4}, costs[0])

		total, err := q.TotalMaintenanceCost()
		require.NoError(t, err)
		assert.Equal(t, 5510.0, total)
	})
}

func TestPropertiesByLeaseType(t *testing.T) {
	s := newTestStore(t)
	snapshot(t, s, func(q QueryReader) {
		props, err := q.PropertiesByLeaseType("Triple Net")
		require.NoError(t, err)
		require.Len(t, props, 1)
		assert.Equal(t, "12_elm_street", props[0].ID)
	})
}

func TestRecurringIssues(t *testing.T) {
	s := newTestStore(t)
	snapshot(t, s, func(q QueryReader) {
		groups, err := q.RecurringIssues()
		require.NoError(t, err)
		require.Len(t, groups, 1)
		assert.Equal(t, models.RecurringIssue{
			PropertyID:      "12_elm_street",
			Category:        "plumbing",
			OccurrenceCount: 2,
			Dates:           "2024-02-10,2024-08-15",
			TotalCost:       800,
		}, groups[0])
	})
}

func TestRecurringIssuesTiesKeepFirstSeenOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	// Seed ids: heating at 45 Oak is 2, plumbing at 12 Elm is 3, electrical at 78 Pine is 4.
	for _, issue := range []models.MaintenanceIssue{
		{PropertyID: "78_pine_road", Category: "electrical", Description: "Outlet sparking",
			Date: "2025-01-05", Status: "Open", Cost: 90, Vendor: "ElectroFix"},
		{PropertyID: "45_oak_avenue", Category: "heating", Description: "Thermostat fault",
			Date: "2025-01-06", Status: models.StatusResolved, Cost: 200, Vendor: "Climate Control Co"},
	} {
		require.NoError(t, s.CreateIssue(ctx, &issue))
	}

	snapshot(t, s, func(q QueryReader) {
		groups, err := q.RecurringIssues()
		require.NoError(t, err)
		require.Len(t, groups, 3)

		got := make([]string, len(groups))
		for i, g := range groups {
			assert.Equal(t, int64(2), g.OccurrenceCount)
			got[i] = g.PropertyID + "/" + g.Category
		}
		assert.Equal(t, []string{"45_oak_avenue/heating", "12_elm_street/plumbing", "78_pine_road/electrical"}, got)
	})
}

func TestPortfolioTotalsAndCategories(t *testing.T) {
	s := newTestStore(t)
	snapshot(t, s, func(q QueryReader) {
		totals, err := q.PortfolioTotals()
		require.NoError(t, err)
		assert.Equal(t, &models.PortfolioTotals{PropertyCount: 3, TotalRent: 15000, ActiveIssues: 1}, totals)

		stats, err := q.CategoryStats()
		require.NoError(t, err)
		require.Len(t, stats, 4)
		assert.Equal(t, models.CategoryStat{Category: "plumbing", Count: 2, TotalCost: 800}, stats[0])
	})
}

func TestRecurringSQLPerDialect(t *testing.T) {
	assert.Contains(t, recurringSQL("postgres"), "STRING_AGG(date, ',' ORDER BY id)")
	assert.Contains(t, recurringSQL("sqlite"), "GROUP_CONCAT(date)")
}

func TestCSVWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "issues.csv")
	w, err := NewCSVWriter(path)
	require.NoError(t, err)

	require.NoError(t, w.WriteIssues([]models.IssueWithAddress{{
		ID: 1, PropertyID: "12_elm_street", Address: "12 Elm Street", Category: "roof",
		Description: "Leak, northeast", Date: "2023-03-15", Status: "Resolved", Cost: 3200, Vendor: "ABC Roofing",
	}}))
	require.NoError(t, w.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,property_id,address,category,description,date,status,cost,vendor", lines[0])
	assert.Equal(t, `1,12_elm_street,12 Elm Street,roof,"Leak, northeast",2023-03-15,Resolved,3200.00,ABC Roofing`, lines[1])
}

func TestCSVStream(t *testing.T) {
	var sb strings.Builder
	w, err := NewCSVStream(&sb)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.Equal(t, strings.Join(issueHeader, ",")+"\n", sb.String())
}

func TestStoreClockStampsCreatedAt(t *testing.T) {
	s := newTestStore(t)
	s.now = func() time.Time { return time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC) }

	p := &models.Property{ID: "1_ash_court", Address: "1 Ash Court"}
	require.NoError(t, s.CreateProperty(context.Background(), p))
	assert.Equal(t, "2025-03-01T09:30:00.000000", p.CreatedAt)
}
