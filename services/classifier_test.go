package services

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		query string
		want  Intent
	}{
		{"When was the roof at 12 Elm Street last repaired?", RoofRepairAtElm},
		{"heating complaints in 2023", HeatingComplaints2023},
		{"Which leases are expiring soon?", ExpiringLeases},
		{"when does each lease end", ExpiringLeases},
		{"what are the total maintenance costs", MaintenanceCostSummary},
		{"show me triple net leases", TripleNetLeaseInfo},
		{"Any NNN properties?", TripleNetLeaseInfo},
		{"recurring issues", RecurringIssues},
		{"properties with multiple repairs", RecurringIssues},
		{"random unrelated text", SystemOverview},
		{"roof leaks", SystemOverview},
		{"", SystemOverview},
		{"   ", SystemOverview},
	}

	for _, tt := range tests {
		if got := Classify(tt.query); got != tt.want {
			t.Errorf("Classify(%q) = %s; want %s", tt.query, got, tt.want)
		}
	}
}

func TestClassifyRulePriority(t *testing.T) {
	tests := []struct {
		query string
		want  Intent
	}{
		// roof + recurring: the roof rule is checked first
		{"roof issue at 12 Elm — recurring problem?", RoofRepairAtElm},
		{"maintenance cost of the roof at elm", RoofRepairAtElm},
		{"heating in 2023 for leases that end soon", HeatingComplaints2023},
		{"lease expiry and maintenance cost", ExpiringLeases},
		{"maintenance cost of triple net buildings", MaintenanceCostSummary},
		{"triple net leases with multiple issues", TripleNetLeaseInfo},
	}

	for _, tt := range tests {
		if got := Classify(tt.query); got != tt.want {
			t.Errorf("Classify(%q) = %s; want %s", tt.query, got, tt.want)
		}
	}
}

func TestClassifyOnlyLowerCases(t *testing.T) {
	// punctuation inside a keyword is not stripped
	if got := Classify("triple-net"); got != SystemOverview {
		t.Errorf("Classify(triple-net) = %s; want SystemOverview", got)
	}
	if got := Classify("TRIPLE NET"); got != TripleNetLeaseInfo {
		t.Errorf("Classify(TRIPLE NET) = %s; want TripleNetLeaseInfo", got)
	}
}

func TestIntentQueryType(t *testing.T) {
	tests := map[Intent]string{
		RoofRepairAtElm:        "maintenance_history",
		HeatingComplaints2023:  "filtered_maintenance",
		ExpiringLeases:         "expiring_leases",
		MaintenanceCostSummary: "financial_summary",
		TripleNetLeaseInfo:     "lease_type_info",
		RecurringIssues:        "recurring_issues",
		SystemOverview:         "system_overview",
		Intent(99):             "system_overview",
	}
	for intent, want := range tests {
		if got := intent.QueryType(); got != want {
			t.Errorf("%s.QueryType() = %q; want %q", intent, got, want)
		}
	}
}
