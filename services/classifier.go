package services

import "strings"

// Intent is the kind of question a free-text query asks.
type Intent int

const (
	SystemOverview Intent = iota
	RoofRepairAtElm
	HeatingComplaints2023
	ExpiringLeases
	MaintenanceCostSummary
	TripleNetLeaseInfo
	RecurringIssues
)

var intentNames = map[Intent]string{
	SystemOverview:         "SystemOverview",
	RoofRepairAtElm:        "RoofRepairAtElm",
	HeatingComplaints2023:  "HeatingComplaints2023",
	ExpiringLeases:         "ExpiringLeases",
	MaintenanceCostSummary: "MaintenanceCostSummary",
	TripleNetLeaseInfo:     "TripleNetLeaseInfo",
	RecurringIssues:        "RecurringIssues",
}

var queryTypes = map[Intent]string{
	SystemOverview:         "system_overview",
	RoofRepairAtElm:        "maintenance_history",
	HeatingComplaints2023:  "filtered_maintenance",
	ExpiringLeases:         "expiring_leases",
	MaintenanceCostSummary: "financial_summary",
	TripleNetLeaseInfo:     "lease_type_info",
	RecurringIssues:        "recurring_issues",
}

func (i Intent) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return "Intent(unknown)"
}

// QueryType is the snake_case label reported alongside an answer.
func (i Intent) QueryType() string {
	if qt, ok := queryTypes[i]; ok {
		return qt
	}
	return queryTypes[SystemOverview]
}

type rule struct {
	intent  Intent
	matches func(q string) bool
}

func has(q string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(q, w) {
			return true
		}
	}
	return false
}

// rules are tried in order; the first match wins.
var rules = []rule{
	{RoofRepairAtElm, func(q string) bool { return has(q, "roof") && has(q, "elm", "12") }},
	{HeatingComplaints2023, func(q string) bool { return has(q, "heating") && has(q, "2023") }},
	{ExpiringLeases, func(q string) bool { return has(q, "lease") && has(q, "expir", "end") }},
	{MaintenanceCostSummary, func(q string) bool { return has(q, "maintenance") && has(q, "cost") }},
	{TripleNetLeaseInfo, func(q string) bool { return has(q, "triple net", "nnn") }},
	{RecurringIssues, func(q string) bool { return has(q, "recurring", "multiple") }},
}

// Classify maps text to an intent. Only lower-casing is applied; anything
// that matches no rule, including empty input, is a SystemOverview.
func Classify(text string) Intent {
	q := strings.ToLower(text)
	for _, r := range rules {
		if r.matches(q) {
			return r.intent
		}
	}
	return SystemOverview
}
