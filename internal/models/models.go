package models

// AbuseRecord is the subset of a reputation lookup that ipspectre keeps
type AbuseRecord struct {
	Score          int     `json:"abuse_confidence_score"`
	Reports        int     `json:"number_of_reports"`
	LastReportedAt *string `json:"last_reported_at"` // nil when the IP was never reported
}

// Elapsed is the time since an IP was last reported.
// Weeks and Months are whole-day approximations, not calendar aware.
type Elapsed struct {
	Hours  float64 `json:"hours"`
	Weeks  float64 `json:"weeks"`
	Months float64 `json:"months"`
}

// Row is one output line. Every field except IP is nil when no value is known.
type Row struct {
	IP          string   `json:"ip"`
	Score       *int     `json:"abuse_confidence_score"`
	Reports     *int     `json:"number_of_reports"`
	LastUpdated *string  `json:"last_updated"`
	Hours       *float64 `json:"time_elapsed_hours"`
	Weeks       *float64 `json:"time_elapsed_weeks"`
	Months      *float64 `json:"time_elapsed_months"`
}

// Failed reports whether the row carries no lookup data
func (r Row) Failed() bool {
	return r.Score == nil && r.Reports == nil && r.LastUpdated == nil &&
		r.Hours == nil && r.Weeks == nil && r.Months == nil
}

// Columns is the fixed column order of tabular output
var Columns = []string{
	"IP",
	"Abuse Confidence Score",
	"Number of Reports",
	"Last Updated",
	"Time Elapsed (Hours)",
	"Time Elapsed (Weeks)",
	"Time Elapsed (Months)",
}
