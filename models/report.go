package models

// MonthTally is the per-month status breakdown shown on the dashboard.
// Declined requests count toward Total but toward none of the three named
// buckets.
type MonthTally struct {
	Pending   int `json:"Pending"`
	Active    int `json:"Active"`
	Completed int `json:"Completed"`
	Total     int `json:"Total"`
}

// MemberReport is the monthly summary for a home member.
type MemberReport struct {
	Months map[string]MonthTally `json:"months"` // keyed by "YYYY-MM"
}

// ProviderReport is the monthly summary for a provider, extended with the
// number of offerings they currently have published.
type ProviderReport struct {
	Months          map[string]MonthTally `json:"months"`
	ServicesOffered int                   `json:"services_offered"`
}
