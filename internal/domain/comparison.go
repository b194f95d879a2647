package domain

// ComparisonRow holds the extracted scalar metrics for one tenant in the
// comparison view. RentToIncome is nil when monthly income is missing or not
// a positive number; it is never zero as a stand-in for "unknown".
type ComparisonRow struct {
	Tenant        string   `json:"tenant"`
	CreditScore   string   `json:"credit_score,omitempty"`
	MonthlyIncome string   `json:"monthly_income,omitempty"`
	References    string   `json:"references,omitempty"`
	RentToIncome  *float64 `json:"rent_to_income,omitempty"`
}

// ComparisonRequest selects the tenants to compare for one listing.
type ComparisonRequest struct {
	Address string   `json:"address" binding:"required"`
	Tenants []string `json:"tenants"`
}
