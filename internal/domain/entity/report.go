package entity

// ServiceCostEntry is the cost attributed to a single AWS service within a
// month. Entries keep the order the upstream grouping returned them in.
type ServiceCostEntry struct {
	Name string `json:"name"`
	Cost Amount `json:"cost"`
}

// CostReport is the normalized single-month report returned by the API:
// the resolved month, its total cost and the per-service breakdown. Reports
// are built fresh per request and never mutated afterwards.
type CostReport struct {
	Month     CalendarMonth      `json:"month"`
	TotalCost Amount             `json:"totalCost"`
	Services  []ServiceCostEntry `json:"services"`
}

// TrendPoint is one month of the trailing cost trend.
type TrendPoint struct {
	Month          CalendarMonth `json:"month"`
	FormattedMonth string        `json:"formattedMonth"`
	TotalCost      Amount        `json:"totalCost"`
}

// AccessReport is the result of the credential diagnostic: the caller identity
// resolved through STS and whether a Cost Explorer probe query succeeded.
type AccessReport struct {
	AccountID   string `json:"account_id"`
	CallerARN   string `json:"caller_arn"`
	CostAccess  bool   `json:"cost_explorer_access"`
	CostMessage string `json:"cost_explorer_message,omitempty"`
}
