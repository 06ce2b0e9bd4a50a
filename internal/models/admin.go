package models

type AdminAuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type BudgetStats struct {
	Total      float64 `json:"total"`
	Consumed   float64 `json:"consumed"`
	Remaining  float64 `json:"remaining"`
	Percentage float64 `json:"percentage"`
}

type UsageStats struct {
	TotalTokensIn  int     `json:"totalTokensIn"`
	TotalTokensOut int     `json:"totalTokensOut"`
	TotalCalls     int     `json:"totalCalls"`
	AvgCostPerCall float64 `json:"avgCostPerCall"`
	ActiveUsers    int     `json:"activeUsers"`
	MostUsedModel  string  `json:"mostUsedModel"`
}

// APICall is one row of the admin activity feed.
type APICall struct {
	Date      string  `json:"date"`
	User      string  `json:"user"`
	Model     string  `json:"model"`
	TokensIn  int     `json:"tokensIn"`
	TokensOut int     `json:"tokensOut"`
	Cost      float64 `json:"cost"`
	Type      string  `json:"type"`
}

// DayCost is one bucket of the 7-day spend chart, keyed by weekday
// abbreviation.
type DayCost struct {
	Day  string  `json:"day"`
	Cost float64 `json:"cost"`
}

type Projection struct {
	DaysRemaining int     `json:"daysRemaining"`
	AvgDailyCost  float64 `json:"avgDailyCost"`
}

type AdminStatsResponse struct {
	Budget     BudgetStats `json:"budget"`
	Stats      UsageStats  `json:"stats"`
	APICalls   []APICall   `json:"apiCalls"`
	ChartData  []DayCost   `json:"chartData"`
	Projection Projection  `json:"projection"`
}

type CleanupResponse struct {
	Success      bool   `json:"success"`
	DeletedCount int    `json:"deletedCount"`
	Message      string `json:"message"`
}
