package cashflow

// MonthlyBucket is the API response model for one aggregated month.
// It is used only for responses, not for request bodies.
type MonthlyBucket struct {
	Month          string `json:"month" doc:"Year-month key (YYYY-MM)"`
	OpeningBalance string `json:"openingBalance" doc:"Decimal balance at the start of the month"`
	TotalIncome    string `json:"totalIncome" doc:"Decimal income total for the month"`
	TotalExpenses  string `json:"totalExpenses" doc:"Decimal expense total for the month"`
	NetFlow        string `json:"netFlow" doc:"Decimal income minus expenses"`
	ClosingBalance string `json:"closingBalance" doc:"Decimal balance at the end of the month"`
	IsProjection   bool   `json:"isProjection" doc:"True if any contributing entry is a forecast"`
}
