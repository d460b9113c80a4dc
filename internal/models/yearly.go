package models

// YearlyRequest is the batch generation request. The backend contract
// uses snake_case for the numeric knobs and camelCase for the per-entry
// overrides, mirroring the original API.
type YearlyRequest struct {
	Year         int     `json:"year"`
	MonthlyCap   float64 `json:"monthly_cap"`
	MinAmount    float64 `json:"min_amount"`
	MaxAmount    float64 `json:"max_amount"`
	Location     string  `json:"location"`
	FuelAPIKey   string  `json:"fuel_api_key"`
	TelNo        string  `json:"telNo"`
	CustomerName string  `json:"customerName"`
	VehNo        string  `json:"vehNo"`
}

// YearlyReceipt is one synthetic purchase event. It carries the full
// receipt field set plus the year/month bucket it was generated for.
type YearlyReceipt struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	ReceiptFields
}

// YearlyResponse is the successful batch generation response.
type YearlyResponse struct {
	FinancialYearEnd   int             `json:"financial_year_end"`
	FinancialYearStart int             `json:"financial_year_start"`
	MonthlyCap         float64         `json:"monthly_cap"`
	Receipts           []YearlyReceipt `json:"receipts"`
}

// ErrorResponse is the JSON body sent with any non-2xx API status.
type ErrorResponse struct {
	Error string `json:"error"`
}
