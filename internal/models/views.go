package models

// Invoice is a reading flattened with the customer it belongs to.
type Invoice struct {
	Reading
	CustomerID   string `json:"customerId"`
	CustomerName string `json:"customerName"`
	MeterNumber  string `json:"meterNumber"`
}

// MonthlyUsage is total consumption recorded in one calendar month.
type MonthlyUsage struct {
	// Month is formatted "2006-01".
	Month       string  `json:"month"`
	Consumption float64 `json:"consumption"`
}

// Summary is the dashboard view across all customers.
type Summary struct {
	TotalRevenue float64        `json:"totalRevenue"`
	TotalUnpaid  float64        `json:"totalUnpaid"`
	ActiveMeters int            `json:"activeMeters"`
	Monthly      []MonthlyUsage `json:"monthly"`
}
