package report

// Bucket is one group of bookings in a summary.
type Bucket struct {
	Key     string  `json:"key"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type Summary struct {
	DateFrom     string   `json:"date_from,omitempty"`
	DateTo       string   `json:"date_to,omitempty"`
	FromCode     string   `json:"from_code,omitempty"`
	TotalCount   int      `json:"total_count"`
	TotalRevenue float64  `json:"total_revenue"`
	ByLRType     []Bucket `json:"by_lr_type"`
	ByStatus     []Bucket `json:"by_status"`
	ByDay        []Bucket `json:"by_day"`
}
