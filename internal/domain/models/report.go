package models

import "time"

// DigestRow is one category line of the scheduled dashboard digest.
type DigestRow struct {
	Date           time.Time
	Category       Category
	StockItems     int
	TotalPurchased string
	TotalPaid      string
	BalanceDue     string
	SalesProfit    string
}
