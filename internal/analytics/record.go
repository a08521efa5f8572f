package analytics

import "time"

// SalesRecord is one transaction line from a period-sales table. Records are
// read-only once consolidated and rebuilt from the store on every request.
type SalesRecord struct {
	OrderDate  time.Time
	ProductID  int64
	Quantity   int64
	Price      float64
	TotalSales float64
}

// Product is reference data joined against sales by ProductID.
type Product struct {
	ID   int64
	Name string
	Cost float64
}
