package models

// Shop is one survey-collecting unit of a company.
type Shop struct {
	ID        int64
	CompanyID int64
	Name      string
	Industry  string
}

// Benchmark is one externally maintained (industry, category) reference
// average. This service only reads them.
type Benchmark struct {
	Industry string
	Category string
	Average  float64
}
