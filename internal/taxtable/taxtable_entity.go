package taxtable

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TaxTable struct {
	ID           int64
	TaxYear      string // label "YYYY-YYYY"
	FileName     string
	FileURL      string
	UploadedBy   uuid.UUID
	UploadedDate time.Time
}

// TaxTableEntry is one remuneration bracket row. Entries are written in bulk
// during ingestion and never individually mutated afterwards.
type TaxTableEntry struct {
	ID               int64
	TaxTableID       int64
	Remuneration     string // "low-high" band, digits only
	AnnualEquivalent decimal.Decimal
	TaxUnder65       decimal.Decimal
}
