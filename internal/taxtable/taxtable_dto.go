package taxtable

import "github.com/shopspring/decimal"

// External payloads use camelCase keys; the front end consumes them directly.

type UploadTaxTableRequest struct {
	Year     string
	FileName string
	Data     []byte
}

type UploadTaxTableResponse struct {
	TaxTableID   int64  `json:"taxTableId"`
	Year         string `json:"year"`
	FileName     string `json:"fileName"`
	FileURL      string `json:"fileUrl"`
	UploadedDate string `json:"uploadedDate"`
	EntryCount   int    `json:"entryCount"`
	Message      string `json:"message"`
}

type TaxTableResponse struct {
	TaxTableID       int64  `json:"taxTableId"`
	Year             string `json:"year"`
	FileName         string `json:"fileName"`
	FileURL          string `json:"fileUrl"`
	UploadedDate     string `json:"uploadedDate"`
	UploadedByUserID string `json:"uploadedByUserId"`
}

type TaxTableEntryResponse struct {
	ID               int64           `json:"id"`
	Remuneration     string          `json:"remuneration"`
	AnnualEquivalent decimal.Decimal `json:"annualEquivalent"`
	TaxUnder65       decimal.Decimal `json:"taxUnder65"`
}

type UpdateTaxTableRequest struct {
	Year string `json:"year" binding:"required"`
}
