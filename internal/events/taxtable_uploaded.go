package events

import "time"

const TaxTableUploadedTopic = "hr.taxtable.lifecycle.v1"

type TaxTableUploadedEvent struct {
	EventType  string    `json:"event_type"`
	TaxTableID int64     `json:"tax_table_id"`
	TaxYear    string    `json:"tax_year"`
	EntryCount int       `json:"entry_count"`
	UploadedBy string    `json:"uploaded_by"`
	OccurredAt time.Time `json:"occurred_at"`
}
