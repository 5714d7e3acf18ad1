package taxtable

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// EntryBatchSize caps how many entries go into a single INSERT.
const EntryBatchSize = 100

//go:generate mockgen -source=taxtable_repo.go -destination=mock/taxtable_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, table *TaxTable) error
	InsertEntries(ctx context.Context, entries []TaxTableEntry) error
	FindByID(ctx context.Context, id int64) (*TaxTable, error)
	FindAllByUploadDateDesc(ctx context.Context) ([]TaxTable, error)
	FindEntriesByTableID(ctx context.Context, tableID int64) ([]TaxTableEntry, error)
	Update(ctx context.Context, table *TaxTable) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

type querier interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
	PrepareContext(context.Context, string) (*sql.Stmt, error)
}

func (r *repository) q() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *repository) Create(ctx context.Context, table *TaxTable) error {
	query := `
        INSERT INTO tax_tables (tax_year, file_name, file_url, uploaded_by, uploaded_date)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING tax_table_id
    `

	return r.q().QueryRowContext(
		ctx, query,
		table.TaxYear, table.FileName, table.FileURL, table.UploadedBy, table.UploadedDate,
	).Scan(&table.ID)
}

// InsertEntries writes entries in batches so one oversized sheet cannot
// produce a single enormous statement.
func (r *repository) InsertEntries(ctx context.Context, entries []TaxTableEntry) error {
	for start := 0; start < len(entries); start += EntryBatchSize {
		end := start + EntryBatchSize
		if end > len(entries) {
			end = len(entries)
		}
		if err := r.insertEntryBatch(ctx, entries[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) insertEntryBatch(ctx context.Context, batch []TaxTableEntry) error {
	query := `
        INSERT INTO tax_table_entries (tax_table_id, remuneration, annual_equivalent, tax_under_65)
        VALUES ($1, $2, $3, $4)
    `

	stmt, err := r.q().PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range batch {
		if _, err := stmt.ExecContext(ctx, e.TaxTableID, e.Remuneration, e.AnnualEquivalent, e.TaxUnder65); err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*TaxTable, error) {
	query := `
        SELECT tax_table_id, tax_year, file_name, file_url, uploaded_by, uploaded_date
        FROM tax_tables
        WHERE tax_table_id = $1
    `

	var t TaxTable
	var uploadedBy string
	err := r.q().QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.TaxYear, &t.FileName, &t.FileURL, &uploadedBy, &t.UploadedDate,
	)
	if err != nil {
		return nil, err
	}
	t.UploadedBy, _ = uuid.Parse(uploadedBy)
	return &t, nil
}

func (r *repository) FindAllByUploadDateDesc(ctx context.Context) ([]TaxTable, error) {
	query := `
        SELECT tax_table_id, tax_year, file_name, file_url, uploaded_by, uploaded_date
        FROM tax_tables
        ORDER BY uploaded_date DESC
    `

	rows, err := r.q().QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []TaxTable
	for rows.Next() {
		var t TaxTable
		var uploadedBy string
		if err := rows.Scan(&t.ID, &t.TaxYear, &t.FileName, &t.FileURL, &uploadedBy, &t.UploadedDate); err != nil {
			return nil, err
		}
		t.UploadedBy, _ = uuid.Parse(uploadedBy)
		tables = append(tables, t)
	}

	return tables, rows.Err()
}

func (r *repository) FindEntriesByTableID(ctx context.Context, tableID int64) ([]TaxTableEntry, error) {
	query := `
        SELECT id, tax_table_id, remuneration, annual_equivalent, tax_under_65
        FROM tax_table_entries
        WHERE tax_table_id = $1
        ORDER BY id ASC
    `

	rows, err := r.q().QueryContext(ctx, query, tableID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []TaxTableEntry
	for rows.Next() {
		var e TaxTableEntry
		if err := rows.Scan(&e.ID, &e.TaxTableID, &e.Remuneration, &e.AnnualEquivalent, &e.TaxUnder65); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (r *repository) Update(ctx context.Context, table *TaxTable) error {
	query := `
        UPDATE tax_tables
        SET tax_year = $2, file_name = $3, file_url = $4, updated_at = $5
        WHERE tax_table_id = $1
    `

	result, err := r.q().ExecContext(ctx, query, table.ID, table.TaxYear, table.FileName, table.FileURL, time.Now().UTC())
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	// Entries cascade via FK constraint.
	result, err := r.q().ExecContext(ctx, `DELETE FROM tax_tables WHERE tax_table_id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
