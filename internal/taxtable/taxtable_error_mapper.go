package taxtable

import (
	"database/sql"
	"errors"
	"strings"

	taxtableerrors "github.com/Mthinuay/SingularXpress/internal/taxtable/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return taxtableerrors.ErrTaxTableNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_tax_table_year" {
			return taxtableerrors.ErrDuplicateTaxYear
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_tax_table_year") {
		return taxtableerrors.ErrDuplicateTaxYear
	}

	return err
}
