package user

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	usererrors "github.com/Mthinuay/SingularXpress/internal/user/errors"
)

// mapRepositoryError menerjemahkan error dari lapisan database menjadi error domain.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if pgErr.ConstraintName == "uq_user_email" {
			return usererrors.ErrEmailAlreadyRegistered
		}
		if strings.Contains(pgErr.Detail, "email") {
			return usererrors.ErrEmailAlreadyRegistered
		}
	}

	return err
}
