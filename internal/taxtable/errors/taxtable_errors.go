package taxtableerrors

import (
	"net/http"

	"github.com/Mthinuay/SingularXpress/internal/shared/apperror"
)

var (
	ErrYearRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Tax year is required",
		http.StatusBadRequest,
	)
	ErrYearFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Tax year must be in the format YYYY-YYYY",
		http.StatusBadRequest,
	)
	ErrYearNotNumeric = apperror.New(
		apperror.CodeInvalidInput,
		"Tax year must contain two numeric years",
		http.StatusBadRequest,
	)
	ErrYearStartTooEarly = apperror.New(
		apperror.CodeInvalidInput,
		"Tax year start must be 1900 or later",
		http.StatusBadRequest,
	)
	ErrYearEndTooLate = apperror.New(
		apperror.CodeInvalidInput,
		"Tax year end cannot be more than one year in the future",
		http.StatusBadRequest,
	)
	ErrYearOrder = apperror.New(
		apperror.CodeInvalidInput,
		"Tax year start must be before tax year end",
		http.StatusBadRequest,
	)
	ErrFileRequired = apperror.New(
		apperror.CodeInvalidInput,
		"No file uploaded or file is empty",
		http.StatusBadRequest,
	)
	ErrFileExtension = apperror.New(
		apperror.CodeInvalidInput,
		"Only .xls and .xlsx files are supported",
		http.StatusBadRequest,
	)
	ErrNoEntries = apperror.New(
		apperror.CodeInvalidInput,
		"No valid tax table entries found",
		http.StatusBadRequest,
	)
	ErrUnreadableWorkbook = apperror.New(
		apperror.CodeInvalidInput,
		"Uploaded file could not be read as a spreadsheet",
		http.StatusBadRequest,
	)
	ErrTaxTableNotFound = apperror.New(
		apperror.CodeNotFound,
		"Tax table not found",
		http.StatusNotFound,
	)
	ErrDuplicateTaxYear = apperror.New(
		apperror.CodeConflict,
		"A tax table for this year range already exists",
		http.StatusConflict,
	)
)
