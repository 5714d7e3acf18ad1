package employeeerrors

import (
	"net/http"

	"github.com/Mthinuay/SingularXpress/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrIDNumberExists = apperror.New(
		apperror.CodeConflict,
		"ID number already exists",
		http.StatusConflict,
	)
	ErrFirstNameRequired = apperror.New(
		apperror.CodeInvalidInput,
		"First name is required",
		http.StatusBadRequest,
	)
	ErrLastNameRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Last name is required",
		http.StatusBadRequest,
	)
	ErrEmailRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Email is required",
		http.StatusBadRequest,
	)
	ErrEmailDomain = apperror.New(
		apperror.CodeInvalidInput,
		"Email must end with @singular.co.za",
		http.StatusBadRequest,
	)
	ErrInvalidIDNumber = apperror.New(
		apperror.CodeInvalidInput,
		"ID number must be exactly 13 digits",
		http.StatusBadRequest,
	)
	ErrInvalidPassport = apperror.New(
		apperror.CodeInvalidInput,
		"Passport must be 6-9 alphanumeric characters",
		http.StatusBadRequest,
	)
	ErrInvalidIDType = apperror.New(
		apperror.CodeInvalidInput,
		"ID type must be either 'id' or 'passport'",
		http.StatusBadRequest,
	)
)
