package usererrors

import (
	"net/http"

	"github.com/Mthinuay/SingularXpress/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid email or password",
		http.StatusUnauthorized,
	)
	ErrAccountLocked = apperror.New(
		apperror.CodeLocked,
		"Account locked due to multiple failed attempts. Please try again in 5 minutes",
		http.StatusUnauthorized,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)
	ErrEmailAlreadyRegistered = apperror.New(
		apperror.CodeConflict,
		"Email is already registered",
		http.StatusConflict,
	)
	ErrInvalidEmailDomain = apperror.New(
		apperror.CodeInvalidInput,
		"Email must be a valid '@singular.co.za' address",
		http.StatusBadRequest,
	)
	ErrWeakPassword = apperror.New(
		apperror.CodeInvalidInput,
		"Password must be at least 8 characters long and include uppercase, lowercase, digit, and special character",
		http.StatusBadRequest,
	)
	ErrSamePassword = apperror.New(
		apperror.CodeInvalidInput,
		"New password cannot be the same as the old password",
		http.StatusBadRequest,
	)
	ErrInvalidOTP = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid or expired OTP",
		http.StatusBadRequest,
	)
	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid token",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		apperror.CodeUnauthorized,
		"Token has expired",
		http.StatusUnauthorized,
	)
	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to generate token",
		http.StatusInternalServerError,
	)
)
