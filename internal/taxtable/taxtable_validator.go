package taxtable

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"

	taxtableerrors "github.com/Mthinuay/SingularXpress/internal/taxtable/errors"
)

// NormalizeYear strips surrounding whitespace and stray quote characters
// that spreadsheets and some clients wrap around the year field.
func NormalizeYear(year string) string {
	return strings.Trim(year, " \t\r\n\"'")
}

// ValidateYearLabel checks the "YYYY-YYYY" label alone. Used both by the
// upload path and by administrative year edits.
func ValidateYearLabel(year string) error {
	year = NormalizeYear(year)
	if year == "" {
		return taxtableerrors.ErrYearRequired
	}

	parts := strings.Split(year, "-")
	if len(parts) != 2 {
		return taxtableerrors.ErrYearFormat
	}

	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return taxtableerrors.ErrYearNotNumeric
	}
	end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return taxtableerrors.ErrYearNotNumeric
	}

	if start < 1900 {
		return taxtableerrors.ErrYearStartTooEarly
	}
	if end > time.Now().Year()+1 {
		return taxtableerrors.ErrYearEndTooLate
	}
	if start >= end {
		return taxtableerrors.ErrYearOrder
	}

	return nil
}

// ValidateUpload runs the pre-processing checks in a fixed order and returns
// the first failure. No file or row processing happens before it passes.
func ValidateUpload(year string, fileName string, fileSize int) error {
	if err := ValidateYearLabel(year); err != nil {
		return err
	}

	if fileName == "" || fileSize <= 0 {
		return taxtableerrors.ErrFileRequired
	}

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xls", ".xlsx":
	default:
		return taxtableerrors.ErrFileExtension
	}

	return nil
}
