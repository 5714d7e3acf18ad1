package employee

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	IDTypeNational = "id"
	IDTypePassport = "passport"

	NationalitySouthAfrican    = "South African"
	NationalityNonSouthAfrican = "Non-South African"

	GenderMale   = "Male"
	GenderFemale = "Female"
)

var (
	nationalIDPattern = regexp.MustCompile(`^\d{13}$`)
	passportPattern   = regexp.MustCompile(`^[a-zA-Z0-9]{6,9}$`)
)

// GenerateEmployeeNumber builds the "ABC007" style number: the first three
// letters of the surname uppercased (padded with X for short surnames)
// followed by a zero-padded sequence.
func GenerateEmployeeNumber(lastName string, sequence int64) string {
	prefix := strings.ToUpper(lastName)
	if len(prefix) >= 3 {
		prefix = prefix[:3]
	} else {
		for len(prefix) < 3 {
			prefix += "X"
		}
	}
	return fmt.Sprintf("%s%03d", prefix, sequence)
}

// ApplyIdentity derives DOB, gender and nationality from the identity
// document. Malformed values never error, they leave the fields untouched;
// the record keeps whatever was there before.
func ApplyIdentity(emp *Employee) {
	switch emp.IDType {
	case IDTypeNational:
		populateFromNationalID(emp)
	case IDTypePassport:
		populateFromPassport(emp)
	}
}

// A 13-digit South African ID encodes YYMMDD, a 4-digit gender sequence,
// and a citizenship digit: 9301015800086 -> 1993-01-01, Male, South African.
func populateFromNationalID(emp *Employee) {
	if !nationalIDPattern.MatchString(emp.IDNumber) {
		return
	}

	if dob, ok := parseIDBirthDate(emp.IDNumber[:6]); ok {
		emp.DateOfBirth = &dob
	}

	genderDigits, _ := strconv.Atoi(emp.IDNumber[6:10])
	if genderDigits >= 5000 {
		emp.Gender = GenderMale
	} else {
		emp.Gender = GenderFemale
	}

	if emp.IDNumber[10] == '0' {
		emp.Nationality = NationalitySouthAfrican
	} else {
		emp.Nationality = NationalityNonSouthAfrican
	}
}

func populateFromPassport(emp *Employee) {
	if !passportPattern.MatchString(emp.IDNumber) {
		return
	}

	emp.DateOfBirth = nil
	emp.Gender = ""
	emp.Nationality = NationalityNonSouthAfrican
}

// parseIDBirthDate resolves the two-digit year: below 30 is the 2000s,
// otherwise the 1900s. Impossible calendar dates (such as Feb 29 in a
// non-leap resolved year) report false.
func parseIDBirthDate(yymmdd string) (time.Time, bool) {
	yy, _ := strconv.Atoi(yymmdd[0:2])
	month, _ := strconv.Atoi(yymmdd[2:4])
	day, _ := strconv.Atoi(yymmdd[4:6])

	year := 1900 + yy
	if yy < 30 {
		year = 2000 + yy
	}

	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}

	dob := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if dob.Year() != year || dob.Month() != time.Month(month) || dob.Day() != day {
		return time.Time{}, false
	}
	return dob, true
}

// DeriveDefaults recomputes the dependent fields in one place after any
// field change, instead of scattering per-field side effects.
func DeriveDefaults(emp *Employee) {
	if !emp.Disability {
		emp.DisabilityType = ""
	}
	if emp.Gender == GenderMale {
		emp.MaidenName = ""
	}
	if emp.Nationality != "" {
		emp.Citizenship = emp.Nationality
	}
}
