package employee

import "time"

// Employee is keyed by the generated employee number rather than a surrogate
// ID; the number is stable for the lifetime of the record.
type Employee struct {
	EmployeeNumber string `gorm:"primaryKey"`
	FirstName      string
	LastName       string
	MaidenName     string
	Title          string
	DateOfBirth    *time.Time
	Initials       string
	IDType         string `gorm:"column:id_type"` // "id" or "passport"
	IDNumber       string `gorm:"column:id_number;uniqueIndex:uq_employee_id_number"`
	PreferredName  string
	Gender         string
	MiddleName     string
	ContactNumber  string
	Nationality    string
	Citizenship    string
	Disability     bool
	DisabilityType string
	Email          string
	MaritalStatus  string
	HomeAddress    string
	City           string
	PostalCode     string
	StartDate      *time.Time
	Department     string
	JobTitle       string
	EmployeeStatus string
	ReportsTo      string
	DocumentPath   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Employee) TableName() string { return "employees" }
