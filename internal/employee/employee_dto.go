package employee

type UpsertEmployeeRequest struct {
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	MaidenName     string `json:"maiden_name"`
	Title          string `json:"title"`
	Initials       string `json:"initials"`
	IDType         string `json:"id_type" binding:"required"`
	IDNumber       string `json:"id_number" binding:"required"`
	PreferredName  string `json:"preferred_name"`
	MiddleName     string `json:"middle_name"`
	ContactNumber  string `json:"contact_number"`
	Disability     bool   `json:"disability"`
	DisabilityType string `json:"disability_type"`
	Email          string `json:"email" binding:"required,email"`
	MaritalStatus  string `json:"marital_status"`
	HomeAddress    string `json:"home_address"`
	City           string `json:"city"`
	PostalCode     string `json:"postal_code"`
	StartDate      string `json:"start_date"` // yyyy-MM-dd, optional
	Department     string `json:"department"`
	JobTitle       string `json:"job_title"`
	EmployeeStatus string `json:"employee_status"`
	ReportsTo      string `json:"reports_to"`
	DocumentPath   string `json:"document_path"`
}

type EmployeeResponse struct {
	EmployeeNumber string `json:"employee_number"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	MaidenName     string `json:"maiden_name,omitempty"`
	Title          string `json:"title,omitempty"`
	DateOfBirth    string `json:"date_of_birth,omitempty"` // yyyy-MM-dd or absent
	Initials       string `json:"initials,omitempty"`
	IDType         string `json:"id_type"`
	IDNumber       string `json:"id_number"`
	PreferredName  string `json:"preferred_name,omitempty"`
	Gender         string `json:"gender,omitempty"`
	MiddleName     string `json:"middle_name,omitempty"`
	ContactNumber  string `json:"contact_number,omitempty"`
	Nationality    string `json:"nationality,omitempty"`
	Citizenship    string `json:"citizenship,omitempty"`
	Disability     bool   `json:"disability"`
	DisabilityType string `json:"disability_type,omitempty"`
	Email          string `json:"email"`
	MaritalStatus  string `json:"marital_status,omitempty"`
	HomeAddress    string `json:"home_address,omitempty"`
	City           string `json:"city,omitempty"`
	PostalCode     string `json:"postal_code,omitempty"`
	StartDate      string `json:"start_date,omitempty"`
	Department     string `json:"department,omitempty"`
	JobTitle       string `json:"job_title,omitempty"`
	EmployeeStatus string `json:"employee_status,omitempty"`
	ReportsTo      string `json:"reports_to,omitempty"`
	DocumentPath   string `json:"document_path,omitempty"`
}

// EmployeeOptionResponse is the slim shape used to fill dropdowns such as
// the "reports to" selector.
type EmployeeOptionResponse struct {
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name"`
}
