package employee

// Employee is the read-only directory entry the payroll core needs.
type Employee struct {
	ID           string
	CompanyID    string
	FullName     string
	EmployeeCode string
	IsActive     bool
}
