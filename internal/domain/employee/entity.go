package employee

import (
	"time"
)

// Employee mirrors the external directory's read model. This core never
// mutates employees; it only resolves ids, activity, and org placement.
type Employee struct {
	ID           string
	FirstName    string
	LastName     string
	DepartmentID *string
	PositionID   *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO
	DepartmentName *string
	PositionName   *string
}

func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

type Department struct {
	ID   string
	Name string
}

type Position struct {
	ID   string
	Name string
}
