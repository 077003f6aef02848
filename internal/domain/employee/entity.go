package employee

import (
	"time"
)

type Employee struct {
	ID           string
	EmployeeCode string
	Name         string
	Email        *string
	CreatedAt    time.Time
	Deleted      bool

	// DTO
	Active bool
}
