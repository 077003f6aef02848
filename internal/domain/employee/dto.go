package employee

import (
	"strings"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	EmployeeCode string  `json:"employee_code" validate:"required,min=2,max=100"`
	Name         string  `json:"name" validate:"required,max=255"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email,max=254"`
}

func (r *CreateEmployeeRequest) Validate() error {
	r.EmployeeCode = strings.TrimSpace(r.EmployeeCode)
	r.Name = strings.TrimSpace(r.Name)
	if r.Email != nil {
		trimmed := strings.TrimSpace(*r.Email)
		if trimmed == "" {
			r.Email = nil
		} else {
			r.Email = &trimmed
		}
	}
	return validator.Struct(r)
}

type EmployeeResponse struct {
	ID           string  `json:"id"`
	EmployeeCode string  `json:"employee_code"`
	Name         string  `json:"name"`
	Email        *string `json:"email"`
	CreatedAt    string  `json:"created_at"`
	Active       bool    `json:"active"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		EmployeeCode: e.EmployeeCode,
		Name:         e.Name,
		Email:        e.Email,
		CreatedAt:    e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Active:       e.Active,
	}
}
