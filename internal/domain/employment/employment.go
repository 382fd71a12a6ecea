package employment

import (
	"context"
	"time"

	"github.com/fadeyibigbolahan/mbjobs-backend/internal/common"
)

type Status string

const (
	StatusActive     Status = "active"
	StatusTerminated Status = "terminated"
	StatusCompleted  Status = "completed"
)

// Employment is the durable record of an actual employment
// relationship. It outlives the Application and Hire bookkeeping that
// produced it and is never deleted, only status-transitioned.
type Employment struct {
	ID         common.UUID `json:"id"`
	JobID      common.UUID `json:"job_id"`
	EmployerID common.UUID `json:"employer_id"`
	EmployeeID common.UUID `json:"employee_id"`
	StartDate  time.Time   `json:"start_date"`
	EndDate    *time.Time  `json:"end_date,omitempty"`
	Status     Status      `json:"status"`
	Salary     int         `json:"salary"`
	Terms      string      `json:"terms,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

func ValidStatus(status Status) bool {
	switch status {
	case StatusActive, StatusTerminated, StatusCompleted:
		return true
	default:
		return false
	}
}

type Repository interface {
	// Create inserts the record; the (job, employee) unique constraint
	// is the idempotency anchor, a duplicate insert surfaces as
	// CodeConflict.
	Create(ctx context.Context, e Employment) (*Employment, error)
	GetByID(ctx context.Context, id common.UUID) (*Employment, error)
	FindByJobAndEmployee(ctx context.Context, jobID, employeeID common.UUID) (*Employment, error)
	Update(ctx context.Context, e Employment) (*Employment, error)
	ListByEmployer(ctx context.Context, employerID common.UUID) ([]Employment, error)
	ListByEmployee(ctx context.Context, employeeID common.UUID) ([]Employment, error)
}
