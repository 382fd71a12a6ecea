package job

import (
	"time"

	"github.com/fadeyibigbolahan/mbjobs-backend/internal/common"
)

type Status string

const (
	StatusOpen    Status = "open"
	StatusClosed  Status = "closed"
	StatusExpired Status = "expired"
)

type Type string

const (
	TypeFullTime   Type = "full-time"
	TypePartTime   Type = "part-time"
	TypeInternship Type = "internship"
	TypeContract   Type = "contract"
)

type Job struct {
	ID           common.UUID `json:"id"`
	EmployerID   common.UUID `json:"employer_id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	CategoryID   common.UUID `json:"category_id"`
	Requirements []string    `json:"requirements"`
	Location     string      `json:"location"`
	JobType      Type        `json:"job_type"`
	Stipend      string      `json:"stipend,omitempty"`
	SalaryMin    int         `json:"salary_min"`
	SalaryMax    int         `json:"salary_max"`
	Deadline     time.Time   `json:"deadline"`
	Status       Status      `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// CanTransition is the job status table: open may close or expire,
// closed and expired are terminal.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	return from == StatusOpen && (to == StatusClosed || to == StatusExpired)
}

func ValidStatus(status Status) bool {
	switch status {
	case StatusOpen, StatusClosed, StatusExpired:
		return true
	default:
		return false
	}
}

func ValidType(jobType Type) bool {
	switch jobType {
	case TypeFullTime, TypePartTime, TypeInternship, TypeContract:
		return true
	default:
		return false
	}
}
