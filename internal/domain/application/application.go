package application

import (
	"time"

	"github.com/fadeyibigbolahan/mbjobs-backend/internal/common"
)

type Status string

const (
	StatusPending            Status = "pending"
	StatusUnderReview        Status = "underReview"
	StatusInterviewScheduled Status = "interviewScheduled"
	StatusAccepted           Status = "accepted"
	StatusRejected           Status = "rejected"
)

type Application struct {
	ID           common.UUID `json:"id"`
	JobID        common.UUID `json:"job_id"`
	ApprenticeID common.UUID `json:"apprentice_id"`
	CoverLetter  string      `json:"cover_letter,omitempty"`
	Status       Status      `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func ValidStatus(status Status) bool {
	switch status {
	case StatusPending, StatusUnderReview, StatusInterviewScheduled, StatusAccepted, StatusRejected:
		return true
	default:
		return false
	}
}
