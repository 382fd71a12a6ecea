package job

import (
	"sort"
	"time"

	"github.com/fadeyibigbolahan/mbjobs-backend/internal/common"
)

type HireStatus string

const (
	HireOffered    HireStatus = "offered"
	HireAccepted   HireStatus = "accepted"
	HireRejected   HireStatus = "rejected"
	HireOnboarding HireStatus = "onboarding"
	HireActive     HireStatus = "active"
	HireTerminated HireStatus = "terminated"
	HireCompleted  HireStatus = "completed"
)

// Hire is the per-candidate offer/employment track owned by a Job. It
// has its own id and its own authorization rules: the candidate answers
// the offer, the employer drives everything after.
type Hire struct {
	ID             common.UUID `json:"id"`
	JobID          common.UUID `json:"job_id"`
	CandidateID    common.UUID `json:"candidate_id"`
	Status         HireStatus  `json:"status"`
	HireDate       time.Time   `json:"hire_date"`
	StartDate      *time.Time  `json:"start_date,omitempty"`
	EndDate        *time.Time  `json:"end_date,omitempty"`
	Salary         int         `json:"salary"`
	EmploymentType Type        `json:"employment_type"`
	Notes          string      `json:"notes,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

var hireTransitions = map[HireStatus][]HireStatus{
	HireOffered:    {HireAccepted, HireRejected},
	HireAccepted:   {HireOnboarding},
	HireOnboarding: {HireActive},
	HireActive:     {HireCompleted, HireTerminated},
}

// HireCanTransition enforces the strict hire graph:
// offered -> accepted|rejected, accepted -> onboarding -> active ->
// completed|terminated. Unlike applications, hires never skip steps.
func HireCanTransition(from, to HireStatus) bool {
	for _, next := range hireTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CandidateHireStatus reports whether a transition target belongs to
// the candidate (answering the offer) rather than the employer.
func CandidateHireStatus(status HireStatus) bool {
	return status == HireAccepted || status == HireRejected
}

func EmployerHireStatus(status HireStatus) bool {
	switch status {
	case HireOnboarding, HireActive, HireTerminated, HireCompleted:
		return true
	default:
		return false
	}
}

func ValidHireStatus(status HireStatus) bool {
	return CandidateHireStatus(status) || EmployerHireStatus(status) || status == HireOffered
}

// hirePriority orders listings by operational relevance, most urgent
// first, matching the employer dashboard.
var hirePriority = map[HireStatus]int{
	HireActive:     1,
	HireOnboarding: 2,
	HireOffered:    3,
	HireAccepted:   4,
	HireCompleted:  5,
	HireTerminated: 6,
	HireRejected:   7,
}

func HirePriority(status HireStatus) int {
	if p, ok := hirePriority[status]; ok {
		return p
	}
	return len(hirePriority) + 1
}

// SortHires orders hires by status priority, then by offer date
// descending.
func SortHires(hires []Hire) {
	sort.SliceStable(hires, func(i, j int) bool {
		if HirePriority(hires[i].Status) != HirePriority(hires[j].Status) {
			return HirePriority(hires[i].Status) < HirePriority(hires[j].Status)
		}
		return hires[i].HireDate.After(hires[j].HireDate)
	})
}
