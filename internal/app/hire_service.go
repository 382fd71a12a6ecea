package app

import (
	"context"
	"sort"
	"time"

	"github.com/fadeyibigbolahan/mbjobs-backend/internal/common"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/application"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/employment"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/event"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/job"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/user"
)

type HireService struct {
	jobs         job.Repository
	hires        job.HireRepository
	applications application.Repository
	employments  *EmploymentService
	events       event.Repository
}

func NewHireService(jobs job.Repository, hires job.HireRepository, applications application.Repository, employments *EmploymentService, events event.Repository) *HireService {
	return &HireService{jobs: jobs, hires: hires, applications: applications, employments: employments, events: events}
}

// HireTerms are the employer-supplied terms attached to an offer.
// Zero values fall back to the job's salary ceiling and job type.
type HireTerms struct {
	Salary         int
	EmploymentType job.Type
	StartDate      *time.Time
	Notes          string
}

// Create extends an offer to a candidate. The candidate must hold an
// accepted application for the job, and may hold at most one hire
// entry per job.
func (s *HireService) Create(ctx context.Context, actor user.Actor, jobID, candidateID common.UUID, terms HireTerms) (*job.Hire, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !IsJobOwner(j, actor) {
		return nil, common.NewError(common.CodeForbidden, "job belongs to another employer", nil)
	}
	app, err := s.applications.FindByJobAndApprentice(ctx, jobID, candidateID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeValidation, "candidate must be accepted first", nil)
		}
		return nil, err
	}
	if app.Status != application.StatusAccepted {
		return nil, common.NewError(common.CodeValidation, "candidate must be accepted first", nil)
	}
	if _, err := s.hires.FindByJobAndCandidate(ctx, jobID, candidateID); err == nil {
		return nil, common.NewError(common.CodeConflict, "candidate already hired for this position", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	salary := terms.Salary
	if salary == 0 {
		salary = j.SalaryMax
	}
	employmentType := terms.EmploymentType
	if employmentType == "" {
		employmentType = j.JobType
	}
	created, err := s.hires.Create(ctx, job.Hire{
		JobID:          jobID,
		CandidateID:    candidateID,
		Status:         job.HireOffered,
		HireDate:       time.Now().UTC(),
		StartDate:      terms.StartDate,
		Salary:         salary,
		EmploymentType: employmentType,
		Notes:          terms.Notes,
	})
	if err != nil {
		return nil, err
	}
	_ = s.events.Create(ctx, event.Event{Name: "hire.offered", UserID: &candidateID, Payload: eventPayload(ctx, map[string]string{
		"hire_id": created.ID.String(),
		"job_id":  jobID.String(),
	})})
	return created, nil
}

// RespondToOffer is the candidate's answer. Only the referenced
// candidate may respond, and only while the offer is still open.
func (s *HireService) RespondToOffer(ctx context.Context, actor user.Actor, hireID common.UUID, accept bool) (*job.Hire, error) {
	h, err := s.hires.GetByID(ctx, hireID)
	if err != nil {
		return nil, err
	}
	if h.CandidateID != actor.ID {
		return nil, common.NewError(common.CodeForbidden, "only the candidate can respond to this offer", nil)
	}
	if h.Status != job.HireOffered {
		return nil, common.NewError(common.CodeConflict, "this offer has already been responded to", nil)
	}
	if accept {
		h.Status = job.HireAccepted
		if h.StartDate == nil {
			now := time.Now().UTC()
			h.StartDate = &now
		}
	} else {
		h.Status = job.HireRejected
	}
	updated, err := s.hires.Update(ctx, *h)
	if err != nil {
		return nil, err
	}
	_ = s.events.Create(ctx, event.Event{Name: "hire.responded", UserID: &actor.ID, Payload: eventPayload(ctx, map[string]string{
		"hire_id": updated.ID.String(),
		"status":  string(updated.Status),
	})})
	return updated, nil
}

// UpdateStatus walks the hire state machine. Authorization is
// status-dependent: accepted/rejected belong to the candidate,
// onboarding/active/terminated/completed to the employer. A wrong
// actor-status combination is rejected even when the actor is a party
// to the hire.
func (s *HireService) UpdateStatus(ctx context.Context, actor user.Actor, jobID, hireID common.UUID, status job.HireStatus, startDate, endDate *time.Time) (*job.Hire, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	h, err := s.hires.GetByID(ctx, hireID)
	if err != nil {
		return nil, err
	}
	if h.JobID != j.ID {
		return nil, common.NewError(common.CodeNotFound, "hire not found", nil)
	}
	switch {
	case job.CandidateHireStatus(status):
		if h.CandidateID != actor.ID {
			return nil, common.NewError(common.CodeForbidden, "only the candidate can accept or reject offers", nil)
		}
	case job.EmployerHireStatus(status):
		if !IsJobOwner(j, actor) {
			return nil, common.NewError(common.CodeForbidden, "only the employer can update this status", nil)
		}
	default:
		return nil, common.NewValidationError("invalid hire status", map[string]string{"status": "status must be accepted, rejected, onboarding, active, terminated, or completed"})
	}
	if !job.HireCanTransition(h.Status, status) {
		return nil, common.NewError(common.CodeConflict, "hire cannot move from "+string(h.Status)+" to "+string(status), nil)
	}
	h.Status = status
	if startDate != nil {
		h.StartDate = startDate
	}
	if endDate != nil {
		h.EndDate = endDate
	}
	if status == job.HireAccepted && h.StartDate == nil {
		now := time.Now().UTC()
		h.StartDate = &now
	}
	updated, err := s.hires.Update(ctx, *h)
	if err != nil {
		return nil, err
	}
	if status == job.HireActive && updated.StartDate != nil {
		if _, err := s.employments.Ensure(ctx, employment.Employment{
			JobID:      j.ID,
			EmployerID: j.EmployerID,
			EmployeeID: updated.CandidateID,
			Salary:     updated.Salary,
			Terms:      "Standard apprenticeship terms",
			StartDate:  *updated.StartDate,
			EndDate:    updated.EndDate,
		}); err != nil {
			return nil, err
		}
	}
	_ = s.events.Create(ctx, event.Event{Name: "hire.status_changed", UserID: &actor.ID, Payload: eventPayload(ctx, map[string]string{
		"hire_id": updated.ID.String(),
		"status":  string(status),
	})})
	return updated, nil
}

// ListByJob returns a job's hires to its owner, ordered by status
// priority then offer date.
func (s *HireService) ListByJob(ctx context.Context, actor user.Actor, jobID common.UUID) ([]job.Hire, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !IsJobOwner(j, actor) {
		return nil, common.NewError(common.CodeForbidden, "job belongs to another employer", nil)
	}
	hires, err := s.hires.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	job.SortHires(hires)
	return hires, nil
}

// ListByCandidate returns the candidate's own hires, newest offer
// first.
func (s *HireService) ListByCandidate(ctx context.Context, candidateID common.UUID) ([]job.Hire, error) {
	hires, err := s.hires.ListByCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(hires, func(i, k int) bool {
		return hires[i].HireDate.After(hires[k].HireDate)
	})
	return hires, nil
}

// Get returns a hire to either party.
func (s *HireService) Get(ctx context.Context, actor user.Actor, hireID common.UUID) (*job.Hire, error) {
	h, err := s.hires.GetByID(ctx, hireID)
	if err != nil {
		return nil, err
	}
	j, err := s.jobs.GetByID(ctx, h.JobID)
	if err != nil {
		return nil, err
	}
	if !IsHireParty(j, h, actor) {
		return nil, common.NewError(common.CodeForbidden, "not a party to this hire", nil)
	}
	return h, nil
}

// HireStats summarizes a hire listing for dashboards.
type HireStats struct {
	Total      int `json:"total"`
	Offered    int `json:"offered"`
	Accepted   int `json:"accepted"`
	Onboarding int `json:"onboarding"`
	Active     int `json:"active"`
	Completed  int `json:"completed"`
	Terminated int `json:"terminated"`
	Rejected   int `json:"rejected"`
}

func ComputeHireStats(hires []job.Hire) HireStats {
	stats := HireStats{Total: len(hires)}
	for _, h := range hires {
		switch h.Status {
		case job.HireOffered:
			stats.Offered++
		case job.HireAccepted:
			stats.Accepted++
		case job.HireOnboarding:
			stats.Onboarding++
		case job.HireActive:
			stats.Active++
		case job.HireCompleted:
			stats.Completed++
		case job.HireTerminated:
			stats.Terminated++
		case job.HireRejected:
			stats.Rejected++
		}
	}
	return stats
}

// TimelineEntry is one step of a candidate's journey through a hire.
type TimelineEntry struct {
	Event       string    `json:"event"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
}

// Timeline reconstructs the candidate-facing history of a hire from
// the application and the hire's recorded dates.
func (s *HireService) Timeline(ctx context.Context, actor user.Actor, hireID common.UUID) ([]TimelineEntry, error) {
	h, err := s.hires.GetByID(ctx, hireID)
	if err != nil {
		return nil, err
	}
	if h.CandidateID != actor.ID {
		return nil, common.NewError(common.CodeForbidden, "not a party to this hire", nil)
	}
	j, err := s.jobs.GetByID(ctx, h.JobID)
	if err != nil {
		return nil, err
	}
	var timeline []TimelineEntry
	if app, err := s.applications.FindByJobAndApprentice(ctx, h.JobID, h.CandidateID); err == nil {
		timeline = append(timeline, TimelineEntry{Event: "applied", Date: app.CreatedAt, Description: "Applied for " + j.Title})
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	timeline = append(timeline, TimelineEntry{Event: "offer_sent", Date: h.HireDate, Description: "Received job offer from employer"})
	switch h.Status {
	case job.HireAccepted, job.HireOnboarding, job.HireActive, job.HireCompleted, job.HireTerminated:
		if h.StartDate != nil {
			timeline = append(timeline, TimelineEntry{Event: "offer_accepted", Date: *h.StartDate, Description: "Accepted the job offer"})
		}
	case job.HireRejected:
		timeline = append(timeline, TimelineEntry{Event: "offer_declined", Date: h.UpdatedAt, Description: "Declined the job offer"})
	}
	if h.Status == job.HireActive && h.StartDate != nil {
		timeline = append(timeline, TimelineEntry{Event: "employment_started", Date: *h.StartDate, Description: "Started working in the position"})
	}
	if h.EndDate != nil && (h.Status == job.HireCompleted || h.Status == job.HireTerminated) {
		timeline = append(timeline, TimelineEntry{Event: "employment_ended", Date: *h.EndDate, Description: "Employment " + string(h.Status)})
	}
	sort.SliceStable(timeline, func(i, k int) bool {
		return timeline[i].Date.Before(timeline[k].Date)
	})
	return timeline, nil
}
