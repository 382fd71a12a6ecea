package app

import (
	"context"
	"strings"
	"time"

	"github.com/fadeyibigbolahan/mbjobs-backend/internal/common"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/application"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/employment"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/event"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/job"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/user"
)

type ApplicationService struct {
	repo        application.Repository
	jobs        *JobService
	employments *EmploymentService
	events      event.Repository
}

func NewApplicationService(repo application.Repository, jobs *JobService, employments *EmploymentService, events event.Repository) *ApplicationService {
	return &ApplicationService{repo: repo, jobs: jobs, employments: employments, events: events}
}

func (s *ApplicationService) Apply(ctx context.Context, apprenticeID, jobID common.UUID, coverLetter string) (*application.Application, error) {
	j, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.Status != job.StatusOpen {
		return nil, common.NewError(common.CodeConflict, "job is no longer accepting applications", nil)
	}
	if _, err := s.repo.FindByJobAndApprentice(ctx, jobID, apprenticeID); err == nil {
		return nil, common.NewError(common.CodeConflict, "you have already applied for this job", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	created, err := s.repo.Create(ctx, application.Application{
		JobID:        jobID,
		ApprenticeID: apprenticeID,
		CoverLetter:  coverLetter,
		Status:       application.StatusPending,
	})
	if err != nil {
		return nil, err
	}
	_ = s.events.Create(ctx, event.Event{Name: "application.created", UserID: &apprenticeID, Payload: eventPayload(ctx, map[string]string{
		"application_id": created.ID.String(),
		"job_id":         jobID.String(),
	})})
	return created, nil
}

// AcceptTerms carries the optional employment parameters an employer
// may attach when accepting an application.
type AcceptTerms struct {
	Salary  int
	Terms   string
	EndDate *time.Time
}

// UpdateStatus moves an application between review states. Transitions
// are deliberately unrestricted to model human review workflows, but
// acceptance has side effects: the job closes and an employment record
// is created once per (job, apprentice).
func (s *ApplicationService) UpdateStatus(ctx context.Context, actor user.Actor, applicationID common.UUID, status application.Status, terms AcceptTerms) (*application.Application, error) {
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	j, err := s.jobs.Get(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if !IsJobOwner(j, actor) {
		return nil, common.NewError(common.CodeForbidden, "application belongs to another employer's job", nil)
	}
	next := application.Status(strings.TrimSpace(string(status)))
	if !application.ValidStatus(next) {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "status must be pending, underReview, interviewScheduled, accepted, or rejected"})
	}
	updated, err := s.repo.UpdateStatus(ctx, applicationID, next)
	if err != nil {
		return nil, err
	}
	if next == application.StatusAccepted {
		if err := s.jobs.CloseOnAcceptance(ctx, j.ID); err != nil {
			return nil, err
		}
		salary := terms.Salary
		if salary == 0 {
			salary = j.SalaryMin
		}
		employmentTerms := terms.Terms
		if employmentTerms == "" {
			employmentTerms = "Standard apprenticeship terms"
		}
		if _, err := s.employments.Ensure(ctx, employment.Employment{
			JobID:      j.ID,
			EmployerID: j.EmployerID,
			EmployeeID: app.ApprenticeID,
			Salary:     salary,
			Terms:      employmentTerms,
			EndDate:    terms.EndDate,
		}); err != nil {
			return nil, err
		}
	}
	_ = s.events.Create(ctx, event.Event{Name: "application." + eventSuffix(next), UserID: &actor.ID, Payload: eventPayload(ctx, map[string]string{
		"application_id": updated.ID.String(),
		"status":         string(next),
	})})
	return updated, nil
}

func (s *ApplicationService) Get(ctx context.Context, id common.UUID) (*application.Application, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ApplicationService) ListByApprentice(ctx context.Context, apprenticeID common.UUID) ([]application.Application, error) {
	return s.repo.ListByApprentice(ctx, apprenticeID)
}

func (s *ApplicationService) ListByEmployer(ctx context.Context, employerID common.UUID) ([]application.Application, error) {
	return s.repo.ListByEmployer(ctx, employerID)
}

// ListByJob returns a job's applications to its owning employer.
func (s *ApplicationService) ListByJob(ctx context.Context, actor user.Actor, jobID common.UUID) ([]application.Application, error) {
	j, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !IsJobOwner(j, actor) {
		return nil, common.NewError(common.CodeForbidden, "job belongs to another employer", nil)
	}
	return s.repo.ListByJob(ctx, jobID)
}

func eventSuffix(status application.Status) string {
	switch status {
	case application.StatusAccepted:
		return "accepted"
	case application.StatusRejected:
		return "rejected"
	default:
		return "status_changed"
	}
}
