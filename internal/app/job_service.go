package app

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/fadeyibigbolahan/mbjobs-backend/internal/common"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/application"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/event"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/job"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/user"
)

type JobService struct {
	repo         job.Repository
	users        user.Repository
	applications application.Repository
	quota        *QuotaService
	events       event.Repository
}

func NewJobService(repo job.Repository, users user.Repository, applications application.Repository, quota *QuotaService, events event.Repository) *JobService {
	return &JobService{repo: repo, users: users, applications: applications, quota: quota, events: events}
}

// EmployerJob is a job as seen on the employer dashboard, with the
// number of applications it has attracted.
type EmployerJob struct {
	job.Job
	ApplicantCount int `json:"applicant_count"`
}

func (s *JobService) Create(ctx context.Context, employerID common.UUID, j job.Job) (*job.Job, error) {
	employer, err := s.users.GetByID(ctx, employerID)
	if err != nil {
		return nil, err
	}
	if err := s.quota.CanPostJob(ctx, *employer); err != nil {
		return nil, err
	}
	if err := validateJobFields(j); err != nil {
		return nil, err
	}
	if j.Deadline.Before(time.Now().UTC()) {
		return nil, common.NewValidationError("invalid job", map[string]string{"deadline": "deadline must be in the future"})
	}
	if j.JobType == "" {
		j.JobType = job.TypeFullTime
	}
	if !job.ValidType(j.JobType) {
		return nil, common.NewValidationError("invalid job type", map[string]string{"job_type": "job type must be full-time, part-time, internship, or contract"})
	}
	j.EmployerID = employerID
	j.Status = job.StatusOpen
	created, err := s.repo.Create(ctx, j)
	if err != nil {
		return nil, err
	}
	_ = s.events.Create(ctx, event.Event{Name: "job.created", UserID: &employerID, Payload: eventPayload(ctx, map[string]string{"job_id": created.ID.String()})})
	return created, nil
}

func (s *JobService) Update(ctx context.Context, actor user.Actor, patch job.Job) (*job.Job, error) {
	current, err := s.repo.GetByID(ctx, patch.ID)
	if err != nil {
		return nil, err
	}
	if !IsJobOwner(current, actor) {
		return nil, common.NewError(common.CodeForbidden, "job belongs to another employer", nil)
	}
	merged := mergeJobPatch(*current, patch)
	if patch.Status != "" {
		next := job.Status(strings.ToLower(strings.TrimSpace(string(patch.Status))))
		if !job.ValidStatus(next) {
			return nil, common.NewValidationError("invalid job status", map[string]string{"status": "status must be open, closed, or expired"})
		}
		if !job.CanTransition(current.Status, next) {
			return nil, common.NewError(common.CodeConflict, "job is already "+string(current.Status), nil)
		}
		merged.Status = next
	}
	if err := validateJobFields(merged); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, merged)
	if err != nil {
		return nil, err
	}
	_ = s.events.Create(ctx, event.Event{Name: "job.updated", UserID: &actor.ID, Payload: eventPayload(ctx, map[string]string{"job_id": updated.ID.String()})})
	return updated, nil
}

// Delete removes a job along with its applications. Hires live inside
// the job and go with it; employment records are kept as audit trail.
func (s *JobService) Delete(ctx context.Context, actor user.Actor, jobID common.UUID) error {
	current, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if !IsJobOwner(current, actor) {
		return common.NewError(common.CodeForbidden, "job belongs to another employer", nil)
	}
	if err := s.applications.DeleteByJob(ctx, jobID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, jobID); err != nil {
		return err
	}
	_ = s.events.Create(ctx, event.Event{Name: "job.deleted", UserID: &actor.ID, Payload: eventPayload(ctx, map[string]string{"job_id": jobID.String()})})
	return nil
}

func (s *JobService) Get(ctx context.Context, id common.UUID) (*job.Job, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *JobService) ListByEmployer(ctx context.Context, employerID common.UUID) ([]EmployerJob, error) {
	jobs, err := s.repo.ListByEmployer(ctx, employerID)
	if err != nil {
		return nil, err
	}
	items := make([]EmployerJob, 0, len(jobs))
	for _, j := range jobs {
		count, err := s.applications.CountByJob(ctx, j.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, EmployerJob{Job: j, ApplicantCount: count})
	}
	return items, nil
}

// ListOpenForApprentice lists open jobs the apprentice can still apply
// to: past-deadline jobs and jobs already applied to are excluded.
func (s *JobService) ListOpenForApprentice(ctx context.Context, apprenticeID common.UUID, limit, offset int) ([]job.Job, error) {
	return s.repo.ListOpenExcluding(ctx, apprenticeID, limit, offset)
}

// CloseOnAcceptance flips the job to closed once an application has
// been accepted for it. No-op when the job already left the open
// state.
func (s *JobService) CloseOnAcceptance(ctx context.Context, jobID common.UUID) error {
	current, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if current.Status != job.StatusOpen {
		return nil
	}
	current.Status = job.StatusClosed
	if _, err := s.repo.Update(ctx, *current); err != nil {
		return err
	}
	_ = s.events.Create(ctx, event.Event{Name: "job.closed", Payload: eventPayload(ctx, map[string]string{"job_id": jobID.String()})})
	return nil
}

// ExpireStale marks open jobs past their deadline as expired. The
// sweep is idempotent and safe to invoke redundantly.
func (s *JobService) ExpireStale(ctx context.Context) (int64, error) {
	expired, err := s.repo.ExpireOpenPastDeadline(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if expired > 0 {
		_ = s.events.Create(ctx, event.Event{Name: "job.expired_sweep", Payload: eventPayload(ctx, map[string]string{"expired": strconv.FormatInt(expired, 10)})})
	}
	return expired, nil
}

func validateJobFields(j job.Job) error {
	fields := map[string]string{}
	if strings.TrimSpace(j.Title) == "" {
		fields["title"] = "title is required"
	}
	if strings.TrimSpace(j.Description) == "" {
		fields["description"] = "description is required"
	}
	if j.CategoryID.IsZero() {
		fields["category"] = "category is required"
	}
	if j.Deadline.IsZero() {
		fields["deadline"] = "deadline is required"
	}
	if len(fields) > 0 {
		return common.NewValidationError("invalid job", fields)
	}
	return nil
}

func mergeJobPatch(current, patch job.Job) job.Job {
	merged := current
	if strings.TrimSpace(patch.Title) != "" {
		merged.Title = patch.Title
	}
	if strings.TrimSpace(patch.Description) != "" {
		merged.Description = patch.Description
	}
	if !patch.CategoryID.IsZero() {
		merged.CategoryID = patch.CategoryID
	}
	if len(patch.Requirements) > 0 {
		merged.Requirements = patch.Requirements
	}
	if strings.TrimSpace(patch.Location) != "" {
		merged.Location = patch.Location
	}
	if patch.JobType != "" && job.ValidType(patch.JobType) {
		merged.JobType = patch.JobType
	}
	if strings.TrimSpace(patch.Stipend) != "" {
		merged.Stipend = patch.Stipend
	}
	if patch.SalaryMin > 0 {
		merged.SalaryMin = patch.SalaryMin
	}
	if patch.SalaryMax > 0 {
		merged.SalaryMax = patch.SalaryMax
	}
	if !patch.Deadline.IsZero() {
		merged.Deadline = patch.Deadline
	}
	return merged
}
