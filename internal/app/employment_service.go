package app

import (
	"context"
	"time"

	"github.com/fadeyibigbolahan/mbjobs-backend/internal/common"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/employment"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/event"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/user"
)

type EmploymentService struct {
	repo   employment.Repository
	events event.Repository
}

func NewEmploymentService(repo employment.Repository, events event.Repository) *EmploymentService {
	return &EmploymentService{repo: repo, events: events}
}

// Ensure creates the employment record for (job, employee) exactly
// once. It is reached from both the application-acceptance path and
// the hire-activation path; the (job, employee) unique constraint in
// storage is the source of truth, so a lost race falls back to
// re-reading the winner's record.
func (s *EmploymentService) Ensure(ctx context.Context, e employment.Employment) (*employment.Employment, error) {
	existing, err := s.repo.FindByJobAndEmployee(ctx, e.JobID, e.EmployeeID)
	if err == nil {
		return existing, nil
	}
	if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	if e.StartDate.IsZero() {
		e.StartDate = time.Now().UTC()
	}
	e.Status = employment.StatusActive
	created, err := s.repo.Create(ctx, e)
	if err != nil {
		if common.Is(err, common.CodeConflict) {
			return s.repo.FindByJobAndEmployee(ctx, e.JobID, e.EmployeeID)
		}
		return nil, err
	}
	_ = s.events.Create(ctx, event.Event{Name: "employment.created", UserID: &created.EmployeeID, Payload: eventPayload(ctx, map[string]string{
		"employment_id": created.ID.String(),
		"job_id":        created.JobID.String(),
	})})
	return created, nil
}

// Update lets the owning employer change the record's status and end
// date. Job, employer and employee references are immutable and the
// record itself is never deleted.
func (s *EmploymentService) Update(ctx context.Context, actor user.Actor, id common.UUID, status employment.Status, endDate *time.Time) (*employment.Employment, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.EmployerID != actor.ID && actor.Role != user.RoleAdmin {
		return nil, common.NewError(common.CodeForbidden, "employment belongs to another employer", nil)
	}
	if status != "" {
		if !employment.ValidStatus(status) {
			return nil, common.NewValidationError("invalid employment status", map[string]string{"status": "status must be active, terminated, or completed"})
		}
		current.Status = status
	}
	if endDate != nil {
		current.EndDate = endDate
	}
	updated, err := s.repo.Update(ctx, *current)
	if err != nil {
		return nil, err
	}
	_ = s.events.Create(ctx, event.Event{Name: "employment.updated", UserID: &actor.ID, Payload: eventPayload(ctx, map[string]string{
		"employment_id": updated.ID.String(),
		"status":        string(updated.Status),
	})})
	return updated, nil
}

func (s *EmploymentService) ListByEmployer(ctx context.Context, employerID common.UUID) ([]employment.Employment, error) {
	return s.repo.ListByEmployer(ctx, employerID)
}

func (s *EmploymentService) ListByEmployee(ctx context.Context, employeeID common.UUID) ([]employment.Employment, error) {
	return s.repo.ListByEmployee(ctx, employeeID)
}
