package app

import (
	"context"
	"testing"
	"time"

	"github.com/fadeyibigbolahan/mbjobs-backend/internal/common"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/application"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/job"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/user"
)

// acceptedCandidate walks an apprentice through apply and acceptance so
// hire tests start from an offer-ready state.
func acceptedCandidate(t *testing.T, env *testEnv, employer user.User, posted *job.Job) user.User {
	t.Helper()
	apprentice := env.users.add(user.User{Role: user.RoleApprentice})
	created, err := env.applicationService.Apply(context.Background(), apprentice.ID, posted.ID, "")
	if err != nil {
		t.Fatalf("expected apply, got %v", err)
	}
	owner := user.Actor{ID: employer.ID, Role: user.RoleEmployer}
	if _, err := env.applicationService.UpdateStatus(context.Background(), owner, created.ID, application.StatusAccepted, AcceptTerms{}); err != nil {
		t.Fatalf("expected accept, got %v", err)
	}
	return apprentice
}

func TestHireCreate_RequiresAcceptedApplication(t *testing.T) {
	env := newTestEnv()
	employer := env.subscribedEmployer(3)
	posted := env.openJob(employer.ID)
	apprentice := env.users.add(user.User{Role: user.RoleApprentice})
	if _, err := env.applicationService.Apply(context.Background(), apprentice.ID, posted.ID, ""); err != nil {
		t.Fatalf("expected apply, got %v", err)
	}

	owner := user.Actor{ID: employer.ID, Role: user.RoleEmployer}
	_, err := env.hireService.Create(context.Background(), owner, posted.ID, apprentice.ID, HireTerms{})
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestHireCreate_OffersWithJobDefaults(t *testing.T) {
	env := newTestEnv()
	employer := env.subscribedEmployer(3)
	posted := env.openJob(employer.ID)
	apprentice := acceptedCandidate(t, env, employer, posted)

	owner := user.Actor{ID: employer.ID, Role: user.RoleEmployer}
	created, err := env.hireService.Create(context.Background(), owner, posted.ID, apprentice.ID, HireTerms{})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if created.Status != job.HireOffered {
		t.Fatalf("expected offered, got %s", created.Status)
	}
	if created.Salary != posted.SalaryMax {
		t.Fatalf("expected salary ceiling %d, got %d", posted.SalaryMax, created.Salary)
	}
	if created.EmploymentType != posted.JobType {
		t.Fatalf("expected job type %s, got %s", posted.JobType, created.EmploymentType)
	}
	if created.HireDate.IsZero() {
		t.Fatal("expected hire date set")
	}
}

func TestHireCreate_RejectsDuplicate(t *testing.T) {
	env := newTestEnv()
	employer := env.subscribedEmployer(3)
	posted := env.openJob(employer.ID)
	apprentice := acceptedCandidate(t, env, employer, posted)

	owner := user.Actor{ID: employer.ID, Role: user.RoleEmployer}
	if _, err := env.hireService.Create(context.Background(), owner, posted.ID, apprentice.ID, HireTerms{}); err != nil {
		t.Fatalf("expected first offer, got %v", err)
	}
	_, err := env.hireService.Create(context.Background(), owner, posted.ID, apprentice.ID, HireTerms{})
	if !common.Is(err, common.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestHireCreate_OwnerOnly(t *testing.T) {
	env := newTestEnv()
	employer := env.subscribedEmployer(3)
	posted := env.openJob(employer.ID)
	apprentice := acceptedCandidate(t, env, employer, posted)

	stranger := user.Actor{ID: common.NewUUID(), Role: user.RoleEmployer}
	_, err := env.hireService.Create(context.Background(), stranger, posted.ID, apprentice.ID, HireTerms{})
	if !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestHireRespond_CandidateAcceptSetsStartDate(t *testing.T) {
	env := newTestEnv()
	employer := env.subscribedEmployer(3)
	posted := env.openJob(employer.ID)
	apprentice := acceptedCandidate(t, env, employer, posted)
	owner := user.Actor{ID: employer.ID, Role: user.RoleEmployer}
	offer, err := env.hireService.Create(context.Background(), owner, posted.ID, apprentice.ID, HireTerms{})
	if err != nil {
		t.Fatalf("expected offer, got %v", err)
	}

	candidate := user.Actor{ID: apprentice.ID, Role: user.RoleApprentice}
	updated, err := env.hireService.RespondToOffer(context.Background(), candidate, offer.ID, true)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if updated.Status != job.HireAccepted {
		t.Fatalf("expected accepted, got %s", updated.Status)
	}
	if updated.StartDate == nil {
		t.Fatal("expected start date defaulted on acceptance")
	}
}

func TestHireRespond_OnlyCandidate(t *testing.T) {
	env := newTestEnv()
	employer := env.subscribedEmployer(3)
	posted := env.openJob(employer.ID)
	apprentice := acceptedCandidate(t, env, employer, posted)
	owner := user.Actor{ID: employer.ID, Role: user.RoleEmployer}
	offer, err := env.hireService.Create(context.Background(), owner, posted.ID, apprentice.ID, HireTerms{})
	if err != nil {
		t.Fatalf("expected offer, got %v", err)
	}

	_, err = env.hireService.RespondToOffer(context.Background(), owner, offer.ID, true)
	if !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestHireRespond_SecondResponseConflicts(t *testing.T) {
	env := newTestEnv()
	employer := env.subscribedEmployer(3)
	posted := env.openJob(employer.ID)
	apprentice := acceptedCandidate(t, env, employer, posted)
	owner := user.Actor{ID: employer.ID, Role: user.RoleEmployer}
	offer, err := env.hireService.Create(context.Background(), owner, posted.ID, apprentice.ID, HireTerms{})
	if err != nil {
		t.Fatalf("expected offer, got %v", err)
	}

	candidate := user.Actor{ID: apprentice.ID, Role: user.RoleApprentice}
	if _, err := env.hireService.RespondToOffer(context.Background(), candidate, offer.ID, false); err != nil {
		t.Fatalf("expected decline, got %v", err)
	}
	_, err = env.hireService.RespondToOffer(context.Background(), candidate, offer.ID, true)
	if !common.Is(err, common.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestHireUpdateStatus_StrictTransitions(t *testing.T) {
	env := newTestEnv()
	employer := env.subscribedEmployer(3)
	posted := env.openJob(employer.ID)
	apprentice := acceptedCandidate(t, env, employer, posted)
	owner := user.Actor{ID: employer.ID, Role: user.RoleEmployer}
	offer, err := env.hireService.Create(context.Background(), owner, posted.ID, apprentice.ID, HireTerms{})
	if err != nil {
		t.Fatalf("expected offer, got %v", err)
	}

	// offered cannot jump straight to active.
	_, err = env.hireService.UpdateStatus(context.Background(), owner, posted.ID, offer.ID, job.HireActive, nil, nil)
	if !common.Is(err, common.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestHireUpdateStatus_ActorStatusMismatch(t *testing.T) {
	env := newTestEnv()
	employer := env.subscribedEmployer(3)
	posted := env.openJob(employer.ID)
	apprentice := acceptedCandidate(t, env, employer, posted)
	owner := user.Actor{ID: employer.ID, Role: user.RoleEmployer}
	offer, err := env.hireService.Create(context.Background(), owner, posted.ID, apprentice.ID, HireTerms{})
	if err != nil {
		t.Fatalf("expected offer, got %v", err)
	}
	candidate := user.Actor{ID: apprentice.ID, Role: user.RoleApprentice}

	// The employer cannot accept on the candidate's behalf.
	if _, err := env.hireService.UpdateStatus(context.Background(), owner, posted.ID, offer.ID, job.HireAccepted, nil, nil); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden for employer accept, got %v", err)
	}
	// The candidate cannot start onboarding.
	if _, err := env.hireService.UpdateStatus(context.Background(), candidate, posted.ID, offer.ID, job.HireOnboarding, nil, nil); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden for candidate onboarding, got %v", err)
	}
}

func TestHireActivation_CreatesEmploymentOnce(t *testing.T) {
	env := newTestEnv()
	employer := env.subscribedEmployer(3)
	posted := env.openJob(employer.ID)
	apprentice := acceptedCandidate(t, env, employer, posted)
	owner := user.Actor{ID: employer.ID, Role: user.RoleEmployer}
	candidate := user.Actor{ID: apprentice.ID, Role: user.RoleApprentice}

	// Acceptance already created the employment record.
	if _, err := env.employments.FindByJobAndEmployee(context.Background(), posted.ID, apprentice.ID); err != nil {
		t.Fatalf("expected employment from acceptance, got %v", err)
	}

	offer, err := env.hireService.Create(context.Background(), owner, posted.ID, apprentice.ID, HireTerms{})
	if err != nil {
		t.Fatalf("expected offer, got %v", err)
	}
	if _, err := env.hireService.UpdateStatus(context.Background(), candidate, posted.ID, offer.ID, job.HireAccepted, nil, nil); err != nil {
		t.Fatalf("expected accept, got %v", err)
	}
	if _, err := env.hireService.UpdateStatus(context.Background(), owner, posted.ID, offer.ID, job.HireOnboarding, nil, nil); err != nil {
		t.Fatalf("expected onboarding, got %v", err)
	}
	if _, err := env.hireService.UpdateStatus(context.Background(), owner, posted.ID, offer.ID, job.HireActive, nil, nil); err != nil {
		t.Fatalf("expected activation, got %v", err)
	}

	records, err := env.employments.ListByEmployee(context.Background(), apprentice.ID)
	if err != nil {
		t.Fatalf("expected list, got %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected a single employment record across both paths, got %d", len(records))
	}
}

func TestHireListByJob_OrderedByStatusPriority(t *testing.T) {
	env := newTestEnv()
	employer := env.subscribedEmployer(3)
	posted := env.openJob(employer.ID)
	owner := user.Actor{ID: employer.ID, Role: user.RoleEmployer}

	statuses := []job.HireStatus{job.HireRejected, job.HireOffered, job.HireActive}
	for _, status := range statuses {
		// Acceptance closes the job; reopen so the next candidate can
		// still apply.
		current, err := env.jobs.GetByID(context.Background(), posted.ID)
		if err != nil {
			t.Fatalf("expected job, got %v", err)
		}
		current.Status = job.StatusOpen
		if _, err := env.jobs.Update(context.Background(), *current); err != nil {
			t.Fatalf("expected reopen, got %v", err)
		}
		apprentice := acceptedCandidate(t, env, employer, posted)
		offer, err := env.hireService.Create(context.Background(), owner, posted.ID, apprentice.ID, HireTerms{})
		if err != nil {
			t.Fatalf("expected offer, got %v", err)
		}
		offer.Status = status
		if _, err := env.hires.Update(context.Background(), *offer); err != nil {
			t.Fatalf("expected update, got %v", err)
		}
	}

	hires, err := env.hireService.ListByJob(context.Background(), owner, posted.ID)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(hires) != 3 {
		t.Fatalf("expected 3 hires, got %d", len(hires))
	}
	want := []job.HireStatus{job.HireActive, job.HireOffered, job.HireRejected}
	for i, status := range want {
		if hires[i].Status != status {
			t.Fatalf("expected %s at position %d, got %s", status, i, hires[i].Status)
		}
	}

	stats := ComputeHireStats(hires)
	if stats.Total != 3 || stats.Active != 1 || stats.Offered != 1 || stats.Rejected != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestHireGet_PartyOnly(t *testing.T) {
	env := newTestEnv()
	employer := env.subscribedEmployer(3)
	posted := env.openJob(employer.ID)
	apprentice := acceptedCandidate(t, env, employer, posted)
	owner := user.Actor{ID: employer.ID, Role: user.RoleEmployer}
	offer, err := env.hireService.Create(context.Background(), owner, posted.ID, apprentice.ID, HireTerms{})
	if err != nil {
		t.Fatalf("expected offer, got %v", err)
	}

	stranger := user.Actor{ID: common.NewUUID(), Role: user.RoleApprentice}
	if _, err := env.hireService.Get(context.Background(), stranger, offer.ID); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	candidate := user.Actor{ID: apprentice.ID, Role: user.RoleApprentice}
	if _, err := env.hireService.Get(context.Background(), candidate, offer.ID); err != nil {
		t.Fatalf("expected candidate access, got %v", err)
	}
	if _, err := env.hireService.Get(context.Background(), owner, offer.ID); err != nil {
		t.Fatalf("expected employer access, got %v", err)
	}
}

func TestHireTimeline_OrderedHistory(t *testing.T) {
	env := newTestEnv()
	employer := env.subscribedEmployer(3)
	posted := env.openJob(employer.ID)
	apprentice := acceptedCandidate(t, env, employer, posted)
	owner := user.Actor{ID: employer.ID, Role: user.RoleEmployer}
	candidate := user.Actor{ID: apprentice.ID, Role: user.RoleApprentice}
	offer, err := env.hireService.Create(context.Background(), owner, posted.ID, apprentice.ID, HireTerms{})
	if err != nil {
		t.Fatalf("expected offer, got %v", err)
	}
	start := time.Now().UTC().Add(time.Hour)
	if _, err := env.hireService.UpdateStatus(context.Background(), candidate, posted.ID, offer.ID, job.HireAccepted, &start, nil); err != nil {
		t.Fatalf("expected accept, got %v", err)
	}

	timeline, err := env.hireService.Timeline(context.Background(), candidate, offer.ID)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(timeline) < 3 {
		t.Fatalf("expected applied, offer_sent and offer_accepted, got %d entries", len(timeline))
	}
	for i := 1; i < len(timeline); i++ {
		if timeline[i].Date.Before(timeline[i-1].Date) {
			t.Fatalf("expected chronological order, got %v", timeline)
		}
	}
	if timeline[0].Event != "applied" {
		t.Fatalf("expected applied first, got %s", timeline[0].Event)
	}

	if _, err := env.hireService.Timeline(context.Background(), owner, offer.ID); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected candidate-only timeline, got %v", err)
	}
}
