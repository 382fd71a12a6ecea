package app

import (
	"context"
	"sync"
	"time"

	"github.com/fadeyibigbolahan/mbjobs-backend/internal/common"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/application"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/employment"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/event"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/job"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/plan"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/user"
)

type fakeUserRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[common.UUID]*user.User)}
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	copy := *account
	if account.Subscription != nil {
		sub := *account.Subscription
		copy.Subscription = &sub
	}
	return &copy, nil
}

func (r *fakeUserRepo) add(account user.User) user.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if account.ID.IsZero() {
		account.ID = common.NewUUID()
	}
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now
	r.byID[account.ID] = &account
	return account
}

type fakePlanRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*plan.Plan
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{byID: make(map[common.UUID]*plan.Plan)}
}

func (r *fakePlanRepo) GetByID(ctx context.Context, id common.UUID) (*plan.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tier := r.byID[id]
	if tier == nil {
		return nil, common.NewError(common.CodeNotFound, "plan not found", nil)
	}
	copy := *tier
	return &copy, nil
}

func (r *fakePlanRepo) List(ctx context.Context) ([]plan.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]plan.Plan, 0, len(r.byID))
	for _, tier := range r.byID {
		items = append(items, *tier)
	}
	return items, nil
}

func (r *fakePlanRepo) add(tier plan.Plan) plan.Plan {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tier.ID.IsZero() {
		tier.ID = common.NewUUID()
	}
	r.byID[tier.ID] = &tier
	return tier
}

type fakeJobRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*job.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{byID: make(map[common.UUID]*job.Job)}
}

func (r *fakeJobRepo) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j.ID = common.NewUUID()
	now := time.Now().UTC()
	j.CreatedAt = now
	j.UpdatedAt = now
	r.byID[j.ID] = &j
	copy := j
	return &copy, nil
}

func (r *fakeJobRepo) Update(ctx context.Context, j job.Job) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byID[j.ID] == nil {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	j.UpdatedAt = time.Now().UTC()
	r.byID[j.ID] = &j
	copy := j
	return &copy, nil
}

func (r *fakeJobRepo) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j := r.byID[id]
	if j == nil {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	copy := *j
	return &copy, nil
}

func (r *fakeJobRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byID[id] == nil {
		return common.NewError(common.CodeNotFound, "job not found", nil)
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeJobRepo) ListByEmployer(ctx context.Context, employerID common.UUID) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []job.Job
	for _, j := range r.byID {
		if j.EmployerID == employerID {
			items = append(items, *j)
		}
	}
	return items, nil
}

func (r *fakeJobRepo) ListOpenExcluding(ctx context.Context, apprenticeID common.UUID, limit, offset int) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	var items []job.Job
	for _, j := range r.byID {
		if j.Status == job.StatusOpen && j.Deadline.After(now) {
			items = append(items, *j)
		}
	}
	return items, nil
}

func (r *fakeJobRepo) CountActiveByEmployer(ctx context.Context, employerID common.UUID, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, j := range r.byID {
		if j.EmployerID == employerID && !j.Deadline.Before(now) {
			count++
		}
	}
	return count, nil
}

func (r *fakeJobRepo) ExpireOpenPastDeadline(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var expired int64
	for _, j := range r.byID {
		if j.Status == job.StatusOpen && j.Deadline.Before(now) {
			j.Status = job.StatusExpired
			j.UpdatedAt = now
			expired++
		}
	}
	return expired, nil
}

type fakeHireRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*job.Hire
}

func newFakeHireRepo() *fakeHireRepo {
	return &fakeHireRepo{byID: make(map[common.UUID]*job.Hire)}
}

func (r *fakeHireRepo) Create(ctx context.Context, h job.Hire) (*job.Hire, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.JobID == h.JobID && existing.CandidateID == h.CandidateID {
			return nil, common.NewError(common.CodeConflict, "hire already exists", nil)
		}
	}
	h.ID = common.NewUUID()
	now := time.Now().UTC()
	h.CreatedAt = now
	h.UpdatedAt = now
	r.byID[h.ID] = &h
	copy := h
	return &copy, nil
}

func (r *fakeHireRepo) Update(ctx context.Context, h job.Hire) (*job.Hire, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byID[h.ID] == nil {
		return nil, common.NewError(common.CodeNotFound, "hire not found", nil)
	}
	h.UpdatedAt = time.Now().UTC()
	r.byID[h.ID] = &h
	copy := h
	return &copy, nil
}

func (r *fakeHireRepo) GetByID(ctx context.Context, id common.UUID) (*job.Hire, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h := r.byID[id]
	if h == nil {
		return nil, common.NewError(common.CodeNotFound, "hire not found", nil)
	}
	copy := *h
	return &copy, nil
}

func (r *fakeHireRepo) FindByJobAndCandidate(ctx context.Context, jobID, candidateID common.UUID) (*job.Hire, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, h := range r.byID {
		if h.JobID == jobID && h.CandidateID == candidateID {
			copy := *h
			return &copy, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "hire not found", nil)
}

func (r *fakeHireRepo) ListByJob(ctx context.Context, jobID common.UUID) ([]job.Hire, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []job.Hire
	for _, h := range r.byID {
		if h.JobID == jobID {
			items = append(items, *h)
		}
	}
	return items, nil
}

func (r *fakeHireRepo) ListByCandidate(ctx context.Context, candidateID common.UUID) ([]job.Hire, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []job.Hire
	for _, h := range r.byID {
		if h.CandidateID == candidateID {
			items = append(items, *h)
		}
	}
	return items, nil
}

type fakeApplicationRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*application.Application
	jobs *fakeJobRepo
}

func newFakeApplicationRepo(jobs *fakeJobRepo) *fakeApplicationRepo {
	return &fakeApplicationRepo{byID: make(map[common.UUID]*application.Application), jobs: jobs}
}

func (r *fakeApplicationRepo) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.JobID == app.JobID && existing.ApprenticeID == app.ApprenticeID {
			return nil, common.NewError(common.CodeConflict, "application already exists", nil)
		}
	}
	app.ID = common.NewUUID()
	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now
	r.byID[app.ID] = &app
	copy := app
	return &copy, nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app := r.byID[id]
	if app == nil {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	copy := *app
	return &copy, nil
}

func (r *fakeApplicationRepo) UpdateStatus(ctx context.Context, id common.UUID, status application.Status) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app := r.byID[id]
	if app == nil {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	app.Status = status
	app.UpdatedAt = time.Now().UTC()
	copy := *app
	return &copy, nil
}

func (r *fakeApplicationRepo) FindByJobAndApprentice(ctx context.Context, jobID, apprenticeID common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.byID {
		if app.JobID == jobID && app.ApprenticeID == apprenticeID {
			copy := *app
			return &copy, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "application not found", nil)
}

func (r *fakeApplicationRepo) ListByApprentice(ctx context.Context, apprenticeID common.UUID) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.Application
	for _, app := range r.byID {
		if app.ApprenticeID == apprenticeID {
			items = append(items, *app)
		}
	}
	return items, nil
}

func (r *fakeApplicationRepo) ListByJob(ctx context.Context, jobID common.UUID) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.Application
	for _, app := range r.byID {
		if app.JobID == jobID {
			items = append(items, *app)
		}
	}
	return items, nil
}

func (r *fakeApplicationRepo) ListByEmployer(ctx context.Context, employerID common.UUID) ([]application.Application, error) {
	jobs, err := r.jobs.ListByEmployer(ctx, employerID)
	if err != nil {
		return nil, err
	}
	owned := make(map[common.UUID]bool, len(jobs))
	for _, j := range jobs {
		owned[j.ID] = true
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.Application
	for _, app := range r.byID {
		if owned[app.JobID] {
			items = append(items, *app)
		}
	}
	return items, nil
}

func (r *fakeApplicationRepo) CountByJob(ctx context.Context, jobID common.UUID) (int, error) {
	items, err := r.ListByJob(ctx, jobID)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

func (r *fakeApplicationRepo) DeleteByJob(ctx context.Context, jobID common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, app := range r.byID {
		if app.JobID == jobID {
			delete(r.byID, id)
		}
	}
	return nil
}

type fakeEmploymentRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*employment.Employment
}

func newFakeEmploymentRepo() *fakeEmploymentRepo {
	return &fakeEmploymentRepo{byID: make(map[common.UUID]*employment.Employment)}
}

func (r *fakeEmploymentRepo) Create(ctx context.Context, e employment.Employment) (*employment.Employment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.JobID == e.JobID && existing.EmployeeID == e.EmployeeID {
			return nil, common.NewError(common.CodeConflict, "employment already exists", nil)
		}
	}
	e.ID = common.NewUUID()
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	r.byID[e.ID] = &e
	copy := e
	return &copy, nil
}

func (r *fakeEmploymentRepo) GetByID(ctx context.Context, id common.UUID) (*employment.Employment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.byID[id]
	if e == nil {
		return nil, common.NewError(common.CodeNotFound, "employment not found", nil)
	}
	copy := *e
	return &copy, nil
}

func (r *fakeEmploymentRepo) FindByJobAndEmployee(ctx context.Context, jobID, employeeID common.UUID) (*employment.Employment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.byID {
		if e.JobID == jobID && e.EmployeeID == employeeID {
			copy := *e
			return &copy, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "employment not found", nil)
}

func (r *fakeEmploymentRepo) Update(ctx context.Context, e employment.Employment) (*employment.Employment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byID[e.ID] == nil {
		return nil, common.NewError(common.CodeNotFound, "employment not found", nil)
	}
	e.UpdatedAt = time.Now().UTC()
	r.byID[e.ID] = &e
	copy := e
	return &copy, nil
}

func (r *fakeEmploymentRepo) ListByEmployer(ctx context.Context, employerID common.UUID) ([]employment.Employment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []employment.Employment
	for _, e := range r.byID {
		if e.EmployerID == employerID {
			items = append(items, *e)
		}
	}
	return items, nil
}

func (r *fakeEmploymentRepo) ListByEmployee(ctx context.Context, employeeID common.UUID) ([]employment.Employment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []employment.Employment
	for _, e := range r.byID {
		if e.EmployeeID == employeeID {
			items = append(items, *e)
		}
	}
	return items, nil
}

type capturingEventRepo struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *capturingEventRepo) Create(ctx context.Context, e event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

type testEnv struct {
	users        *fakeUserRepo
	plans        *fakePlanRepo
	jobs         *fakeJobRepo
	hires        *fakeHireRepo
	applications *fakeApplicationRepo
	employments  *fakeEmploymentRepo
	events       *capturingEventRepo

	quotaService       *QuotaService
	jobService         *JobService
	employmentService  *EmploymentService
	applicationService *ApplicationService
	hireService        *HireService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		users:       newFakeUserRepo(),
		plans:       newFakePlanRepo(),
		jobs:        newFakeJobRepo(),
		hires:       newFakeHireRepo(),
		employments: newFakeEmploymentRepo(),
		events:      &capturingEventRepo{},
	}
	env.applications = newFakeApplicationRepo(env.jobs)
	env.quotaService = NewQuotaService(env.plans, env.jobs)
	env.jobService = NewJobService(env.jobs, env.users, env.applications, env.quotaService, env.events)
	env.employmentService = NewEmploymentService(env.employments, env.events)
	env.applicationService = NewApplicationService(env.applications, env.jobService, env.employmentService, env.events)
	env.hireService = NewHireService(env.jobs, env.hires, env.applications, env.employmentService, env.events)
	return env
}

func planFixture(maxJobs int) plan.Plan {
	return plan.Plan{Title: "Starter", MaxApprentices: maxJobs}
}

// subscribedEmployer seeds a plan and an employer whose subscription is
// active until tomorrow.
func (env *testEnv) subscribedEmployer(maxJobs int) user.User {
	tier := env.plans.add(planFixture(maxJobs))
	return env.users.add(user.User{
		Role: user.RoleEmployer,
		Subscription: &user.Subscription{
			PlanID:  tier.ID,
			Status:  user.SubscriptionActive,
			EndDate: time.Now().UTC().Add(24 * time.Hour),
		},
	})
}

func (env *testEnv) openJob(employerID common.UUID) *job.Job {
	created, err := env.jobs.Create(context.Background(), job.Job{
		EmployerID:  employerID,
		Title:       "Electrician Apprentice",
		Description: "Learn the trade on the job",
		CategoryID:  common.NewUUID(),
		JobType:     job.TypeFullTime,
		SalaryMin:   30000,
		SalaryMax:   45000,
		Deadline:    time.Now().UTC().Add(14 * 24 * time.Hour),
		Status:      job.StatusOpen,
	})
	if err != nil {
		panic(err)
	}
	return created
}

func (r *capturingEventRepo) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.events))
	for _, e := range r.events {
		names = append(names, e.Name)
	}
	return names
}
