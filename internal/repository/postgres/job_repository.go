package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/fadeyibigbolahan/mbjobs-backend/internal/common"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/job"
)

type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `id, employer_id, title, description, category_id, requirements, location, job_type, stipend, salary_min, salary_max, deadline, status, created_at, updated_at`

func (r *JobRepository) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	j.ID = common.NewUUID()
	now := time.Now().UTC()
	j.CreatedAt = now
	j.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO jobs (id, employer_id, title, description, category_id, requirements, location, job_type, stipend, salary_min, salary_max, deadline, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		j.ID, j.EmployerID, j.Title, j.Description, j.CategoryID, pq.Array(j.Requirements), j.Location, j.JobType, j.Stipend, j.SalaryMin, j.SalaryMax, j.Deadline, j.Status, j.CreatedAt, j.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create job", err)
	}
	return &j, nil
}

func (r *JobRepository) Update(ctx context.Context, j job.Job) (*job.Job, error) {
	j.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE jobs SET title = $1, description = $2, category_id = $3, requirements = $4, location = $5, job_type = $6, stipend = $7, salary_min = $8, salary_max = $9, deadline = $10, status = $11, updated_at = $12
		WHERE id = $13`,
		j.Title, j.Description, j.CategoryID, pq.Array(j.Requirements), j.Location, j.JobType, j.Stipend, j.SalaryMin, j.SalaryMax, j.Deadline, j.Status, j.UpdatedAt, j.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update job", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "job not found", sql.ErrNoRows)
	}
	return &j, nil
}

func (r *JobRepository) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "job not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load job", err)
	}
	return j, nil
}

func (r *JobRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete job", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "job not found", sql.ErrNoRows)
	}
	return nil
}

func (r *JobRepository) ListByEmployer(ctx context.Context, employerID common.UUID) ([]job.Job, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE employer_id = $1 ORDER BY created_at DESC`, employerID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list employer jobs", err)
	}
	defer rows.Close()
	return collectJobs(rows)
}

func (r *JobRepository) ListOpenExcluding(ctx context.Context, apprenticeID common.UUID, limit, offset int) ([]job.Job, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs
		WHERE status = $1 AND deadline >= $2
		AND id NOT IN (SELECT job_id FROM applications WHERE apprentice_id = $3)
		ORDER BY created_at DESC LIMIT $4 OFFSET $5`,
		job.StatusOpen, time.Now().UTC(), apprenticeID, limit, offset)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list open jobs", err)
	}
	defer rows.Close()
	return collectJobs(rows)
}

func (r *JobRepository) CountActiveByEmployer(ctx context.Context, employerID common.UUID, now time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs WHERE employer_id = $1 AND deadline >= $2`, employerID, now).Scan(&count)
	if err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to count active jobs", err)
	}
	return count, nil
}

func (r *JobRepository) ExpireOpenPastDeadline(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE jobs SET status = $1, updated_at = $2 WHERE status = $3 AND deadline < $2`,
		job.StatusExpired, now, job.StatusOpen)
	if err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to expire jobs", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to expire jobs", err)
	}
	return rows, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*job.Job, error) {
	var j job.Job
	if err := row.Scan(&j.ID, &j.EmployerID, &j.Title, &j.Description, &j.CategoryID, pq.Array(&j.Requirements), &j.Location, &j.JobType, &j.Stipend, &j.SalaryMin, &j.SalaryMax, &j.Deadline, &j.Status, &j.CreatedAt, &j.UpdatedAt); err != nil {
		return nil, err
	}
	return &j, nil
}

func collectJobs(rows *sql.Rows) ([]job.Job, error) {
	var items []job.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan job", err)
		}
		items = append(items, *j)
	}
	return items, nil
}
