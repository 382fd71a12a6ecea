package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fadeyibigbolahan/mbjobs-backend/internal/common"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/job"
)

type HireRepository struct {
	db *sql.DB
}

func NewHireRepository(db *sql.DB) *HireRepository {
	return &HireRepository{db: db}
}

const hireColumns = `id, job_id, candidate_id, status, hire_date, start_date, end_date, salary, employment_type, notes, created_at, updated_at`

func (r *HireRepository) Create(ctx context.Context, h job.Hire) (*job.Hire, error) {
	h.ID = common.NewUUID()
	now := time.Now().UTC()
	h.CreatedAt = now
	h.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO job_hires (id, job_id, candidate_id, status, hire_date, start_date, end_date, salary, employment_type, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		h.ID, h.JobID, h.CandidateID, h.Status, h.HireDate, h.StartDate, h.EndDate, h.Salary, h.EmploymentType, h.Notes, h.CreatedAt, h.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "candidate already hired for this position", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create hire", err)
	}
	return &h, nil
}

func (r *HireRepository) Update(ctx context.Context, h job.Hire) (*job.Hire, error) {
	h.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE job_hires SET status = $1, start_date = $2, end_date = $3, salary = $4, employment_type = $5, notes = $6, updated_at = $7
		WHERE id = $8`,
		h.Status, h.StartDate, h.EndDate, h.Salary, h.EmploymentType, h.Notes, h.UpdatedAt, h.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update hire", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "hire not found", sql.ErrNoRows)
	}
	return &h, nil
}

func (r *HireRepository) GetByID(ctx context.Context, id common.UUID) (*job.Hire, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+hireColumns+` FROM job_hires WHERE id = $1`, id)
	h, err := scanHire(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "hire not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load hire", err)
	}
	return h, nil
}

func (r *HireRepository) FindByJobAndCandidate(ctx context.Context, jobID, candidateID common.UUID) (*job.Hire, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+hireColumns+` FROM job_hires WHERE job_id = $1 AND candidate_id = $2`, jobID, candidateID)
	h, err := scanHire(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "hire not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load hire", err)
	}
	return h, nil
}

func (r *HireRepository) ListByJob(ctx context.Context, jobID common.UUID) ([]job.Hire, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+hireColumns+` FROM job_hires WHERE job_id = $1`, jobID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list job hires", err)
	}
	defer rows.Close()
	return collectHires(rows)
}

func (r *HireRepository) ListByCandidate(ctx context.Context, candidateID common.UUID) ([]job.Hire, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+hireColumns+` FROM job_hires WHERE candidate_id = $1 ORDER BY hire_date DESC`, candidateID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list candidate hires", err)
	}
	defer rows.Close()
	return collectHires(rows)
}

func scanHire(row rowScanner) (*job.Hire, error) {
	var h job.Hire
	if err := row.Scan(&h.ID, &h.JobID, &h.CandidateID, &h.Status, &h.HireDate, &h.StartDate, &h.EndDate, &h.Salary, &h.EmploymentType, &h.Notes, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return nil, err
	}
	return &h, nil
}

func collectHires(rows *sql.Rows) ([]job.Hire, error) {
	var items []job.Hire
	for rows.Next() {
		h, err := scanHire(rows)
		if err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan hire", err)
		}
		items = append(items, *h)
	}
	return items, nil
}
