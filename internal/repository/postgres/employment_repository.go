package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fadeyibigbolahan/mbjobs-backend/internal/common"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/employment"
)

type EmploymentRepository struct {
	db *sql.DB
}

func NewEmploymentRepository(db *sql.DB) *EmploymentRepository {
	return &EmploymentRepository{db: db}
}

const employmentColumns = `id, job_id, employer_id, employee_id, start_date, end_date, status, salary, terms, created_at, updated_at`

func (r *EmploymentRepository) Create(ctx context.Context, e employment.Employment) (*employment.Employment, error) {
	e.ID = common.NewUUID()
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO employments (id, job_id, employer_id, employee_id, start_date, end_date, status, salary, terms, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		e.ID, e.JobID, e.EmployerID, e.EmployeeID, e.StartDate, e.EndDate, e.Status, e.Salary, e.Terms, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "employment record already exists", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create employment", err)
	}
	return &e, nil
}

func (r *EmploymentRepository) GetByID(ctx context.Context, id common.UUID) (*employment.Employment, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+employmentColumns+` FROM employments WHERE id = $1`, id)
	e, err := scanEmployment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "employment not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load employment", err)
	}
	return e, nil
}

func (r *EmploymentRepository) FindByJobAndEmployee(ctx context.Context, jobID, employeeID common.UUID) (*employment.Employment, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+employmentColumns+` FROM employments WHERE job_id = $1 AND employee_id = $2`, jobID, employeeID)
	e, err := scanEmployment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "employment not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load employment", err)
	}
	return e, nil
}

func (r *EmploymentRepository) Update(ctx context.Context, e employment.Employment) (*employment.Employment, error) {
	e.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE employments SET status = $1, end_date = $2, salary = $3, terms = $4, updated_at = $5 WHERE id = $6`,
		e.Status, e.EndDate, e.Salary, e.Terms, e.UpdatedAt, e.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update employment", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "employment not found", sql.ErrNoRows)
	}
	return &e, nil
}

func (r *EmploymentRepository) ListByEmployer(ctx context.Context, employerID common.UUID) ([]employment.Employment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+employmentColumns+` FROM employments WHERE employer_id = $1 ORDER BY created_at DESC`, employerID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list employer employments", err)
	}
	defer rows.Close()
	return collectEmployments(rows)
}

func (r *EmploymentRepository) ListByEmployee(ctx context.Context, employeeID common.UUID) ([]employment.Employment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+employmentColumns+` FROM employments WHERE employee_id = $1 ORDER BY created_at DESC`, employeeID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list employee employments", err)
	}
	defer rows.Close()
	return collectEmployments(rows)
}

func scanEmployment(row rowScanner) (*employment.Employment, error) {
	var e employment.Employment
	if err := row.Scan(&e.ID, &e.JobID, &e.EmployerID, &e.EmployeeID, &e.StartDate, &e.EndDate, &e.Status, &e.Salary, &e.Terms, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

func collectEmployments(rows *sql.Rows) ([]employment.Employment, error) {
	var items []employment.Employment
	for rows.Next() {
		e, err := scanEmployment(rows)
		if err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan employment", err)
		}
		items = append(items, *e)
	}
	return items, nil
}
