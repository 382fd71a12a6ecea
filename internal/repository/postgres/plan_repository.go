package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/fadeyibigbolahan/mbjobs-backend/internal/common"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/plan"
)

type PlanRepository struct {
	db *sql.DB
}

func NewPlanRepository(db *sql.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) GetByID(ctx context.Context, id common.UUID) (*plan.Plan, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, title, subtitle, monthly_price, max_apprentices, description, features, popular
		FROM pricing_plans WHERE id = $1`, id)
	var p plan.Plan
	if err := row.Scan(&p.ID, &p.Title, &p.Subtitle, &p.MonthlyPrice, &p.MaxApprentices, &p.Description, pq.Array(&p.Features), &p.Popular); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "plan not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load plan", err)
	}
	return &p, nil
}

func (r *PlanRepository) List(ctx context.Context) ([]plan.Plan, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, subtitle, monthly_price, max_apprentices, description, features, popular
		FROM pricing_plans ORDER BY monthly_price`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list plans", err)
	}
	defer rows.Close()
	var items []plan.Plan
	for rows.Next() {
		var p plan.Plan
		if err := rows.Scan(&p.ID, &p.Title, &p.Subtitle, &p.MonthlyPrice, &p.MaxApprentices, &p.Description, pq.Array(&p.Features), &p.Popular); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan plan", err)
		}
		items = append(items, p)
	}
	return items, nil
}
