package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fadeyibigbolahan/mbjobs-backend/internal/common"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/user"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, full_name, email, role, subscription_plan_id, subscription_status, subscription_end_date, created_at, updated_at
		FROM users WHERE id = $1`, id)
	var u user.User
	var planID sql.NullString
	var subStatus sql.NullString
	var subEnd sql.NullTime
	if err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.Role, &planID, &subStatus, &subEnd, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "user not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load user", err)
	}
	if planID.Valid && subStatus.Valid {
		var endDate time.Time
		if subEnd.Valid {
			endDate = subEnd.Time
		}
		u.Subscription = &user.Subscription{
			PlanID:  common.UUID(planID.String),
			Status:  user.SubscriptionStatus(subStatus.String),
			EndDate: endDate,
		}
	}
	return &u, nil
}
