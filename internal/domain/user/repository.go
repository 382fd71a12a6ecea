package user

import (
	"context"

	"github.com/fadeyibigbolahan/mbjobs-backend/internal/common"
)

type Repository interface {
	GetByID(ctx context.Context, id common.UUID) (*User, error)
}
