package application

import (
	"context"

	"github.com/fadeyibigbolahan/mbjobs-backend/internal/common"
)

type Repository interface {
	Create(ctx context.Context, app Application) (*Application, error)
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	UpdateStatus(ctx context.Context, id common.UUID, status Status) (*Application, error)
	FindByJobAndApprentice(ctx context.Context, jobID, apprenticeID common.UUID) (*Application, error)
	ListByApprentice(ctx context.Context, apprenticeID common.UUID) ([]Application, error)
	ListByJob(ctx context.Context, jobID common.UUID) ([]Application, error)
	// ListByEmployer resolves applications through the jobs owned by
	// the employer; applications do not store the employer directly.
	ListByEmployer(ctx context.Context, employerID common.UUID) ([]Application, error)
	CountByJob(ctx context.Context, jobID common.UUID) (int, error)
	DeleteByJob(ctx context.Context, jobID common.UUID) error
}
