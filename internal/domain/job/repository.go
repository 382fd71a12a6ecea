package job

import (
	"context"
	"time"

	"github.com/fadeyibigbolahan/mbjobs-backend/internal/common"
)

type Repository interface {
	Create(ctx context.Context, j Job) (*Job, error)
	Update(ctx context.Context, j Job) (*Job, error)
	GetByID(ctx context.Context, id common.UUID) (*Job, error)
	Delete(ctx context.Context, id common.UUID) error
	ListByEmployer(ctx context.Context, employerID common.UUID) ([]Job, error)
	// ListOpenExcluding lists open, not-past-deadline jobs the given
	// apprentice has not applied to yet.
	ListOpenExcluding(ctx context.Context, apprenticeID common.UUID, limit, offset int) ([]Job, error)
	// CountActiveByEmployer counts jobs whose deadline has not passed,
	// regardless of status. This is the quota denominator.
	CountActiveByEmployer(ctx context.Context, employerID common.UUID, now time.Time) (int, error)
	// ExpireOpenPastDeadline flips open jobs past their deadline to
	// expired and reports how many rows changed. Idempotent.
	ExpireOpenPastDeadline(ctx context.Context, now time.Time) (int64, error)
}

type HireRepository interface {
	Create(ctx context.Context, h Hire) (*Hire, error)
	Update(ctx context.Context, h Hire) (*Hire, error)
	GetByID(ctx context.Context, id common.UUID) (*Hire, error)
	FindByJobAndCandidate(ctx context.Context, jobID, candidateID common.UUID) (*Hire, error)
	ListByJob(ctx context.Context, jobID common.UUID) ([]Hire, error)
	ListByCandidate(ctx context.Context, candidateID common.UUID) ([]Hire, error)
}
