package app

import (
	"context"
	"fmt"
	"time"

	"github.com/fadeyibigbolahan/mbjobs-backend/internal/common"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/job"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/plan"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/user"
)

// QuotaService decides whether an employer may post another job under
// their subscription plan. It is read-only; the caller performs the
// actual creation.
type QuotaService struct {
	plans plan.Repository
	jobs  job.Repository
}

func NewQuotaService(plans plan.Repository, jobs job.Repository) *QuotaService {
	return &QuotaService{plans: plans, jobs: jobs}
}

// CanPostJob returns nil when the employer may post, and a typed
// denial otherwise. The subscription status flag alone is not trusted:
// the end date is checked against the live clock as well.
func (s *QuotaService) CanPostJob(ctx context.Context, employer user.User) error {
	if employer.Role != user.RoleEmployer || employer.Subscription == nil {
		return common.NewError(common.CodeQuotaExceeded, "only employers with an active subscription can post jobs", nil)
	}
	now := time.Now().UTC()
	sub := employer.Subscription
	if sub.Status != user.SubscriptionActive || sub.EndDate.Before(now) {
		return common.NewError(common.CodeQuotaExceeded, "your subscription has expired, renew to post jobs", nil)
	}
	subscribedPlan, err := s.plans.GetByID(ctx, sub.PlanID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return common.NewError(common.CodeValidation, "invalid subscription plan", err)
		}
		return err
	}
	activeJobs, err := s.jobs.CountActiveByEmployer(ctx, employer.ID, now)
	if err != nil {
		return err
	}
	if activeJobs >= subscribedPlan.MaxApprentices {
		message := fmt.Sprintf("your current plan (%s) allows only %d active job posting(s)", subscribedPlan.Title, subscribedPlan.MaxApprentices)
		return common.NewError(common.CodeQuotaExceeded, message, nil)
	}
	return nil
}
