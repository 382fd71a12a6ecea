package app

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fadeyibigbolahan/mbjobs-backend/internal/common"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/user"
)

func TestQuotaCanPostJob_AllowsUnderLimit(t *testing.T) {
	env := newTestEnv()
	employer := env.subscribedEmployer(2)
	env.openJob(employer.ID)

	if err := env.quotaService.CanPostJob(context.Background(), employer); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestQuotaCanPostJob_DeniesWithoutSubscription(t *testing.T) {
	env := newTestEnv()
	employer := env.users.add(user.User{Role: user.RoleEmployer})

	err := env.quotaService.CanPostJob(context.Background(), employer)
	if !common.Is(err, common.CodeQuotaExceeded) {
		t.Fatalf("expected quota_exceeded, got %v", err)
	}
}

func TestQuotaCanPostJob_DeniesNonEmployer(t *testing.T) {
	env := newTestEnv()
	apprentice := env.users.add(user.User{Role: user.RoleApprentice})

	err := env.quotaService.CanPostJob(context.Background(), apprentice)
	if !common.Is(err, common.CodeQuotaExceeded) {
		t.Fatalf("expected quota_exceeded, got %v", err)
	}
}

func TestQuotaCanPostJob_DeniesExpiredEndDate(t *testing.T) {
	env := newTestEnv()
	tier := env.plans.add(planFixture(3))
	employer := env.users.add(user.User{
		Role: user.RoleEmployer,
		Subscription: &user.Subscription{
			PlanID: tier.ID,
			// Status flag says active but the end date has passed; the
			// clock wins.
			Status:  user.SubscriptionActive,
			EndDate: time.Now().UTC().Add(-time.Hour),
		},
	})

	err := env.quotaService.CanPostJob(context.Background(), employer)
	if !common.Is(err, common.CodeQuotaExceeded) {
		t.Fatalf("expected quota_exceeded, got %v", err)
	}
	if !strings.Contains(err.Error(), "expired") {
		t.Fatalf("expected expiry message, got %q", err.Error())
	}
}

func TestQuotaCanPostJob_DeniesInactiveStatus(t *testing.T) {
	env := newTestEnv()
	tier := env.plans.add(planFixture(3))
	employer := env.users.add(user.User{
		Role: user.RoleEmployer,
		Subscription: &user.Subscription{
			PlanID:  tier.ID,
			Status:  user.SubscriptionCanceled,
			EndDate: time.Now().UTC().Add(24 * time.Hour),
		},
	})

	err := env.quotaService.CanPostJob(context.Background(), employer)
	if !common.Is(err, common.CodeQuotaExceeded) {
		t.Fatalf("expected quota_exceeded, got %v", err)
	}
}

func TestQuotaCanPostJob_UnknownPlanIsValidationError(t *testing.T) {
	env := newTestEnv()
	employer := env.users.add(user.User{
		Role: user.RoleEmployer,
		Subscription: &user.Subscription{
			PlanID:  common.NewUUID(),
			Status:  user.SubscriptionActive,
			EndDate: time.Now().UTC().Add(24 * time.Hour),
		},
	})

	err := env.quotaService.CanPostJob(context.Background(), employer)
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestQuotaCanPostJob_DeniesAtLimit(t *testing.T) {
	env := newTestEnv()
	employer := env.subscribedEmployer(1)
	env.openJob(employer.ID)

	err := env.quotaService.CanPostJob(context.Background(), employer)
	if !common.Is(err, common.CodeQuotaExceeded) {
		t.Fatalf("expected quota_exceeded, got %v", err)
	}
	if !strings.Contains(err.Error(), "Starter") {
		t.Fatalf("expected plan title in message, got %q", err.Error())
	}
}

// Closed jobs whose deadline has not passed still occupy the quota; the
// denominator is deadline-based, not status-based.
func TestQuotaCanPostJob_ClosedJobStillCounts(t *testing.T) {
	env := newTestEnv()
	employer := env.subscribedEmployer(1)
	posted := env.openJob(employer.ID)
	posted.Status = "closed"
	if _, err := env.jobs.Update(context.Background(), *posted); err != nil {
		t.Fatalf("expected update, got %v", err)
	}

	err := env.quotaService.CanPostJob(context.Background(), employer)
	if !common.Is(err, common.CodeQuotaExceeded) {
		t.Fatalf("expected quota_exceeded, got %v", err)
	}
}
