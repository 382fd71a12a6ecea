package user

import (
	"time"

	"github.com/fadeyibigbolahan/mbjobs-backend/internal/common"
)

type Role string

const (
	RoleApprentice Role = "apprentice"
	RoleEmployer   Role = "employer"
	RoleAdmin      Role = "admin"
)

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionExpired  SubscriptionStatus = "expired"
	SubscriptionCanceled SubscriptionStatus = "canceled"
)

// Subscription is the billing fact attached to an employer account.
// It is written by the external billing collaborator; this service
// only reads it.
type Subscription struct {
	PlanID  common.UUID        `json:"plan_id"`
	Status  SubscriptionStatus `json:"status"`
	EndDate time.Time          `json:"end_date"`
}

type User struct {
	ID           common.UUID   `json:"id"`
	FullName     string        `json:"full_name"`
	Email        string        `json:"email"`
	Role         Role          `json:"role"`
	Subscription *Subscription `json:"subscription,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Actor is the authenticated identity attached to every request by the
// auth middleware. Tokens are issued by the external identity provider;
// their contents are trusted here.
type Actor struct {
	ID   common.UUID
	Role Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
