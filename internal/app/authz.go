package app

import (
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/job"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/user"
)

// IsJobOwner reports whether the actor may act as the job's employer.
// Pure predicate over already-loaded entities; callers fetch first.
func IsJobOwner(j *job.Job, actor user.Actor) bool {
	return j.EmployerID == actor.ID || actor.Role == user.RoleAdmin
}

// IsHireParty reports whether the actor is on either side of a hire:
// the owning employer, the candidate, or an admin. Authorization on a
// hire always takes both the parent job and the hire itself, never the
// parent alone.
func IsHireParty(j *job.Job, h *job.Hire, actor user.Actor) bool {
	return IsJobOwner(j, actor) || h.CandidateID == actor.ID
}
