// Package services contains stateless domain services that operate across
// aggregates. They hold no storage references and produce no side effects.
package services

import (
	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/pkg/errs"
)

// AccessGuard is the single authorization decision point. Every mutating
// entry point calls Check before touching storage; there are no per-route
// permission conditionals anywhere else.
//
// Evaluation order is fixed:
//  1. tenant ownership: the entity's organization must be the actor's,
//     unless the actor is a platform admin
//  2. capability: the actor's role must include the requested action
//
// Role changes additionally go through CheckRoleChange, which rejects any
// attempt by an actor to raise their own privileges.
type AccessGuard struct{}

// NewAccessGuard creates the guard. It is stateless and safe to share.
func NewAccessGuard() AccessGuard {
	return AccessGuard{}
}

// Check decides whether actor may perform action on an entity owned by
// entityOrgID. Returns nil on allow, a DeniedError on deny.
func (AccessGuard) Check(actor access.Context, action access.Action, entityOrgID kernel.UUID) error {
	if err := actor.Validate(); err != nil {
		return errs.NewUnauthenticatedErrorWithCause(err)
	}

	if !actor.PlatformAdmin && !actor.OrganizationID.IsEqual(entityOrgID) {
		return errs.NewDeniedError(errs.DenyReasonCrossTenant)
	}

	if !actor.Role.Can(action) {
		return errs.NewDeniedError(errs.DenyReasonInsufficientRole)
	}

	return nil
}

// CheckRoleChange decides whether actor may set targetUserID's role to
// newRole inside targetOrgID. Self-escalation, an actor assigning
// themselves a role ranking above their current one, is denied regardless
// of how privileged the actor already is.
func (g AccessGuard) CheckRoleChange(actor access.Context, targetOrgID kernel.UUID, targetUserID kernel.UUID, newRole access.Role) error {
	if err := g.Check(actor, access.ActionManageMembers, targetOrgID); err != nil {
		return err
	}

	if actor.UserID.IsEqual(targetUserID) && newRole.Rank() > actor.Role.Rank() {
		return errs.NewDeniedError(errs.DenyReasonSelfEscalation)
	}

	return nil
}
