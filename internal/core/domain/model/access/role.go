// Package access defines the identity and permission model: roles, actions,
// the role capability table, and the resolved per-request Context that every
// operation receives after authentication.
package access

import (
	"fmt"
	"slices"

	"merchflow/internal/pkg/errs"
)

// Role is the membership role of a user within one organization.
type Role string

const (
	RoleReadonly Role = "readonly"
	RoleMember   Role = "member"
	RoleAdmin    Role = "admin"
	RoleOwner    Role = "owner"
)

// Action is an authorized operation class checked against the capability table.
type Action string

const (
	ActionRead          Action = "read"
	ActionCreate        Action = "create"
	ActionUpdate        Action = "update"
	ActionDelete        Action = "delete"
	ActionBulk          Action = "bulk"
	ActionManageMembers Action = "manage_members"
)

// roleCapabilities maps each role to the actions it may perform.
// New entity types do not add conditionals anywhere; they only consult this
// table through Role.Can.
var roleCapabilities = map[Role][]Action{
	RoleReadonly: {
		ActionRead,
	},
	RoleMember: {
		ActionRead,
		ActionCreate,
		ActionUpdate,
		ActionBulk,
	},
	RoleAdmin: {
		ActionRead,
		ActionCreate,
		ActionUpdate,
		ActionDelete,
		ActionBulk,
		ActionManageMembers,
	},
	RoleOwner: {
		ActionRead,
		ActionCreate,
		ActionUpdate,
		ActionDelete,
		ActionBulk,
		ActionManageMembers,
	},
}

// roleRanks orders roles for privilege comparisons. A role change that would
// raise the actor's own rank is always denied.
var roleRanks = map[Role]int{
	RoleReadonly: 0,
	RoleMember:   1,
	RoleAdmin:    2,
	RoleOwner:    3,
}

// Validate checks that the role is one of the four known roles.
func (r Role) Validate() error {
	if _, ok := roleRanks[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", string(r)))
	}
	return nil
}

// Can reports whether the role's capability set includes the action.
// Unknown roles have no capabilities.
func (r Role) Can(action Action) bool {
	caps, ok := roleCapabilities[r]
	if !ok {
		return false
	}
	return slices.Contains(caps, action)
}

// Rank returns the privilege rank of the role, higher meaning more
// privileged. Unknown roles rank below readonly.
func (r Role) Rank() int {
	rank, ok := roleRanks[r]
	if !ok {
		return -1
	}
	return rank
}

func (r Role) String() string {
	return string(r)
}
