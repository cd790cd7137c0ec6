// Copyright (c) 2026 Inkpress. All rights reserved.
// Author: an.lethanh.dev@gmail.com

/*
Package authz implements the authorization policy engine for Inkpress.

It is a pure decision layer: given a principal (user id + role), an action
from a closed enumerated set, and an optionally-owned resource, it decides
whether the action is permitted. It performs no I/O and holds no state.

Architecture:

  - Principal: the authenticated actor (id + role), nil for anonymous requests.
  - Action: a closed int enum — exhaustiveness is compiler-checkable, unlike
    the ad hoc string comparisons this engine replaces.
  - Resource: the target's id and owner id, nil for collection-level actions.
  - Decision: Permit, or Deny with a client-safe reason.

Callers resolve resource existence BEFORE evaluating policy: a missing
resource is a NotFound outcome at the service layer, never a policy decision.
[Decide] therefore always receives a resolved resource (or nil where the
action has no target) and never yields a not-found result.
*/
package authz

import "github.com/lethanhan/inkpress/internal/platform/sec"

// # Actions

// Action identifies one guarded operation. The set is closed: handlers map
// each route to exactly one Action, and [Decide] switches over the full set.
type Action int

const (
	// User management
	ActionDeleteUser Action = iota
	ActionUpdateUser
	ActionCreateUser
	ActionReadUser
	ActionListUsers

	// Post lifecycle
	ActionUpdatePost
	ActionDeletePost
	ActionReadPost
	ActionListPosts

	// Comment lifecycle
	ActionUpdateComment
	ActionDeleteComment
	ActionReadComment
	ActionListComments

	// Category lifecycle
	ActionCreateCategory
	ActionUpdateCategory
	ActionDeleteCategory
	ActionReadCategory
	ActionListCategories
)

// String returns the canonical name of the action for logging.
func (a Action) String() string {
	switch a {
	case ActionDeleteUser:
		return "delete_user"
	case ActionUpdateUser:
		return "update_user"
	case ActionCreateUser:
		return "create_user"
	case ActionReadUser:
		return "read_user"
	case ActionListUsers:
		return "list_users"
	case ActionUpdatePost:
		return "update_post"
	case ActionDeletePost:
		return "delete_post"
	case ActionReadPost:
		return "read_post"
	case ActionListPosts:
		return "list_posts"
	case ActionUpdateComment:
		return "update_comment"
	case ActionDeleteComment:
		return "delete_comment"
	case ActionReadComment:
		return "read_comment"
	case ActionListComments:
		return "list_comments"
	case ActionCreateCategory:
		return "create_category"
	case ActionUpdateCategory:
		return "update_category"
	case ActionDeleteCategory:
		return "delete_category"
	case ActionReadCategory:
		return "read_category"
	case ActionListCategories:
		return "list_categories"
	default:
		return "unknown"
	}
}

// # Inputs

// Principal is the authenticated actor making a request.
// A nil *Principal represents an anonymous request.
type Principal struct {
	// ID is the user's UUID.
	ID string
	// Role is the account's authorization level.
	Role sec.UserRole
}

// Resource describes the target of an action.
// A nil *Resource is used for collection-level actions (lists).
type Resource struct {
	// ID is the resource's UUID.
	ID string
	// OwnerID is the UUID of the owning user, empty for unowned resources.
	OwnerID string
}

// # Output

// Deny reasons returned to clients. These are the only reasons the engine
// produces; services wrap them as Forbidden errors at the boundary.
const (
	ReasonSelfDeletion  = "cannot delete own account"
	ReasonNotAuthorized = "not authorized"
)

// Decision is the outcome of a policy evaluation.
type Decision struct {
	// Allowed reports whether the action is permitted.
	Allowed bool
	// Reason carries the client-safe deny reason; empty when Allowed.
	Reason string
}

// Permit returns an allowing decision.
func Permit() Decision {
	return Decision{Allowed: true}
}

// Deny returns a denying decision with the given reason.
func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// # Evaluation

// Decide evaluates whether principal may perform action on resource.
//
// Rules apply in precedence order; the first matching rule wins:
//
//  1. Self-deletion guard: deleting one's own user account is denied for
//     every role, admin included.
//  2. Admin override: admins may perform any other action, regardless of
//     ownership.
//  3. Ownership: the owner of a post or comment may update or delete it.
//  4. Public read: reads and lists of posts, comments, and categories are
//     permitted unconditionally — no principal required.
//  5. Default: deny.
func Decide(principal *Principal, action Action, resource *Resource) Decision {

	// ── 1. Self-Deletion Guard ────────────────────────────────────────────
	if action == ActionDeleteUser && principal != nil && resource != nil && resource.ID == principal.ID {
		return Deny(ReasonSelfDeletion)
	}

	// ── 2. Admin Override ─────────────────────────────────────────────────
	if principal != nil && principal.Role == sec.RoleAdmin {
		return Permit()
	}

	// ── 3. Ownership ──────────────────────────────────────────────────────
	if isOwnershipAction(action) && principal != nil && resource != nil && resource.OwnerID == principal.ID {
		return Permit()
	}

	// ── 4. Public Read ────────────────────────────────────────────────────
	if isPublicReadAction(action) {
		return Permit()
	}

	// ── 5. Default Deny ───────────────────────────────────────────────────
	return Deny(ReasonNotAuthorized)
}

// isOwnershipAction reports whether action is subject to the ownership rule.
// Only post and comment mutations qualify; user and category mutations are
// admin territory (or handled as self-service outside this engine).
func isOwnershipAction(action Action) bool {
	switch action {
	case ActionUpdatePost, ActionDeletePost, ActionUpdateComment, ActionDeleteComment:
		return true
	default:
		return false
	}
}

// isPublicReadAction reports whether action is readable without a principal.
func isPublicReadAction(action Action) bool {
	switch action {
	case ActionReadPost, ActionListPosts,
		ActionReadComment, ActionListComments,
		ActionReadCategory, ActionListCategories:
		return true
	default:
		return false
	}
}
