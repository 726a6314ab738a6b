// Package policy is the single authorization decision point for the API.
// Every endpoint that guards a story, comment or user record asks this
// package instead of repeating owner/admin checks inline.
package policy

import (
	"criminaldiaries/internal/models"
)

// Action describes the kind of operation a caller wants to perform.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Ownable is implemented by resources that have an owning user:
// a story's author, a comment's commenter, a user record itself.
type Ownable interface {
	OwnerID() uint
}

// Caller identifies the authenticated user making a request.
type Caller struct {
	ID   uint
	Role models.Role
}

// Allowed reports whether the caller may perform action on resource.
// Rule: owner or admin. A nil resource (create/list) is always allowed
// since route-level auth already gates those.
func Allowed(caller Caller, resource Ownable, action Action) bool {
	if caller.Role == models.RoleAdmin {
		return true
	}
	if resource == nil {
		return true
	}
	return resource.OwnerID() == caller.ID
}

// Check returns a Forbidden error when the caller may not perform action on
// resource, nil otherwise. The message names the resource kind.
func Check(caller Caller, resource Ownable, action Action, kind string) error {
	if Allowed(caller, resource, action) {
		return nil
	}
	return models.NewForbiddenError("Not authorized to " + string(action) + " this " + kind)
}
