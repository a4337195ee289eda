// Package access is the permission oracle the admin pages consult before
// offering mutating actions. Stores never check permissions themselves.
package access

import "context"

type Resource string

const (
	ResourceAttendance Resource = "attendance"
	ResourceReports    Resource = "reports"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionExport Action = "export"
)

// Checker answers whether the current caller may perform an action on a
// resource.
type Checker interface {
	Can(ctx context.Context, resource Resource, action Action) bool
}

// Policy maps each resource to its granted actions.
type Policy map[Resource][]Action

type staticChecker struct {
	granted map[Resource]map[Action]bool
}

// NewStaticChecker builds a checker over a fixed policy, typically loaded
// from config at startup.
func NewStaticChecker(policy Policy) Checker {
	granted := make(map[Resource]map[Action]bool, len(policy))
	for res, actions := range policy {
		granted[res] = make(map[Action]bool, len(actions))
		for _, a := range actions {
			granted[res][a] = true
		}
	}
	return &staticChecker{granted: granted}
}

// AllowAll grants every action on every resource; the default for the mock
// deployment.
func AllowAll() Checker {
	all := []Action{ActionCreate, ActionUpdate, ActionDelete, ActionExport}
	return NewStaticChecker(Policy{
		ResourceAttendance: all,
		ResourceReports:    all,
	})
}

func (c *staticChecker) Can(_ context.Context, resource Resource, action Action) bool {
	return c.granted[resource][action]
}
