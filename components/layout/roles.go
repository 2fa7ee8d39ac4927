package layout

// Role identifies a user tier within the SiteDeck permission model.
type Role string

// Roles ordered from highest privilege to lowest.
const (
	RoleSystemAdmin    Role = "system_admin"
	RoleOrgAdmin       Role = "org_admin"
	RoleProjectManager Role = "project_manager"
	RoleSupervisor     Role = "supervisor"
	RoleMember         Role = "member"
	RoleViewer         Role = "viewer"
)

var roleRanks = map[Role]int{
	RoleSystemAdmin:    6,
	RoleOrgAdmin:       5,
	RoleProjectManager: 4,
	RoleSupervisor:     3,
	RoleMember:         2,
	RoleViewer:         1,
}

// Rank maps a role onto its privilege level. Unknown roles rank 0 so they
// never satisfy a non-empty minimum-role requirement.
func (r Role) Rank() int {
	return roleRanks[r]
}

// FilterByRole returns the widgets the given role may see, preserving registry
// order. A widget without MinRole is visible to every role. Unrecognized roles
// degrade to lowest privilege rather than failing.
func FilterByRole(widgets []WidgetDescriptor, role Role) []WidgetDescriptor {
	filtered := make([]WidgetDescriptor, 0, len(widgets))
	rank := role.Rank()
	for _, w := range widgets {
		if w.MinRole == "" {
			filtered = append(filtered, w)
			continue
		}
		if rank > 0 && rank >= w.MinRole.Rank() {
			filtered = append(filtered, w)
		}
	}
	return filtered
}
