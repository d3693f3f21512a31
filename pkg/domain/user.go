package domain

import (
	"fmt"
	"strings"
)

// Role is a user's platform-wide role.
type Role string

const (
	Admin      Role = "ADMIN"
	SimpleUser Role = "SIMPLE_USER"
)

func (r Role) String() string {
	return string(r)
}

func AsRole(s string) (Role, error) {
	switch r := Role(strings.ToUpper(s)); r {
	case Admin, SimpleUser:
		return r, nil
	default:
		return r, fmt.Errorf("unknown role: %s", s)
	}
}

// ProjectRole is a tenant-scoped permission tier, distinct from Role.
//
// Tiers are strictly ordered; see Level.
type ProjectRole string

const (
	NoRole       ProjectRole = "NO_ROLE"
	Viewer       ProjectRole = "VIEWER"
	Developer    ProjectRole = "DEVELOPER"
	Maintainer   ProjectRole = "MAINTAINER"
	ProjectAdmin ProjectRole = "ADMIN"
)

func (r ProjectRole) String() string {
	return string(r)
}

// Level gives the position of r in the tier ordering
// NO_ROLE < VIEWER < DEVELOPER < MAINTAINER < ADMIN.
//
// Unknown roles rank as NO_ROLE.
func (r ProjectRole) Level() int {
	switch r {
	case Viewer:
		return 1
	case Developer:
		return 2
	case Maintainer:
		return 3
	case ProjectAdmin:
		return 4
	default:
		return 0
	}
}

func AsProjectRole(s string) (ProjectRole, error) {
	switch r := ProjectRole(strings.ToUpper(s)); r {
	case NoRole, Viewer, Developer, Maintainer, ProjectAdmin:
		return r, nil
	default:
		return r, fmt.Errorf("unknown project role: %s", s)
	}
}

// User is a platform account.
type User struct {
	Id           int
	Email        string
	PasswordHash string
	Role         Role
}

// ProjectMembership binds a user to a project with a project role.
//
// Absence of a membership row means NoRole.
type ProjectMembership struct {
	Email       string
	ProjectName string
	Role        ProjectRole
}
