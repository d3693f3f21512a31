// Project-scoped role checks.
//
// Every state-mutating operation passes through Engine.Authorize before
// touching the registry, the database or the cluster. The decision is pure:
// resolve the caller's project role, look the action's minimum tier up and
// compare. Global admins bypass the tier check.
package auth

import (
	"context"

	"github.com/modelplane/modelplane/pkg/domain"
	kerr "github.com/modelplane/modelplane/pkg/domain/errors"
)

// RoleResolver resolves a user's role on a project.
//
// Implementations return domain.NoRole (not an error) when no membership
// row exists.
type RoleResolver interface {
	GetRoleForProject(ctx context.Context, email string, projectName string) (domain.ProjectRole, error)
}

type Engine interface {
	// Authorize returns nil iff user may perform action on projectName.
	//
	// Failure is kerr.ErrUnauthorized carrying the action and project
	// names for diagnostics. Other errors come from role resolution.
	Authorize(ctx context.Context, user domain.User, projectName string, action Action) error
}

type engine struct {
	roles RoleResolver
}

var _ Engine = &engine{}

func New(roles RoleResolver) Engine {
	return &engine{roles: roles}
}

func (e *engine) Authorize(ctx context.Context, user domain.User, projectName string, action Action) error {
	if user.Role == domain.Admin {
		return nil
	}

	role, err := e.roles.GetRoleForProject(ctx, user.Email, projectName)
	if err != nil {
		return err
	}

	if !Allowed(role, action) {
		return kerr.NewUnauthorized(string(action), projectName)
	}
	return nil
}
