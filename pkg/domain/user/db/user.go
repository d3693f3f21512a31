package db

import (
	"context"

	"github.com/modelplane/modelplane/pkg/domain"
)

type Interface interface {
	// Register stores a new user. Registering an email twice returns
	// ErrAlreadyExists.
	Register(ctx context.Context, user domain.User) error

	// GetByEmail returns the user, or ErrNotFound.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// SetMembership grants (or changes) the user's role in a project.
	SetMembership(ctx context.Context, membership domain.ProjectMembership) error

	// RemoveMembership revokes the user's role in a project. Revoking
	// an absent membership returns ErrNotFound.
	RemoveMembership(ctx context.Context, email string, projectName string) error

	// GetRoleForProject reports the user's role in the project.
	// A user without a membership has NoRole; that is not an error.
	GetRoleForProject(ctx context.Context, email string, projectName string) (domain.ProjectRole, error)

	// ListMembers returns the memberships of a project.
	ListMembers(ctx context.Context, projectName string) ([]domain.ProjectMembership, error)
}
