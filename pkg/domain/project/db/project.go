package db

import (
	"context"

	"github.com/modelplane/modelplane/pkg/domain"
)

type Interface interface {
	// Register stores a new project. Registering a name twice returns
	// ErrAlreadyExists.
	Register(ctx context.Context, project domain.Project) error

	// Get returns the project, or ErrNotFound.
	Get(ctx context.Context, name string) (domain.Project, error)

	List(ctx context.Context) ([]domain.Project, error)

	// Remove drops the project and its memberships. Removing an absent
	// project returns ErrNotFound.
	Remove(ctx context.Context, name string) error
}
