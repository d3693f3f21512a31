package project

import (
	"context"

	"github.com/modelplane/modelplane/pkg/domain"
)

// Interface manages tenants and their infrastructure.
type Interface interface {
	// Create registers the project (its name is sanitized first),
	// provisions its namespace and model registry, routes the registry
	// on the shared ingress, and makes the creator its admin.
	Create(ctx context.Context, actor string, name string, scope string, dataPerimeter string) (domain.Project, error)

	Get(ctx context.Context, name string) (domain.Project, error)

	List(ctx context.Context) ([]domain.Project, error)

	// Remove tears the whole tenant down: ingress route, namespace
	// with everything in it, cached registry connections, and the
	// stored rows.
	Remove(ctx context.Context, actor string, name string) error
}
