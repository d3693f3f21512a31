package db

import (
	"context"

	"github.com/modelplane/modelplane/pkg/domain"
)

type Interface interface {
	// Register stores the record of a successful deployment.
	// Re-registering the same (project, deployment) replaces the row.
	Register(ctx context.Context, depl domain.ModelDeployment) error

	// Get returns the record, or ErrNotFound.
	Get(ctx context.Context, projectName string, deploymentName string) (domain.ModelDeployment, error)

	// List returns the records of a project, newest first.
	List(ctx context.Context, projectName string) ([]domain.ModelDeployment, error)

	// Remove drops the record. Removing an absent record succeeds;
	// undeploy must stay idempotent.
	Remove(ctx context.Context, projectName string, deploymentName string) error
}
