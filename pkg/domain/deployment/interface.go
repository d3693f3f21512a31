package deployment

import (
	"context"

	"github.com/modelplane/modelplane/pkg/domain"
)

// Interface drives the lifecycle of prediction services.
type Interface interface {
	// Deploy builds a service image for the model version and runs it
	// in the project's namespace. Deploying an already running version
	// is a no-op. Nothing is recorded unless the service is up.
	Deploy(ctx context.Context, actor string, projectName string, modelName string, version string) error

	// Undeploy tears the prediction service down. Every resource is
	// removed tolerantly, so a half-deployed or already removed model
	// can be undeployed again.
	Undeploy(ctx context.Context, actor string, projectName string, modelName string, version string) error

	// List returns the project's recorded deployments with their
	// observed health.
	List(ctx context.Context, projectName string) ([]domain.DeployedModel, error)
}
