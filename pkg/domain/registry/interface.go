package registry

import (
	"context"

	"github.com/modelplane/modelplane/pkg/domain"
)

// Client talks to the model registry of a single project.
type Client interface {
	// Ping verifies that the registry answers.
	Ping(ctx context.Context) error

	// ListModels returns the registered models.
	ListModels(ctx context.Context) ([]domain.Model, error)

	// ListModelVersions returns the versions of the named model,
	// newest first.
	ListModelVersions(ctx context.Context, modelName string) ([]domain.ModelVersion, error)

	// ModelSourceURI resolves the artifact location of a model version.
	ModelSourceURI(ctx context.Context, modelName string, version string) (string, error)

	// Close releases resources held by the client.
	Close()
}

// Dialer builds a Client for a project's registry endpoint.
type Dialer interface {
	Dial(ctx context.Context, projectName string) (Client, error)
}
