package image

import "context"

// BuildSpec describes a prediction-service image to build.
type BuildSpec struct {
	// Tag the built image is pushed as, including the registry host.
	Tag string

	// URI of the model artifacts the service will load.
	ModelURI string

	// port the service listens on.
	Port int32

	// artifact store the service reads model artifacts from.
	StorageEndpoint  string
	StorageAccessKey string
	StorageSecretKey string
}

// Builder turns a registered model into a runnable service image.
type Builder interface {
	// BuildAndPush builds the image and pushes it to its registry.
	// A failing build returns ErrBuildFailed with the engine's output
	// as the cause.
	BuildAndPush(ctx context.Context, spec BuildSpec) error
}
