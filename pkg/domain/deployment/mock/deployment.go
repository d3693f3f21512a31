package mock

import (
	"context"
	"testing"

	"github.com/modelplane/modelplane/pkg/domain"
	"github.com/modelplane/modelplane/pkg/domain/deployment"
)

type Deployment struct {
	t    *testing.T
	Impl struct {
		Deploy   func(ctx context.Context, actor string, projectName string, modelName string, version string) error
		Undeploy func(ctx context.Context, actor string, projectName string, modelName string, version string) error
		List     func(ctx context.Context, projectName string) ([]domain.DeployedModel, error)
	}
}

var _ deployment.Interface = &Deployment{}

func New(t *testing.T) *Deployment {
	return &Deployment{t: t}
}

func (m *Deployment) Deploy(ctx context.Context, actor string, projectName string, modelName string, version string) error {
	if m.Impl.Deploy != nil {
		return m.Impl.Deploy(ctx, actor, projectName, modelName, version)
	}
	m.t.Fatal("should not be called: Deploy")
	return nil
}

func (m *Deployment) Undeploy(ctx context.Context, actor string, projectName string, modelName string, version string) error {
	if m.Impl.Undeploy != nil {
		return m.Impl.Undeploy(ctx, actor, projectName, modelName, version)
	}
	m.t.Fatal("should not be called: Undeploy")
	return nil
}

func (m *Deployment) List(ctx context.Context, projectName string) ([]domain.DeployedModel, error) {
	if m.Impl.List != nil {
		return m.Impl.List(ctx, projectName)
	}
	m.t.Fatal("should not be called: List")
	return nil, nil
}
