package mock

import (
	"context"
	"testing"

	"github.com/modelplane/modelplane/pkg/domain"
	kdepl "github.com/modelplane/modelplane/pkg/domain/deployment/db"
)

type DeploymentDB struct {
	t    *testing.T
	Impl struct {
		Register func(ctx context.Context, depl domain.ModelDeployment) error
		Get      func(ctx context.Context, projectName string, deploymentName string) (domain.ModelDeployment, error)
		List     func(ctx context.Context, projectName string) ([]domain.ModelDeployment, error)
		Remove   func(ctx context.Context, projectName string, deploymentName string) error
	}
	Calls struct {
		Register []domain.ModelDeployment
		Remove   []string
	}
}

var _ kdepl.Interface = &DeploymentDB{}

func NewDeploymentDB(t *testing.T) *DeploymentDB {
	return &DeploymentDB{t: t}
}

func (m *DeploymentDB) Register(ctx context.Context, depl domain.ModelDeployment) error {
	m.Calls.Register = append(m.Calls.Register, depl)
	if m.Impl.Register != nil {
		return m.Impl.Register(ctx, depl)
	}
	m.t.Fatal("should not be called: Register")
	return nil
}

func (m *DeploymentDB) Get(ctx context.Context, projectName string, deploymentName string) (domain.ModelDeployment, error) {
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, projectName, deploymentName)
	}
	m.t.Fatal("should not be called: Get")
	return domain.ModelDeployment{}, nil
}

func (m *DeploymentDB) List(ctx context.Context, projectName string) ([]domain.ModelDeployment, error) {
	if m.Impl.List != nil {
		return m.Impl.List(ctx, projectName)
	}
	m.t.Fatal("should not be called: List")
	return nil, nil
}

func (m *DeploymentDB) Remove(ctx context.Context, projectName string, deploymentName string) error {
	m.Calls.Remove = append(m.Calls.Remove, deploymentName)
	if m.Impl.Remove != nil {
		return m.Impl.Remove(ctx, projectName, deploymentName)
	}
	m.t.Fatal("should not be called: Remove")
	return nil
}
