package mock

import (
	"context"
	"testing"

	"github.com/modelplane/modelplane/pkg/domain"
	kproject "github.com/modelplane/modelplane/pkg/domain/project"
)

type Project struct {
	t    *testing.T
	Impl struct {
		Create func(ctx context.Context, actor string, name string, scope string, dataPerimeter string) (domain.Project, error)
		Get    func(ctx context.Context, name string) (domain.Project, error)
		List   func(ctx context.Context) ([]domain.Project, error)
		Remove func(ctx context.Context, actor string, name string) error
	}
}

var _ kproject.Interface = &Project{}

func New(t *testing.T) *Project {
	return &Project{t: t}
}

func (m *Project) Create(ctx context.Context, actor string, name string, scope string, dataPerimeter string) (domain.Project, error) {
	if m.Impl.Create != nil {
		return m.Impl.Create(ctx, actor, name, scope, dataPerimeter)
	}
	m.t.Fatal("should not be called: Create")
	return domain.Project{}, nil
}

func (m *Project) Get(ctx context.Context, name string) (domain.Project, error) {
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, name)
	}
	m.t.Fatal("should not be called: Get")
	return domain.Project{}, nil
}

func (m *Project) List(ctx context.Context) ([]domain.Project, error) {
	if m.Impl.List != nil {
		return m.Impl.List(ctx)
	}
	m.t.Fatal("should not be called: List")
	return nil, nil
}

func (m *Project) Remove(ctx context.Context, actor string, name string) error {
	if m.Impl.Remove != nil {
		return m.Impl.Remove(ctx, actor, name)
	}
	m.t.Fatal("should not be called: Remove")
	return nil
}
