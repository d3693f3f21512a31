package mock

import (
	"context"
	"testing"

	"github.com/modelplane/modelplane/pkg/domain"
	kproj "github.com/modelplane/modelplane/pkg/domain/project/db"
)

type ProjectDB struct {
	t    *testing.T
	Impl struct {
		Register func(ctx context.Context, project domain.Project) error
		Get      func(ctx context.Context, name string) (domain.Project, error)
		List     func(ctx context.Context) ([]domain.Project, error)
		Remove   func(ctx context.Context, name string) error
	}
}

var _ kproj.Interface = &ProjectDB{}

func NewProjectDB(t *testing.T) *ProjectDB {
	return &ProjectDB{t: t}
}

func (m *ProjectDB) Register(ctx context.Context, project domain.Project) error {
	if m.Impl.Register != nil {
		return m.Impl.Register(ctx, project)
	}
	m.t.Fatal("should not be called: Register")
	return nil
}

func (m *ProjectDB) Get(ctx context.Context, name string) (domain.Project, error) {
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, name)
	}
	m.t.Fatal("should not be called: Get")
	return domain.Project{}, nil
}

func (m *ProjectDB) List(ctx context.Context) ([]domain.Project, error) {
	if m.Impl.List != nil {
		return m.Impl.List(ctx)
	}
	m.t.Fatal("should not be called: List")
	return nil, nil
}

func (m *ProjectDB) Remove(ctx context.Context, name string) error {
	if m.Impl.Remove != nil {
		return m.Impl.Remove(ctx, name)
	}
	m.t.Fatal("should not be called: Remove")
	return nil
}
