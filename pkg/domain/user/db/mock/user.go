package mock

import (
	"context"
	"testing"

	"github.com/modelplane/modelplane/pkg/domain"
	kuser "github.com/modelplane/modelplane/pkg/domain/user/db"
)

type UserDB struct {
	t    *testing.T
	Impl struct {
		Register          func(ctx context.Context, user domain.User) error
		GetByEmail        func(ctx context.Context, email string) (domain.User, error)
		SetMembership     func(ctx context.Context, membership domain.ProjectMembership) error
		RemoveMembership  func(ctx context.Context, email string, projectName string) error
		GetRoleForProject func(ctx context.Context, email string, projectName string) (domain.ProjectRole, error)
		ListMembers       func(ctx context.Context, projectName string) ([]domain.ProjectMembership, error)
	}
}

var _ kuser.Interface = &UserDB{}

func NewUserDB(t *testing.T) *UserDB {
	return &UserDB{t: t}
}

func (m *UserDB) Register(ctx context.Context, user domain.User) error {
	if m.Impl.Register != nil {
		return m.Impl.Register(ctx, user)
	}
	m.t.Fatal("should not be called: Register")
	return nil
}

func (m *UserDB) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	if m.Impl.GetByEmail != nil {
		return m.Impl.GetByEmail(ctx, email)
	}
	m.t.Fatal("should not be called: GetByEmail")
	return domain.User{}, nil
}

func (m *UserDB) SetMembership(ctx context.Context, membership domain.ProjectMembership) error {
	if m.Impl.SetMembership != nil {
		return m.Impl.SetMembership(ctx, membership)
	}
	m.t.Fatal("should not be called: SetMembership")
	return nil
}

func (m *UserDB) RemoveMembership(ctx context.Context, email string, projectName string) error {
	if m.Impl.RemoveMembership != nil {
		return m.Impl.RemoveMembership(ctx, email, projectName)
	}
	m.t.Fatal("should not be called: RemoveMembership")
	return nil
}

func (m *UserDB) GetRoleForProject(ctx context.Context, email string, projectName string) (domain.ProjectRole, error) {
	if m.Impl.GetRoleForProject != nil {
		return m.Impl.GetRoleForProject(ctx, email, projectName)
	}
	m.t.Fatal("should not be called: GetRoleForProject")
	return domain.NoRole, nil
}

func (m *UserDB) ListMembers(ctx context.Context, projectName string) ([]domain.ProjectMembership, error) {
	if m.Impl.ListMembers != nil {
		return m.Impl.ListMembers(ctx, projectName)
	}
	m.t.Fatal("should not be called: ListMembers")
	return nil, nil
}
