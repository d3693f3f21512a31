package project_test

import (
	"context"
	"testing"

	"github.com/modelplane/modelplane/pkg/domain"
	"github.com/modelplane/modelplane/pkg/domain/cluster"
	clustermock "github.com/modelplane/modelplane/pkg/domain/cluster/mock"
	kerr "github.com/modelplane/modelplane/pkg/domain/errors"
	eventmock "github.com/modelplane/modelplane/pkg/domain/event/db/mock"
	"github.com/modelplane/modelplane/pkg/domain/project"
	projmock "github.com/modelplane/modelplane/pkg/domain/project/db/mock"
	"github.com/modelplane/modelplane/pkg/domain/registry"
	regpool "github.com/modelplane/modelplane/pkg/domain/registry/pool"
	usermock "github.com/modelplane/modelplane/pkg/domain/user/db/mock"
)

type spyPool struct {
	invalidated []string
}

var _ regpool.Pool = &spyPool{}

func (p *spyPool) Get(context.Context, string) (registry.Client, error) { return nil, nil }
func (p *spyPool) Sweep()                                               {}
func (p *spyPool) Invalidate(name string)                               { p.invalidated = append(p.invalidated, name) }
func (p *spyPool) Close()                                               {}

func registryConfig() project.RegistryConfig {
	return project.RegistryConfig{
		Image:            "ghcr.io/mlflow/mlflow:v2.9.2",
		Port:             5000,
		PathPrefix:       "/registry",
		StorageEndpoint:  "http://minio:9000",
		StorageAccessKey: "access",
		StorageSecretKey: "secret",
	}
}

func TestCreate_ProvisionsTenant(t *testing.T) {
	ctx := context.Background()

	var registered *domain.Project
	projects := projmock.NewProjectDB(t)
	projects.Impl.Register = func(_ context.Context, p domain.Project) error {
		registered = &p
		return nil
	}

	namespaces := []string{}
	workloads := []cluster.WorkloadSpec{}
	services := []cluster.ServiceSpec{}
	type route struct {
		path, service string
	}
	routes := []route{}
	cl := clustermock.NewCluster(t)
	cl.Impl.EnsureNamespace = func(_ context.Context, name string) error {
		namespaces = append(namespaces, name)
		return nil
	}
	cl.Impl.EnsureWorkload = func(_ context.Context, _ string, spec cluster.WorkloadSpec) error {
		workloads = append(workloads, spec)
		return nil
	}
	cl.Impl.EnsureService = func(_ context.Context, _ string, spec cluster.ServiceSpec) error {
		services = append(services, spec)
		return nil
	}
	cl.Impl.EnsureIngressPath = func(_ context.Context, _ string, path string, serviceName string, _ int32) error {
		routes = append(routes, route{path: path, service: serviceName})
		return nil
	}

	memberships := []domain.ProjectMembership{}
	users := usermock.NewUserDB(t)
	users.Impl.SetMembership = func(_ context.Context, m domain.ProjectMembership) error {
		memberships = append(memberships, m)
		return nil
	}

	events := eventmock.NewEventDB(t)
	events.Impl.Record = func(context.Context, domain.Event) error { return nil }

	testee := project.New(cl, projects, users, events, registryConfig(), &spyPool{})
	got, err := testee.Create(ctx, "alice@example.com", "My Project_1", "team-a", "eu")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Name != "my-project-1" {
		t.Errorf("project name should be sanitized, got: %s", got.Name)
	}
	if registered == nil || registered.Name != "my-project-1" || registered.Owner != "alice@example.com" {
		t.Errorf("unexpected registration: %+v", registered)
	}
	if len(namespaces) != 1 || namespaces[0] != "my-project-1" {
		t.Errorf("unexpected namespaces: %v", namespaces)
	}
	if len(workloads) != 1 || workloads[0].Name != project.RegistryServiceName {
		t.Errorf("unexpected workloads: %+v", workloads)
	}
	if len(services) != 1 || services[0].Port != 5000 {
		t.Errorf("unexpected services: %+v", services)
	}
	if len(routes) != 1 || routes[0].path != "/registry/my-project-1" || routes[0].service != project.RegistryServiceName {
		t.Errorf("unexpected routes: %+v", routes)
	}
	if len(memberships) != 1 ||
		memberships[0].Email != "alice@example.com" ||
		memberships[0].Role != domain.ProjectAdmin {
		t.Errorf("creator should become project admin: %+v", memberships)
	}
	if len(events.Calls.Record) != 1 || events.Calls.Record[0].Action != "create_project" {
		t.Errorf("unexpected events: %+v", events.Calls.Record)
	}
}

func TestCreate_DuplicateName(t *testing.T) {
	ctx := context.Background()

	projects := projmock.NewProjectDB(t)
	projects.Impl.Register = func(_ context.Context, p domain.Project) error {
		return kerr.NewAlreadyExists("project " + p.Name)
	}

	cl := clustermock.NewCluster(t)
	users := usermock.NewUserDB(t)
	events := eventmock.NewEventDB(t)

	testee := project.New(cl, projects, users, events, registryConfig(), &spyPool{})
	_, err := testee.Create(ctx, "alice@example.com", "my-project", "", "")
	if !kerr.AsAlreadyExists(err) {
		t.Errorf("expected AlreadyExists, but: %v", err)
	}
}

func TestRemove_TearsTenantDown(t *testing.T) {
	ctx := context.Background()

	projects := projmock.NewProjectDB(t)
	projects.Impl.Get = func(_ context.Context, name string) (domain.Project, error) {
		return domain.Project{Name: name, Owner: "alice@example.com"}, nil
	}
	removed := []string{}
	projects.Impl.Remove = func(_ context.Context, name string) error {
		removed = append(removed, name)
		return nil
	}

	removedRoutes := []string{}
	deletedNamespaces := []string{}
	cl := clustermock.NewCluster(t)
	cl.Impl.RemoveIngressPath = func(_ context.Context, _ string, path string) error {
		removedRoutes = append(removedRoutes, path)
		return nil
	}
	cl.Impl.DeleteNamespace = func(_ context.Context, name string) error {
		deletedNamespaces = append(deletedNamespaces, name)
		return nil
	}

	users := usermock.NewUserDB(t)
	events := eventmock.NewEventDB(t)
	events.Impl.Record = func(context.Context, domain.Event) error { return nil }
	pool := &spyPool{}

	testee := project.New(cl, projects, users, events, registryConfig(), pool)
	if err := testee.Remove(ctx, "alice@example.com", "my-project-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(removedRoutes) != 1 || removedRoutes[0] != "/registry/my-project-1" {
		t.Errorf("unexpected route removals: %v", removedRoutes)
	}
	if len(deletedNamespaces) != 1 || deletedNamespaces[0] != "my-project-1" {
		t.Errorf("unexpected namespace deletions: %v", deletedNamespaces)
	}
	if len(pool.invalidated) != 1 || pool.invalidated[0] != "my-project-1" {
		t.Errorf("cached registry connections should be dropped: %v", pool.invalidated)
	}
	if len(removed) != 1 {
		t.Errorf("unexpected record removals: %v", removed)
	}
	if len(events.Calls.Record) != 1 || events.Calls.Record[0].Action != "remove_project" {
		t.Errorf("unexpected events: %+v", events.Calls.Record)
	}
}

func TestRemove_UnknownProject(t *testing.T) {
	ctx := context.Background()

	projects := projmock.NewProjectDB(t)
	projects.Impl.Get = func(_ context.Context, name string) (domain.Project, error) {
		return domain.Project{}, kerr.NewNotFound("project " + name)
	}

	cl := clustermock.NewCluster(t)
	users := usermock.NewUserDB(t)
	events := eventmock.NewEventDB(t)

	testee := project.New(cl, projects, users, events, registryConfig(), &spyPool{})
	err := testee.Remove(ctx, "alice@example.com", "no-such-project")
	if !kerr.AsNotFound(err) {
		t.Errorf("expected NotFound, but: %v", err)
	}
}
