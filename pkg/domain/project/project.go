// Package project manages tenants. Each project owns a namespace, a
// model registry running inside it, and a set of user memberships.
package project

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/modelplane/modelplane/pkg/domain"
	"github.com/modelplane/modelplane/pkg/domain/cluster"
	kevent "github.com/modelplane/modelplane/pkg/domain/event/db"
	kproj "github.com/modelplane/modelplane/pkg/domain/project/db"
	regpool "github.com/modelplane/modelplane/pkg/domain/registry/pool"
	kuser "github.com/modelplane/modelplane/pkg/domain/user/db"
	"github.com/modelplane/modelplane/pkg/names"
)

// RegistryServiceName is the in-namespace name of every project's
// model registry service.
const RegistryServiceName = "registry"

// RegistryConfig describes the registry workload run per project.
type RegistryConfig struct {
	Image string
	Port  int32

	// public URL path prefix routing to registries, e.g. "/registry".
	PathPrefix string

	// artifact store backing the registries.
	StorageEndpoint  string
	StorageAccessKey string
	StorageSecretKey string
}

// RegistryPath is the shared-ingress path of a project's registry.
func (c RegistryConfig) RegistryPath(projectName string) string {
	return c.PathPrefix + "/" + projectName
}

// RegistryHost is the in-cluster address of a project's registry.
func RegistryHost(projectName string, port int32) string {
	return fmt.Sprintf("%s.%s.svc:%d", RegistryServiceName, projectName, port)
}

type service struct {
	cluster  cluster.Cluster
	projects kproj.Interface
	users    kuser.Interface
	events   kevent.Interface
	registry RegistryConfig
	pool     regpool.Pool
	now      func() time.Time
}

var _ Interface = &service{}

func New(
	c cluster.Cluster,
	projects kproj.Interface,
	users kuser.Interface,
	events kevent.Interface,
	registry RegistryConfig,
	pool regpool.Pool,
) Interface {
	return &service{
		cluster:  c,
		projects: projects,
		users:    users,
		events:   events,
		registry: registry,
		pool:     pool,
		now:      time.Now,
	}
}

func (s *service) Create(ctx context.Context, actor string, name string, scope string, dataPerimeter string) (domain.Project, error) {
	project := domain.Project{
		Name:          names.Sanitize(name),
		Owner:         actor,
		Scope:         scope,
		DataPerimeter: dataPerimeter,
	}

	if err := s.projects.Register(ctx, project); err != nil {
		return domain.Project{}, err
	}

	if err := s.cluster.EnsureNamespace(ctx, project.Name); err != nil {
		return domain.Project{}, err
	}
	if err := s.cluster.EnsureWorkload(ctx, project.Name, cluster.WorkloadSpec{
		Name:  RegistryServiceName,
		Image: s.registry.Image,
		Port:  s.registry.Port,
		Labels: map[string]string{
			"app":          RegistryServiceName,
			"project_name": project.Name,
		},
		Env: map[string]string{
			"MLFLOW_S3_ENDPOINT_URL": s.registry.StorageEndpoint,
			"AWS_ACCESS_KEY_ID":      s.registry.StorageAccessKey,
			"AWS_SECRET_ACCESS_KEY":  s.registry.StorageSecretKey,
		},
		Args: []string{
			"mlflow", "server",
			"--backend-store-uri", "sqlite:///mlflow.db",
			"--default-artifact-root", "s3://mlflow/" + project.Name,
			"--host", "0.0.0.0",
			"--port", fmt.Sprintf("%d", s.registry.Port),
		},
	}); err != nil {
		return domain.Project{}, err
	}
	if err := s.cluster.EnsureService(ctx, project.Name, cluster.ServiceSpec{
		Name:       RegistryServiceName,
		Port:       s.registry.Port,
		TargetPort: s.registry.Port,
		Selector:   map[string]string{"app": RegistryServiceName},
		Labels:     map[string]string{"project_name": project.Name},
	}); err != nil {
		return domain.Project{}, err
	}
	if err := s.cluster.EnsureIngressPath(
		ctx, project.Name, s.registry.RegistryPath(project.Name), RegistryServiceName, s.registry.Port,
	); err != nil {
		return domain.Project{}, err
	}

	if err := s.users.SetMembership(ctx, domain.ProjectMembership{
		Email:       actor,
		ProjectName: project.Name,
		Role:        domain.ProjectAdmin,
	}); err != nil {
		return domain.Project{}, err
	}

	s.record(ctx, "create_project", actor, project.Name)
	return project, nil
}

func (s *service) Get(ctx context.Context, name string) (domain.Project, error) {
	return s.projects.Get(ctx, name)
}

func (s *service) List(ctx context.Context) ([]domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *service) Remove(ctx context.Context, actor string, name string) error {
	// verify existence first, so removing an unknown tenant reports
	// NotFound instead of silently cleaning nothing up.
	if _, err := s.projects.Get(ctx, name); err != nil {
		return err
	}

	if err := s.cluster.RemoveIngressPath(ctx, name, s.registry.RegistryPath(name)); err != nil {
		return err
	}
	if err := s.cluster.DeleteNamespace(ctx, name); err != nil {
		return err
	}
	s.pool.Invalidate(name)

	if err := s.projects.Remove(ctx, name); err != nil {
		return err
	}
	s.record(ctx, "remove_project", actor, name)
	return nil
}

func (s *service) record(ctx context.Context, action string, actor string, entity string) {
	err := s.events.Record(ctx, domain.Event{
		Action:    action,
		Timestamp: s.now(),
		User:      actor,
		Entity:    entity,
	})
	if err != nil {
		log.Printf("audit event %s on %s not recorded: %v", action, entity, err)
	}
}
