// Package deployment turns registered model versions into running
// prediction services.
package deployment

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/modelplane/modelplane/pkg/domain"
	"github.com/modelplane/modelplane/pkg/domain/cluster"
	"github.com/modelplane/modelplane/pkg/domain/dashboard"
	kdepl "github.com/modelplane/modelplane/pkg/domain/deployment/db"
	kevent "github.com/modelplane/modelplane/pkg/domain/event/db"
	"github.com/modelplane/modelplane/pkg/domain/image"
	regpool "github.com/modelplane/modelplane/pkg/domain/registry/pool"
	"github.com/modelplane/modelplane/pkg/names"
)

// Name computes the cluster name of a model version's prediction
// service. Same (project, model, version), same name; that is what
// makes deploy idempotent.
func Name(projectName string, modelName string, version string) string {
	return names.ForCluster(projectName + "-" + modelName + "-" + version)
}

// DashboardUID computes the uid of a deployment's dashboard.
func DashboardUID(projectName string, deploymentName string) string {
	return names.ForDashboard(projectName + "-" + deploymentName)
}

// label values must stay label-safe, so no RFC3339 colons here.
const deploymentDateFormat = "2006-01-02_15-04-05"

// Storage is what the built images need to reach model artifacts.
type Storage struct {
	Endpoint  string
	AccessKey string
	SecretKey string
}

type service struct {
	cluster   cluster.Cluster
	registry  regpool.Pool
	builder   image.Builder
	dashboard dashboard.Publisher
	records   kdepl.Interface
	events    kevent.Interface

	// image repository prefix of a project in the shared image
	// registry, e.g. "registry.example.com:5000/my-project".
	imageRepoOf func(projectName string) string

	servicePort int32
	storage     Storage
	now         func() time.Time
}

var _ Interface = &service{}

func New(
	c cluster.Cluster,
	registry regpool.Pool,
	builder image.Builder,
	dash dashboard.Publisher,
	records kdepl.Interface,
	events kevent.Interface,
	imageRepoOf func(projectName string) string,
	servicePort int32,
	storage Storage,
) Interface {
	return &service{
		cluster:     c,
		registry:    registry,
		builder:     builder,
		dashboard:   dash,
		records:     records,
		events:      events,
		imageRepoOf: imageRepoOf,
		servicePort: servicePort,
		storage:     storage,
		now:         time.Now,
	}
}

func (s *service) Deploy(ctx context.Context, actor string, projectName string, modelName string, version string) error {
	deploymentName := Name(projectName, modelName, version)

	if running, err := s.cluster.WorkloadExists(ctx, projectName, deploymentName); err != nil {
		return err
	} else if running {
		return nil
	}

	reg, err := s.registry.Get(ctx, projectName)
	if err != nil {
		return err
	}
	modelURI, err := reg.ModelSourceURI(ctx, modelName, version)
	if err != nil {
		return err
	}

	tag := fmt.Sprintf("%s/%s:%s", s.imageRepoOf(projectName), names.Sanitize(modelName), version)
	err = s.builder.BuildAndPush(ctx, image.BuildSpec{
		Tag:              tag,
		ModelURI:         modelURI,
		Port:             s.servicePort,
		StorageEndpoint:  s.storage.Endpoint,
		StorageAccessKey: s.storage.AccessKey,
		StorageSecretKey: s.storage.SecretKey,
	})
	if err != nil {
		return err
	}

	deployedAt := s.now()
	labels := map[string]string{
		"app":             deploymentName,
		"model_name":      names.Sanitize(modelName),
		"model_version":   names.Sanitize(version),
		"project_name":    projectName,
		"deployment_date": deployedAt.UTC().Format(deploymentDateFormat),
	}

	if err := s.cluster.EnsureNamespace(ctx, projectName); err != nil {
		return err
	}
	if err := s.cluster.EnsureService(ctx, projectName, cluster.ServiceSpec{
		Name:       deploymentName,
		Port:       s.servicePort,
		TargetPort: s.servicePort,
		Selector:   map[string]string{"app": deploymentName},
		Labels:     labels,
	}); err != nil {
		return err
	}
	if err := s.cluster.EnsureWorkload(ctx, projectName, cluster.WorkloadSpec{
		Name:   deploymentName,
		Image:  tag,
		Port:   s.servicePort,
		Labels: labels,
	}); err != nil {
		return err
	}

	// monitoring is best-effort; a cluster without the Prometheus
	// Operator still serves predictions.
	if err := s.cluster.EnsureMetricsScrape(
		ctx, projectName, deploymentName, map[string]string{"app": deploymentName},
	); err != nil {
		log.Printf("metrics scrape for %s/%s not configured: %v", projectName, deploymentName, err)
	}

	uid := DashboardUID(projectName, deploymentName)
	if _, err := s.dashboard.Publish(
		ctx, uid, fmt.Sprintf("%s %s (%s)", modelName, version, projectName), deploymentName,
	); err != nil {
		log.Printf("dashboard for %s/%s not published: %v", projectName, deploymentName, err)
	}

	if err := s.records.Register(ctx, domain.ModelDeployment{
		ProjectName:    projectName,
		ModelName:      modelName,
		Version:        version,
		DeploymentName: deploymentName,
		DeploymentDate: deployedAt,
		DashboardUID:   uid,
	}); err != nil {
		return err
	}
	s.record(ctx, "deploy_model", actor, projectName+"/"+deploymentName)
	return nil
}

func (s *service) Undeploy(ctx context.Context, actor string, projectName string, modelName string, version string) error {
	deploymentName := Name(projectName, modelName, version)

	if err := s.dashboard.Remove(ctx, DashboardUID(projectName, deploymentName)); err != nil {
		return err
	}
	if err := s.cluster.DeleteMetricsScrape(ctx, projectName, deploymentName); err != nil {
		return err
	}
	if err := s.cluster.DeleteService(ctx, projectName, deploymentName); err != nil {
		return err
	}
	if err := s.cluster.DeleteWorkload(ctx, projectName, deploymentName); err != nil {
		return err
	}
	if err := s.records.Remove(ctx, projectName, deploymentName); err != nil {
		return err
	}
	s.record(ctx, "undeploy_model", actor, projectName+"/"+deploymentName)
	return nil
}

func (s *service) List(ctx context.Context, projectName string) ([]domain.DeployedModel, error) {
	records, err := s.records.List(ctx, projectName)
	if err != nil {
		return nil, err
	}

	deployed := []domain.DeployedModel{}
	for _, rec := range records {
		health := domain.Healthy
		if ok, err := s.cluster.ServiceExists(ctx, projectName, rec.DeploymentName); err != nil {
			return nil, err
		} else if !ok {
			health = domain.NotRunning
		}

		deployed = append(deployed, domain.DeployedModel{
			ModelDeployment: rec,
			DashboardURL:    s.dashboard.URL(rec.DashboardUID),
			Health:          health,
		})
	}
	return deployed, nil
}

// audit trail is advisory; a failed write must not undo a deploy.
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
