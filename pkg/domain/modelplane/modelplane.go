// Package modelplane wires the domain together: one call builds the
// database, the cluster view and the services on top of them.
package modelplane

import (
	"context"

	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"

	bconf "github.com/modelplane/modelplane/pkg/configs/backend"
	connk8s "github.com/modelplane/modelplane/pkg/conn/k8s"
	"github.com/modelplane/modelplane/pkg/domain/auth"
	"github.com/modelplane/modelplane/pkg/domain/cluster"
	k8scluster "github.com/modelplane/modelplane/pkg/domain/cluster/k8s"
	"github.com/modelplane/modelplane/pkg/domain/dashboard"
	"github.com/modelplane/modelplane/pkg/domain/dashboard/grafana"
	"github.com/modelplane/modelplane/pkg/domain/deployment"
	"github.com/modelplane/modelplane/pkg/domain/image"
	"github.com/modelplane/modelplane/pkg/domain/image/docker"
	dbInterface "github.com/modelplane/modelplane/pkg/domain/modelplane/db"
	"github.com/modelplane/modelplane/pkg/domain/modelplane/db/postgres"
	"github.com/modelplane/modelplane/pkg/domain/project"
	"github.com/modelplane/modelplane/pkg/domain/registry/mlflow"
	regpool "github.com/modelplane/modelplane/pkg/domain/registry/pool"
	"github.com/modelplane/modelplane/pkg/domain/task"
	xe "github.com/modelplane/modelplane/pkg/errors"
)

// name of the shared ingress routing registries and prediction services.
const (
	ingressNamespace = "ingress"
	ingressName      = "modelplane"
)

type Modelplane interface {
	Config() *bconf.Config

	Database() dbInterface.Database
	Cluster() cluster.Cluster
	Registries() regpool.Pool

	Projects() project.Interface
	Deployments() deployment.Interface
	Auth() auth.Engine
	Tasks() task.Tracker
	Dashboards() dashboard.Publisher
}

type modelplane struct {
	config *bconf.Config

	database dbInterface.Database
	cluster  cluster.Cluster
	pool     regpool.Pool

	projects    project.Interface
	deployments deployment.Interface
	auth        auth.Engine
	tasks       task.Tracker
	dashboards  dashboard.Publisher
}

var _ Modelplane = &modelplane{}

// Default connects to the cluster and the image engine the environment
// points at. ctx outlives the call: it is the base context of
// background tasks.
func Default(ctx context.Context, config *bconf.Config) (Modelplane, error) {
	clientset := connk8s.ConnectToK8s()
	restConfig, err := connk8s.RESTConfig()
	if err != nil {
		return nil, xe.Wrap(err)
	}
	dyn, err := dynamic.NewForConfig(restConfig)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	builder, err := docker.New()
	if err != nil {
		return nil, xe.Wrap(err)
	}
	return New(ctx, config, clientset, dyn, builder)
}

func New(
	ctx context.Context,
	config *bconf.Config,
	clientset *kubernetes.Clientset,
	dyn dynamic.Interface,
	builder image.Builder,
) (Modelplane, error) {
	database, err := postgres.New(ctx, config.Database())
	if err != nil {
		return nil, err
	}

	k8sclient := k8scluster.WrapK8sClient(clientset, dyn)
	cl := k8scluster.New(k8sclient, ingressNamespace, ingressName, config.Cluster().HostName())

	registryPort := config.Registry().Port()
	dialer := mlflow.NewDialer(func(projectName string) string {
		return "http://" + project.RegistryHost(projectName, registryPort)
	})
	pool := regpool.New(dialer, config.Registry().TTL())

	dashboards := grafana.New(
		cl, config.Cluster().MonitoringNamespace(), config.Cluster().GrafanaURL(),
	)

	projects := project.New(
		cl, database.Projects(), database.Users(), database.Events(),
		project.RegistryConfig{
			Image:            config.Registry().Image(),
			Port:             registryPort,
			PathPrefix:       config.Registry().Path(),
			StorageEndpoint:  config.Storage().Endpoint(),
			StorageAccessKey: config.Storage().AccessKey(),
			StorageSecretKey: config.Storage().SecretKey(),
		},
		pool,
	)

	// images go to the shared image registry, one repository path per
	// project; the per-project registry services speak the tracking
	// protocol, not the image one.
	imageRegistry := config.Image().Registry()
	deployments := deployment.New(
		cl, pool, builder, dashboards,
		database.Deployments(), database.Events(),
		func(projectName string) string {
			return imageRegistry + "/" + projectName
		},
		config.Cluster().DeploymentPort(),
		deployment.Storage{
			Endpoint:  config.Storage().Endpoint(),
			AccessKey: config.Storage().AccessKey(),
			SecretKey: config.Storage().SecretKey(),
		},
	)

	return &modelplane{
		config:      config,
		database:    database,
		cluster:     cl,
		pool:        pool,
		projects:    projects,
		deployments: deployments,
		auth:        auth.New(database.Users()),
		tasks:       task.New(ctx),
		dashboards:  dashboards,
	}, nil
}

func (m *modelplane) Config() *bconf.Config {
	return m.config
}

func (m *modelplane) Database() dbInterface.Database {
	return m.database
}

func (m *modelplane) Cluster() cluster.Cluster {
	return m.cluster
}

func (m *modelplane) Registries() regpool.Pool {
	return m.pool
}

func (m *modelplane) Projects() project.Interface {
	return m.projects
}

func (m *modelplane) Deployments() deployment.Interface {
	return m.deployments
}

func (m *modelplane) Auth() auth.Engine {
	return m.auth
}

func (m *modelplane) Tasks() task.Tracker {
	return m.tasks
}

func (m *modelplane) Dashboards() dashboard.Publisher {
	return m.dashboards
}
