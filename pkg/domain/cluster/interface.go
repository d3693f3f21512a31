package cluster

import "context"

// WorkloadSpec describes a single-container workload to run on the cluster.
type WorkloadSpec struct {
	Name     string
	Image    string
	Replicas int32
	Port     int32
	Labels   map[string]string
	Env      map[string]string
	Args     []string
}

// ServiceSpec describes a ClusterIP service fronting a workload.
type ServiceSpec struct {
	Name       string
	Port       int32
	TargetPort int32
	Selector   map[string]string
	Labels     map[string]string
}

// Cluster is the platform's view of the container orchestrator.
//
// Every Ensure* operation is replace-on-conflict: when the resource
// already exists it is recreated from the given spec, so repeating an
// operation converges to the spec rather than failing. Every Delete*
// operation treats an absent resource as success.
type Cluster interface {
	EnsureNamespace(ctx context.Context, name string) error

	EnsureService(ctx context.Context, namespace string, spec ServiceSpec) error
	ServiceExists(ctx context.Context, namespace string, name string) (bool, error)
	DeleteService(ctx context.Context, namespace string, name string) error

	EnsureWorkload(ctx context.Context, namespace string, spec WorkloadSpec) error
	WorkloadExists(ctx context.Context, namespace string, name string) (bool, error)
	DeleteWorkload(ctx context.Context, namespace string, name string) error

	EnsureConfigMap(ctx context.Context, namespace string, name string, labels map[string]string, data map[string]string) error
	DeleteConfigMap(ctx context.Context, namespace string, name string) error

	// EnsureMetricsScrape points the monitoring stack at the service's
	// metrics endpoint.
	EnsureMetricsScrape(ctx context.Context, namespace string, serviceName string, selector map[string]string) error
	DeleteMetricsScrape(ctx context.Context, namespace string, serviceName string) error

	// EnsureIngressPath routes path on the shared ingress to the service.
	EnsureIngressPath(ctx context.Context, namespace string, path string, serviceName string, port int32) error
	RemoveIngressPath(ctx context.Context, namespace string, path string) error

	// DeleteNamespace removes the namespace and everything in it.
	DeleteNamespace(ctx context.Context, name string) error
}
