package mock

import (
	"context"
	"testing"

	"github.com/modelplane/modelplane/pkg/domain/cluster"
)

type Cluster struct {
	t    *testing.T
	Impl struct {
		EnsureNamespace     func(ctx context.Context, name string) error
		EnsureService       func(ctx context.Context, namespace string, spec cluster.ServiceSpec) error
		ServiceExists       func(ctx context.Context, namespace string, name string) (bool, error)
		DeleteService       func(ctx context.Context, namespace string, name string) error
		EnsureWorkload      func(ctx context.Context, namespace string, spec cluster.WorkloadSpec) error
		WorkloadExists      func(ctx context.Context, namespace string, name string) (bool, error)
		DeleteWorkload      func(ctx context.Context, namespace string, name string) error
		EnsureConfigMap     func(ctx context.Context, namespace string, name string, labels map[string]string, data map[string]string) error
		DeleteConfigMap     func(ctx context.Context, namespace string, name string) error
		EnsureMetricsScrape func(ctx context.Context, namespace string, serviceName string, selector map[string]string) error
		DeleteMetricsScrape func(ctx context.Context, namespace string, serviceName string) error
		EnsureIngressPath   func(ctx context.Context, namespace string, path string, serviceName string, port int32) error
		RemoveIngressPath   func(ctx context.Context, namespace string, path string) error
		DeleteNamespace     func(ctx context.Context, name string) error
	}
}

var _ cluster.Cluster = &Cluster{}

func NewCluster(t *testing.T) *Cluster {
	return &Cluster{t: t}
}

func (m *Cluster) EnsureNamespace(ctx context.Context, name string) error {
	if m.Impl.EnsureNamespace != nil {
		return m.Impl.EnsureNamespace(ctx, name)
	}
	m.t.Fatal("should not be called: EnsureNamespace")
	return nil
}

func (m *Cluster) EnsureService(ctx context.Context, namespace string, spec cluster.ServiceSpec) error {
	if m.Impl.EnsureService != nil {
		return m.Impl.EnsureService(ctx, namespace, spec)
	}
	m.t.Fatal("should not be called: EnsureService")
	return nil
}

func (m *Cluster) ServiceExists(ctx context.Context, namespace string, name string) (bool, error) {
	if m.Impl.ServiceExists != nil {
		return m.Impl.ServiceExists(ctx, namespace, name)
	}
	m.t.Fatal("should not be called: ServiceExists")
	return false, nil
}

func (m *Cluster) DeleteService(ctx context.Context, namespace string, name string) error {
	if m.Impl.DeleteService != nil {
		return m.Impl.DeleteService(ctx, namespace, name)
	}
	m.t.Fatal("should not be called: DeleteService")
	return nil
}

func (m *Cluster) EnsureWorkload(ctx context.Context, namespace string, spec cluster.WorkloadSpec) error {
	if m.Impl.EnsureWorkload != nil {
		return m.Impl.EnsureWorkload(ctx, namespace, spec)
	}
	m.t.Fatal("should not be called: EnsureWorkload")
	return nil
}

func (m *Cluster) WorkloadExists(ctx context.Context, namespace string, name string) (bool, error) {
	if m.Impl.WorkloadExists != nil {
		return m.Impl.WorkloadExists(ctx, namespace, name)
	}
	m.t.Fatal("should not be called: WorkloadExists")
	return false, nil
}

func (m *Cluster) DeleteWorkload(ctx context.Context, namespace string, name string) error {
	if m.Impl.DeleteWorkload != nil {
		return m.Impl.DeleteWorkload(ctx, namespace, name)
	}
	m.t.Fatal("should not be called: DeleteWorkload")
	return nil
}

func (m *Cluster) EnsureConfigMap(
	ctx context.Context, namespace string, name string,
	labels map[string]string, data map[string]string,
) error {
	if m.Impl.EnsureConfigMap != nil {
		return m.Impl.EnsureConfigMap(ctx, namespace, name, labels, data)
	}
	m.t.Fatal("should not be called: EnsureConfigMap")
	return nil
}

func (m *Cluster) DeleteConfigMap(ctx context.Context, namespace string, name string) error {
	if m.Impl.DeleteConfigMap != nil {
		return m.Impl.DeleteConfigMap(ctx, namespace, name)
	}
	m.t.Fatal("should not be called: DeleteConfigMap")
	return nil
}

func (m *Cluster) EnsureMetricsScrape(ctx context.Context, namespace string, serviceName string, selector map[string]string) error {
	if m.Impl.EnsureMetricsScrape != nil {
		return m.Impl.EnsureMetricsScrape(ctx, namespace, serviceName, selector)
	}
	m.t.Fatal("should not be called: EnsureMetricsScrape")
	return nil
}

func (m *Cluster) DeleteMetricsScrape(ctx context.Context, namespace string, serviceName string) error {
	if m.Impl.DeleteMetricsScrape != nil {
		return m.Impl.DeleteMetricsScrape(ctx, namespace, serviceName)
	}
	m.t.Fatal("should not be called: DeleteMetricsScrape")
	return nil
}

func (m *Cluster) EnsureIngressPath(ctx context.Context, namespace string, path string, serviceName string, port int32) error {
	if m.Impl.EnsureIngressPath != nil {
		return m.Impl.EnsureIngressPath(ctx, namespace, path, serviceName, port)
	}
	m.t.Fatal("should not be called: EnsureIngressPath")
	return nil
}

func (m *Cluster) RemoveIngressPath(ctx context.Context, namespace string, path string) error {
	if m.Impl.RemoveIngressPath != nil {
		return m.Impl.RemoveIngressPath(ctx, namespace, path)
	}
	m.t.Fatal("should not be called: RemoveIngressPath")
	return nil
}

func (m *Cluster) DeleteNamespace(ctx context.Context, name string) error {
	if m.Impl.DeleteNamespace != nil {
		return m.Impl.DeleteNamespace(ctx, name)
	}
	m.t.Fatal("should not be called: DeleteNamespace")
	return nil
}
