package mock

import (
	"context"
	"testing"

	kubeapps "k8s.io/api/apps/v1"
	kubecore "k8s.io/api/core/v1"
	kubenet "k8s.io/api/networking/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/modelplane/modelplane/pkg/domain/cluster/k8s"
)

type K8sClient struct {
	t    *testing.T
	Impl struct {
		GetNamespace    func(ctx context.Context, name string) (*kubecore.Namespace, error)
		CreateNamespace func(ctx context.Context, ns *kubecore.Namespace) (*kubecore.Namespace, error)
		DeleteNamespace func(ctx context.Context, name string) error

		GetService    func(ctx context.Context, namespace string, svcname string) (*kubecore.Service, error)
		CreateService func(ctx context.Context, namespace string, svc *kubecore.Service) (*kubecore.Service, error)
		DeleteService func(ctx context.Context, namespace string, svcname string) error

		GetDeployment    func(ctx context.Context, namespace string, deplname string) (*kubeapps.Deployment, error)
		ListDeployments  func(ctx context.Context, namespace string) (*kubeapps.DeploymentList, error)
		CreateDeployment func(ctx context.Context, namespace string, depl *kubeapps.Deployment) (*kubeapps.Deployment, error)
		DeleteDeployment func(ctx context.Context, namespace string, deplname string) error

		DeletePods func(ctx context.Context, namespace string) error

		GetConfigMap    func(ctx context.Context, namespace string, name string) (*kubecore.ConfigMap, error)
		CreateConfigMap func(ctx context.Context, namespace string, cm *kubecore.ConfigMap) (*kubecore.ConfigMap, error)
		DeleteConfigMap func(ctx context.Context, namespace string, name string) error

		GetIngress    func(ctx context.Context, namespace string, name string) (*kubenet.Ingress, error)
		UpdateIngress func(ctx context.Context, namespace string, ing *kubenet.Ingress) (*kubenet.Ingress, error)

		CreateServiceMonitor func(ctx context.Context, namespace string, sm *unstructured.Unstructured) error
		DeleteServiceMonitor func(ctx context.Context, namespace string, name string) error
	}
}

var _ k8s.K8sClient = &K8sClient{}

func NewK8sClient(t *testing.T) *K8sClient {
	return &K8sClient{t: t}
}

func (m *K8sClient) GetNamespace(ctx context.Context, name string) (*kubecore.Namespace, error) {
	if m.Impl.GetNamespace != nil {
		return m.Impl.GetNamespace(ctx, name)
	}
	m.t.Fatal("should not be called: GetNamespace")
	return nil, nil
}

func (m *K8sClient) CreateNamespace(ctx context.Context, ns *kubecore.Namespace) (*kubecore.Namespace, error) {
	if m.Impl.CreateNamespace != nil {
		return m.Impl.CreateNamespace(ctx, ns)
	}
	m.t.Fatal("should not be called: CreateNamespace")
	return nil, nil
}

func (m *K8sClient) DeleteNamespace(ctx context.Context, name string) error {
	if m.Impl.DeleteNamespace != nil {
		return m.Impl.DeleteNamespace(ctx, name)
	}
	m.t.Fatal("should not be called: DeleteNamespace")
	return nil
}

func (m *K8sClient) GetService(ctx context.Context, namespace string, svcname string) (*kubecore.Service, error) {
	if m.Impl.GetService != nil {
		return m.Impl.GetService(ctx, namespace, svcname)
	}
	m.t.Fatal("should not be called: GetService")
	return nil, nil
}

func (m *K8sClient) CreateService(ctx context.Context, namespace string, svc *kubecore.Service) (*kubecore.Service, error) {
	if m.Impl.CreateService != nil {
		return m.Impl.CreateService(ctx, namespace, svc)
	}
	m.t.Fatal("should not be called: CreateService")
	return nil, nil
}

func (m *K8sClient) DeleteService(ctx context.Context, namespace string, svcname string) error {
	if m.Impl.DeleteService != nil {
		return m.Impl.DeleteService(ctx, namespace, svcname)
	}
	m.t.Fatal("should not be called: DeleteService")
	return nil
}

func (m *K8sClient) GetDeployment(ctx context.Context, namespace string, deplname string) (*kubeapps.Deployment, error) {
	if m.Impl.GetDeployment != nil {
		return m.Impl.GetDeployment(ctx, namespace, deplname)
	}
	m.t.Fatal("should not be called: GetDeployment")
	return nil, nil
}

func (m *K8sClient) ListDeployments(ctx context.Context, namespace string) (*kubeapps.DeploymentList, error) {
	if m.Impl.ListDeployments != nil {
		return m.Impl.ListDeployments(ctx, namespace)
	}
	m.t.Fatal("should not be called: ListDeployments")
	return nil, nil
}

func (m *K8sClient) DeletePods(ctx context.Context, namespace string) error {
	if m.Impl.DeletePods != nil {
		return m.Impl.DeletePods(ctx, namespace)
	}
	m.t.Fatal("should not be called: DeletePods")
	return nil
}

func (m *K8sClient) CreateDeployment(ctx context.Context, namespace string, depl *kubeapps.Deployment) (*kubeapps.Deployment, error) {
	if m.Impl.CreateDeployment != nil {
		return m.Impl.CreateDeployment(ctx, namespace, depl)
	}
	m.t.Fatal("should not be called: CreateDeployment")
	return nil, nil
}

func (m *K8sClient) DeleteDeployment(ctx context.Context, namespace string, deplname string) error {
	if m.Impl.DeleteDeployment != nil {
		return m.Impl.DeleteDeployment(ctx, namespace, deplname)
	}
	m.t.Fatal("should not be called: DeleteDeployment")
	return nil
}

func (m *K8sClient) GetConfigMap(ctx context.Context, namespace string, name string) (*kubecore.ConfigMap, error) {
	if m.Impl.GetConfigMap != nil {
		return m.Impl.GetConfigMap(ctx, namespace, name)
	}
	m.t.Fatal("should not be called: GetConfigMap")
	return nil, nil
}

func (m *K8sClient) CreateConfigMap(ctx context.Context, namespace string, cm *kubecore.ConfigMap) (*kubecore.ConfigMap, error) {
	if m.Impl.CreateConfigMap != nil {
		return m.Impl.CreateConfigMap(ctx, namespace, cm)
	}
	m.t.Fatal("should not be called: CreateConfigMap")
	return nil, nil
}

func (m *K8sClient) DeleteConfigMap(ctx context.Context, namespace string, name string) error {
	if m.Impl.DeleteConfigMap != nil {
		return m.Impl.DeleteConfigMap(ctx, namespace, name)
	}
	m.t.Fatal("should not be called: DeleteConfigMap")
	return nil
}

func (m *K8sClient) GetIngress(ctx context.Context, namespace string, name string) (*kubenet.Ingress, error) {
	if m.Impl.GetIngress != nil {
		return m.Impl.GetIngress(ctx, namespace, name)
	}
	m.t.Fatal("should not be called: GetIngress")
	return nil, nil
}

func (m *K8sClient) UpdateIngress(ctx context.Context, namespace string, ing *kubenet.Ingress) (*kubenet.Ingress, error) {
	if m.Impl.UpdateIngress != nil {
		return m.Impl.UpdateIngress(ctx, namespace, ing)
	}
	m.t.Fatal("should not be called: UpdateIngress")
	return nil, nil
}

func (m *K8sClient) CreateServiceMonitor(ctx context.Context, namespace string, sm *unstructured.Unstructured) error {
	if m.Impl.CreateServiceMonitor != nil {
		return m.Impl.CreateServiceMonitor(ctx, namespace, sm)
	}
	m.t.Fatal("should not be called: CreateServiceMonitor")
	return nil
}

func (m *K8sClient) DeleteServiceMonitor(ctx context.Context, namespace string, name string) error {
	if m.Impl.DeleteServiceMonitor != nil {
		return m.Impl.DeleteServiceMonitor(ctx, namespace, name)
	}
	m.t.Fatal("should not be called: DeleteServiceMonitor")
	return nil
}
