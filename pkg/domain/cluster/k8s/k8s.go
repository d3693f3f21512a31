package k8s

import (
	"context"

	kubeapps "k8s.io/api/apps/v1"
	kubecore "k8s.io/api/core/v1"
	kubenet "k8s.io/api/networking/v1"
	kubeapimeta "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/dynamic"
	k8s "k8s.io/client-go/kubernetes"
)

// subset of k8s.Clientset
type K8sClient interface {
	GetNamespace(ctx context.Context, name string) (*kubecore.Namespace, error)
	CreateNamespace(ctx context.Context, ns *kubecore.Namespace) (*kubecore.Namespace, error)
	DeleteNamespace(ctx context.Context, name string) error

	GetService(ctx context.Context, namespace string, svcname string) (*kubecore.Service, error)
	CreateService(ctx context.Context, namespace string, svc *kubecore.Service) (*kubecore.Service, error)
	DeleteService(ctx context.Context, namespace string, svcname string) error

	GetDeployment(ctx context.Context, namespace string, deplname string) (*kubeapps.Deployment, error)
	ListDeployments(ctx context.Context, namespace string) (*kubeapps.DeploymentList, error)
	CreateDeployment(ctx context.Context, namespace string, depl *kubeapps.Deployment) (*kubeapps.Deployment, error)
	DeleteDeployment(ctx context.Context, namespace string, deplname string) error

	DeletePods(ctx context.Context, namespace string) error

	GetConfigMap(ctx context.Context, namespace string, name string) (*kubecore.ConfigMap, error)
	CreateConfigMap(ctx context.Context, namespace string, cm *kubecore.ConfigMap) (*kubecore.ConfigMap, error)
	DeleteConfigMap(ctx context.Context, namespace string, name string) error

	GetIngress(ctx context.Context, namespace string, name string) (*kubenet.Ingress, error)
	UpdateIngress(ctx context.Context, namespace string, ing *kubenet.Ingress) (*kubenet.Ingress, error)

	CreateServiceMonitor(ctx context.Context, namespace string, sm *unstructured.Unstructured) error
	DeleteServiceMonitor(ctx context.Context, namespace string, name string) error
}

// GroupVersionResource of the Prometheus Operator's ServiceMonitor.
var serviceMonitorGVR = schema.GroupVersionResource{
	Group:    "monitoring.coreos.com",
	Version:  "v1",
	Resource: "servicemonitors",
}

// A wrapper for k8s.Clientset; because it does not prefer method
// chain-style invocations of that type.
type k8sClient struct {
	client  *k8s.Clientset
	dynamic dynamic.Interface
}

// type check: k8sClient implements K8sClient
var _ K8sClient = &k8sClient{}

func WrapK8sClient(c *k8s.Clientset, d dynamic.Interface) K8sClient {
	return &k8sClient{client: c, dynamic: d}
}

func (k *k8sClient) GetNamespace(ctx context.Context, name string) (*kubecore.Namespace, error) {
	return k.client.CoreV1().Namespaces().Get(ctx, name, kubeapimeta.GetOptions{})
}

func (k *k8sClient) CreateNamespace(ctx context.Context, ns *kubecore.Namespace) (*kubecore.Namespace, error) {
	return k.client.CoreV1().Namespaces().Create(ctx, ns, kubeapimeta.CreateOptions{})
}

func (k *k8sClient) DeleteNamespace(ctx context.Context, name string) error {
	return k.client.CoreV1().Namespaces().Delete(ctx, name, kubeapimeta.DeleteOptions{})
}

func (k *k8sClient) GetService(ctx context.Context, namespace string, svcname string) (*kubecore.Service, error) {
	return k.client.CoreV1().Services(namespace).Get(ctx, svcname, kubeapimeta.GetOptions{})
}

func (k *k8sClient) CreateService(ctx context.Context, namespace string, svc *kubecore.Service) (*kubecore.Service, error) {
	return k.client.CoreV1().Services(namespace).Create(ctx, svc, kubeapimeta.CreateOptions{})
}

func (k *k8sClient) DeleteService(ctx context.Context, namespace string, svcname string) error {
	return k.client.CoreV1().Services(namespace).Delete(ctx, svcname, *kubeapimeta.NewDeleteOptions(0))
}

func (k *k8sClient) GetDeployment(ctx context.Context, namespace string, deplname string) (*kubeapps.Deployment, error) {
	return k.client.AppsV1().Deployments(namespace).Get(ctx, deplname, kubeapimeta.GetOptions{})
}

func (k *k8sClient) ListDeployments(ctx context.Context, namespace string) (*kubeapps.DeploymentList, error) {
	return k.client.AppsV1().Deployments(namespace).List(ctx, kubeapimeta.ListOptions{})
}

func (k *k8sClient) DeletePods(ctx context.Context, namespace string) error {
	return k.client.CoreV1().Pods(namespace).DeleteCollection(
		ctx, *kubeapimeta.NewDeleteOptions(0), kubeapimeta.ListOptions{},
	)
}

func (k *k8sClient) CreateDeployment(ctx context.Context, namespace string, depl *kubeapps.Deployment) (*kubeapps.Deployment, error) {
	return k.client.AppsV1().Deployments(namespace).Create(ctx, depl, kubeapimeta.CreateOptions{})
}

func (k *k8sClient) DeleteDeployment(ctx context.Context, namespace string, deplname string) error {
	foreground := kubeapimeta.DeletePropagationForeground
	zero := int64(0)
	return k.client.AppsV1().Deployments(namespace).Delete(ctx, deplname, kubeapimeta.DeleteOptions{
		GracePeriodSeconds: &zero,
		PropagationPolicy:  &foreground,
	})
}

func (k *k8sClient) GetConfigMap(ctx context.Context, namespace string, name string) (*kubecore.ConfigMap, error) {
	return k.client.CoreV1().ConfigMaps(namespace).Get(ctx, name, kubeapimeta.GetOptions{})
}

func (k *k8sClient) CreateConfigMap(ctx context.Context, namespace string, cm *kubecore.ConfigMap) (*kubecore.ConfigMap, error) {
	return k.client.CoreV1().ConfigMaps(namespace).Create(ctx, cm, kubeapimeta.CreateOptions{})
}

func (k *k8sClient) DeleteConfigMap(ctx context.Context, namespace string, name string) error {
	return k.client.CoreV1().ConfigMaps(namespace).Delete(ctx, name, *kubeapimeta.NewDeleteOptions(0))
}

func (k *k8sClient) GetIngress(ctx context.Context, namespace string, name string) (*kubenet.Ingress, error) {
	return k.client.NetworkingV1().Ingresses(namespace).Get(ctx, name, kubeapimeta.GetOptions{})
}

func (k *k8sClient) UpdateIngress(ctx context.Context, namespace string, ing *kubenet.Ingress) (*kubenet.Ingress, error) {
	return k.client.NetworkingV1().Ingresses(namespace).Update(ctx, ing, kubeapimeta.UpdateOptions{})
}

func (k *k8sClient) CreateServiceMonitor(ctx context.Context, namespace string, sm *unstructured.Unstructured) error {
	_, err := k.dynamic.Resource(serviceMonitorGVR).Namespace(namespace).Create(ctx, sm, kubeapimeta.CreateOptions{})
	return err
}

func (k *k8sClient) DeleteServiceMonitor(ctx context.Context, namespace string, name string) error {
	return k.dynamic.Resource(serviceMonitorGVR).Namespace(namespace).Delete(ctx, name, kubeapimeta.DeleteOptions{})
}
