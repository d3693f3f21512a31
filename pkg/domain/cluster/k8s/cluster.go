package k8s

import (
	"context"
	"fmt"

	kubeapps "k8s.io/api/apps/v1"
	kubecore "k8s.io/api/core/v1"
	kubenet "k8s.io/api/networking/v1"
	kubeerr "k8s.io/apimachinery/pkg/api/errors"
	kubeapimeta "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/modelplane/modelplane/pkg/domain/cluster"
	kerr "github.com/modelplane/modelplane/pkg/domain/errors"
)

type manager struct {
	client K8sClient

	// shared ingress routing public paths to services.
	ingressNamespace string
	ingressName      string
	ingressHost      string
}

var _ cluster.Cluster = &manager{}

// New builds a Cluster on top of the given client.
//
// The ingress identified by (ingressNamespace, ingressName, ingressHost)
// is the shared one that EnsureIngressPath and RemoveIngressPath edit.
func New(client K8sClient, ingressNamespace, ingressName, ingressHost string) cluster.Cluster {
	return &manager{
		client:           client,
		ingressNamespace: ingressNamespace,
		ingressName:      ingressName,
		ingressHost:      ingressHost,
	}
}

func (m *manager) EnsureNamespace(ctx context.Context, name string) error {
	ns := &kubecore.Namespace{
		ObjectMeta: kubeapimeta.ObjectMeta{Name: name},
	}
	if _, err := m.client.CreateNamespace(ctx, ns); err != nil {
		if kubeerr.IsAlreadyExists(err) {
			return nil
		}
		return kerr.NewClusterErrorCausedBy(fmt.Sprintf("create namespace %s", name), err)
	}
	return nil
}

func (m *manager) EnsureService(ctx context.Context, namespace string, spec cluster.ServiceSpec) error {
	svc := &kubecore.Service{
		ObjectMeta: kubeapimeta.ObjectMeta{
			Name:   spec.Name,
			Labels: spec.Labels,
		},
		Spec: kubecore.ServiceSpec{
			Selector: spec.Selector,
			Ports: []kubecore.ServicePort{
				{
					Name:       "http",
					Port:       spec.Port,
					TargetPort: intstr.FromInt32(spec.TargetPort),
				},
			},
		},
	}

	if _, err := m.client.CreateService(ctx, namespace, svc); err != nil {
		if !kubeerr.IsAlreadyExists(err) {
			return kerr.NewClusterErrorCausedBy(fmt.Sprintf("create service %s/%s", namespace, spec.Name), err)
		}
		if err := m.DeleteService(ctx, namespace, spec.Name); err != nil {
			return err
		}
		if _, err := m.client.CreateService(ctx, namespace, svc); err != nil {
			return kerr.NewClusterErrorCausedBy(fmt.Sprintf("recreate service %s/%s", namespace, spec.Name), err)
		}
	}
	return nil
}

func (m *manager) ServiceExists(ctx context.Context, namespace string, name string) (bool, error) {
	if _, err := m.client.GetService(ctx, namespace, name); err != nil {
		if kubeerr.IsNotFound(err) {
			return false, nil
		}
		return false, kerr.NewClusterErrorCausedBy(fmt.Sprintf("get service %s/%s", namespace, name), err)
	}
	return true, nil
}

func (m *manager) DeleteService(ctx context.Context, namespace string, name string) error {
	if err := m.client.DeleteService(ctx, namespace, name); err != nil && !kubeerr.IsNotFound(err) {
		return kerr.NewClusterErrorCausedBy(fmt.Sprintf("delete service %s/%s", namespace, name), err)
	}
	return nil
}

func (m *manager) EnsureWorkload(ctx context.Context, namespace string, spec cluster.WorkloadSpec) error {
	depl := workloadAsDeployment(spec)

	if _, err := m.client.CreateDeployment(ctx, namespace, depl); err != nil {
		if !kubeerr.IsAlreadyExists(err) {
			return kerr.NewClusterErrorCausedBy(fmt.Sprintf("create deployment %s/%s", namespace, spec.Name), err)
		}
		if err := m.DeleteWorkload(ctx, namespace, spec.Name); err != nil {
			return err
		}
		if _, err := m.client.CreateDeployment(ctx, namespace, depl); err != nil {
			return kerr.NewClusterErrorCausedBy(fmt.Sprintf("recreate deployment %s/%s", namespace, spec.Name), err)
		}
	}
	return nil
}

func (m *manager) WorkloadExists(ctx context.Context, namespace string, name string) (bool, error) {
	if _, err := m.client.GetDeployment(ctx, namespace, name); err != nil {
		if kubeerr.IsNotFound(err) {
			return false, nil
		}
		return false, kerr.NewClusterErrorCausedBy(fmt.Sprintf("get deployment %s/%s", namespace, name), err)
	}
	return true, nil
}

func (m *manager) DeleteWorkload(ctx context.Context, namespace string, name string) error {
	if err := m.client.DeleteDeployment(ctx, namespace, name); err != nil && !kubeerr.IsNotFound(err) {
		return kerr.NewClusterErrorCausedBy(fmt.Sprintf("delete deployment %s/%s", namespace, name), err)
	}
	return nil
}

func (m *manager) EnsureConfigMap(
	ctx context.Context, namespace string, name string,
	labels map[string]string, data map[string]string,
) error {
	cm := &kubecore.ConfigMap{
		ObjectMeta: kubeapimeta.ObjectMeta{
			Name:   name,
			Labels: labels,
		},
		Data: data,
	}

	if _, err := m.client.CreateConfigMap(ctx, namespace, cm); err != nil {
		if !kubeerr.IsAlreadyExists(err) {
			return kerr.NewClusterErrorCausedBy(fmt.Sprintf("create configmap %s/%s", namespace, name), err)
		}
		if err := m.DeleteConfigMap(ctx, namespace, name); err != nil {
			return err
		}
		if _, err := m.client.CreateConfigMap(ctx, namespace, cm); err != nil {
			return kerr.NewClusterErrorCausedBy(fmt.Sprintf("recreate configmap %s/%s", namespace, name), err)
		}
	}
	return nil
}

func (m *manager) DeleteConfigMap(ctx context.Context, namespace string, name string) error {
	if err := m.client.DeleteConfigMap(ctx, namespace, name); err != nil && !kubeerr.IsNotFound(err) {
		return kerr.NewClusterErrorCausedBy(fmt.Sprintf("delete configmap %s/%s", namespace, name), err)
	}
	return nil
}

func (m *manager) EnsureMetricsScrape(
	ctx context.Context, namespace string, serviceName string, selector map[string]string,
) error {
	matchLabels := map[string]any{}
	for k, v := range selector {
		matchLabels[k] = v
	}
	sm := &unstructured.Unstructured{
		Object: map[string]any{
			"apiVersion": "monitoring.coreos.com/v1",
			"kind":       "ServiceMonitor",
			"metadata": map[string]any{
				"name":      serviceName,
				"namespace": namespace,
			},
			"spec": map[string]any{
				"selector": map[string]any{
					"matchLabels": matchLabels,
				},
				"endpoints": []any{
					map[string]any{
						"port": "http",
						"path": "/metrics",
					},
				},
			},
		},
	}

	if err := m.client.CreateServiceMonitor(ctx, namespace, sm); err != nil {
		if !kubeerr.IsAlreadyExists(err) {
			return kerr.NewClusterErrorCausedBy(fmt.Sprintf("create servicemonitor %s/%s", namespace, serviceName), err)
		}
		if err := m.DeleteMetricsScrape(ctx, namespace, serviceName); err != nil {
			return err
		}
		if err := m.client.CreateServiceMonitor(ctx, namespace, sm); err != nil {
			return kerr.NewClusterErrorCausedBy(fmt.Sprintf("recreate servicemonitor %s/%s", namespace, serviceName), err)
		}
	}
	return nil
}

func (m *manager) DeleteMetricsScrape(ctx context.Context, namespace string, serviceName string) error {
	if err := m.client.DeleteServiceMonitor(ctx, namespace, serviceName); err != nil && !kubeerr.IsNotFound(err) {
		return kerr.NewClusterErrorCausedBy(fmt.Sprintf("delete servicemonitor %s/%s", namespace, serviceName), err)
	}
	return nil
}

func (m *manager) EnsureIngressPath(
	ctx context.Context, namespace string, path string, serviceName string, port int32,
) error {
	ing, err := m.client.GetIngress(ctx, m.ingressNamespace, m.ingressName)
	if err != nil {
		return kerr.NewClusterErrorCausedBy(fmt.Sprintf("get ingress %s/%s", m.ingressNamespace, m.ingressName), err)
	}

	pathType := kubenet.PathTypePrefix
	newPath := kubenet.HTTPIngressPath{
		Path:     path,
		PathType: &pathType,
		Backend: kubenet.IngressBackend{
			Service: &kubenet.IngressServiceBackend{
				Name: serviceName,
				Port: kubenet.ServiceBackendPort{Number: port},
			},
		},
	}

	rule := findRule(ing, m.ingressHost)
	if rule == nil {
		ing.Spec.Rules = append(ing.Spec.Rules, kubenet.IngressRule{
			Host: m.ingressHost,
			IngressRuleValue: kubenet.IngressRuleValue{
				HTTP: &kubenet.HTTPIngressRuleValue{
					Paths: []kubenet.HTTPIngressPath{newPath},
				},
			},
		})
	} else {
		replaced := false
		for i, p := range rule.HTTP.Paths {
			if p.Path == path {
				rule.HTTP.Paths[i] = newPath
				replaced = true
				break
			}
		}
		if !replaced {
			rule.HTTP.Paths = append(rule.HTTP.Paths, newPath)
		}
	}

	if _, err := m.client.UpdateIngress(ctx, m.ingressNamespace, ing); err != nil {
		return kerr.NewClusterErrorCausedBy(fmt.Sprintf("update ingress %s/%s", m.ingressNamespace, m.ingressName), err)
	}
	return nil
}

func (m *manager) RemoveIngressPath(ctx context.Context, namespace string, path string) error {
	ing, err := m.client.GetIngress(ctx, m.ingressNamespace, m.ingressName)
	if err != nil {
		if kubeerr.IsNotFound(err) {
			return nil
		}
		return kerr.NewClusterErrorCausedBy(fmt.Sprintf("get ingress %s/%s", m.ingressNamespace, m.ingressName), err)
	}

	rule := findRule(ing, m.ingressHost)
	if rule == nil {
		return nil
	}

	kept := rule.HTTP.Paths[:0]
	for _, p := range rule.HTTP.Paths {
		if p.Path != path {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(rule.HTTP.Paths) {
		return nil
	}
	rule.HTTP.Paths = kept

	if _, err := m.client.UpdateIngress(ctx, m.ingressNamespace, ing); err != nil {
		return kerr.NewClusterErrorCausedBy(fmt.Sprintf("update ingress %s/%s", m.ingressNamespace, m.ingressName), err)
	}
	return nil
}

// DeleteNamespace tears the namespace down step by step: workloads
// first, then leftover pods, then the namespace itself. Each step
// tolerates "already gone".
func (m *manager) DeleteNamespace(ctx context.Context, name string) error {
	depls, err := m.client.ListDeployments(ctx, name)
	if err != nil {
		if kubeerr.IsNotFound(err) {
			return nil
		}
		return kerr.NewClusterErrorCausedBy(fmt.Sprintf("list deployments in %s", name), err)
	}
	for _, depl := range depls.Items {
		if err := m.DeleteWorkload(ctx, name, depl.Name); err != nil {
			return err
		}
	}

	if err := m.client.DeletePods(ctx, name); err != nil && !kubeerr.IsNotFound(err) {
		return kerr.NewClusterErrorCausedBy(fmt.Sprintf("delete pods in %s", name), err)
	}

	if err := m.client.DeleteNamespace(ctx, name); err != nil && !kubeerr.IsNotFound(err) {
		return kerr.NewClusterErrorCausedBy(fmt.Sprintf("delete namespace %s", name), err)
	}
	return nil
}

func findRule(ing *kubenet.Ingress, host string) *kubenet.IngressRule {
	for i := range ing.Spec.Rules {
		r := &ing.Spec.Rules[i]
		if r.Host == host && r.HTTP != nil {
			return r
		}
	}
	return nil
}

func workloadAsDeployment(spec cluster.WorkloadSpec) *kubeapps.Deployment {
	replicas := spec.Replicas
	if replicas == 0 {
		replicas = 1
	}

	env := make([]kubecore.EnvVar, 0, len(spec.Env))
	for k, v := range spec.Env {
		env = append(env, kubecore.EnvVar{Name: k, Value: v})
	}

	return &kubeapps.Deployment{
		ObjectMeta: kubeapimeta.ObjectMeta{
			Name:   spec.Name,
			Labels: spec.Labels,
		},
		Spec: kubeapps.DeploymentSpec{
			Replicas: &replicas,
			Selector: &kubeapimeta.LabelSelector{
				MatchLabels: map[string]string{"app": spec.Name},
			},
			Template: kubecore.PodTemplateSpec{
				ObjectMeta: kubeapimeta.ObjectMeta{
					Labels: mergeLabels(map[string]string{"app": spec.Name}, spec.Labels),
				},
				Spec: kubecore.PodSpec{
					Containers: []kubecore.Container{
						{
							Name:  spec.Name,
							Image: spec.Image,
							Args:  spec.Args,
							Env:   env,
							Ports: []kubecore.ContainerPort{
								{ContainerPort: spec.Port},
							},
						},
					},
				},
			},
		},
	}
}

func mergeLabels(base map[string]string, over map[string]string) map[string]string {
	merged := map[string]string{}
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range over {
		merged[k] = v
	}
	return merged
}
