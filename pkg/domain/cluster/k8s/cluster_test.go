package k8s_test

import (
	"context"
	"errors"
	"testing"

	kubeapps "k8s.io/api/apps/v1"
	kubecore "k8s.io/api/core/v1"
	kubenet "k8s.io/api/networking/v1"
	kubeerr "k8s.io/apimachinery/pkg/api/errors"
	kubeapimeta "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/modelplane/modelplane/pkg/domain/cluster"
	"github.com/modelplane/modelplane/pkg/domain/cluster/k8s"
	"github.com/modelplane/modelplane/pkg/domain/cluster/k8s/mock"
	kerr "github.com/modelplane/modelplane/pkg/domain/errors"
)

func alreadyExists(resource string, name string) error {
	return kubeerr.NewAlreadyExists(schema.GroupResource{Resource: resource}, name)
}

func notFound(resource string, name string) error {
	return kubeerr.NewNotFound(schema.GroupResource{Resource: resource}, name)
}

func TestEnsureNamespace_ToleratesExisting(t *testing.T) {
	ctx := context.Background()

	client := mock.NewK8sClient(t)
	client.Impl.CreateNamespace = func(_ context.Context, ns *kubecore.Namespace) (*kubecore.Namespace, error) {
		return nil, alreadyExists("namespaces", ns.Name)
	}

	testee := k8s.New(client, "ingress", "shared", "models.example.com")
	if err := testee.EnsureNamespace(ctx, "my-project"); err != nil {
		t.Errorf("existing namespace should not be an error, but: %v", err)
	}
}

func TestEnsureService_ReplacesOnConflict(t *testing.T) {
	ctx := context.Background()

	created := []string{}
	deleted := []string{}
	client := mock.NewK8sClient(t)
	client.Impl.CreateService = func(_ context.Context, _ string, svc *kubecore.Service) (*kubecore.Service, error) {
		created = append(created, svc.Name)
		if len(created) == 1 {
			return nil, alreadyExists("services", svc.Name)
		}
		return svc, nil
	}
	client.Impl.DeleteService = func(_ context.Context, _ string, svcname string) error {
		deleted = append(deleted, svcname)
		return nil
	}

	testee := k8s.New(client, "ingress", "shared", "models.example.com")
	err := testee.EnsureService(ctx, "my-project", cluster.ServiceSpec{
		Name: "my-model", Port: 80, TargetPort: 8080,
		Selector: map[string]string{"app": "my-model"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(created) != 2 || len(deleted) != 1 {
		t.Errorf("expected delete-then-recreate, creates: %v, deletes: %v", created, deleted)
	}
}

func TestDeleteWorkload_ToleratesAbsence(t *testing.T) {
	ctx := context.Background()

	client := mock.NewK8sClient(t)
	client.Impl.DeleteDeployment = func(_ context.Context, _ string, deplname string) error {
		return notFound("deployments", deplname)
	}

	testee := k8s.New(client, "ingress", "shared", "models.example.com")
	if err := testee.DeleteWorkload(ctx, "my-project", "gone"); err != nil {
		t.Errorf("deleting an absent workload should succeed, but: %v", err)
	}
}

func TestDeleteNamespace_TearsDownStepByStep(t *testing.T) {
	ctx := context.Background()

	steps := []string{}
	client := mock.NewK8sClient(t)
	client.Impl.ListDeployments = func(_ context.Context, namespace string) (*kubeapps.DeploymentList, error) {
		if namespace != "my-project" {
			t.Errorf("unexpected namespace: %s", namespace)
		}
		return &kubeapps.DeploymentList{Items: []kubeapps.Deployment{
			{ObjectMeta: kubeapimeta.ObjectMeta{Name: "iris-3"}},
			{ObjectMeta: kubeapimeta.ObjectMeta{Name: "registry"}},
		}}, nil
	}
	client.Impl.DeleteDeployment = func(_ context.Context, _ string, deplname string) error {
		steps = append(steps, "workload:"+deplname)
		return nil
	}
	client.Impl.DeletePods = func(_ context.Context, _ string) error {
		steps = append(steps, "pods")
		return nil
	}
	client.Impl.DeleteNamespace = func(_ context.Context, _ string) error {
		steps = append(steps, "namespace")
		return nil
	}

	testee := k8s.New(client, "ingress", "shared", "models.example.com")
	if err := testee.DeleteNamespace(ctx, "my-project"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"workload:iris-3", "workload:registry", "pods", "namespace"}
	if len(steps) != len(want) {
		t.Fatalf("unexpected steps: %v", steps)
	}
	for i, step := range want {
		if steps[i] != step {
			t.Fatalf("steps out of order: %v, expected %v", steps, want)
		}
	}
}

func TestDeleteNamespace_ToleratesAbsence(t *testing.T) {
	ctx := context.Background()

	client := mock.NewK8sClient(t)
	client.Impl.ListDeployments = func(_ context.Context, namespace string) (*kubeapps.DeploymentList, error) {
		return &kubeapps.DeploymentList{}, nil
	}
	client.Impl.DeletePods = func(context.Context, string) error {
		return notFound("pods", "any")
	}
	client.Impl.DeleteNamespace = func(_ context.Context, name string) error {
		return notFound("namespaces", name)
	}

	testee := k8s.New(client, "ingress", "shared", "models.example.com")
	if err := testee.DeleteNamespace(ctx, "gone"); err != nil {
		t.Errorf("deleting an absent namespace should succeed, but: %v", err)
	}
}

func TestWorkloadExists(t *testing.T) {
	ctx := context.Background()

	fakeErr := errors.New("fake cluster error")
	for name, testcase := range map[string]struct {
		getErr    error
		want      bool
		wantError bool
	}{
		"found":                 {getErr: nil, want: true},
		"not found":             {getErr: notFound("deployments", "x"), want: false},
		"other errors pass out": {getErr: fakeErr, wantError: true},
	} {
		t.Run(name, func(t *testing.T) {
			client := mock.NewK8sClient(t)
			client.Impl.GetDeployment = func(context.Context, string, string) (*kubeapps.Deployment, error) {
				if testcase.getErr != nil {
					return nil, testcase.getErr
				}
				return &kubeapps.Deployment{}, nil
			}

			testee := k8s.New(client, "ingress", "shared", "models.example.com")
			got, err := testee.WorkloadExists(ctx, "ns", "x")
			if testcase.wantError {
				if !kerr.AsClusterError(err) {
					t.Errorf("expected a cluster error, but: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != testcase.want {
				t.Errorf("got %v, want %v", got, testcase.want)
			}
		})
	}
}

func TestEnsureIngressPath_AppendsAndReplaces(t *testing.T) {
	ctx := context.Background()

	pathType := kubenet.PathTypePrefix
	ing := &kubenet.Ingress{
		Spec: kubenet.IngressSpec{
			Rules: []kubenet.IngressRule{
				{
					Host: "models.example.com",
					IngressRuleValue: kubenet.IngressRuleValue{
						HTTP: &kubenet.HTTPIngressRuleValue{
							Paths: []kubenet.HTTPIngressPath{
								{
									Path:     "/registry/other",
									PathType: &pathType,
									Backend: kubenet.IngressBackend{
										Service: &kubenet.IngressServiceBackend{
											Name: "other",
											Port: kubenet.ServiceBackendPort{Number: 5000},
										},
									},
								},
							},
						},
					},
				},
			},
		},
	}

	var updated *kubenet.Ingress
	client := mock.NewK8sClient(t)
	client.Impl.GetIngress = func(context.Context, string, string) (*kubenet.Ingress, error) {
		return ing, nil
	}
	client.Impl.UpdateIngress = func(_ context.Context, _ string, got *kubenet.Ingress) (*kubenet.Ingress, error) {
		updated = got
		return got, nil
	}

	testee := k8s.New(client, "ingress", "shared", "models.example.com")
	if err := testee.EnsureIngressPath(ctx, "my-project", "/registry/my-project", "registry", 5000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated == nil {
		t.Fatal("ingress was not updated")
	}
	paths := updated.Spec.Rules[0].HTTP.Paths
	if len(paths) != 2 {
		t.Fatalf("expected 2 paths, got: %d", len(paths))
	}
	if paths[1].Path != "/registry/my-project" || paths[1].Backend.Service.Name != "registry" {
		t.Errorf("unexpected new path: %+v", paths[1])
	}

	// ensuring the same path again replaces, not duplicates.
	if err := testee.EnsureIngressPath(ctx, "my-project", "/registry/my-project", "registry-v2", 5000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	paths = updated.Spec.Rules[0].HTTP.Paths
	if len(paths) != 2 {
		t.Fatalf("expected 2 paths after replace, got: %d", len(paths))
	}
	if paths[1].Backend.Service.Name != "registry-v2" {
		t.Errorf("path backend should be replaced, got: %+v", paths[1])
	}
}

func TestRemoveIngressPath(t *testing.T) {
	ctx := context.Background()

	pathType := kubenet.PathTypePrefix
	mkPath := func(p string) kubenet.HTTPIngressPath {
		return kubenet.HTTPIngressPath{
			Path: p, PathType: &pathType,
			Backend: kubenet.IngressBackend{
				Service: &kubenet.IngressServiceBackend{
					Name: "svc", Port: kubenet.ServiceBackendPort{Number: 80},
				},
			},
		}
	}
	ing := &kubenet.Ingress{
		Spec: kubenet.IngressSpec{
			Rules: []kubenet.IngressRule{
				{
					Host: "models.example.com",
					IngressRuleValue: kubenet.IngressRuleValue{
						HTTP: &kubenet.HTTPIngressRuleValue{
							Paths: []kubenet.HTTPIngressPath{
								mkPath("/registry/keep"), mkPath("/registry/drop"),
							},
						},
					},
				},
			},
		},
	}

	updates := 0
	client := mock.NewK8sClient(t)
	client.Impl.GetIngress = func(context.Context, string, string) (*kubenet.Ingress, error) {
		return ing, nil
	}
	client.Impl.UpdateIngress = func(_ context.Context, _ string, got *kubenet.Ingress) (*kubenet.Ingress, error) {
		updates += 1
		return got, nil
	}

	testee := k8s.New(client, "ingress", "shared", "models.example.com")
	if err := testee.RemoveIngressPath(ctx, "my-project", "/registry/drop"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	paths := ing.Spec.Rules[0].HTTP.Paths
	if len(paths) != 1 || paths[0].Path != "/registry/keep" {
		t.Errorf("unexpected paths after removal: %+v", paths)
	}

	// removing a path that is not routed is a no-op, without an update.
	if err := testee.RemoveIngressPath(ctx, "my-project", "/registry/unknown"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updates != 1 {
		t.Errorf("expected exactly 1 update, got: %d", updates)
	}
}
