package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/modelplane/modelplane/cmd/modeld/handlers"
	httptestutil "github.com/modelplane/modelplane/internal/testutils/http"
	apidepl "github.com/modelplane/modelplane/pkg/api/types/deployments"
	apitasks "github.com/modelplane/modelplane/pkg/api/types/tasks"
	"github.com/modelplane/modelplane/pkg/domain"
	deplmock "github.com/modelplane/modelplane/pkg/domain/deployment/mock"
)

// fakeTracker records submitted work without running it.
type fakeTracker struct {
	submitted []func(ctx context.Context) error
	tasks     map[string]domain.Task
}

func (f *fakeTracker) Submit(run func(ctx context.Context) error) string {
	f.submitted = append(f.submitted, run)
	return "task-1"
}

func (f *fakeTracker) Get(id string) domain.Task {
	if t, ok := f.tasks[id]; ok {
		return t
	}
	return domain.Task{Id: id, Status: domain.TaskNotFound}
}

func TestDeployHandler(t *testing.T) {

	developer := domain.User{Email: "dev@example.com", Role: domain.SimpleUser}
	authz := engineWith(t, map[string]domain.ProjectRole{
		"dev@example.com/iris-classifier": domain.Developer,
	})

	t.Run("a deploy is accepted and handed to the tracker", func(t *testing.T) {
		deployed := []string{}
		deployments := deplmock.New(t)
		deployments.Impl.Deploy = func(ctx context.Context, actor string, projectName string, modelName string, version string) error {
			deployed = append(deployed, actor+"/"+projectName+"/"+modelName+"/"+version)
			return nil
		}
		tracker := &fakeTracker{}

		e := echo.New()
		c, respRec := httptestutil.Post(
			e, "/api/projects/iris-classifier/models/iris/versions/3/deploy/", nil,
		)
		c.SetPath("/api/projects/:project/models/:model/versions/:version/deploy/")
		c.SetParamNames("project", "model", "version")
		c.SetParamValues("iris-classifier", "iris", "3")
		handlers.SetUser(c, developer)

		if err := handlers.DeployHandler(deployments, tracker, authz)(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if respRec.Result().StatusCode != http.StatusAccepted {
			t.Errorf("status code %d != %d", respRec.Result().StatusCode, http.StatusAccepted)
		}

		resp := apitasks.Submitted{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("response is not json: %v", err)
		}
		if resp.TaskId != "task-1" {
			t.Errorf("task id %s != task-1", resp.TaskId)
		}
		if resp.Status != "Deployment initiated" {
			t.Errorf("unexpected status: %s", resp.Status)
		}

		if len(tracker.submitted) != 1 {
			t.Fatalf("submitted %d tasks, expected 1", len(tracker.submitted))
		}
		if err := tracker.submitted[0](context.Background()); err != nil {
			t.Fatalf("submitted work failed: %v", err)
		}
		if len(deployed) != 1 || deployed[0] != "dev@example.com/iris-classifier/iris/3" {
			t.Errorf("unexpected deploys: %v", deployed)
		}
	})

	t.Run("a viewer may not deploy", func(t *testing.T) {
		viewerAuthz := engineWith(t, map[string]domain.ProjectRole{
			"eve@example.com/iris-classifier": domain.Viewer,
		})
		deployments := deplmock.New(t)
		tracker := &fakeTracker{}

		e := echo.New()
		c, _ := httptestutil.Post(
			e, "/api/projects/iris-classifier/models/iris/versions/3/deploy/", nil,
		)
		c.SetPath("/api/projects/:project/models/:model/versions/:version/deploy/")
		c.SetParamNames("project", "model", "version")
		c.SetParamValues("iris-classifier", "iris", "3")
		handlers.SetUser(c, domain.User{Email: "eve@example.com", Role: domain.SimpleUser})

		err := handlers.DeployHandler(deployments, tracker, viewerAuthz)(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if echoErr.Code != http.StatusForbidden {
			t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, http.StatusForbidden)
		}
		if len(tracker.submitted) != 0 {
			t.Errorf("no task should have been submitted, got %d", len(tracker.submitted))
		}
	})
}

func TestUndeployHandler(t *testing.T) {

	developer := domain.User{Email: "dev@example.com", Role: domain.SimpleUser}
	authz := engineWith(t, map[string]domain.ProjectRole{
		"dev@example.com/iris-classifier": domain.Developer,
	})

	t.Run("an undeploy is accepted and handed to the tracker", func(t *testing.T) {
		undeployed := []string{}
		deployments := deplmock.New(t)
		deployments.Impl.Undeploy = func(ctx context.Context, actor string, projectName string, modelName string, version string) error {
			undeployed = append(undeployed, projectName+"/"+modelName+"/"+version)
			return nil
		}
		tracker := &fakeTracker{}

		e := echo.New()
		c, respRec := httptestutil.Post(
			e, "/api/projects/iris-classifier/models/iris/versions/3/undeploy/", nil,
		)
		c.SetPath("/api/projects/:project/models/:model/versions/:version/undeploy/")
		c.SetParamNames("project", "model", "version")
		c.SetParamValues("iris-classifier", "iris", "3")
		handlers.SetUser(c, developer)

		if err := handlers.UndeployHandler(deployments, tracker, authz)(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if respRec.Result().StatusCode != http.StatusAccepted {
			t.Errorf("status code %d != %d", respRec.Result().StatusCode, http.StatusAccepted)
		}

		resp := apitasks.Submitted{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("response is not json: %v", err)
		}
		if resp.Status != "Undeploy initiated" {
			t.Errorf("unexpected status: %s", resp.Status)
		}

		if len(tracker.submitted) != 1 {
			t.Fatalf("submitted %d tasks, expected 1", len(tracker.submitted))
		}
		if err := tracker.submitted[0](context.Background()); err != nil {
			t.Fatalf("submitted work failed: %v", err)
		}
		if len(undeployed) != 1 || undeployed[0] != "iris-classifier/iris/3" {
			t.Errorf("unexpected undeploys: %v", undeployed)
		}
	})
}

func TestDeploymentListHandler(t *testing.T) {

	viewer := domain.User{Email: "alice@example.com", Role: domain.SimpleUser}
	authz := engineWith(t, map[string]domain.ProjectRole{
		"alice@example.com/iris-classifier": domain.Viewer,
	})

	t.Run("recorded deployments are listed with their health", func(t *testing.T) {
		deployments := deplmock.New(t)
		deployments.Impl.List = func(ctx context.Context, projectName string) ([]domain.DeployedModel, error) {
			return []domain.DeployedModel{
				{
					ModelDeployment: domain.ModelDeployment{
						ProjectName: "iris-classifier", ModelName: "iris", Version: "3",
						DeploymentName: "iris-3-abc123",
						DeploymentDate: time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC),
					},
					Health: domain.Healthy,
				},
				{
					ModelDeployment: domain.ModelDeployment{
						ProjectName: "iris-classifier", ModelName: "iris", Version: "2",
						DeploymentName: "iris-2-def456",
					},
					Health: domain.NotRunning,
				},
			}, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/projects/iris-classifier/deployments/")
		c.SetPath("/api/projects/:project/deployments/")
		c.SetParamNames("project")
		c.SetParamValues("iris-classifier")
		handlers.SetUser(c, viewer)

		if err := handlers.DeploymentListHandler(deployments, authz)(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		resp := []apidepl.Detail{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("response is not json: %v", err)
		}
		if len(resp) != 2 {
			t.Fatalf("listed %d deployments, expected 2", len(resp))
		}
		if resp[0].Health != string(domain.Healthy) || resp[1].Health != string(domain.NotRunning) {
			t.Errorf("unexpected healths: %+v", resp)
		}
	})
}
