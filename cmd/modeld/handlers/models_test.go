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
	apimodels "github.com/modelplane/modelplane/pkg/api/types/models"
	"github.com/modelplane/modelplane/pkg/domain"
	kerr "github.com/modelplane/modelplane/pkg/domain/errors"
	"github.com/modelplane/modelplane/pkg/domain/registry"
	regmock "github.com/modelplane/modelplane/pkg/domain/registry/mock"
)

// fakePool hands out a fixed client per project.
type fakePool struct {
	clients map[string]registry.Client
}

func (p *fakePool) Get(ctx context.Context, projectName string) (registry.Client, error) {
	if c, ok := p.clients[projectName]; ok {
		return c, nil
	}
	return nil, kerr.NewRegistryUnreachable("no registry for " + projectName)
}

func (p *fakePool) Sweep()                 {}
func (p *fakePool) Invalidate(name string) {}
func (p *fakePool) Close()                 {}

func TestModelListHandler(t *testing.T) {

	viewer := domain.User{Email: "alice@example.com", Role: domain.SimpleUser}
	authz := engineWith(t, map[string]domain.ProjectRole{
		"alice@example.com/iris-classifier": domain.Viewer,
	})

	t.Run("models from the project registry are listed", func(t *testing.T) {
		client := regmock.NewClient(t)
		client.Impl.ListModels = func(ctx context.Context) ([]domain.Model, error) {
			return []domain.Model{
				{
					Name:              "iris",
					CreationTimestamp: time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC),
					LatestVersions: []domain.ModelVersion{
						{Name: "iris", Version: "3", Stage: "Production"},
					},
				},
			}, nil
		}
		registries := &fakePool{clients: map[string]registry.Client{
			"iris-classifier": client,
		}}

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/projects/iris-classifier/models/")
		c.SetPath("/api/projects/:project/models/")
		c.SetParamNames("project")
		c.SetParamValues("iris-classifier")
		handlers.SetUser(c, viewer)

		if err := handlers.ModelListHandler(registries, authz)(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		resp := []apimodels.Summary{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("response is not json: %v", err)
		}
		if len(resp) != 1 || resp[0].Name != "iris" {
			t.Errorf("unexpected listing: %+v", resp)
		}
		if len(resp[0].LatestVersions) != 1 || resp[0].LatestVersions[0].Version != "3" {
			t.Errorf("unexpected versions: %+v", resp[0].LatestVersions)
		}
	})

	t.Run("an unreachable registry is reported as 503", func(t *testing.T) {
		registries := &fakePool{}

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/projects/iris-classifier/models/")
		c.SetPath("/api/projects/:project/models/")
		c.SetParamNames("project")
		c.SetParamValues("iris-classifier")
		handlers.SetUser(c, viewer)

		err := handlers.ModelListHandler(registries, authz)(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if echoErr.Code != http.StatusServiceUnavailable {
			t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, http.StatusServiceUnavailable)
		}
	})

	t.Run("a non-member is rejected with 403 before the registry is touched", func(t *testing.T) {
		registries := &fakePool{}

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/projects/iris-classifier/models/")
		c.SetPath("/api/projects/:project/models/")
		c.SetParamNames("project")
		c.SetParamValues("iris-classifier")
		handlers.SetUser(c, domain.User{Email: "mallory@example.com", Role: domain.SimpleUser})

		err := handlers.ModelListHandler(registries, authz)(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if echoErr.Code != http.StatusForbidden {
			t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, http.StatusForbidden)
		}
	})
}

func TestModelVersionListHandler(t *testing.T) {

	viewer := domain.User{Email: "alice@example.com", Role: domain.SimpleUser}
	authz := engineWith(t, map[string]domain.ProjectRole{
		"alice@example.com/iris-classifier": domain.Viewer,
	})

	t.Run("versions of the model are listed", func(t *testing.T) {
		client := regmock.NewClient(t)
		client.Impl.ListModelVersions = func(ctx context.Context, modelName string) ([]domain.ModelVersion, error) {
			if modelName != "iris" {
				t.Errorf("unexpected model name: %s", modelName)
			}
			return []domain.ModelVersion{
				{Name: "iris", Version: "3", Status: "READY"},
				{Name: "iris", Version: "2", Status: "READY"},
			}, nil
		}
		registries := &fakePool{clients: map[string]registry.Client{
			"iris-classifier": client,
		}}

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/projects/iris-classifier/models/iris/versions/")
		c.SetPath("/api/projects/:project/models/:model/versions/")
		c.SetParamNames("project", "model")
		c.SetParamValues("iris-classifier", "iris")
		handlers.SetUser(c, viewer)

		if err := handlers.ModelVersionListHandler(registries, authz)(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		resp := []apimodels.Version{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("response is not json: %v", err)
		}
		if len(resp) != 2 || resp[0].Version != "3" {
			t.Errorf("unexpected listing: %+v", resp)
		}
	})
}
