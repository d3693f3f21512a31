package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	binddepl "github.com/modelplane/modelplane/pkg/api/binding/deployments"
	binderr "github.com/modelplane/modelplane/pkg/api/binding/errors"
	apitasks "github.com/modelplane/modelplane/pkg/api/types/tasks"
	"github.com/modelplane/modelplane/pkg/domain/auth"
	kdepl "github.com/modelplane/modelplane/pkg/domain/deployment"
	"github.com/modelplane/modelplane/pkg/domain/task"
	"github.com/modelplane/modelplane/pkg/utils"
)

// DeployHandler starts building and deploying a model version. The
// work runs in the background; the response carries the task id to
// poll.
func DeployHandler(
	deployments kdepl.Interface,
	tasks task.Tracker,
	authz auth.Engine,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		user, ok := UserFrom(c)
		if !ok {
			return binderr.Unauthorized("a bearer token is required", nil)
		}
		projectName := c.Param("project")
		modelName := c.Param("model")
		version := c.Param("version")

		if err := authz.Authorize(ctx, user, projectName, auth.ActionDeployModel); err != nil {
			return binderr.FromDomain(err)
		}

		taskId := tasks.Submit(func(ctx context.Context) error {
			return deployments.Deploy(ctx, user.Email, projectName, modelName, version)
		})

		return c.JSON(http.StatusAccepted, apitasks.Submitted{
			TaskId: taskId, Status: "Deployment initiated",
		})
	}
}

// UndeployHandler starts tearing a prediction service down in the
// background.
func UndeployHandler(
	deployments kdepl.Interface,
	tasks task.Tracker,
	authz auth.Engine,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		user, ok := UserFrom(c)
		if !ok {
			return binderr.Unauthorized("a bearer token is required", nil)
		}
		projectName := c.Param("project")
		modelName := c.Param("model")
		version := c.Param("version")

		if err := authz.Authorize(ctx, user, projectName, auth.ActionUndeployModel); err != nil {
			return binderr.FromDomain(err)
		}

		taskId := tasks.Submit(func(ctx context.Context) error {
			return deployments.Undeploy(ctx, user.Email, projectName, modelName, version)
		})

		return c.JSON(http.StatusAccepted, apitasks.Submitted{
			TaskId: taskId, Status: "Undeploy initiated",
		})
	}
}

// DeploymentListHandler returns the project's deployments with their
// observed health.
func DeploymentListHandler(deployments kdepl.Interface, authz auth.Engine) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		user, ok := UserFrom(c)
		if !ok {
			return binderr.Unauthorized("a bearer token is required", nil)
		}
		projectName := c.Param("project")

		if err := authz.Authorize(ctx, user, projectName, auth.ActionListDeployedModels); err != nil {
			return binderr.FromDomain(err)
		}

		deployed, err := deployments.List(ctx, projectName)
		if err != nil {
			return binderr.FromDomain(err)
		}

		return c.JSON(http.StatusOK, utils.Map(deployed, binddepl.ComposeDetail))
	}
}
