package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	binderr "github.com/modelplane/modelplane/pkg/api/binding/errors"
	bindmodels "github.com/modelplane/modelplane/pkg/api/binding/models"
	"github.com/modelplane/modelplane/pkg/domain/auth"
	regpool "github.com/modelplane/modelplane/pkg/domain/registry/pool"
	"github.com/modelplane/modelplane/pkg/utils"
)

// ModelListHandler returns the models registered in the project's
// registry.
func ModelListHandler(registries regpool.Pool, authz auth.Engine) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		user, ok := UserFrom(c)
		if !ok {
			return binderr.Unauthorized("a bearer token is required", nil)
		}
		projectName := c.Param("project")

		if err := authz.Authorize(ctx, user, projectName, auth.ActionListModels); err != nil {
			return binderr.FromDomain(err)
		}

		registry, err := registries.Get(ctx, projectName)
		if err != nil {
			return binderr.FromDomain(err)
		}

		models, err := registry.ListModels(ctx)
		if err != nil {
			return binderr.FromDomain(err)
		}

		return c.JSON(http.StatusOK, utils.Map(models, bindmodels.ComposeSummary))
	}
}

// ModelVersionListHandler returns the versions of a model, newest
// first.
func ModelVersionListHandler(registries regpool.Pool, authz auth.Engine) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		user, ok := UserFrom(c)
		if !ok {
			return binderr.Unauthorized("a bearer token is required", nil)
		}
		projectName := c.Param("project")
		modelName := c.Param("model")

		if err := authz.Authorize(ctx, user, projectName, auth.ActionListModelVersions); err != nil {
			return binderr.FromDomain(err)
		}

		registry, err := registries.Get(ctx, projectName)
		if err != nil {
			return binderr.FromDomain(err)
		}

		versions, err := registry.ListModelVersions(ctx, modelName)
		if err != nil {
			return binderr.FromDomain(err)
		}

		return c.JSON(http.StatusOK, utils.Map(versions, bindmodels.ComposeVersion))
	}
}
