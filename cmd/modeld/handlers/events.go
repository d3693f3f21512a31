package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	binderr "github.com/modelplane/modelplane/pkg/api/binding/errors"
	bindevents "github.com/modelplane/modelplane/pkg/api/binding/events"
	"github.com/modelplane/modelplane/pkg/domain/auth"
	kevent "github.com/modelplane/modelplane/pkg/domain/event/db"
	"github.com/modelplane/modelplane/pkg/utils"
)

// ProjectEventListHandler returns the audit trail of a project and the
// deployments under it, newest first.
func ProjectEventListHandler(events kevent.Interface, authz auth.Engine) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		user, ok := UserFrom(c)
		if !ok {
			return binderr.Unauthorized("a bearer token is required", nil)
		}
		projectName := c.Param("project")

		if err := authz.Authorize(ctx, user, projectName, auth.ActionProjectGovernance); err != nil {
			return binderr.FromDomain(err)
		}

		trail, err := events.ListForEntity(ctx, projectName)
		if err != nil {
			return binderr.FromDomain(err)
		}

		return c.JSON(http.StatusOK, utils.Map(trail, bindevents.ComposeDetail))
	}
}
