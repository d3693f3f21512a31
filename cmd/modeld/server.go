package main

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/modelplane/modelplane/cmd/modeld/handlers"
	"github.com/modelplane/modelplane/pkg/domain/auth/token"
	"github.com/modelplane/modelplane/pkg/domain/modelplane"
	"github.com/modelplane/modelplane/pkg/utils/echoutil"
)

var API_ROOT = "/api"

func api(subpath string) string {
	if !strings.HasSuffix(subpath, "/") {
		subpath += "/"
	}
	return fmt.Sprintf("%s/%s", API_ROOT, subpath)
}

func BuildServer(mp modelplane.Modelplane, loglevel string) *echo.Echo {

	e := echo.New()

	echoutil.SetLevel(e, loglevel)

	e.HTTPErrorHandler = func(err error, ctx echo.Context) {
		e.DefaultHTTPErrorHandler(err, ctx)
		e.Logger.Error(err)
	}

	e.Pre(middleware.AddTrailingSlash())
	e.Use(echoutil.LogHandlerFunc)

	database := mp.Database()
	authz := mp.Auth()
	issuer := token.New(
		mp.Config().Auth().JWTSecret(), mp.Config().Auth().JWTExpiry(),
	)

	e.GET(api("health"), func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	e.POST(api("auth/signup"), handlers.SignupHandler(database.Users()))
	e.POST(api("auth/login"), handlers.LoginHandler(database.Users(), issuer))

	g := e.Group(API_ROOT, handlers.AuthMiddleware(issuer))

	g.POST("/projects/", handlers.ProjectCreateHandler(mp.Projects()))
	g.GET("/projects/", handlers.ProjectListHandler(mp.Projects(), authz))
	g.GET("/projects/:project/", handlers.ProjectInfoHandler(mp.Projects(), authz))
	g.DELETE("/projects/:project/", handlers.ProjectRemoveHandler(mp.Projects(), authz))

	g.GET("/projects/:project/users/", handlers.ProjectMemberListHandler(database.Users(), authz))
	g.POST("/projects/:project/users/", handlers.ProjectMemberAddHandler(database.Users(), authz))
	g.PUT("/projects/:project/users/:email/", handlers.ProjectMemberRoleHandler(database.Users(), authz))
	g.DELETE("/projects/:project/users/:email/", handlers.ProjectMemberRemoveHandler(database.Users(), authz))

	g.GET("/projects/:project/events/", handlers.ProjectEventListHandler(database.Events(), authz))

	g.GET("/projects/:project/models/", handlers.ModelListHandler(mp.Registries(), authz))
	g.GET("/projects/:project/models/:model/versions/", handlers.ModelVersionListHandler(mp.Registries(), authz))

	g.POST(
		"/projects/:project/models/:model/versions/:version/deploy/",
		handlers.DeployHandler(mp.Deployments(), mp.Tasks(), authz),
	)
	g.POST(
		"/projects/:project/models/:model/versions/:version/undeploy/",
		handlers.UndeployHandler(mp.Deployments(), mp.Tasks(), authz),
	)
	g.GET("/projects/:project/deployments/", handlers.DeploymentListHandler(mp.Deployments(), authz))

	g.GET("/tasks/:taskId/", handlers.TaskStatusHandler(mp.Tasks()))

	return e
}
