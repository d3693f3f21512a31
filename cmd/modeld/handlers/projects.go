package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	binderr "github.com/modelplane/modelplane/pkg/api/binding/errors"
	bindproj "github.com/modelplane/modelplane/pkg/api/binding/projects"
	apiprojects "github.com/modelplane/modelplane/pkg/api/types/projects"
	"github.com/modelplane/modelplane/pkg/domain"
	"github.com/modelplane/modelplane/pkg/domain/auth"
	kerr "github.com/modelplane/modelplane/pkg/domain/errors"
	kproject "github.com/modelplane/modelplane/pkg/domain/project"
	kuser "github.com/modelplane/modelplane/pkg/domain/user/db"
	"github.com/modelplane/modelplane/pkg/utils"
)

// ProjectCreateHandler provisions a new tenant. The caller becomes its
// admin, so no prior role is needed.
func ProjectCreateHandler(projects kproject.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		user, ok := UserFrom(c)
		if !ok {
			return binderr.Unauthorized("a bearer token is required", nil)
		}

		spec := new(apiprojects.Spec)
		if err := c.Bind(spec); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}
		if spec.Name == "" {
			return binderr.BadRequest("a project name is required", nil)
		}

		project, err := projects.Create(
			ctx, user.Email, spec.Name, spec.Scope, spec.DataPerimeter,
		)
		if err != nil {
			return binderr.FromDomain(err)
		}

		return c.JSON(http.StatusCreated, bindproj.ComposeDetail(project))
	}
}

// ProjectListHandler returns the projects the caller may see.
func ProjectListHandler(projects kproject.Interface, authz auth.Engine) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		user, ok := UserFrom(c)
		if !ok {
			return binderr.Unauthorized("a bearer token is required", nil)
		}

		all, err := projects.List(ctx)
		if err != nil {
			return binderr.FromDomain(err)
		}

		visible := []apiprojects.Detail{}
		for _, p := range all {
			if err := authz.Authorize(ctx, user, p.Name, auth.ActionListProjects); err != nil {
				if kerr.AsUnauthorized(err) {
					continue
				}
				return binderr.FromDomain(err)
			}
			visible = append(visible, bindproj.ComposeDetail(p))
		}

		return c.JSON(http.StatusOK, visible)
	}
}

// ProjectInfoHandler returns a single project.
func ProjectInfoHandler(projects kproject.Interface, authz auth.Engine) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		user, ok := UserFrom(c)
		if !ok {
			return binderr.Unauthorized("a bearer token is required", nil)
		}
		projectName := c.Param("project")

		if err := authz.Authorize(ctx, user, projectName, auth.ActionProjectInfo); err != nil {
			return binderr.FromDomain(err)
		}

		project, err := projects.Get(ctx, projectName)
		if err != nil {
			return binderr.FromDomain(err)
		}

		return c.JSON(http.StatusOK, bindproj.ComposeDetail(project))
	}
}

// ProjectRemoveHandler tears a tenant down.
func ProjectRemoveHandler(projects kproject.Interface, authz auth.Engine) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		user, ok := UserFrom(c)
		if !ok {
			return binderr.Unauthorized("a bearer token is required", nil)
		}
		projectName := c.Param("project")

		if err := authz.Authorize(ctx, user, projectName, auth.ActionRemoveProject); err != nil {
			return binderr.FromDomain(err)
		}

		if err := projects.Remove(ctx, user.Email, projectName); err != nil {
			return binderr.FromDomain(err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}

// ProjectMemberListHandler returns the members of a project.
func ProjectMemberListHandler(users kuser.Interface, authz auth.Engine) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		user, ok := UserFrom(c)
		if !ok {
			return binderr.Unauthorized("a bearer token is required", nil)
		}
		projectName := c.Param("project")

		if err := authz.Authorize(ctx, user, projectName, auth.ActionListProjectUsers); err != nil {
			return binderr.FromDomain(err)
		}

		members, err := users.ListMembers(ctx, projectName)
		if err != nil {
			return binderr.FromDomain(err)
		}

		return c.JSON(http.StatusOK, utils.Map(members, bindproj.ComposeMember))
	}
}

// ProjectMemberAddHandler grants a user a role in a project.
func ProjectMemberAddHandler(users kuser.Interface, authz auth.Engine) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		user, ok := UserFrom(c)
		if !ok {
			return binderr.Unauthorized("a bearer token is required", nil)
		}
		projectName := c.Param("project")

		if err := authz.Authorize(ctx, user, projectName, auth.ActionAddProjectUser); err != nil {
			return binderr.FromDomain(err)
		}

		spec := new(apiprojects.MemberSpec)
		if err := c.Bind(spec); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}

		role, err := domain.AsProjectRole(spec.Role)
		if err != nil {
			return binderr.BadRequest("unknown project role", err)
		}

		if _, err := users.GetByEmail(ctx, spec.Email); err != nil {
			return binderr.FromDomain(err)
		}

		membership := domain.ProjectMembership{
			Email:       spec.Email,
			ProjectName: projectName,
			Role:        role,
		}
		if err := users.SetMembership(ctx, membership); err != nil {
			return binderr.FromDomain(err)
		}

		return c.JSON(http.StatusOK, bindproj.ComposeMember(membership))
	}
}

// ProjectMemberRoleHandler changes a member's role.
func ProjectMemberRoleHandler(users kuser.Interface, authz auth.Engine) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		user, ok := UserFrom(c)
		if !ok {
			return binderr.Unauthorized("a bearer token is required", nil)
		}
		projectName := c.Param("project")
		email := c.Param("email")

		if err := authz.Authorize(ctx, user, projectName, auth.ActionChangeUserRole); err != nil {
			return binderr.FromDomain(err)
		}

		spec := new(apiprojects.RoleSpec)
		if err := c.Bind(spec); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}

		role, err := domain.AsProjectRole(spec.Role)
		if err != nil {
			return binderr.BadRequest("unknown project role", err)
		}

		// the membership has to exist already; SetMembership alone
		// would silently grant one.
		current, err := users.GetRoleForProject(ctx, email, projectName)
		if err != nil {
			return binderr.FromDomain(err)
		}
		if current == domain.NoRole {
			return binderr.NotFound()
		}

		membership := domain.ProjectMembership{
			Email:       email,
			ProjectName: projectName,
			Role:        role,
		}
		if err := users.SetMembership(ctx, membership); err != nil {
			return binderr.FromDomain(err)
		}

		return c.JSON(http.StatusOK, bindproj.ComposeMember(membership))
	}
}

// ProjectMemberRemoveHandler revokes a member's role.
func ProjectMemberRemoveHandler(users kuser.Interface, authz auth.Engine) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		user, ok := UserFrom(c)
		if !ok {
			return binderr.Unauthorized("a bearer token is required", nil)
		}
		projectName := c.Param("project")
		email := c.Param("email")

		if err := authz.Authorize(ctx, user, projectName, auth.ActionRemoveProjectUser); err != nil {
			return binderr.FromDomain(err)
		}

		if err := users.RemoveMembership(ctx, email, projectName); err != nil {
			return binderr.FromDomain(err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}
