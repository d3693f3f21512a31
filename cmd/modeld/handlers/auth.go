package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	binderr "github.com/modelplane/modelplane/pkg/api/binding/errors"
	apiauth "github.com/modelplane/modelplane/pkg/api/types/auth"
	"github.com/modelplane/modelplane/pkg/domain"
	"github.com/modelplane/modelplane/pkg/domain/auth/token"
	kerr "github.com/modelplane/modelplane/pkg/domain/errors"
	kuser "github.com/modelplane/modelplane/pkg/domain/user/db"
)

// userContextKey stores the verified caller in the echo context.
const userContextKey = "modelplane.user"

// UserFrom returns the caller set by AuthMiddleware.
func UserFrom(c echo.Context) (domain.User, bool) {
	user, ok := c.Get(userContextKey).(domain.User)
	return user, ok
}

// SetUser stores the caller in the context, as AuthMiddleware does.
func SetUser(c echo.Context, user domain.User) {
	c.Set(userContextKey, user)
}

// AuthMiddleware verifies the bearer token of each request and stores
// the caller in the context for the handlers downstream.
func AuthMiddleware(issuer token.Issuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			raw, found := strings.CutPrefix(header, "Bearer ")
			if !found || raw == "" {
				return binderr.Unauthorized("a bearer token is required", nil)
			}

			user, err := issuer.Verify(raw)
			if err != nil {
				return binderr.Unauthorized("the token is invalid or expired", err)
			}

			SetUser(c, user)
			return next(c)
		}
	}
}

// LoginHandler exchanges credentials for a bearer token.
func LoginHandler(users kuser.Interface, issuer token.Issuer) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		req := new(apiauth.LoginRequest)
		if err := c.Bind(req); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}

		user, err := users.GetByEmail(ctx, req.Email)
		if err != nil {
			if kerr.AsNotFound(err) {
				// same response as a wrong password, so that login
				// probing can not tell accounts apart.
				return binderr.Unauthorized("incorrect email or password", nil)
			}
			return binderr.InternalServerError(err)
		}

		if err := bcrypt.CompareHashAndPassword(
			[]byte(user.PasswordHash), []byte(req.Password),
		); err != nil {
			if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
				return binderr.Unauthorized("incorrect email or password", nil)
			}
			return binderr.InternalServerError(err)
		}

		accessToken, err := issuer.Issue(user)
		if err != nil {
			return binderr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, apiauth.LoginResponse{
			AccessToken: accessToken,
			TokenType:   "bearer",
		})
	}
}

// SignupHandler registers a new account with the simple-user role.
func SignupHandler(users kuser.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		req := new(apiauth.SignupRequest)
		if err := c.Bind(req); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}
		if req.Email == "" || req.Password == "" {
			return binderr.BadRequest("email and password are required", nil)
		}

		hash, err := bcrypt.GenerateFromPassword(
			[]byte(req.Password), bcrypt.DefaultCost,
		)
		if err != nil {
			return binderr.InternalServerError(err)
		}

		user := domain.User{
			Email:        req.Email,
			PasswordHash: string(hash),
			Role:         domain.SimpleUser,
		}
		if err := users.Register(ctx, user); err != nil {
			if kerr.AsAlreadyExists(err) {
				return binderr.Conflict(
					"an account with this email already exists",
					binderr.WithError(err),
				)
			}
			return binderr.InternalServerError(err)
		}

		return c.JSON(http.StatusCreated, apiauth.UserDetail{
			Email: user.Email,
			Role:  user.Role.String(),
		})
	}
}
