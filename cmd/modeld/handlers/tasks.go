package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	binderr "github.com/modelplane/modelplane/pkg/api/binding/errors"
	bindtasks "github.com/modelplane/modelplane/pkg/api/binding/tasks"
	"github.com/modelplane/modelplane/pkg/domain"
	"github.com/modelplane/modelplane/pkg/domain/task"
)

// TaskStatusHandler reports the state of a background task. Task ids
// are unguessable, so holding one is proof enough of ownership.
func TaskStatusHandler(tasks task.Tracker) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := UserFrom(c); !ok {
			return binderr.Unauthorized("a bearer token is required", nil)
		}
		taskId := c.Param("taskId")

		t := tasks.Get(taskId)
		if t.Status == domain.TaskNotFound {
			return binderr.NotFound()
		}

		return c.JSON(http.StatusOK, bindtasks.ComposeDetail(t))
	}
}
