package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/modelplane/modelplane/cmd/modeld/handlers"
	httptestutil "github.com/modelplane/modelplane/internal/testutils/http"
	apitasks "github.com/modelplane/modelplane/pkg/api/types/tasks"
	"github.com/modelplane/modelplane/pkg/domain"
)

func TestTaskStatusHandler(t *testing.T) {

	caller := domain.User{Email: "dev@example.com", Role: domain.SimpleUser}

	t.Run("a known task reports its status", func(t *testing.T) {
		tracker := &fakeTracker{tasks: map[string]domain.Task{
			"task-1": {Id: "task-1", Status: domain.TaskFailed, Reason: "image build failed"},
		}}

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/tasks/task-1/")
		c.SetPath("/api/tasks/:taskId/")
		c.SetParamNames("taskId")
		c.SetParamValues("task-1")
		handlers.SetUser(c, caller)

		if err := handlers.TaskStatusHandler(tracker)(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		resp := apitasks.Detail{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("response is not json: %v", err)
		}
		want := apitasks.Detail{
			TaskId: "task-1", Status: string(domain.TaskFailed),
			Reason: "image build failed",
		}
		if resp != want {
			t.Errorf("detail %+v != %+v", resp, want)
		}
	})

	t.Run("an unknown task is reported as 404", func(t *testing.T) {
		tracker := &fakeTracker{}

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/tasks/no-such-task/")
		c.SetPath("/api/tasks/:taskId/")
		c.SetParamNames("taskId")
		c.SetParamValues("no-such-task")
		handlers.SetUser(c, caller)

		err := handlers.TaskStatusHandler(tracker)(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
		}
		if echoErr.Code != http.StatusNotFound {
			t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, http.StatusNotFound)
		}
	})
}
