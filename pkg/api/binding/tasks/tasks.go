package tasks

import (
	apitasks "github.com/modelplane/modelplane/pkg/api/types/tasks"
	"github.com/modelplane/modelplane/pkg/domain"
)

func ComposeDetail(t domain.Task) apitasks.Detail {
	return apitasks.Detail{
		TaskId: t.Id,
		Status: string(t.Status),
		Reason: t.Reason,
	}
}
