package events

import (
	apievents "github.com/modelplane/modelplane/pkg/api/types/events"
	"github.com/modelplane/modelplane/pkg/domain"
)

func ComposeDetail(e domain.Event) apievents.Detail {
	return apievents.Detail{
		Action:    e.Action,
		Timestamp: e.Timestamp,
		User:      e.User,
		Entity:    e.Entity,
	}
}
