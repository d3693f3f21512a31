package db

import (
	"context"

	"github.com/modelplane/modelplane/pkg/domain"
)

type Interface interface {
	// Record appends an audit event.
	Record(ctx context.Context, event domain.Event) error

	// ListForEntity returns the events of one entity and everything
	// under it (entities prefixed "<entity>/"), newest first.
	ListForEntity(ctx context.Context, entity string) ([]domain.Event, error)
}
