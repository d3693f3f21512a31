package mock

import (
	"context"
	"testing"

	"github.com/modelplane/modelplane/pkg/domain"
	kevent "github.com/modelplane/modelplane/pkg/domain/event/db"
)

type EventDB struct {
	t    *testing.T
	Impl struct {
		Record        func(ctx context.Context, event domain.Event) error
		ListForEntity func(ctx context.Context, entity string) ([]domain.Event, error)
	}
	Calls struct {
		Record []domain.Event
	}
}

var _ kevent.Interface = &EventDB{}

func NewEventDB(t *testing.T) *EventDB {
	return &EventDB{t: t}
}

func (m *EventDB) Record(ctx context.Context, event domain.Event) error {
	m.Calls.Record = append(m.Calls.Record, event)
	if m.Impl.Record != nil {
		return m.Impl.Record(ctx, event)
	}
	m.t.Fatal("should not be called: Record")
	return nil
}

func (m *EventDB) ListForEntity(ctx context.Context, entity string) ([]domain.Event, error) {
	if m.Impl.ListForEntity != nil {
		return m.Impl.ListForEntity(ctx, entity)
	}
	m.t.Fatal("should not be called: ListForEntity")
	return nil, nil
}
