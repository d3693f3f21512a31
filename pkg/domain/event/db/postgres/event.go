package postgres

import (
	"context"

	kpool "github.com/modelplane/modelplane/pkg/conn/db/postgres/pool"
	"github.com/modelplane/modelplane/pkg/domain"
	kevent "github.com/modelplane/modelplane/pkg/domain/event/db"
)

type pgEvent struct {
	pool kpool.Pool
}

var _ kevent.Interface = &pgEvent{}

func New(pool kpool.Pool) kevent.Interface {
	return &pgEvent{pool: pool}
}

func (e *pgEvent) Record(ctx context.Context, event domain.Event) error {
	_, err := e.pool.Exec(
		ctx,
		`insert into "events" ("action", "timestamp", "user_email", "entity") values ($1, $2, $3, $4)`,
		event.Action, event.Timestamp, event.User, event.Entity,
	)
	return err
}

func (e *pgEvent) ListForEntity(ctx context.Context, entity string) ([]domain.Event, error) {
	rows, err := e.pool.Query(
		ctx,
		`
		select "action", "timestamp", "user_email", "entity" from "events"
		where "entity" = $1 or "entity" like $1 || '/%'
		order by "timestamp" desc
		`,
		entity,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		event := domain.Event{}
		if err := rows.Scan(&event.Action, &event.Timestamp, &event.User, &event.Entity); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
