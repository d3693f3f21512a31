package postgres

import (
	"context"

	kpool "github.com/modelplane/modelplane/pkg/conn/db/postgres/pool"
	kdepl "github.com/modelplane/modelplane/pkg/domain/deployment/db"
	kpgdepl "github.com/modelplane/modelplane/pkg/domain/deployment/db/postgres"
	kevent "github.com/modelplane/modelplane/pkg/domain/event/db"
	kpgevent "github.com/modelplane/modelplane/pkg/domain/event/db/postgres"
	dbInterface "github.com/modelplane/modelplane/pkg/domain/modelplane/db"
	kproj "github.com/modelplane/modelplane/pkg/domain/project/db"
	kpgproj "github.com/modelplane/modelplane/pkg/domain/project/db/postgres"
	kschema "github.com/modelplane/modelplane/pkg/domain/schema/db"
	kpgschema "github.com/modelplane/modelplane/pkg/domain/schema/db/postgres"
	kuser "github.com/modelplane/modelplane/pkg/domain/user/db"
	kpguser "github.com/modelplane/modelplane/pkg/domain/user/db/postgres"
	xe "github.com/modelplane/modelplane/pkg/errors"
)

type mpDBPostgres struct {
	pool        kpool.Pool
	projects    kproj.Interface
	users       kuser.Interface
	deployments kdepl.Interface
	events      kevent.Interface
	schema      kschema.Interface
}

var _ dbInterface.Database = &mpDBPostgres{}

// New connects to the database and builds the repositories on one
// shared connection pool.
func New(ctx context.Context, dburl string) (dbInterface.Database, error) {
	pool, err := kpool.Connect(ctx, dburl)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	return Wrap(pool), nil
}

// Wrap builds the repositories on an existing pool.
func Wrap(pool kpool.Pool) dbInterface.Database {
	return &mpDBPostgres{
		pool:        pool,
		projects:    kpgproj.New(pool),
		users:       kpguser.New(pool),
		deployments: kpgdepl.New(pool),
		events:      kpgevent.New(pool),
		schema:      kpgschema.New(pool),
	}
}

func (m *mpDBPostgres) Projects() kproj.Interface {
	return m.projects
}

func (m *mpDBPostgres) Users() kuser.Interface {
	return m.users
}

func (m *mpDBPostgres) Deployments() kdepl.Interface {
	return m.deployments
}

func (m *mpDBPostgres) Events() kevent.Interface {
	return m.events
}

func (m *mpDBPostgres) Schema() kschema.Interface {
	return m.schema
}
