package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"

	kpool "github.com/modelplane/modelplane/pkg/conn/db/postgres/pool"
	kschema "github.com/modelplane/modelplane/pkg/domain/schema/db"
)

// migrations[i] upgrades the schema from version i to i+1.
var migrations = []string{
	`
	create table "projects" (
		"name" varchar(253) primary key,
		"owner" varchar(254) not null,
		"scope" varchar(253) not null default '',
		"data_perimeter" varchar(253) not null default ''
	);

	create table "users" (
		"id" varchar(36) primary key,
		"email" varchar(254) not null unique,
		"password_hash" varchar(254) not null,
		"role" varchar(32) not null
	);

	create table "project_users" (
		"email" varchar(254) not null references "users" ("email"),
		"project_name" varchar(253) not null references "projects" ("name"),
		"role" varchar(32) not null,
		primary key ("email", "project_name")
	);

	create table "model_deployments" (
		"project_name" varchar(253) not null references "projects" ("name"),
		"model_name" varchar(253) not null,
		"model_version" varchar(64) not null,
		"deployment_name" varchar(63) not null,
		"deployment_date" timestamp with time zone not null,
		"dashboard_uid" varchar(40) not null,
		primary key ("project_name", "deployment_name")
	);

	create table "events" (
		"id" bigserial primary key,
		"action" varchar(64) not null,
		"timestamp" timestamp with time zone not null,
		"user_email" varchar(254) not null,
		"entity" varchar(507) not null
	);
	create index "events_entity" on "events" ("entity", "timestamp" desc);
	`,
}

type pgSchema struct {
	pool kpool.Pool
}

var _ kschema.Interface = &pgSchema{}

func New(pool kpool.Pool) kschema.Interface {
	return &pgSchema{pool: pool}
}

func (s *pgSchema) Version(ctx context.Context) (int, error) {
	version := 0
	err := s.pool.QueryRow(
		ctx, `select coalesce(max("version"), 0) from "schema_version"`,
	).Scan(&version)
	if err != nil {
		pgerr := new(pgconn.PgError)
		if errors.As(err, &pgerr) && pgerr.Code == pgerrcode.UndefinedTable {
			return 0, nil
		}
		return 0, err
	}
	return version, nil
}

func (s *pgSchema) Upgrade(ctx context.Context) error {
	if _, err := s.pool.Exec(
		ctx, `create table if not exists "schema_version" ("version" int primary key)`,
	); err != nil {
		return err
	}

	for {
		version, err := s.Version(ctx)
		if err != nil {
			return err
		}
		if len(migrations) <= version {
			return nil
		}

		tx, err := s.pool.Begin(ctx)
		if err != nil {
			return err
		}

		// serialize concurrent upgraders on the version table.
		if _, err := tx.Exec(
			ctx, `lock table "schema_version" in access exclusive mode`,
		); err != nil {
			tx.Rollback(ctx)
			return err
		}
		current := 0
		if err := tx.QueryRow(
			ctx, `select coalesce(max("version"), 0) from "schema_version"`,
		).Scan(&current); err != nil {
			tx.Rollback(ctx)
			return err
		}
		if current != version {
			// someone else moved it forward; retry.
			tx.Rollback(ctx)
			continue
		}

		if _, err := tx.Exec(ctx, migrations[version]); err != nil {
			tx.Rollback(ctx)
			return err
		}
		if _, err := tx.Exec(
			ctx, `insert into "schema_version" ("version") values ($1)`, version+1,
		); err != nil {
			tx.Rollback(ctx)
			return err
		}
		if err := tx.Commit(ctx); err != nil {
			return err
		}
	}
}
