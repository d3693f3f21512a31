package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"

	kpool "github.com/modelplane/modelplane/pkg/conn/db/postgres/pool"
	"github.com/modelplane/modelplane/pkg/domain"
	kerr "github.com/modelplane/modelplane/pkg/domain/errors"
	kproj "github.com/modelplane/modelplane/pkg/domain/project/db"
)

type pgProject struct {
	pool kpool.Pool
}

var _ kproj.Interface = &pgProject{}

func New(pool kpool.Pool) kproj.Interface {
	return &pgProject{pool: pool}
}

func (p *pgProject) Register(ctx context.Context, project domain.Project) error {
	_, err := p.pool.Exec(
		ctx,
		`insert into "projects" ("name", "owner", "scope", "data_perimeter") values ($1, $2, $3, $4)`,
		project.Name, project.Owner, project.Scope, project.DataPerimeter,
	)
	if err != nil {
		pgerr := new(pgconn.PgError)
		if errors.As(err, &pgerr) && pgerr.Code == pgerrcode.UniqueViolation {
			return kerr.NewAlreadyExistsCausedBy("project "+project.Name, err)
		}
		return err
	}
	return nil
}

func (p *pgProject) Get(ctx context.Context, name string) (domain.Project, error) {
	project := domain.Project{}
	err := p.pool.QueryRow(
		ctx,
		`select "name", "owner", "scope", "data_perimeter" from "projects" where "name" = $1`,
		name,
	).Scan(&project.Name, &project.Owner, &project.Scope, &project.DataPerimeter)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Project{}, kerr.NewNotFound("project " + name)
		}
		return domain.Project{}, err
	}
	return project, nil
}

func (p *pgProject) List(ctx context.Context) ([]domain.Project, error) {
	rows, err := p.pool.Query(
		ctx,
		`select "name", "owner", "scope", "data_perimeter" from "projects" order by "name"`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		project := domain.Project{}
		if err := rows.Scan(&project.Name, &project.Owner, &project.Scope, &project.DataPerimeter); err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return projects, nil
}

func (p *pgProject) Remove(ctx context.Context, name string) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// deployment records and memberships reference the project row, so
	// they go first.
	if _, err := tx.Exec(
		ctx, `delete from "model_deployments" where "project_name" = $1`, name,
	); err != nil {
		return err
	}
	if _, err := tx.Exec(
		ctx, `delete from "project_users" where "project_name" = $1`, name,
	); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `delete from "projects" where "name" = $1`, name)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return kerr.NewNotFound("project " + name)
	}

	return tx.Commit(ctx)
}
