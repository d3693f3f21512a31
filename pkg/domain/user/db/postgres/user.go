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
	kuser "github.com/modelplane/modelplane/pkg/domain/user/db"
)

type pgUser struct {
	pool kpool.Pool
}

var _ kuser.Interface = &pgUser{}

func New(pool kpool.Pool) kuser.Interface {
	return &pgUser{pool: pool}
}

func (u *pgUser) Register(ctx context.Context, user domain.User) error {
	_, err := u.pool.Exec(
		ctx,
		`insert into "users" ("id", "email", "password_hash", "role") values ($1, $2, $3, $4)`,
		user.Id, user.Email, user.PasswordHash, string(user.Role),
	)
	if err != nil {
		pgerr := new(pgconn.PgError)
		if errors.As(err, &pgerr) && pgerr.Code == pgerrcode.UniqueViolation {
			return kerr.NewAlreadyExistsCausedBy("user "+user.Email, err)
		}
		return err
	}
	return nil
}

func (u *pgUser) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	user := domain.User{}
	var role string
	err := u.pool.QueryRow(
		ctx,
		`select "id", "email", "password_hash", "role" from "users" where "email" = $1`,
		email,
	).Scan(&user.Id, &user.Email, &user.PasswordHash, &role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, kerr.NewNotFound("user " + email)
		}
		return domain.User{}, err
	}
	if user.Role, err = domain.AsRole(role); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (u *pgUser) SetMembership(ctx context.Context, membership domain.ProjectMembership) error {
	_, err := u.pool.Exec(
		ctx,
		`
		insert into "project_users" ("email", "project_name", "role") values ($1, $2, $3)
		on conflict ("email", "project_name") do update set "role" = excluded."role"
		`,
		membership.Email, membership.ProjectName, membership.Role.String(),
	)
	return err
}

func (u *pgUser) RemoveMembership(ctx context.Context, email string, projectName string) error {
	tag, err := u.pool.Exec(
		ctx,
		`delete from "project_users" where "email" = $1 and "project_name" = $2`,
		email, projectName,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return kerr.NewNotFound("membership of " + email + " in " + projectName)
	}
	return nil
}

func (u *pgUser) GetRoleForProject(ctx context.Context, email string, projectName string) (domain.ProjectRole, error) {
	var role string
	err := u.pool.QueryRow(
		ctx,
		`select "role" from "project_users" where "email" = $1 and "project_name" = $2`,
		email, projectName,
	).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NoRole, nil
		}
		return domain.NoRole, err
	}
	return domain.AsProjectRole(role)
}

func (u *pgUser) ListMembers(ctx context.Context, projectName string) ([]domain.ProjectMembership, error) {
	rows, err := u.pool.Query(
		ctx,
		`select "email", "role" from "project_users" where "project_name" = $1 order by "email"`,
		projectName,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []domain.ProjectMembership{}
	for rows.Next() {
		var email, role string
		if err := rows.Scan(&email, &role); err != nil {
			return nil, err
		}
		r, err := domain.AsProjectRole(role)
		if err != nil {
			return nil, err
		}
		members = append(members, domain.ProjectMembership{
			Email: email, ProjectName: projectName, Role: r,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return members, nil
}
