package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	kpool "github.com/modelplane/modelplane/pkg/conn/db/postgres/pool"
	"github.com/modelplane/modelplane/pkg/domain"
	kdepl "github.com/modelplane/modelplane/pkg/domain/deployment/db"
	kerr "github.com/modelplane/modelplane/pkg/domain/errors"
)

type pgDeployment struct {
	pool kpool.Pool
}

var _ kdepl.Interface = &pgDeployment{}

func New(pool kpool.Pool) kdepl.Interface {
	return &pgDeployment{pool: pool}
}

func (d *pgDeployment) Register(ctx context.Context, depl domain.ModelDeployment) error {
	_, err := d.pool.Exec(
		ctx,
		`
		insert into "model_deployments"
			("project_name", "model_name", "model_version", "deployment_name", "deployment_date", "dashboard_uid")
			values ($1, $2, $3, $4, $5, $6)
		on conflict ("project_name", "deployment_name") do update set
			"model_name" = excluded."model_name",
			"model_version" = excluded."model_version",
			"deployment_date" = excluded."deployment_date",
			"dashboard_uid" = excluded."dashboard_uid"
		`,
		depl.ProjectName, depl.ModelName, depl.Version,
		depl.DeploymentName, depl.DeploymentDate, depl.DashboardUID,
	)
	return err
}

func (d *pgDeployment) Get(ctx context.Context, projectName string, deploymentName string) (domain.ModelDeployment, error) {
	depl := domain.ModelDeployment{}
	err := d.pool.QueryRow(
		ctx,
		`
		select "project_name", "model_name", "model_version", "deployment_name", "deployment_date", "dashboard_uid"
		from "model_deployments"
		where "project_name" = $1 and "deployment_name" = $2
		`,
		projectName, deploymentName,
	).Scan(
		&depl.ProjectName, &depl.ModelName, &depl.Version,
		&depl.DeploymentName, &depl.DeploymentDate, &depl.DashboardUID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ModelDeployment{}, kerr.NewNotFound("deployment " + deploymentName)
		}
		return domain.ModelDeployment{}, err
	}
	return depl, nil
}

func (d *pgDeployment) List(ctx context.Context, projectName string) ([]domain.ModelDeployment, error) {
	rows, err := d.pool.Query(
		ctx,
		`
		select "project_name", "model_name", "model_version", "deployment_name", "deployment_date", "dashboard_uid"
		from "model_deployments"
		where "project_name" = $1
		order by "deployment_date" desc
		`,
		projectName,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	depls := []domain.ModelDeployment{}
	for rows.Next() {
		depl := domain.ModelDeployment{}
		err := rows.Scan(
			&depl.ProjectName, &depl.ModelName, &depl.Version,
			&depl.DeploymentName, &depl.DeploymentDate, &depl.DashboardUID,
		)
		if err != nil {
			return nil, err
		}
		depls = append(depls, depl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return depls, nil
}

func (d *pgDeployment) Remove(ctx context.Context, projectName string, deploymentName string) error {
	_, err := d.pool.Exec(
		ctx,
		`delete from "model_deployments" where "project_name" = $1 and "deployment_name" = $2`,
		projectName, deploymentName,
	)
	return err
}
