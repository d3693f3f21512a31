package deployments

import (
	apidepl "github.com/modelplane/modelplane/pkg/api/types/deployments"
	"github.com/modelplane/modelplane/pkg/domain"
)

func ComposeDetail(d domain.DeployedModel) apidepl.Detail {
	return apidepl.Detail{
		ProjectName:    d.ProjectName,
		ModelName:      d.ModelName,
		ModelVersion:   d.Version,
		DeploymentName: d.DeploymentName,
		DeploymentDate: d.DeploymentDate,
		DashboardURL:   d.DashboardURL,
		Health:         string(d.Health),
	}
}
