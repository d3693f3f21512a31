package deployments

import "time"

type Detail struct {
	ProjectName    string    `json:"project_name"`
	ModelName      string    `json:"model_name"`
	ModelVersion   string    `json:"model_version"`
	DeploymentName string    `json:"deployment_name"`
	DeploymentDate time.Time `json:"deployment_date"`
	DashboardURL   string    `json:"dashboard_url,omitempty"`
	Health         string    `json:"health"`
}
