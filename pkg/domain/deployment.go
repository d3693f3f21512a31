package domain

import "time"

// ModelDeployment records one promoted model version running as a
// prediction service.
//
// At most one row exists per (ProjectName, ModelName, Version).
// DeploymentName is derived deterministically from the triple and is
// cluster-identifier-safe.
type ModelDeployment struct {
	ProjectName    string
	ModelName      string
	Version        string
	DeploymentName string
	DeploymentDate time.Time
	DashboardUID   string
}

// HealthStatus reports whether a recorded deployment is actually serving.
//
// The record and the cluster are reconciled at read time; a row whose
// cluster object is gone reports NotRunning rather than disappearing.
type HealthStatus string

const (
	Healthy    HealthStatus = "healthy"
	NotRunning HealthStatus = "not running"
)

// DeployedModel is a ModelDeployment joined with its live cluster status.
type DeployedModel struct {
	ModelDeployment
	DashboardURL string
	Health       HealthStatus
}
