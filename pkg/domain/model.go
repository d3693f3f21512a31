package domain

import "time"

// Model is a registered model as reported by a project's registry.
type Model struct {
	Name                 string
	CreationTimestamp    time.Time
	LastUpdatedTimestamp time.Time
	Description          string
	LatestVersions       []ModelVersion
}

// ModelVersion is one version of a registered model.
type ModelVersion struct {
	Name              string
	Version           string
	CreationTimestamp time.Time
	Stage             string
	Source            string
	RunId             string
	Status            string
}
