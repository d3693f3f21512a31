package models

import (
	apimodels "github.com/modelplane/modelplane/pkg/api/types/models"
	"github.com/modelplane/modelplane/pkg/domain"
	"github.com/modelplane/modelplane/pkg/utils"
)

func ComposeSummary(m domain.Model) apimodels.Summary {
	return apimodels.Summary{
		Name:                 m.Name,
		CreationTimestamp:    m.CreationTimestamp,
		LastUpdatedTimestamp: m.LastUpdatedTimestamp,
		Description:          m.Description,
		LatestVersions:       utils.Map(m.LatestVersions, ComposeVersion),
	}
}

func ComposeVersion(v domain.ModelVersion) apimodels.Version {
	return apimodels.Version{
		Name:              v.Name,
		Version:           v.Version,
		CreationTimestamp: v.CreationTimestamp,
		Stage:             v.Stage,
		Source:            v.Source,
		RunId:             v.RunId,
		Status:            v.Status,
	}
}
