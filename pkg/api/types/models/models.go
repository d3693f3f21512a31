package models

import "time"

type Summary struct {
	Name                 string    `json:"name"`
	CreationTimestamp    time.Time `json:"creation_timestamp"`
	LastUpdatedTimestamp time.Time `json:"last_updated_timestamp"`
	Description          string    `json:"description,omitempty"`
	LatestVersions       []Version `json:"latest_versions"`
}

type Version struct {
	Name              string    `json:"name"`
	Version           string    `json:"version"`
	CreationTimestamp time.Time `json:"creation_timestamp"`
	Stage             string    `json:"stage,omitempty"`
	Source            string    `json:"source,omitempty"`
	RunId             string    `json:"run_id,omitempty"`
	Status            string    `json:"status,omitempty"`
}
