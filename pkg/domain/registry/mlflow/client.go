// Package mlflow is a Client for MLflow model registries,
// covering the subset of the REST API the platform needs.
package mlflow

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/modelplane/modelplane/pkg/domain"
	kerr "github.com/modelplane/modelplane/pkg/domain/errors"
	"github.com/modelplane/modelplane/pkg/domain/registry"
)

type client struct {
	baseURL string
	httpc   *http.Client
}

var _ registry.Client = &client{}

// New builds a Client for the registry served at baseURL.
func New(baseURL string) registry.Client {
	return &client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

type registeredModel struct {
	Name                 string         `json:"name"`
	CreationTimestamp    int64          `json:"creation_timestamp"`
	LastUpdatedTimestamp int64          `json:"last_updated_timestamp"`
	Description          string         `json:"description"`
	LatestVersions       []modelVersion `json:"latest_versions"`
}

type modelVersion struct {
	Name              string `json:"name"`
	Version           string `json:"version"`
	CreationTimestamp int64  `json:"creation_timestamp"`
	CurrentStage      string `json:"current_stage"`
	Source            string `json:"source"`
	RunId             string `json:"run_id"`
	Status            string `json:"status"`
}

func (m registeredModel) Binding() domain.Model {
	versions := make([]domain.ModelVersion, 0, len(m.LatestVersions))
	for _, v := range m.LatestVersions {
		versions = append(versions, v.Binding())
	}
	return domain.Model{
		Name:                 m.Name,
		CreationTimestamp:    time.UnixMilli(m.CreationTimestamp),
		LastUpdatedTimestamp: time.UnixMilli(m.LastUpdatedTimestamp),
		Description:          m.Description,
		LatestVersions:       versions,
	}
}

func (v modelVersion) Binding() domain.ModelVersion {
	return domain.ModelVersion{
		Name:              v.Name,
		Version:           v.Version,
		CreationTimestamp: time.UnixMilli(v.CreationTimestamp),
		Stage:             v.CurrentStage,
		Source:            v.Source,
		RunId:             v.RunId,
		Status:            v.Status,
	}
}

func (c *client) get(ctx context.Context, path string, query url.Values, result any) error {
	u := c.baseURL + path
	if 0 < len(query) {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return kerr.NewRegistryUnreachableCausedBy(c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return kerr.NewRegistryUnreachableCausedBy(
			c.baseURL, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body)),
		)
	}
	if result == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(result)
}

func (c *client) Ping(ctx context.Context) error {
	return c.get(ctx, "/health", nil, nil)
}

func (c *client) ListModels(ctx context.Context) ([]domain.Model, error) {
	var payload struct {
		RegisteredModels []registeredModel `json:"registered_models"`
	}
	if err := c.get(ctx, "/api/2.0/mlflow/registered-models/search", nil, &payload); err != nil {
		return nil, err
	}
	models := make([]domain.Model, 0, len(payload.RegisteredModels))
	for _, m := range payload.RegisteredModels {
		models = append(models, m.Binding())
	}
	return models, nil
}

func (c *client) ListModelVersions(ctx context.Context, modelName string) ([]domain.ModelVersion, error) {
	query := url.Values{}
	query.Set("filter", fmt.Sprintf("name='%s'", modelName))

	var payload struct {
		ModelVersions []modelVersion `json:"model_versions"`
	}
	if err := c.get(ctx, "/api/2.0/mlflow/model-versions/search", query, &payload); err != nil {
		return nil, err
	}
	versions := make([]domain.ModelVersion, 0, len(payload.ModelVersions))
	for _, v := range payload.ModelVersions {
		versions = append(versions, v.Binding())
	}
	return versions, nil
}

func (c *client) ModelSourceURI(ctx context.Context, modelName string, version string) (string, error) {
	query := url.Values{}
	query.Set("name", modelName)
	query.Set("version", version)

	var payload struct {
		ArtifactURI string `json:"artifact_uri"`
	}
	if err := c.get(ctx, "/api/2.0/mlflow/model-versions/get-download-uri", query, &payload); err != nil {
		return "", err
	}
	return payload.ArtifactURI, nil
}

func (c *client) Close() {
	c.httpc.CloseIdleConnections()
}

type dialer struct {
	urlOf func(projectName string) string
}

var _ registry.Dialer = &dialer{}

// NewDialer builds a Dialer resolving project names to registry base URLs
// with urlOf. The dialed client is verified with Ping before it is returned.
func NewDialer(urlOf func(projectName string) string) registry.Dialer {
	return &dialer{urlOf: urlOf}
}

func (d *dialer) Dial(ctx context.Context, projectName string) (registry.Client, error) {
	c := New(d.urlOf(projectName))
	if err := c.Ping(ctx); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}
