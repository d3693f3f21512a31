// Package grafana publishes dashboards by writing ConfigMaps that a
// Grafana sidecar picks up from the monitoring namespace.
package grafana

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelplane/modelplane/pkg/domain/cluster"
	"github.com/modelplane/modelplane/pkg/domain/dashboard"
)

// label the Grafana dashboard sidecar watches for.
const sidecarLabel = "grafana_dashboard"

type publisher struct {
	cluster    cluster.Cluster
	namespace  string
	grafanaURL string
}

var _ dashboard.Publisher = &publisher{}

func New(c cluster.Cluster, monitoringNamespace string, grafanaURL string) dashboard.Publisher {
	return &publisher{
		cluster:    c,
		namespace:  monitoringNamespace,
		grafanaURL: grafanaURL,
	}
}

func configMapName(uid string) string {
	return "grafana-dashboard-" + uid
}

func (p *publisher) Publish(ctx context.Context, uid string, title string, serviceName string) (string, error) {
	body, err := render(uid, title, serviceName)
	if err != nil {
		return "", err
	}

	err = p.cluster.EnsureConfigMap(
		ctx, p.namespace, configMapName(uid),
		map[string]string{sidecarLabel: "1"},
		map[string]string{uid + ".json": body},
	)
	if err != nil {
		return "", err
	}
	return p.URL(uid), nil
}

func (p *publisher) Remove(ctx context.Context, uid string) error {
	return p.cluster.DeleteConfigMap(ctx, p.namespace, configMapName(uid))
}

func (p *publisher) URL(uid string) string {
	if p.grafanaURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/d/%s", p.grafanaURL, uid)
}

// render builds a minimal dashboard: request rate, latency and error
// ratio of a single prediction service, selected by its scrape job.
func render(uid string, title string, serviceName string) (string, error) {
	panel := func(id int, title string, x, y, w int, expr string) map[string]any {
		return map[string]any{
			"id":      id,
			"title":   title,
			"type":    "timeseries",
			"gridPos": map[string]any{"h": 8, "w": w, "x": x, "y": y},
			"targets": []any{
				map[string]any{"expr": expr, "refId": "A"},
			},
		}
	}
	job := fmt.Sprintf("%q", serviceName)

	body := map[string]any{
		"uid":           uid,
		"title":         title,
		"tags":          []string{"modelplane"},
		"timezone":      "browser",
		"refresh":       "30s",
		"time":          map[string]string{"from": "now-6h", "to": "now"},
		"schemaVersion": 39,
		"panels": []any{
			panel(1, "Request rate", 0, 0, 12,
				fmt.Sprintf("sum(rate(http_requests_total{job=%s}[5m]))", job)),
			panel(2, "Latency (p95)", 12, 0, 12,
				fmt.Sprintf("histogram_quantile(0.95, sum(rate(http_request_duration_seconds_bucket{job=%s}[5m])) by (le))", job)),
			panel(3, "Error ratio", 0, 8, 24,
				fmt.Sprintf("sum(rate(http_requests_total{job=%s, status=~\"5..\"}[5m])) / sum(rate(http_requests_total{job=%s}[5m]))", job, job)),
		},
	}

	encoded, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}
