package dashboard

import "context"

// Publisher provisions monitoring dashboards for deployed models.
type Publisher interface {
	// Publish creates (or refreshes) the dashboard identified by uid,
	// scoped to metrics of the named prediction service. Returns the
	// URL the dashboard is reachable at, which may be empty when the
	// monitoring stack has no public front end.
	Publish(ctx context.Context, uid string, title string, serviceName string) (string, error)

	// Remove drops the dashboard. Removing an absent dashboard succeeds.
	Remove(ctx context.Context, uid string) error

	// URL returns the address of an already published dashboard.
	URL(uid string) string
}
