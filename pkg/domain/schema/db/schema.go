package db

import "context"

// Interface manages the relational schema.
type Interface interface {
	// Upgrade brings the schema to the latest version. Running it on an
	// up-to-date database is a no-op.
	Upgrade(ctx context.Context) error

	// Version reports the current schema version. A pristine database
	// is version 0.
	Version(ctx context.Context) (int, error)
}
