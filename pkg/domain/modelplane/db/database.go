package db

import (
	kdepl "github.com/modelplane/modelplane/pkg/domain/deployment/db"
	kevent "github.com/modelplane/modelplane/pkg/domain/event/db"
	kproj "github.com/modelplane/modelplane/pkg/domain/project/db"
	kschema "github.com/modelplane/modelplane/pkg/domain/schema/db"
	kuser "github.com/modelplane/modelplane/pkg/domain/user/db"
)

// Database bundles the relational repositories.
type Database interface {
	Projects() kproj.Interface
	Users() kuser.Interface
	Deployments() kdepl.Interface
	Events() kevent.Interface
	Schema() kschema.Interface
}
