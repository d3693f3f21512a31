package domain

// Project is a tenant boundary.
//
// Name is the identity; it is stored sanitized (see pkg/names.Sanitize),
// so it can name cluster objects directly.
type Project struct {
	Name          string
	Owner         string
	Scope         string
	DataPerimeter string
}
