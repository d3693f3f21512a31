package projects

type Spec struct {
	Name          string `json:"name"`
	Scope         string `json:"scope,omitempty"`
	DataPerimeter string `json:"data_perimeter,omitempty"`
}

type Detail struct {
	Name          string `json:"name"`
	Owner         string `json:"owner"`
	Scope         string `json:"scope,omitempty"`
	DataPerimeter string `json:"data_perimeter,omitempty"`
}

type Member struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type MemberSpec struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type RoleSpec struct {
	Role string `json:"role"`
}
