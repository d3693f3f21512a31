package projects

import (
	apiprojects "github.com/modelplane/modelplane/pkg/api/types/projects"
	"github.com/modelplane/modelplane/pkg/domain"
)

func ComposeDetail(p domain.Project) apiprojects.Detail {
	return apiprojects.Detail{
		Name:          p.Name,
		Owner:         p.Owner,
		Scope:         p.Scope,
		DataPerimeter: p.DataPerimeter,
	}
}

func ComposeMember(m domain.ProjectMembership) apiprojects.Member {
	return apiprojects.Member{
		Email: m.Email,
		Role:  m.Role.String(),
	}
}
