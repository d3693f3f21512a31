package auth

import (
	"github.com/modelplane/modelplane/pkg/domain"
)

// Action names an operation gated by project roles.
type Action string

const (
	ActionProjectInfo        Action = "project_info"
	ActionListProjects       Action = "list_projects"
	ActionListModels         Action = "list_models"
	ActionListModelVersions  Action = "list_model_versions"
	ActionListDeployedModels Action = "list_deployed_models"

	ActionDeployModel   Action = "deploy_model"
	ActionUndeployModel Action = "undeploy_model"
	ActionTaskStatus    Action = "task_status"

	ActionAddProjectUser    Action = "add_user_to_project"
	ActionRemoveProjectUser Action = "remove_user_from_project"
	ActionChangeUserRole    Action = "change_user_role_for_project"
	ActionListProjectUsers  Action = "list_project_users"

	ActionProjectGovernance Action = "project_governance"
	ActionRemoveProject     Action = "remove_project"
)

// additionsPerTier lists the actions each tier adds on top of all lower
// tiers. The effective action set of a tier is the union of its additions
// and every lower tier's; see init below. Defined once as data, never
// re-derived per call.
var additionsPerTier = map[domain.ProjectRole][]Action{
	domain.NoRole: {},
	domain.Viewer: {
		ActionProjectInfo,
		ActionListProjects,
		ActionListModels,
		ActionListModelVersions,
		ActionListDeployedModels,
	},
	domain.Developer: {
		ActionDeployModel,
		ActionUndeployModel,
		ActionTaskStatus,
	},
	domain.Maintainer: {
		ActionAddProjectUser,
		ActionRemoveProjectUser,
		ActionChangeUserRole,
		ActionListProjectUsers,
	},
	domain.ProjectAdmin: {
		ActionProjectGovernance,
		ActionRemoveProject,
	},
}

var tierOrder = []domain.ProjectRole{
	domain.NoRole, domain.Viewer, domain.Developer, domain.Maintainer, domain.ProjectAdmin,
}

// actionsPerTier[r] is the full authorized-action set of role r.
var actionsPerTier = func() map[domain.ProjectRole]map[Action]struct{} {
	table := map[domain.ProjectRole]map[Action]struct{}{}
	acc := map[Action]struct{}{}
	for _, tier := range tierOrder {
		for _, a := range additionsPerTier[tier] {
			acc[a] = struct{}{}
		}
		set := make(map[Action]struct{}, len(acc))
		for a := range acc {
			set[a] = struct{}{}
		}
		table[tier] = set
	}
	return table
}()

// ActionsFor returns the authorized-action set of role.
//
// The sets are monotonic: each tier's set is a superset of every lower
// tier's.
func ActionsFor(role domain.ProjectRole) []Action {
	set := actionsPerTier[role]
	actions := make([]Action, 0, len(set))
	for a := range set {
		actions = append(actions, a)
	}
	return actions
}

// Allowed reports whether role may perform action.
func Allowed(role domain.ProjectRole, action Action) bool {
	set, ok := actionsPerTier[role]
	if !ok {
		set = actionsPerTier[domain.NoRole]
	}
	_, ok = set[action]
	return ok
}
