package auth

import (
	"context"
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/rifuud/api/business/types/actions"
	"github.com/rifuud/api/business/types/adminrole"
	"github.com/rifuud/api/business/types/resource"
)

const policyModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`

const (
	groupFull = "role:full"
	groupRead = "role:read"
)

func newEnforcer() (*casbin.SyncedEnforcer, error) {
	m, err := model.NewModelFromString(policyModel)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}

	e, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create enforcer: %w", err)
	}

	policies := [][]string{
		{groupFull, "*", "*"},
		{groupRead, "*", actions.Read.String()},
	}
	if _, err := e.AddPolicies(policies); err != nil {
		return nil, fmt.Errorf("add policies: %w", err)
	}

	groups := [][]string{
		{adminrole.Root.String(), groupFull},
		{adminrole.Admin.String(), groupFull},
		{adminrole.Viewer.String(), groupRead},
	}
	if _, err := e.AddGroupingPolicies(groups); err != nil {
		return nil, fmt.Errorf("add groups: %w", err)
	}

	return e, nil
}

// Authorize checks that the administrator's role may perform the action on
// the resource.
func (a *Auth) Authorize(ctx context.Context, claims AdminClaims, res resource.Resource, act actions.Action) error {
	role, err := adminrole.Parse(claims.Role)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrForbidden, err)
	}

	ok, err := a.enforcer.Enforce(role.String(), res.String(), act.String())
	if err != nil {
		return fmt.Errorf("enforce: %w", err)
	}

	if !ok {
		return fmt.Errorf("%w: role %q cannot %s %s", ErrForbidden, claims.Role, act, res)
	}

	return nil
}
