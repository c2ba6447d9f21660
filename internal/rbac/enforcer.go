package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const modelText = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// Roles carried in the JWT role claim.
const (
	RoleAdmin          = "admin"
	RolePayrollManager = "payroll_manager"
	RoleDispatcher     = "dispatcher"
)

// policies is the static permission table: role, resource, action. Payroll
// approval is deliberately its own action so a manager role can be split
// from an approver role later without schema changes.
var policies = [][]string{
	{RoleAdmin, "driver_rate", "read"},
	{RoleAdmin, "driver_rate", "write"},
	{RoleAdmin, "payroll_config", "read"},
	{RoleAdmin, "payroll_config", "write"},
	{RoleAdmin, "pay_run", "read"},
	{RoleAdmin, "pay_run", "write"},
	{RoleAdmin, "pay_run", "approve"},

	{RolePayrollManager, "driver_rate", "read"},
	{RolePayrollManager, "driver_rate", "write"},
	{RolePayrollManager, "payroll_config", "read"},
	{RolePayrollManager, "payroll_config", "write"},
	{RolePayrollManager, "pay_run", "read"},
	{RolePayrollManager, "pay_run", "write"},
	{RolePayrollManager, "pay_run", "approve"},

	{RoleDispatcher, "driver_rate", "read"},
	{RoleDispatcher, "payroll_config", "read"},
	{RoleDispatcher, "pay_run", "read"},
}

// NewEnforcer builds the in-memory enforcer with the static policy table.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return enforcer, nil
}
