package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnforcerPolicyTable(t *testing.T) {
	enforcer, err := NewEnforcer()
	require.NoError(t, err)

	cases := []struct {
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{RoleAdmin, "pay_run", "approve", true},
		{RolePayrollManager, "pay_run", "approve", true},
		{RolePayrollManager, "driver_rate", "write", true},
		{RoleDispatcher, "pay_run", "read", true},
		{RoleDispatcher, "pay_run", "write", false},
		{RoleDispatcher, "driver_rate", "write", false},
		{"intern", "pay_run", "read", false},
	}

	for _, tc := range cases {
		allowed, err := enforcer.Enforce(tc.role, tc.resource, tc.action)
		require.NoError(t, err)
		assert.Equal(t, tc.allowed, allowed, "%s %s:%s", tc.role, tc.resource, tc.action)
	}
}
