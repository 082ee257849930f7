package permission_test

import (
	"testing"

	"github.com/propside/portal-go/internal/domain/user"
	"github.com/propside/portal-go/internal/permission"
	"github.com/stretchr/testify/assert"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		role   user.Role
		action permission.Action
		want   bool
	}{
		{user.RolePropertyManager, permission.DocumentIssue, true},
		{user.RolePropertyManager, permission.TemplateCreate, true},
		{user.RolePropertyManager, permission.DocumentViewAll, true},
		{user.RoleAdmin, permission.ContractIssue, true},
		{user.RoleUnitOwner, permission.DocumentSign, true},
		{user.RoleUnitOwner, permission.ContractReview, true},
		{user.RoleUnitOwner, permission.DocumentIssue, false},
		{user.RoleUnitOwner, permission.TemplateCreate, false},
		{user.RoleTenant, permission.DocumentSign, true},
		{user.RoleTenant, permission.ContractReview, false},
		{user.RoleTenant, permission.DocumentViewAll, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.action), func(t *testing.T) {
			assert.Equal(t, tt.want, permission.Allowed(tt.role, tt.action))
		})
	}
}

func TestAllowedUnknown(t *testing.T) {
	assert.False(t, permission.Allowed(user.Role("ghost"), permission.DocumentSign))
	assert.False(t, permission.Allowed(user.RoleAdmin, permission.Action("nonsense")))
}
