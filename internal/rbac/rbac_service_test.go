package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type mockRepo struct{}

func (m *mockRepo) GetUserRoles() ([]UserRoleRow, error) {
	return []UserRoleRow{
		{UserID: "user-1", RoleID: "role-admin"},
	}, nil
}

func (m *mockRepo) GetRolePermissions() ([]RolePermissionRow, error) {
	return []RolePermissionRow{
		{RoleID: "role-admin", Resource: "employee", Action: "read"},
		{RoleID: "role-admin", Resource: "taxtable", Action: "upload"},
	}, nil
}

func (m *mockRepo) ListRoles() ([]RoleRow, error)                { return nil, nil }
func (m *mockRepo) GetRoleByID(string) (*RoleRow, error)         { return nil, nil }
func (m *mockRepo) GetRoleByName(string) (*RoleRow, error)       { return nil, nil }
func (m *mockRepo) CreateRole(*RoleRow) error                    { return nil }
func (m *mockRepo) UpdateRole(*RoleRow) error                    { return nil }
func (m *mockRepo) DeleteRole(string) error                      { return nil }
func (m *mockRepo) ListPermissions() ([]PermissionRow, error)    { return nil, nil }
func (m *mockRepo) GetPermissionsByRoleID(string) ([]PermissionRow, error) {
	return nil, nil
}
func (m *mockRepo) UpdateRolePermissions(string, []string) error { return nil }

func TestRBACService_Enforce(t *testing.T) {
	enforcer, err := NewEnforcer()
	assert.NoError(t, err)

	service := NewService(&mockRepo{}, enforcer, zap.NewNop())

	allowed, err := service.Enforce(EnforceRequest{
		UserID:   "user-1",
		Resource: "employee",
		Action:   "read",
	})
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = service.Enforce(EnforceRequest{
		UserID:   "user-1",
		Resource: "taxtable",
		Action:   "upload",
	})
	assert.NoError(t, err)
	assert.True(t, allowed)

	denied, err := service.Enforce(EnforceRequest{
		UserID:   "user-1",
		Resource: "employee",
		Action:   "delete",
	})
	assert.NoError(t, err)
	assert.False(t, denied)

	denied, err = service.Enforce(EnforceRequest{
		UserID:   "user-2",
		Resource: "employee",
		Action:   "read",
	})
	assert.NoError(t, err)
	assert.False(t, denied)
}
