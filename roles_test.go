package lrs_test

import (
	"testing"

	lrs "github.com/goliatone/lrs-client"
	"github.com/stretchr/testify/assert"
)

func TestRole_IsValid(t *testing.T) {
	assert.True(t, lrs.RoleStudent.IsValid())
	assert.True(t, lrs.RoleLecturer.IsValid())
	assert.True(t, lrs.RoleSuperAdmin.IsValid())

	assert.False(t, lrs.Role("").IsValid())
	assert.False(t, lrs.Role("admin").IsValid())
	assert.False(t, lrs.Role("Student").IsValid())
}

func TestParseRole(t *testing.T) {
	role, ok := lrs.ParseRole("lecturer")
	assert.True(t, ok)
	assert.Equal(t, lrs.RoleLecturer, role)

	_, ok = lrs.ParseRole("registrar")
	assert.False(t, ok)
}

func TestRole_OneOf(t *testing.T) {
	assert.True(t, lrs.RoleLecturer.OneOf(lrs.RoleStudent, lrs.RoleLecturer))
	assert.False(t, lrs.RoleStudent.OneOf(lrs.RoleLecturer, lrs.RoleSuperAdmin))
	assert.False(t, lrs.RoleStudent.OneOf())
}

func TestRole_Label(t *testing.T) {
	assert.Equal(t, "Super Admin", lrs.RoleSuperAdmin.Label())
	assert.Equal(t, "Lecturer", lrs.RoleLecturer.Label())
	assert.Equal(t, "mystery", lrs.Role("mystery").Label())
}

func TestAllRoles(t *testing.T) {
	roles := lrs.AllRoles()
	assert.Len(t, roles, 3)
	for _, role := range roles {
		assert.True(t, role.IsValid())
	}
}
