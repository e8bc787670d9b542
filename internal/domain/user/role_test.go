package user

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRoleCode(t *testing.T) {
	c, err := ParseRoleCode(" supervisor_de_almacen ")
	require.NoError(t, err)
	require.Equal(t, RoleSupervisorAlmacen, c)

	_, err = ParseRoleCode("x")
	require.ErrorIs(t, err, ErrInvalidRoleCode)
}

func TestParseRoleCodes_Dedup(t *testing.T) {
	roles, err := ParseRoleCodes([]string{"ADMIN", "admin", "OPERARIO_DE_CALIDAD"})
	require.NoError(t, err)
	require.Equal(t, []RoleCode{RoleAdmin, RoleOperarioCalidad}, roles)

	_, err = ParseRoleCodes([]string{"ADMIN", "no"})
	require.ErrorIs(t, err, ErrInvalidRoleCode)
}

func TestRoleCode_Label(t *testing.T) {
	require.Equal(t, "Supervisor de almacen", RoleSupervisorAlmacen.Label())
	require.Equal(t, "Admin", RoleAdmin.Label())
}

func TestHasAny(t *testing.T) {
	require.True(t, HasAny([]RoleCode{RoleOperarioAlmacen, RoleAdmin}, RoleAdmin))
	require.False(t, HasAny([]RoleCode{RoleOperarioAlmacen}, RoleAdmin))
	require.False(t, HasAny(nil, RoleAdmin))
}
