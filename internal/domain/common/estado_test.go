package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEstado(t *testing.T) {
	require.Equal(t, EstadoActivo, ParseEstado(" activo "))
	require.Equal(t, EstadoInactivo, ParseEstado("INACTIVO"))
	require.Equal(t, EstadoTodos, ParseEstado(""))
	require.Equal(t, EstadoTodos, ParseEstado("whatever"))
}

func TestEstado_IsActive(t *testing.T) {
	require.Nil(t, EstadoTodos.IsActive())

	active := EstadoActivo.IsActive()
	require.NotNil(t, active)
	require.True(t, *active)

	inactive := EstadoInactivo.IsActive()
	require.NotNil(t, inactive)
	require.False(t, *inactive)
}
