package common

import "strings"

// Estado is the UI-level active filter shown in every list filter bar.
type Estado string

const (
	EstadoTodos    Estado = "Todos"
	EstadoActivo   Estado = "Activo"
	EstadoInactivo Estado = "Inactivo"
)

// ParseEstado accepts the labels case-insensitively; anything else is Todos.
func ParseEstado(s string) Estado {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "activo":
		return EstadoActivo
	case "inactivo":
		return EstadoInactivo
	default:
		return EstadoTodos
	}
}

// IsActive translates the label into the backend's isActive parameter.
// Todos yields nil so the parameter is omitted.
func (e Estado) IsActive() *bool {
	var v bool
	switch e {
	case EstadoActivo:
		v = true
	case EstadoInactivo:
		v = false
	default:
		return nil
	}
	return &v
}

// ActiveLabel renders a boolean flag the way list badges show it.
func ActiveLabel(active bool) string {
	if active {
		return string(EstadoActivo)
	}
	return string(EstadoInactivo)
}

// EstadoOptions lists the filter choices in display order.
func EstadoOptions() []Estado {
	return []Estado{EstadoTodos, EstadoActivo, EstadoInactivo}
}
