package user

import (
	"errors"
	"regexp"
	"strings"
)

// RoleCode is the backend role identifier attached to a user.
type RoleCode string

const (
	RoleAdmin                  RoleCode = "ADMIN"
	RoleSupervisorAlmacen      RoleCode = "SUPERVISOR_DE_ALMACEN"
	RoleSupervisorProduccion   RoleCode = "SUPERVISOR_DE_PRODUCCION"
	RoleSupervisorCalidad      RoleCode = "SUPERVISOR_DE_CALIDAD"
	RoleSupervisorPlaneamiento RoleCode = "SUPERVISOR_DE_PLANEAMIENTO"
	RoleOperarioAlmacen        RoleCode = "OPERARIO_DE_ALMACEN"
	RoleOperarioProduccion     RoleCode = "OPERARIO_DE_PRODUCCION"
	RoleOperarioCalidad        RoleCode = "OPERARIO_DE_CALIDAD"
)

var knownRoles = []RoleCode{
	RoleAdmin,
	RoleSupervisorAlmacen,
	RoleSupervisorProduccion,
	RoleSupervisorCalidad,
	RoleSupervisorPlaneamiento,
	RoleOperarioAlmacen,
	RoleOperarioProduccion,
	RoleOperarioCalidad,
}

var roleCodeRegexp = regexp.MustCompile(`^[A-Z0-9_]{3,64}$`)

var ErrInvalidRoleCode = errors.New("invalid role code")

func (c RoleCode) IsValid() bool {
	return roleCodeRegexp.MatchString(string(c))
}

func (c RoleCode) IsAdmin() bool {
	return c == RoleAdmin
}

// Label turns SUPERVISOR_DE_ALMACEN into "Supervisor de almacen".
func (c RoleCode) Label() string {
	s := strings.ToLower(strings.ReplaceAll(string(c), "_", " "))
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// KnownRoles lists the roles offered in the roles editor.
func KnownRoles() []RoleCode {
	out := make([]RoleCode, len(knownRoles))
	copy(out, knownRoles)
	return out
}

// ParseRoleCode converts request or backend input into a RoleCode.
func ParseRoleCode(s string) (RoleCode, error) {
	c := RoleCode(strings.ToUpper(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", ErrInvalidRoleCode
	}
	return c, nil
}

// ParseRoleCodes parses and de-duplicates a role list, keeping input order.
func ParseRoleCodes(in []string) ([]RoleCode, error) {
	seen := make(map[RoleCode]struct{}, len(in))
	out := make([]RoleCode, 0, len(in))
	for _, s := range in {
		c, err := ParseRoleCode(s)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out, nil
}

// HasAny reports whether roles intersects wanted.
func HasAny(roles []RoleCode, wanted ...RoleCode) bool {
	for _, r := range roles {
		for _, w := range wanted {
			if r == w {
				return true
			}
		}
	}
	return false
}
