package core

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"

	"refmap/internal/policies"
	"refmap/internal/types"
)

// MapSensorToRole installs roleKey -> column and enforces the bijection:
// any other role currently holding the same column is unmapped first, an
// existing column under the same role is replaced. This is the only way
// the mapping is ever written, so the table is injective after every
// mutation. Returns the role keys that were unmapped to make room.
func (n *Network) MapSensorToRole(ctx context.Context, roleKey, column string) []string {
	if n.SensorRoles == nil {
		n.SensorRoles = map[string]string{}
	}
	if existing, ok := n.SensorRoles[roleKey]; ok && existing != column {
		log.Ctx(ctx).Debug().
			Str("role", roleKey).
			Str("old_column", existing).
			Str("new_column", column).
			Msg("replacing column on role")
	}
	stale := policies.StaleRoles(n.SensorRoles, roleKey, column)
	for _, old := range stale {
		delete(n.SensorRoles, old)
		log.Ctx(ctx).Debug().
			Str("column", column).
			Str("unmapped_role", old).
			Msg("column relocated from stale role")
	}
	n.SensorRoles[roleKey] = column
	return stale
}

// UnmapRole removes the entry for a role key; no-op when absent.
func (n *Network) UnmapRole(roleKey string) bool {
	if _, ok := n.SensorRoles[roleKey]; !ok {
		return false
	}
	delete(n.SensorRoles, roleKey)
	return true
}

// MappedColumn looks up the column mapped to an exact role key.
func (n *Network) MappedColumn(roleKey string) (string, bool) {
	column, ok := n.SensorRoles[roleKey]
	return column, ok
}

// RolesForColumn returns every role key currently holding the column.
// More than one entry means a duplicate tolerated from a bulk load.
func (n *Network) RolesForColumn(column string) []string {
	var roles []string
	for roleKey, mapped := range n.SensorRoles {
		if mapped == column {
			roles = append(roles, roleKey)
		}
	}
	sort.Strings(roles)
	return roles
}

// ClearSensorRoles drops every mapping and returns how many were held.
func (n *Network) ClearSensorRoles() int {
	count := len(n.SensorRoles)
	n.SensorRoles = map[string]string{}
	return count
}

// ValidateSensorRoles scans for columns mapped under more than one role
// key and reports each duplicate group. Diagnostic only: loaded files
// may legitimately carry duplicates, which are corrected lazily the
// next time the column is explicitly re-mapped.
func (n *Network) ValidateSensorRoles(ctx context.Context) []types.DuplicateGroup {
	byColumn := map[string][]string{}
	for roleKey, column := range n.SensorRoles {
		byColumn[column] = append(byColumn[column], roleKey)
	}
	var groups []types.DuplicateGroup
	for column, roles := range byColumn {
		if len(roles) < 2 {
			continue
		}
		sort.Strings(roles)
		groups = append(groups, types.DuplicateGroup{Column: column, Roles: roles})
		log.Ctx(ctx).Warn().
			Str("column", column).
			Strs("roles", roles).
			Msg("column mapped under multiple roles")
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Column < groups[j].Column })
	return groups
}
