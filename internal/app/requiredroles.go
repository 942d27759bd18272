package app

import (
	"sort"

	"refmap/internal/core"
	"refmap/internal/types"
)

// requiredRoleOrder fixes the export order of the built-in catalog:
// pressures, then compressor/condenser temps, then the per-circuit
// expansion-valve and coil temps.
var requiredRoleOrder = []string{
	"P_suc", "P_disch", "RPM",
	"T_2b", "T_3a", "T_3b", "T_4a",
	"T_waterin", "T_waterout",
	"T_1a-lh", "T_1b-lh", "T_2a-LH", "T_4b-lh",
	"T_1a-ctr", "T_1b-ctr", "T_2a-ctr", "T_4b-ctr",
	"T_1a-rh", "T_1c-rh", "T_2a-RH", "T_4b-rh",
}

// RequiredSensorRoles returns the built-in catalog of calculation
// roles. Each role lists candidate bindings tried in order; per-circuit
// roles narrow the candidate by circuit_label.
func RequiredSensorRoles() map[string][]types.RoleDef {
	catalog := map[string][]types.RoleDef{
		"P_suc":   {{Type: types.ComponentCompressor, Port: "SP"}},
		"P_disch": {{Type: types.ComponentCompressor, Port: "DP"}},
		"RPM":     {{Type: types.ComponentCompressor, Port: "RPM"}},

		"T_2b": {{Type: types.ComponentCompressor, Port: "inlet"}},
		"T_3a": {{Type: types.ComponentCompressor, Port: "outlet"}},
		"T_3b": {{Type: types.ComponentCondenser, Port: "inlet"}},
		"T_4a": {{Type: types.ComponentCondenser, Port: "outlet"}},

		"T_waterin":  {{Type: types.ComponentCondenser, Port: "water_in_temp"}},
		"T_waterout": {{Type: types.ComponentCondenser, Port: "water_out_temp"}},
	}
	for _, circuit := range []struct {
		label  string
		suffix string
		outlet string
	}{
		{"Left", "lh", "T_2a-LH"},
		{"Center", "ctr", "T_2a-ctr"},
		{"Right", "rh", "T_2a-RH"},
	} {
		filter := map[string]string{"circuit_label": circuit.label}
		catalog["T_1a-"+circuit.suffix] = []types.RoleDef{
			{Type: types.ComponentTXV, Port: "outlet", Properties: filter},
		}
		inletRole := "T_1b-" + circuit.suffix
		if circuit.suffix == "rh" {
			inletRole = "T_1c-rh"
		}
		catalog[inletRole] = []types.RoleDef{
			{Type: types.ComponentEvaporator, Port: "inlet_circuit_1", Properties: filter},
		}
		catalog[circuit.outlet] = []types.RoleDef{
			{Type: types.ComponentEvaporator, Port: "outlet_circuit_1", Properties: filter},
		}
		catalog["T_4b-"+circuit.suffix] = []types.RoleDef{
			{Type: types.ComponentTXV, Port: "inlet", Properties: filter},
		}
	}
	return catalog
}

// FindColumnForRole scans the network for the first component matching
// one of the role's candidate definitions, in definition order, and
// resolves its mapped column.
func FindColumnForRole(n *core.Network, defs []types.RoleDef) (types.RoleDef, string, bool) {
	componentIDs := make([]string, 0, len(n.Components))
	for id := range n.Components {
		componentIDs = append(componentIDs, id)
	}
	sort.Strings(componentIDs)

	for _, def := range defs {
		for _, id := range componentIDs {
			c := n.Components[id]
			if !def.Matches(*c) {
				continue
			}
			if column, ok := core.ResolveMappedColumn(n, c.Type, id, def.Port); ok {
				return def, column, true
			}
		}
	}
	return types.RoleDef{}, "", false
}

// ResolveRequiredRoles evaluates every role in the catalog against the
// network. Roles appear in catalog order (built-in order first, then
// any extra roles sorted by name); unresolved roles come back with an
// empty column and are also listed in missing.
func ResolveRequiredRoles(n *core.Network, catalog map[string][]types.RoleDef) ([]types.RequiredRoleRow, []string) {
	names := make([]string, 0, len(catalog))
	seen := map[string]bool{}
	for _, name := range requiredRoleOrder {
		if _, ok := catalog[name]; ok {
			names = append(names, name)
			seen[name] = true
		}
	}
	var extras []string
	for name := range catalog {
		if !seen[name] {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)
	names = append(names, extras...)

	var rows []types.RequiredRoleRow
	var missing []string
	for _, name := range names {
		defs := catalog[name]
		if def, column, ok := FindColumnForRole(n, defs); ok {
			rows = append(rows, types.RequiredRoleRow{Role: name, Type: def.Type, Port: def.Port, Column: column})
			continue
		}
		row := types.RequiredRoleRow{Role: name}
		if len(defs) > 0 {
			row.Type = defs[0].Type
			row.Port = defs[0].Port
		}
		rows = append(rows, row)
		missing = append(missing, name)
	}
	return rows, missing
}
