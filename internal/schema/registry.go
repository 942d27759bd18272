// Package schema is the static component catalog: for every component
// type, the fixed ports it exposes, the dynamic port groups generated
// from its properties, and the editable property specs with defaults.
package schema

import (
	"context"

	assert "github.com/ZanzyTHEbar/assert-lib"

	"refmap/internal/shared"
	"refmap/internal/types"
)

// PortSpec declares one fixed connection point of a component type. A
// declared phase or pressure of "any" means the schema fixes nothing and
// the value must be traced from the rest of the network.
type PortSpec struct {
	Name      string
	Direction types.PortDirection
	Fluid     types.FluidPhase
	Pressure  types.PressureSide
}

// Wildcard reports whether the port declares no concrete attribute at all.
func (p PortSpec) Wildcard() bool {
	return p.Fluid == types.FluidAny && p.Pressure == types.PressureAny
}

// DynamicPortGroup is a template-generated set of ports whose count is
// driven by a component property, e.g. one inlet per refrigerant circuit.
// Generated names are Prefix + 1-based index.
type DynamicPortGroup struct {
	Prefix        string
	CountProperty string
	Template      PortSpec
}

// Count evaluates the group's current port count from a property bag.
func (g DynamicPortGroup) Count(properties map[string]any) int {
	return shared.IntProperty(properties, g.CountProperty)
}

// PropertySpec describes one editable component property.
type PropertySpec struct {
	Kind    types.PropertyKind
	Default any
	Min     float64
	Max     float64
	Options []string
}

type componentSchema struct {
	Properties map[string]PropertySpec

	Ports []PortSpec

	// ConditionalPorts adds extra static ports depending on the current
	// value of ConditionalProperty (e.g. air vs water sensor ports on a
	// condenser).
	ConditionalProperty string
	ConditionalPorts    map[string][]PortSpec

	DynamicGroups []DynamicPortGroup
}

var circuitLabelProp = PropertySpec{
	Kind:    types.PropertyEnum,
	Default: types.CircuitNone,
	Options: []string{types.CircuitNone, "Left", "Center", "Right"},
}

var catalog = map[types.ComponentType]componentSchema{
	types.ComponentCompressor: {
		Properties: map[string]PropertySpec{
			"capacity":         {Kind: types.PropertyInteger, Default: 1000},
			"displacement_cm3": {Kind: types.PropertyFloat, Default: 10.5, Min: 0.1, Max: 100.0},
			"speed_rpm":        {Kind: types.PropertyFloat, Default: 3500.0, Min: 100.0, Max: 10000.0},
			"vol_eff":          {Kind: types.PropertyFloat, Default: 0.85, Min: 0.1, Max: 1.0},
			"circuit_label":    circuitLabelProp,
		},
		Ports: []PortSpec{
			{Name: "inlet", Direction: types.PortIn, Fluid: types.FluidGas, Pressure: types.PressureLow},
			{Name: "outlet", Direction: types.PortOut, Fluid: types.FluidGas, Pressure: types.PressureHigh},
			{Name: "SP", Direction: types.PortSensor, Fluid: types.FluidGas, Pressure: types.PressureLow},
			{Name: "DP", Direction: types.PortSensor, Fluid: types.FluidGas, Pressure: types.PressureHigh},
			{Name: "RPM", Direction: types.PortSensor, Fluid: types.FluidAny, Pressure: types.PressureAny},
		},
	},

	types.ComponentCondenser: {
		Properties: map[string]PropertySpec{
			"capacity":      {Kind: types.PropertyInteger, Default: 5000},
			"circuit_label": circuitLabelProp,
			"condenser_type": {
				Kind:    types.PropertyEnum,
				Default: "Air Cooled",
				Options: []string{"Air Cooled", "Water Cooled"},
			},
		},
		Ports: []PortSpec{
			{Name: "inlet", Direction: types.PortIn, Fluid: types.FluidGas, Pressure: types.PressureHigh},
			{Name: "outlet", Direction: types.PortOut, Fluid: types.FluidLiquid, Pressure: types.PressureHigh},
		},
		ConditionalProperty: "condenser_type",
		ConditionalPorts: map[string][]PortSpec{
			"Air Cooled": {
				{Name: "air_in_temp", Direction: types.PortSensor, Fluid: types.FluidAny, Pressure: types.PressureAny},
				{Name: "air_out_temp", Direction: types.PortSensor, Fluid: types.FluidAny, Pressure: types.PressureAny},
			},
			"Water Cooled": {
				{Name: "water_in_temp", Direction: types.PortSensor, Fluid: types.FluidAny, Pressure: types.PressureAny},
				{Name: "water_out_temp", Direction: types.PortSensor, Fluid: types.FluidAny, Pressure: types.PressureAny},
			},
		},
	},

	types.ComponentEvaporator: {
		Properties: map[string]PropertySpec{
			"circuits":      {Kind: types.PropertyInteger, Default: 1, Min: 1, Max: 12},
			"port_spacing":  {Kind: types.PropertyInteger, Default: 20, Min: 10, Max: 50},
			"circuit_label": circuitLabelProp,
		},
		DynamicGroups: []DynamicPortGroup{
			{
				Prefix:        "inlet_circuit_",
				CountProperty: "circuits",
				Template:      PortSpec{Direction: types.PortIn, Fluid: types.FluidTwoPhase, Pressure: types.PressureLow},
			},
			{
				Prefix:        "outlet_circuit_",
				CountProperty: "circuits",
				Template:      PortSpec{Direction: types.PortOut, Fluid: types.FluidGas, Pressure: types.PressureLow},
			},
		},
	},

	types.ComponentTXV: {
		Properties: map[string]PropertySpec{
			"capacity":          {Kind: types.PropertyInteger, Default: 100},
			"superheat_setting": {Kind: types.PropertyInteger, Default: 10},
			"circuit_label":     circuitLabelProp,
		},
		Ports: []PortSpec{
			{Name: "inlet", Direction: types.PortIn, Fluid: types.FluidLiquid, Pressure: types.PressureHigh},
			{Name: "outlet", Direction: types.PortOut, Fluid: types.FluidTwoPhase, Pressure: types.PressureLow},
			{Name: "bulb", Direction: types.PortSensor, Fluid: types.FluidAny, Pressure: types.PressureLow},
		},
	},

	types.ComponentFilterDrier: {
		Properties: map[string]PropertySpec{
			"size":          {Kind: types.PropertyString, Default: `3/8"`},
			"circuit_label": circuitLabelProp,
		},
		Ports: []PortSpec{
			{Name: "inlet", Direction: types.PortIn, Fluid: types.FluidAny, Pressure: types.PressureHigh},
			{Name: "outlet", Direction: types.PortOut, Fluid: types.FluidAny, Pressure: types.PressureHigh},
		},
	},

	types.ComponentDistributor: {
		Properties: map[string]PropertySpec{
			"circuit_count": {Kind: types.PropertyInteger, Default: 1, Min: 1, Max: 12},
			"port_spacing":  {Kind: types.PropertyInteger, Default: 20, Min: 10, Max: 50},
			"circuit_label": circuitLabelProp,
		},
		Ports: []PortSpec{
			{Name: "inlet", Direction: types.PortIn, Fluid: types.FluidTwoPhase, Pressure: types.PressureLow},
		},
		DynamicGroups: []DynamicPortGroup{
			{
				Prefix:        "outlet_",
				CountProperty: "circuit_count",
				Template:      PortSpec{Direction: types.PortOut, Fluid: types.FluidTwoPhase, Pressure: types.PressureLow},
			},
		},
	},

	types.ComponentJunction: {
		Properties: map[string]PropertySpec{
			"inlet_count":   {Kind: types.PropertyInteger, Default: 2, Min: 1, Max: 12},
			"outlet_count":  {Kind: types.PropertyInteger, Default: 1, Min: 1, Max: 12},
			"port_spacing":  {Kind: types.PropertyInteger, Default: 20, Min: 10, Max: 50},
			"circuit_label": circuitLabelProp,
		},
		Ports: []PortSpec{
			{Name: "sensor", Direction: types.PortSensor, Fluid: types.FluidAny, Pressure: types.PressureAny},
		},
		DynamicGroups: []DynamicPortGroup{
			{
				Prefix:        "inlet_",
				CountProperty: "inlet_count",
				Template:      PortSpec{Direction: types.PortIn, Fluid: types.FluidAny, Pressure: types.PressureAny},
			},
			{
				Prefix:        "outlet_",
				CountProperty: "outlet_count",
				Template:      PortSpec{Direction: types.PortOut, Fluid: types.FluidAny, Pressure: types.PressureAny},
			},
		},
	},

	types.ComponentTeeJunction: {
		Ports: []PortSpec{
			{Name: "inlet_1", Direction: types.PortIn, Fluid: types.FluidAny, Pressure: types.PressureAny},
			{Name: "inlet_2", Direction: types.PortIn, Fluid: types.FluidAny, Pressure: types.PressureAny},
			{Name: "outlet", Direction: types.PortOut, Fluid: types.FluidAny, Pressure: types.PressureAny},
		},
	},

	types.ComponentYJunction: {
		Ports: []PortSpec{
			{Name: "inlet_1", Direction: types.PortIn, Fluid: types.FluidAny, Pressure: types.PressureAny},
			{Name: "inlet_2", Direction: types.PortIn, Fluid: types.FluidAny, Pressure: types.PressureAny},
			{Name: "outlet", Direction: types.PortOut, Fluid: types.FluidAny, Pressure: types.PressureAny},
		},
	},

	types.ComponentSplitter: {
		Ports: []PortSpec{
			{Name: "inlet", Direction: types.PortIn, Fluid: types.FluidAny, Pressure: types.PressureAny},
			{Name: "outlet_1", Direction: types.PortOut, Fluid: types.FluidAny, Pressure: types.PressureAny},
			{Name: "outlet_2", Direction: types.PortOut, Fluid: types.FluidAny, Pressure: types.PressureAny},
		},
	},

	types.ComponentCrossJunction: {
		Ports: []PortSpec{
			{Name: "inlet_1", Direction: types.PortIn, Fluid: types.FluidAny, Pressure: types.PressureAny},
			{Name: "inlet_2", Direction: types.PortIn, Fluid: types.FluidAny, Pressure: types.PressureAny},
			{Name: "outlet_1", Direction: types.PortOut, Fluid: types.FluidAny, Pressure: types.PressureAny},
			{Name: "outlet_2", Direction: types.PortOut, Fluid: types.FluidAny, Pressure: types.PressureAny},
		},
	},

	types.ComponentReducer: {
		Properties: map[string]PropertySpec{
			"inlet_size":  {Kind: types.PropertyString, Default: `5/8"`},
			"outlet_size": {Kind: types.PropertyString, Default: `3/8"`},
		},
		Ports: []PortSpec{
			{Name: "inlet", Direction: types.PortIn, Fluid: types.FluidAny, Pressure: types.PressureAny},
			{Name: "outlet", Direction: types.PortOut, Fluid: types.FluidAny, Pressure: types.PressureAny},
		},
	},

	types.ComponentSensorBulb: {
		Properties: map[string]PropertySpec{
			"label":         {Kind: types.PropertyString, Default: ""},
			"circuit_label": circuitLabelProp,
		},
		Ports: []PortSpec{
			{Name: "measurement", Direction: types.PortSensor, Fluid: types.FluidAny, Pressure: types.PressureAny},
		},
	},

	types.ComponentFan: {
		Properties: map[string]PropertySpec{
			"rpm": {Kind: types.PropertyInteger, Default: 1200, Min: 0, Max: 5000},
			"air_flow_type": {
				Kind:    types.PropertyEnum,
				Default: "Air Inlet",
				Options: []string{"Air Inlet", "Air Outlet"},
			},
			"sensor_count": {Kind: types.PropertyInteger, Default: 6, Min: 1, Max: 12},
			"circuit_label": {
				Kind:    types.PropertyEnum,
				Default: types.CircuitNone,
				Options: []string{types.CircuitNone, "LH", "RH", "CTR"},
			},
		},
		DynamicGroups: []DynamicPortGroup{
			{
				Prefix:        "sensor_",
				CountProperty: "sensor_count",
				Template:      PortSpec{Direction: types.PortSensor, Fluid: types.FluidAny, Pressure: types.PressureAny},
			},
		},
	},

	types.ComponentAirSensorArray: {
		Properties: map[string]PropertySpec{
			"curtain_type": {
				Kind:    types.PropertyEnum,
				Default: "Primary",
				Options: []string{"Primary", "Secondary", "Return"},
			},
			"sensor_count": {Kind: types.PropertyInteger, Default: 11, Min: 3, Max: 40},
			"block_width":  {Kind: types.PropertyInteger, Default: 400, Min: 150, Max: 2000},
			"block_height": {Kind: types.PropertyInteger, Default: 25, Min: 15, Max: 50},
		},
	},

	types.ComponentShelvingGrid: {
		Properties: map[string]PropertySpec{
			"shelving_type": {
				Kind:    types.PropertyEnum,
				Default: "Modular",
				Options: []string{"Modular", "Non-Modular"},
			},
			"module_count": {Kind: types.PropertyInteger, Default: 3, Min: 1, Max: 3},
			"door_count":   {Kind: types.PropertyInteger, Default: 3, Min: 1, Max: 5},
			"shelf_rows":   {Kind: types.PropertyInteger, Default: 6, Min: 1, Max: 10},
			"shelf_width":  {Kind: types.PropertyInteger, Default: 100, Min: 50, Max: 300},
			"shelf_height": {Kind: types.PropertyInteger, Default: 60, Min: 30, Max: 150},
			"row_gap":      {Kind: types.PropertyInteger, Default: 20, Min: 0, Max: 100},
		},
	},
}

// transparent caches, per type, whether every port the schema can ever
// produce declares no concrete attribute. Propagation traces through
// such components.
var transparent = map[types.ComponentType]bool{}

func init() {
	for componentType, sch := range catalog {
		all := true
		for _, p := range sch.Ports {
			if !p.Wildcard() {
				all = false
			}
		}
		for _, ports := range sch.ConditionalPorts {
			for _, p := range ports {
				if !p.Wildcard() {
					all = false
				}
			}
		}
		for _, g := range sch.DynamicGroups {
			if !g.Template.Wildcard() {
				all = false
			}
		}
		transparent[componentType] = all
	}
}

// Known reports whether the type exists in the catalog.
func Known(t types.ComponentType) bool {
	_, ok := catalog[t]
	return ok
}

// Types returns every catalogued component type.
func Types() []types.ComponentType {
	out := make([]types.ComponentType, 0, len(catalog))
	for t := range catalog {
		out = append(out, t)
	}
	return out
}

// StaticPorts returns the fixed ports of a type, including any
// conditional ports selected by the current property values.
func StaticPorts(t types.ComponentType, properties map[string]any) []PortSpec {
	sch, ok := catalog[t]
	if !ok {
		return nil
	}
	ports := append([]PortSpec(nil), sch.Ports...)
	if sch.ConditionalProperty != "" {
		selector := shared.StringProperty(properties, sch.ConditionalProperty)
		if selector == "" {
			if def, ok := sch.Properties[sch.ConditionalProperty]; ok {
				selector, _ = def.Default.(string)
			}
		}
		ports = append(ports, sch.ConditionalPorts[selector]...)
	}
	return ports
}

// DynamicGroups returns the dynamic port groups declared for a type.
func DynamicGroups(t types.ComponentType) []DynamicPortGroup {
	return catalog[t].DynamicGroups
}

// Properties returns the property specs for a type.
func Properties(t types.ComponentType) map[string]PropertySpec {
	return catalog[t].Properties
}

// DefaultProperties builds a fresh property bag with every schema
// default filled in.
func DefaultProperties(t types.ComponentType) map[string]any {
	out := map[string]any{}
	for name, def := range catalog[t].Properties {
		out[name] = def.Default
	}
	return out
}

// Transparent reports whether every port of the type is wildcard. Such
// components (junctions, tees, splitters) pass attributes through
// instead of fixing them.
func Transparent(t types.ComponentType) bool {
	return transparent[t]
}

// Validate runs the catalog self-checks: unique port names per type and
// dynamic count properties that exist in the property specs.
func Validate(ctx context.Context) {
	for componentType, sch := range catalog {
		seen := map[string]struct{}{}
		for _, p := range sch.Ports {
			assert.NotEmpty(ctx, p.Name, "port name must be set")
			_, dup := seen[p.Name]
			assert.Assert(ctx, !dup, "duplicate port name in "+string(componentType))
			seen[p.Name] = struct{}{}
		}
		for _, g := range sch.DynamicGroups {
			assert.NotEmpty(ctx, g.Prefix, "dynamic group prefix must be set")
			_, ok := sch.Properties[g.CountProperty]
			assert.Assert(ctx, ok, "dynamic count property missing in "+string(componentType))
		}
	}
}
