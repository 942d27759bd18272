package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"refmap/internal/types"
)

func TestKnownAndTypes(t *testing.T) {
	assert.True(t, Known(types.ComponentCompressor))
	assert.False(t, Known(types.ComponentType("Turbine")))

	found := map[types.ComponentType]bool{}
	for _, ct := range Types() {
		found[ct] = true
	}
	assert.True(t, found[types.ComponentEvaporator])
	assert.True(t, found[types.ComponentShelvingGrid])
	assert.Len(t, found, len(Types()))
}

func TestStaticPortsConditionalSelection(t *testing.T) {
	names := func(specs []PortSpec) []string {
		var out []string
		for _, s := range specs {
			out = append(out, s.Name)
		}
		return out
	}

	// No selector value falls back to the property default, Air Cooled.
	assert.Equal(t, []string{"inlet", "outlet", "air_in_temp", "air_out_temp"},
		names(StaticPorts(types.ComponentCondenser, nil)))

	assert.Equal(t, []string{"inlet", "outlet", "water_in_temp", "water_out_temp"},
		names(StaticPorts(types.ComponentCondenser, map[string]any{"condenser_type": "Water Cooled"})))

	// Unconditional types are unaffected by the property bag.
	assert.Equal(t, []string{"inlet", "outlet", "SP", "DP", "RPM"},
		names(StaticPorts(types.ComponentCompressor, map[string]any{"condenser_type": "Water Cooled"})))

	assert.Empty(t, StaticPorts(types.ComponentType("Turbine"), nil))
}

func TestDynamicGroupCounts(t *testing.T) {
	groups := DynamicGroups(types.ComponentEvaporator)
	require.Len(t, groups, 2)
	assert.Equal(t, "inlet_circuit_", groups[0].Prefix)
	assert.Equal(t, "outlet_circuit_", groups[1].Prefix)

	assert.Equal(t, 3, groups[0].Count(map[string]any{"circuits": 3}))
	// JSON decoding delivers numbers as float64.
	assert.Equal(t, 2, groups[0].Count(map[string]any{"circuits": 2.0}))
	assert.Equal(t, 0, groups[0].Count(nil))
	assert.Equal(t, 0, groups[0].Count(map[string]any{"circuits": "not a number"}))

	assert.Empty(t, DynamicGroups(types.ComponentCompressor))
}

func TestDefaultProperties(t *testing.T) {
	props := DefaultProperties(types.ComponentEvaporator)
	assert.Equal(t, 1, props["circuits"])
	assert.Equal(t, types.CircuitNone, props["circuit_label"])

	props = DefaultProperties(types.ComponentCondenser)
	assert.Equal(t, "Air Cooled", props["condenser_type"])
}

func TestTransparent(t *testing.T) {
	transparentTypes := []types.ComponentType{
		types.ComponentJunction,
		types.ComponentTeeJunction,
		types.ComponentYJunction,
		types.ComponentSplitter,
		types.ComponentCrossJunction,
		types.ComponentReducer,
		types.ComponentSensorBulb,
		types.ComponentFan,
		types.ComponentAirSensorArray,
		types.ComponentShelvingGrid,
	}
	for _, ct := range transparentTypes {
		assert.True(t, Transparent(ct), "%s should be transparent", ct)
	}

	opaqueTypes := []types.ComponentType{
		types.ComponentCompressor,
		types.ComponentCondenser,
		types.ComponentEvaporator,
		types.ComponentTXV,
		types.ComponentFilterDrier,
		types.ComponentDistributor,
	}
	for _, ct := range opaqueTypes {
		assert.False(t, Transparent(ct), "%s should not be transparent", ct)
	}
}

func TestPortSpecWildcard(t *testing.T) {
	assert.True(t, PortSpec{Fluid: types.FluidAny, Pressure: types.PressureAny}.Wildcard())
	assert.False(t, PortSpec{Fluid: types.FluidGas, Pressure: types.PressureAny}.Wildcard())
	assert.False(t, PortSpec{Fluid: types.FluidAny, Pressure: types.PressureLow}.Wildcard())
}

func TestValidateCatalog(t *testing.T) {
	Validate(t.Context())
}
