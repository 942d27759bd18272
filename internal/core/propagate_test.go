package core

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"refmap/internal/types"
)

func TestRecomputeDirectReconciliation(t *testing.T) {
	n := testNetwork()
	mustAdd(t, n, "comp-1", types.ComponentCompressor, nil)
	mustAdd(t, n, "cond-1", types.ComponentCondenser, nil)
	mustConnect(t, n, "p-1", "comp-1", "outlet", "cond-1", "inlet")

	result := Engine{}.Recompute(context.Background(), n)
	assert.Empty(t, result.Conflicts)

	p := n.Pipes["p-1"]
	assert.Equal(t, types.FluidGas, p.FluidPhase)
	assert.Equal(t, types.PressureHigh, p.PressureSide)
}

func TestRecomputeWildcardAdoptsConcreteSide(t *testing.T) {
	n := testNetwork()
	mustAdd(t, n, "fd-1", types.ComponentFilterDrier, nil)
	mustAdd(t, n, "txv-1", types.ComponentTXV, nil)
	// FilterDrier ports declare no phase; the TXV inlet declares liquid.
	mustConnect(t, n, "p-1", "fd-1", "outlet", "txv-1", "inlet")

	Engine{}.Recompute(context.Background(), n)

	p := n.Pipes["p-1"]
	assert.Equal(t, types.FluidLiquid, p.FluidPhase)
	assert.Equal(t, types.PressureHigh, p.PressureSide)
}

func TestRecomputeConflictLeavesWildcard(t *testing.T) {
	n := testNetwork()
	mustAdd(t, n, "cond-1", types.ComponentCondenser, nil)
	mustAdd(t, n, "comp-1", types.ComponentCompressor, nil)
	// Condenser outlet declares liquid/high, compressor inlet gas/low:
	// both attributes disagree.
	mustConnect(t, n, "p-1", "cond-1", "outlet", "comp-1", "inlet")

	result := Engine{}.Recompute(context.Background(), n)

	require.Len(t, result.Conflicts, 2)
	assert.Equal(t, "fluid_state", result.Conflicts[0].Attribute)
	assert.Equal(t, "pressure_side", result.Conflicts[1].Attribute)
	assert.Equal(t, "liquid", result.Conflicts[0].Left)
	assert.Equal(t, "gas", result.Conflicts[0].Right)

	p := n.Pipes["p-1"]
	assert.Equal(t, types.FluidAny, p.FluidPhase)
	assert.Equal(t, types.PressureAny, p.PressureSide)
}

func TestRecomputeJunctionPropagation(t *testing.T) {
	n := testNetwork()
	mustAdd(t, n, "evap-1", types.ComponentEvaporator, map[string]any{"circuits": 1})
	mustAdd(t, n, "j-1", types.ComponentJunction, map[string]any{"inlet_count": 1, "outlet_count": 1})
	mustAdd(t, n, "fd-1", types.ComponentFilterDrier, nil)
	mustConnect(t, n, "p-in", "evap-1", "outlet_circuit_1", "j-1", "inlet_1")
	mustConnect(t, n, "p-out", "j-1", "outlet_1", "fd-1", "inlet")

	Engine{}.Recompute(context.Background(), n)

	// The junction's outlet pipe inherits the concrete inlet phase even
	// though neither of its own endpoints declares one.
	assert.Equal(t, types.FluidGas, n.Pipes["p-in"].FluidPhase)
	assert.Equal(t, types.FluidGas, n.Pipes["p-out"].FluidPhase)
}

func TestRecomputeTraceThroughTransparentChain(t *testing.T) {
	n := testNetwork()
	mustAdd(t, n, "comp-1", types.ComponentCompressor, nil)
	mustAdd(t, n, "j-1", types.ComponentJunction, map[string]any{"inlet_count": 1, "outlet_count": 1})
	mustAdd(t, n, "j-2", types.ComponentJunction, map[string]any{"inlet_count": 1, "outlet_count": 1})
	mustAdd(t, n, "cond-1", types.ComponentCondenser, nil)
	mustConnect(t, n, "p-1", "comp-1", "outlet", "j-1", "inlet_1")
	mustConnect(t, n, "p-2", "j-1", "outlet_1", "j-2", "inlet_1")
	mustConnect(t, n, "p-3", "j-2", "outlet_1", "cond-1", "inlet")

	Engine{}.Recompute(context.Background(), n)

	// The middle pipe touches no declaring endpoint; both its values
	// come from traces across the junction bodies.
	assert.Equal(t, types.FluidGas, n.Pipes["p-2"].FluidPhase)
	assert.Equal(t, types.PressureHigh, n.Pipes["p-2"].PressureSide)
}

func TestRecomputeAmbiguousJunctionInletsStayWildcard(t *testing.T) {
	n := testNetwork()
	mustAdd(t, n, "comp-1", types.ComponentCompressor, nil)
	mustAdd(t, n, "cond-1", types.ComponentCondenser, nil)
	mustAdd(t, n, "j-1", types.ComponentJunction, map[string]any{"inlet_count": 2, "outlet_count": 1})
	mustAdd(t, n, "fd-1", types.ComponentFilterDrier, nil)
	mustConnect(t, n, "p-gas", "comp-1", "outlet", "j-1", "inlet_1")
	mustConnect(t, n, "p-liquid", "cond-1", "outlet", "j-1", "inlet_2")
	mustConnect(t, n, "p-out", "j-1", "outlet_1", "fd-1", "inlet")

	// Two distinct concrete phases reach the junction. No pass may pick
	// one for the outlet, on any recompute.
	for i := 0; i < 5; i++ {
		result := Engine{}.Recompute(context.Background(), n)
		assert.Empty(t, result.Conflicts)

		assert.Equal(t, types.FluidGas, n.Pipes["p-gas"].FluidPhase)
		assert.Equal(t, types.FluidLiquid, n.Pipes["p-liquid"].FluidPhase)
		assert.Equal(t, types.FluidAny, n.Pipes["p-out"].FluidPhase)
		// Pressure is unanimous on every path, so it still resolves.
		assert.Equal(t, types.PressureHigh, n.Pipes["p-out"].PressureSide)
	}
}

func TestRecomputeCycleTerminates(t *testing.T) {
	n := testNetwork()
	for _, id := range []string{"j-1", "j-2", "j-3"} {
		mustAdd(t, n, id, types.ComponentJunction, map[string]any{"inlet_count": 1, "outlet_count": 1})
	}
	mustConnect(t, n, "p-1", "j-1", "outlet_1", "j-2", "inlet_1")
	mustConnect(t, n, "p-2", "j-2", "outlet_1", "j-3", "inlet_1")
	mustConnect(t, n, "p-3", "j-3", "outlet_1", "j-1", "inlet_1")

	result := Engine{}.Recompute(context.Background(), n)
	assert.LessOrEqual(t, result.Passes, maxPasses)
	assert.Empty(t, result.Conflicts)

	// Nothing declares anything, so everything stays wildcard.
	for _, p := range n.Pipes {
		assert.Equal(t, types.FluidAny, p.FluidPhase)
		assert.Equal(t, types.PressureAny, p.PressureSide)
	}
}

func TestRecomputeIsIdempotent(t *testing.T) {
	n := testNetwork()
	mustAdd(t, n, "comp-1", types.ComponentCompressor, nil)
	mustAdd(t, n, "cond-1", types.ComponentCondenser, nil)
	mustAdd(t, n, "fd-1", types.ComponentFilterDrier, nil)
	mustAdd(t, n, "txv-1", types.ComponentTXV, map[string]any{"circuit_label": "Left"})
	mustAdd(t, n, "evap-1", types.ComponentEvaporator, map[string]any{"circuit_label": "Left"})
	mustConnect(t, n, "p-1", "comp-1", "outlet", "cond-1", "inlet")
	mustConnect(t, n, "p-2", "cond-1", "outlet", "fd-1", "inlet")
	mustConnect(t, n, "p-3", "fd-1", "outlet", "txv-1", "inlet")
	mustConnect(t, n, "p-4", "txv-1", "outlet", "evap-1", "inlet_circuit_1")
	mustConnect(t, n, "p-5", "evap-1", "outlet_circuit_1", "comp-1", "inlet")

	Engine{}.Recompute(context.Background(), n)
	first := snapshotPipes(n)
	Engine{}.Recompute(context.Background(), n)
	second := snapshotPipes(n)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("recompute is not idempotent (-first +second):\n%s", diff)
	}
}

func TestRecomputeCircuitLabels(t *testing.T) {
	n := testNetwork()
	mustAdd(t, n, "txv-1", types.ComponentTXV, map[string]any{"circuit_label": "Left"})
	mustAdd(t, n, "evap-1", types.ComponentEvaporator, map[string]any{"circuit_label": "Left"})
	mustAdd(t, n, "j-1", types.ComponentJunction, map[string]any{"inlet_count": 1, "outlet_count": 1})
	mustAdd(t, n, "comp-1", types.ComponentCompressor, nil)
	mustConnect(t, n, "p-feed", "txv-1", "outlet", "evap-1", "inlet_circuit_1")
	mustConnect(t, n, "p-suct", "evap-1", "outlet_circuit_1", "j-1", "inlet_1")
	mustConnect(t, n, "p-back", "j-1", "outlet_1", "comp-1", "inlet")

	Engine{}.Recompute(context.Background(), n)

	assert.Equal(t, "Left", n.Pipes["p-feed"].CircuitLabel)
	assert.Equal(t, "Left", n.Pipes["p-suct"].CircuitLabel)
	// The pipe behind the junction finds Left by walking upstream
	// through the transparent junction.
	assert.Equal(t, "Left", n.Pipes["p-back"].CircuitLabel)
}

func TestRecomputeResetsStaleValues(t *testing.T) {
	n := testNetwork()
	mustAdd(t, n, "comp-1", types.ComponentCompressor, nil)
	mustAdd(t, n, "cond-1", types.ComponentCondenser, nil)
	mustConnect(t, n, "p-1", "comp-1", "outlet", "cond-1", "inlet")

	n.Pipes["p-1"].FluidPhase = types.FluidLiquid
	n.Pipes["p-1"].CircuitLabel = "Right"

	Engine{}.Recompute(context.Background(), n)
	assert.Equal(t, types.FluidGas, n.Pipes["p-1"].FluidPhase)
	assert.Equal(t, types.CircuitNone, n.Pipes["p-1"].CircuitLabel)
}

func snapshotPipes(n *Network) map[string]types.Pipe {
	out := map[string]types.Pipe{}
	for id, p := range n.Pipes {
		out[id] = *p
	}
	return out
}
