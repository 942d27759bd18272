package core

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"

	"refmap/internal/schema"
	"refmap/internal/types"
)

// maxPasses bounds the fixed-point iteration. Three passes are enough
// for realistic topologies; anything still wildcard after that stays
// wildcard until the next edit.
const maxPasses = 3

// Engine recomputes the effective fluid phase, pressure side, and
// circuit label of every pipe from the declared attributes at the
// network's edges. A recompute always starts from scratch: effective
// values are derived state, never trusted across edits.
//
// Within one recompute convergence is monotonic: a wildcard may become
// concrete, but nothing concrete is reverted.
type Engine struct{}

// Result summarizes one recompute.
type Result struct {
	Passes    int
	Updates   int
	Conflicts []types.Conflict
}

// Recompute runs the propagation to a fixed point or the pass ceiling.
func (e Engine) Recompute(ctx context.Context, n *Network) Result {
	for _, p := range n.Pipes {
		p.FluidPhase = types.FluidAny
		p.PressureSide = types.PressureAny
		p.CircuitLabel = types.CircuitNone
	}

	result := Result{}
	conflicts := map[string]types.Conflict{}
	for pass := 1; pass <= maxPasses; pass++ {
		result.Passes = pass
		changed := 0
		changed += e.directPass(n, conflicts)
		changed += e.junctionFluidPass(ctx, n)
		changed += e.tracePass(ctx, n)
		changed += e.circuitPass(n)
		result.Updates += changed
		if changed == 0 {
			break
		}
	}

	keys := make([]string, 0, len(conflicts))
	for k := range conflicts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		c := conflicts[k]
		result.Conflicts = append(result.Conflicts, c)
		log.Ctx(ctx).Warn().
			Str("pipe", c.PipeID).
			Str("attribute", c.Attribute).
			Str("left", c.Left).
			Str("right", c.Right).
			Msg("conflicting declared attributes, leaving wildcard")
	}
	log.Ctx(ctx).Debug().
		Int("passes", result.Passes).
		Int("updates", result.Updates).
		Int("conflicts", len(result.Conflicts)).
		Msg("propagation finished")
	return result
}

// directPass resolves each pipe from the declared attributes at its two
// endpoints. One wildcard endpoint adopts the other's concrete value;
// two equal concrete values agree; two unequal concrete values are a
// recorded conflict and the pipe stays wildcard.
func (e Engine) directPass(n *Network, conflicts map[string]types.Conflict) int {
	changed := 0
	for id, p := range n.Pipes {
		start, ok := n.Components[p.Start.ComponentID]
		if !ok {
			continue
		}
		end, ok := n.Components[p.End.ComponentID]
		if !ok {
			continue
		}
		startAttr := DeclaredAttribute(start.Type, p.Start.Port, start.Properties)
		endAttr := DeclaredAttribute(end.Type, p.End.Port, end.Properties)

		if p.FluidPhase == types.FluidAny {
			switch {
			case startAttr.Fluid == types.FluidAny && endAttr.Fluid == types.FluidAny:
			case startAttr.Fluid == types.FluidAny:
				p.FluidPhase = endAttr.Fluid
				changed++
			case endAttr.Fluid == types.FluidAny || startAttr.Fluid == endAttr.Fluid:
				p.FluidPhase = startAttr.Fluid
				changed++
			default:
				conflicts[id+"/fluid_state"] = types.Conflict{
					PipeID:    id,
					Attribute: "fluid_state",
					Left:      string(startAttr.Fluid),
					Right:     string(endAttr.Fluid),
				}
			}
		}

		if p.PressureSide == types.PressureAny {
			switch {
			case startAttr.Pressure == types.PressureAny && endAttr.Pressure == types.PressureAny:
			case startAttr.Pressure == types.PressureAny:
				p.PressureSide = endAttr.Pressure
				changed++
			case endAttr.Pressure == types.PressureAny || startAttr.Pressure == endAttr.Pressure:
				p.PressureSide = startAttr.Pressure
				changed++
			default:
				conflicts[id+"/pressure_side"] = types.Conflict{
					PipeID:    id,
					Attribute: "pressure_side",
					Left:      string(startAttr.Pressure),
					Right:     string(endAttr.Pressure),
				}
			}
		}
	}
	return changed
}

// junctionFluidPass pushes a single concrete inlet phase of each
// transparent component onto its still-wildcard outlet pipes. Two
// distinct inlet phases mean the upstream is ambiguous; nothing is
// propagated and the condition is logged for the caller to surface.
func (e Engine) junctionFluidPass(ctx context.Context, n *Network) int {
	changed := 0
	for id, c := range n.Components {
		if !schema.Transparent(c.Type) {
			continue
		}
		inlet := map[types.FluidPhase]struct{}{}
		for _, p := range n.Pipes {
			if p.End.ComponentID != id || p.FluidPhase == types.FluidAny {
				continue
			}
			if dir, ok := PortDirectionOf(c.Type, p.End.Port, c.Properties); ok && dir == types.PortIn {
				inlet[p.FluidPhase] = struct{}{}
			}
		}
		if len(inlet) == 0 {
			continue
		}
		if len(inlet) > 1 {
			log.Ctx(ctx).Warn().
				Str("component", id).
				Str("type", string(c.Type)).
				Int("phases", len(inlet)).
				Msg("ambiguous inlet phases, not propagating")
			continue
		}
		var inferred types.FluidPhase
		for f := range inlet {
			inferred = f
		}
		for _, p := range n.Pipes {
			if p.Start.ComponentID != id || p.FluidPhase != types.FluidAny {
				continue
			}
			if dir, ok := PortDirectionOf(c.Type, p.Start.Port, c.Properties); ok && dir == types.PortOut {
				p.FluidPhase = inferred
				changed++
			}
		}
	}
	return changed
}

// tracePass walks outward from both endpoints of each still-wildcard
// pipe, through transparent components only, and collects every
// concrete declared value reachable. Exactly one reachable value is
// adopted; several distinct values mean the surroundings disagree and
// the pipe stays wildcard, so the result never depends on which branch
// of a junction happens to be walked first.
func (e Engine) tracePass(ctx context.Context, n *Network) int {
	changed := 0
	for id, p := range n.Pipes {
		if p.FluidPhase == types.FluidAny {
			found := map[types.FluidPhase]struct{}{}
			visited := map[string]bool{}
			e.traceFluid(n, p.Start.ComponentID, p.Start.Port, visited, found)
			e.traceFluid(n, p.End.ComponentID, p.End.Port, visited, found)
			switch len(found) {
			case 0:
			case 1:
				for fluid := range found {
					p.FluidPhase = fluid
				}
				changed++
			default:
				log.Ctx(ctx).Debug().
					Str("pipe", id).
					Int("phases", len(found)).
					Msg("ambiguous traced phases, leaving wildcard")
			}
		}
		if p.PressureSide == types.PressureAny {
			found := map[types.PressureSide]struct{}{}
			visited := map[string]bool{}
			e.tracePressure(n, p.Start.ComponentID, p.Start.Port, visited, found)
			e.tracePressure(n, p.End.ComponentID, p.End.Port, visited, found)
			switch len(found) {
			case 0:
			case 1:
				for side := range found {
					p.PressureSide = side
				}
				changed++
			default:
				log.Ctx(ctx).Debug().
					Str("pipe", id).
					Int("sides", len(found)).
					Msg("ambiguous traced pressure sides, leaving wildcard")
			}
		}
	}
	return changed
}

// traceFluid records the declared phase at the given port, or walks on
// through the component when it is transparent. The visited set is
// owned by the query and threaded through every recursive call, which
// guarantees termination on cyclic topologies.
func (e Engine) traceFluid(n *Network, componentID, portName string, visited map[string]bool, found map[types.FluidPhase]struct{}) {
	if visited[componentID] {
		return
	}
	visited[componentID] = true
	c, ok := n.Components[componentID]
	if !ok {
		return
	}
	if attr := DeclaredAttribute(c.Type, portName, c.Properties); attr.Fluid != types.FluidAny {
		found[attr.Fluid] = struct{}{}
		return
	}
	if !schema.Transparent(c.Type) {
		return
	}
	for _, p := range n.Pipes {
		if !p.Touches(componentID) {
			continue
		}
		nextID, nextPort := farEndpoint(p, componentID)
		e.traceFluid(n, nextID, nextPort, visited, found)
	}
}

func (e Engine) tracePressure(n *Network, componentID, portName string, visited map[string]bool, found map[types.PressureSide]struct{}) {
	if visited[componentID] {
		return
	}
	visited[componentID] = true
	c, ok := n.Components[componentID]
	if !ok {
		return
	}
	if attr := DeclaredAttribute(c.Type, portName, c.Properties); attr.Pressure != types.PressureAny {
		found[attr.Pressure] = struct{}{}
		return
	}
	if !schema.Transparent(c.Type) {
		return
	}
	for _, p := range n.Pipes {
		if !p.Touches(componentID) {
			continue
		}
		nextID, nextPort := farEndpoint(p, componentID)
		e.tracePressure(n, nextID, nextPort, visited, found)
	}
}

// circuitPass assigns circuit labels. Unlike phase and pressure the
// source of truth is a component property, and direction matters:
// circuit identity is assigned at the circuit's origin, so the upstream
// walk is preferred over the downstream one.
func (e Engine) circuitPass(n *Network) int {
	changed := 0
	for _, p := range n.Pipes {
		if p.CircuitLabel != types.CircuitNone {
			continue
		}
		if label := e.circuitForPipe(n, p); label != types.CircuitNone {
			p.CircuitLabel = label
			changed++
		}
	}
	return changed
}

func (e Engine) circuitForPipe(n *Network, p *types.Pipe) string {
	start, ok := n.Components[p.Start.ComponentID]
	if !ok {
		return types.CircuitNone
	}
	end, ok := n.Components[p.End.ComponentID]
	if !ok {
		return types.CircuitNone
	}
	if label := start.CircuitLabel(); label != types.CircuitNone {
		return label
	}
	if label := end.CircuitLabel(); label != types.CircuitNone {
		return label
	}
	if schema.Transparent(end.Type) {
		if label := e.traceCircuitUpstream(n, end.ID, map[string]bool{}); label != types.CircuitNone {
			return label
		}
	}
	if schema.Transparent(start.Type) {
		if label := e.traceCircuitDownstream(n, start.ID, map[string]bool{}); label != types.CircuitNone {
			return label
		}
		if label := e.traceCircuitUpstream(n, start.ID, map[string]bool{}); label != types.CircuitNone {
			return label
		}
	}
	return types.CircuitNone
}

// traceCircuitUpstream follows pipes feeding the component's inlet
// ports back toward the circuit origin.
func (e Engine) traceCircuitUpstream(n *Network, componentID string, visited map[string]bool) string {
	if visited[componentID] {
		return types.CircuitNone
	}
	visited[componentID] = true
	c, ok := n.Components[componentID]
	if !ok {
		return types.CircuitNone
	}
	if !schema.Transparent(c.Type) {
		return c.CircuitLabel()
	}
	for _, p := range n.Pipes {
		if p.End.ComponentID != componentID {
			continue
		}
		if dir, ok := PortDirectionOf(c.Type, p.End.Port, c.Properties); !ok || dir != types.PortIn {
			continue
		}
		if label := e.traceCircuitUpstream(n, p.Start.ComponentID, visited); label != types.CircuitNone {
			return label
		}
	}
	return types.CircuitNone
}

func (e Engine) traceCircuitDownstream(n *Network, componentID string, visited map[string]bool) string {
	if visited[componentID] {
		return types.CircuitNone
	}
	visited[componentID] = true
	c, ok := n.Components[componentID]
	if !ok {
		return types.CircuitNone
	}
	if !schema.Transparent(c.Type) {
		return c.CircuitLabel()
	}
	for _, p := range n.Pipes {
		if p.Start.ComponentID != componentID {
			continue
		}
		if dir, ok := PortDirectionOf(c.Type, p.Start.Port, c.Properties); !ok || dir != types.PortOut {
			continue
		}
		if label := e.traceCircuitDownstream(n, p.End.ComponentID, visited); label != types.CircuitNone {
			return label
		}
	}
	return types.CircuitNone
}

func farEndpoint(p *types.Pipe, componentID string) (string, string) {
	if p.Start.ComponentID == componentID {
		return p.End.ComponentID, p.End.Port
	}
	return p.Start.ComponentID, p.Start.Port
}
