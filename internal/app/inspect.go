package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"refmap/internal/types"
)

// Inspect loads a session, propagates, and summarizes what the network
// looks like after resolution.
func (s Service) Inspect(ctx context.Context, req InspectRequest) (InspectResult, error) {
	path := strings.TrimSpace(req.SessionPath)
	if path == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("session path is required")
	}
	n, doc, _, err := s.loadSession(ctx, path)
	if err != nil {
		return InspectResult{}, err
	}
	result := s.recompute(ctx, n)

	typeCounts := map[types.ComponentType]int{}
	for _, c := range n.Components {
		typeCounts[c.Type]++
	}
	resolvedFluid := 0
	resolvedSide := 0
	labeled := 0
	for _, p := range n.Pipes {
		if p.FluidPhase != types.FluidAny {
			resolvedFluid++
		}
		if p.PressureSide != types.PressureAny {
			resolvedSide++
		}
		if p.CircuitLabel != types.CircuitNone {
			labeled++
		}
	}
	return InspectResult{
		Name:           doc.Name,
		Refrigerant:    doc.Refrigerant,
		ComponentCount: len(n.Components),
		PipeCount:      len(n.Pipes),
		TypeCounts:     typeCounts,
		MappedRoles:    len(n.SensorRoles),
		ResolvedFluid:  resolvedFluid,
		ResolvedSide:   resolvedSide,
		LabeledCircuit: labeled,
		Conflicts:      result.Conflicts,
	}, nil
}
