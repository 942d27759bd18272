package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"refmap/internal/core"
	"refmap/internal/types"
)

// loadSession rebuilds a live network from a session document. Bad
// entries are skipped with a finding rather than failing the whole
// load: a session that references a vanished port is still mostly
// usable. Effective pipe attributes are recomputed from scratch, the
// stored values are only a cache.
func (s Service) loadSession(ctx context.Context, path string) (*core.Network, types.SessionDocument, []string, error) {
	doc, err := s.Sessions.Load(path)
	if err != nil {
		return nil, types.SessionDocument{}, nil, err
	}
	n, findings := s.rebuild(ctx, doc)
	return n, doc, findings, nil
}

func (s Service) rebuild(ctx context.Context, doc types.SessionDocument) (*core.Network, []string) {
	n := core.NewNetwork()
	var findings []string

	componentIDs := make([]string, 0, len(doc.Components))
	for id := range doc.Components {
		componentIDs = append(componentIDs, id)
	}
	sort.Strings(componentIDs)
	for _, id := range componentIDs {
		sc := doc.Components[id]
		c, err := n.AddComponentWithID(ctx, id, sc.Type, sc.Properties)
		if err != nil {
			finding := fmt.Sprintf("component %s skipped: %v", id, err)
			findings = append(findings, finding)
			log.Ctx(ctx).Warn().Str("component", id).Err(err).Msg("session component skipped")
			continue
		}
		c.Position = sc.Position
		c.Rotation = sc.Rotation
	}

	pipeIDs := make([]string, 0, len(doc.Pipes))
	for id := range doc.Pipes {
		pipeIDs = append(pipeIDs, id)
	}
	sort.Strings(pipeIDs)
	for _, id := range pipeIDs {
		sp := doc.Pipes[id]
		start := types.Endpoint{ComponentID: sp.StartComponentID, Port: sp.StartPort}
		end := types.Endpoint{ComponentID: sp.EndComponentID, Port: sp.EndPort}
		if _, err := n.ConnectWithID(ctx, id, start, end); err != nil {
			finding := fmt.Sprintf("pipe %s skipped: %v", id, err)
			findings = append(findings, finding)
			log.Ctx(ctx).Warn().Str("pipe", id).Err(err).Msg("session pipe skipped")
		}
	}

	// Mappings load verbatim. Duplicate columns are tolerated here and
	// reported by the diagnostic pass; the next write repairs them.
	for role, column := range doc.SensorRoles {
		n.SensorRoles[role] = column
	}
	return n, findings
}

// recompute runs a full propagation and records it.
func (s Service) recompute(ctx context.Context, n *core.Network) core.Result {
	result := core.Engine{}.Recompute(ctx, n)
	if s.Metrics != nil {
		s.Metrics.PropagationRuns.Inc()
		s.Metrics.PropagationPasses.Add(float64(result.Passes))
		s.Metrics.PropagationConflicts.Add(float64(len(result.Conflicts)))
	}
	return result
}

// buildDocument snapshots a network back into the on-disk shape,
// carrying forward the session metadata and refreshing the timestamp.
func (s Service) buildDocument(n *core.Network, previous types.SessionDocument) types.SessionDocument {
	doc := types.SessionDocument{
		Name:        previous.Name,
		Timestamp:   s.Clock().UTC().Format(time.RFC3339),
		CSVPath:     previous.CSVPath,
		Components:  map[string]types.SessionComponent{},
		Pipes:       map[string]types.SessionPipe{},
		SensorRoles: map[string]string{},
		Aggregation: previous.Aggregation,
		Refrigerant: previous.Refrigerant,
	}
	for id, c := range n.Components {
		doc.Components[id] = types.SessionComponent{
			Type:       c.Type,
			Properties: c.Properties,
			Position:   c.Position,
			Rotation:   c.Rotation,
		}
	}
	for id, p := range n.Pipes {
		doc.Pipes[id] = types.SessionPipe{
			StartComponentID: p.Start.ComponentID,
			StartPort:        p.Start.Port,
			EndComponentID:   p.End.ComponentID,
			EndPort:          p.End.Port,
			FluidPhase:       p.FluidPhase,
			PressureSide:     p.PressureSide,
			CircuitLabel:     p.CircuitLabel,
		}
	}
	for role, column := range n.SensorRoles {
		doc.SensorRoles[role] = column
	}
	return doc
}
