// Package core holds the network model and the resolution machinery
// that runs over it: port attribute resolution, whole-graph attribute
// propagation, role-key derivation, and the sensor-role mapping table.
package core

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"refmap/internal/schema"
	"refmap/internal/types"
)

// Network is the mutable component graph plus the sensor-role mapping
// table. It is owned by a single caller; no method is safe for
// concurrent mutation. Components and pipes are referenced by opaque
// string ids, never by pointer, so edits cannot leave dangling handles.
type Network struct {
	Components  map[string]*types.Component
	Pipes       map[string]*types.Pipe
	SensorRoles map[string]string

	// IDs generates identifiers for new components and pipes.
	// Injectable so tests can produce deterministic ids.
	IDs func() string
}

func NewNetwork() *Network {
	return &Network{
		Components:  map[string]*types.Component{},
		Pipes:       map[string]*types.Pipe{},
		SensorRoles: map[string]string{},
		IDs:         uuid.NewString,
	}
}

// Component returns the instance for an id.
func (n *Network) Component(id string) (*types.Component, bool) {
	c, ok := n.Components[id]
	return c, ok
}

// AddComponent places a new component with schema defaults.
func (n *Network) AddComponent(ctx context.Context, t types.ComponentType) (*types.Component, error) {
	if !schema.Known(t) {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown component type: %s", t))
	}
	c := &types.Component{
		ID:         n.IDs(),
		Type:       t,
		Properties: schema.DefaultProperties(t),
	}
	n.Components[c.ID] = c
	log.Ctx(ctx).Debug().Str("component", c.ID).Str("type", string(t)).Msg("component added")
	return c, nil
}

// AddComponentWithID inserts a component under a caller-chosen id, used
// when rebuilding a network from a session file.
func (n *Network) AddComponentWithID(ctx context.Context, id string, t types.ComponentType, properties map[string]any) (*types.Component, error) {
	if id == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("component id must not be empty")
	}
	if _, exists := n.Components[id]; exists {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeAlreadyExists).
			WithMsg(fmt.Sprintf("component id already in use: %s", id))
	}
	if !schema.Known(t) {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown component type: %s", t))
	}
	merged := schema.DefaultProperties(t)
	for k, v := range properties {
		merged[k] = v
	}
	c := &types.Component{ID: id, Type: t, Properties: merged}
	n.Components[id] = c
	return c, nil
}

// RemoveComponent deletes a component and cascades to every pipe that
// touches it. Returns the ids of the removed pipes.
func (n *Network) RemoveComponent(ctx context.Context, id string) []string {
	if _, ok := n.Components[id]; !ok {
		return nil
	}
	delete(n.Components, id)
	removed := n.prunePipes(func(p *types.Pipe) bool { return p.Touches(id) })
	log.Ctx(ctx).Debug().
		Str("component", id).
		Int("cascaded_pipes", len(removed)).
		Msg("component removed")
	return removed
}

// SetProperty updates one property of a component. When the change
// shrinks a dynamic port group, pipes attached to ports that no longer
// exist are cascaded away so no pipe ever references a vanished port.
func (n *Network) SetProperty(ctx context.Context, id string, key string, value any) ([]string, error) {
	c, ok := n.Components[id]
	if !ok {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("component not found: %s", id))
	}
	if _, ok := schema.Properties(c.Type)[key]; !ok {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown property %q for %s", key, c.Type))
	}
	c.Properties[key] = value
	removed := n.prunePipes(func(p *types.Pipe) bool {
		return (p.Start.ComponentID == id && !HasPort(c.Type, p.Start.Port, c.Properties)) ||
			(p.End.ComponentID == id && !HasPort(c.Type, p.End.Port, c.Properties))
	})
	if len(removed) > 0 {
		log.Ctx(ctx).Warn().
			Str("component", id).
			Str("property", key).
			Int("cascaded_pipes", len(removed)).
			Msg("property change removed ports with attached pipes")
	}
	return removed, nil
}

// Connect creates a pipe between two ports. Both endpoints must exist
// and belong to different components; violations are rejected here so
// the model never holds a structurally invalid pipe.
func (n *Network) Connect(ctx context.Context, start, end types.Endpoint) (*types.Pipe, error) {
	if start.ComponentID == end.ComponentID {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("cannot connect a component to itself")
	}
	for _, ep := range []types.Endpoint{start, end} {
		c, ok := n.Components[ep.ComponentID]
		if !ok {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(fmt.Sprintf("component not found: %s", ep.ComponentID))
		}
		if !HasPort(c.Type, ep.Port, c.Properties) {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("port %q does not exist on %s %s", ep.Port, c.Type, ep.ComponentID))
		}
	}
	p := &types.Pipe{
		ID:           n.IDs(),
		Start:        start,
		End:          end,
		FluidPhase:   types.FluidAny,
		PressureSide: types.PressureAny,
		CircuitLabel: types.CircuitNone,
	}
	n.Pipes[p.ID] = p
	log.Ctx(ctx).Debug().
		Str("pipe", p.ID).
		Str("from", start.ComponentID+"."+start.Port).
		Str("to", end.ComponentID+"."+end.Port).
		Msg("pipe connected")
	return p, nil
}

// ConnectWithID creates a pipe under a caller-chosen id, used when
// rebuilding a network from a session file. Endpoint validation is the
// same as Connect.
func (n *Network) ConnectWithID(ctx context.Context, id string, start, end types.Endpoint) (*types.Pipe, error) {
	if id == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("pipe id must not be empty")
	}
	if _, exists := n.Pipes[id]; exists {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeAlreadyExists).
			WithMsg(fmt.Sprintf("pipe id already in use: %s", id))
	}
	p, err := n.Connect(ctx, start, end)
	if err != nil {
		return nil, err
	}
	delete(n.Pipes, p.ID)
	p.ID = id
	n.Pipes[id] = p
	return p, nil
}

// RemovePipe deletes a pipe; no-op when absent.
func (n *Network) RemovePipe(id string) bool {
	if _, ok := n.Pipes[id]; !ok {
		return false
	}
	delete(n.Pipes, id)
	return true
}

// PipesAt returns the pipes touching a specific component port.
func (n *Network) PipesAt(componentID, port string) []*types.Pipe {
	var out []*types.Pipe
	for _, p := range n.Pipes {
		if (p.Start.ComponentID == componentID && p.Start.Port == port) ||
			(p.End.ComponentID == componentID && p.End.Port == port) {
			out = append(out, p)
		}
	}
	return out
}

func (n *Network) prunePipes(doomed func(*types.Pipe) bool) []string {
	var removed []string
	for id, p := range n.Pipes {
		if doomed(p) {
			removed = append(removed, id)
		}
	}
	for _, id := range removed {
		delete(n.Pipes, id)
	}
	return removed
}
