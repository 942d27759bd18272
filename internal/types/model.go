package types

// Component is a placed component instance: a type plus its editable
// property bag. Position and rotation are editor concerns carried only
// for session round-trip.
type Component struct {
	ID         string         `json:"-"`
	Type       ComponentType  `json:"type"`
	Properties map[string]any `json:"properties"`
	Position   []float64      `json:"position,omitempty"`
	Rotation   float64        `json:"rotation,omitempty"`
}

// CircuitLabel returns the component's circuit_label property, or
// CircuitNone when unset.
func (c Component) CircuitLabel() string {
	if v, ok := c.Properties["circuit_label"].(string); ok && v != "" {
		return v
	}
	return CircuitNone
}

// Endpoint names one side of a pipe.
type Endpoint struct {
	ComponentID string `json:"component_id"`
	Port        string `json:"port"`
}

// Pipe is an edge between two component ports. Topology is immutable
// after construction; the three effective fields are the only state the
// propagation engine ever writes.
type Pipe struct {
	ID    string   `json:"-"`
	Start Endpoint `json:"start"`
	End   Endpoint `json:"end"`

	// Effective attributes resolved by propagation. Each is either a
	// concrete value or the wildcard.
	FluidPhase   FluidPhase   `json:"fluid_state"`
	PressureSide PressureSide `json:"pressure_side"`
	CircuitLabel string       `json:"circuit_label"`
}

// Touches reports whether either pipe endpoint references the component.
func (p Pipe) Touches(componentID string) bool {
	return p.Start.ComponentID == componentID || p.End.ComponentID == componentID
}
