package types

// SessionComponent is the persisted form of a component.
type SessionComponent struct {
	Type       ComponentType  `json:"type"`
	Properties map[string]any `json:"properties,omitempty"`
	Position   []float64      `json:"position,omitempty"`
	Rotation   float64        `json:"rotation,omitempty"`
}

// SessionPipe is the persisted form of a pipe. The effective fields are
// a cache: loaders must recompute them from topology rather than trust
// the stored values, since the file may have been edited out-of-band.
type SessionPipe struct {
	StartComponentID string       `json:"start_component_id"`
	StartPort        string       `json:"start_port"`
	EndComponentID   string       `json:"end_component_id"`
	EndPort          string       `json:"end_port"`
	FluidPhase       FluidPhase   `json:"fluid_state,omitempty"`
	PressureSide     PressureSide `json:"pressure_side,omitempty"`
	CircuitLabel     string       `json:"circuit_label,omitempty"`
}

// SessionDocument is the on-disk session file shape.
type SessionDocument struct {
	Name        string                      `json:"name,omitempty"`
	Timestamp   string                      `json:"timestamp,omitempty"`
	CSVPath     string                      `json:"csvPath,omitempty"`
	Components  map[string]SessionComponent `json:"components"`
	Pipes       map[string]SessionPipe      `json:"pipes"`
	SensorRoles map[string]string           `json:"sensor_roles,omitempty"`
	Aggregation Aggregation                 `json:"value_aggregation,omitempty"`
	Refrigerant string                      `json:"refrigerant,omitempty"`
}
