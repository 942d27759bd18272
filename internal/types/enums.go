package types

// ComponentType identifies the kind of a placed component. The set is
// closed: the schema registry carries a port catalog for every value.
type ComponentType string

const (
	ComponentCompressor     ComponentType = "Compressor"
	ComponentCondenser      ComponentType = "Condenser"
	ComponentEvaporator     ComponentType = "Evaporator"
	ComponentTXV            ComponentType = "TXV"
	ComponentFilterDrier    ComponentType = "FilterDrier"
	ComponentDistributor    ComponentType = "Distributor"
	ComponentJunction       ComponentType = "Junction"
	ComponentTeeJunction    ComponentType = "TeeJunction"
	ComponentYJunction      ComponentType = "YJunction"
	ComponentSplitter       ComponentType = "Splitter"
	ComponentCrossJunction  ComponentType = "CrossJunction"
	ComponentReducer        ComponentType = "Reducer"
	ComponentSensorBulb     ComponentType = "SensorBulb"
	ComponentFan            ComponentType = "Fan"
	ComponentAirSensorArray ComponentType = "AirSensorArray"
	ComponentShelvingGrid   ComponentType = "ShelvingGrid"
)

type PortDirection string

const (
	PortIn     PortDirection = "in"
	PortOut    PortDirection = "out"
	PortSensor PortDirection = "sensor"
)

// FluidPhase is the refrigerant phase carried by a port or pipe.
// FluidAny is the wildcard: nothing declared or traceable, not an error.
type FluidPhase string

const (
	FluidGas      FluidPhase = "gas"
	FluidLiquid   FluidPhase = "liquid"
	FluidTwoPhase FluidPhase = "two-phase"
	FluidAny      FluidPhase = "any"
)

type PressureSide string

const (
	PressureHigh PressureSide = "high"
	PressureLow  PressureSide = "low"
	PressureAny  PressureSide = "any"
)

// CircuitNone is the wildcard circuit label carried by pipes and
// components that no concrete circuit has been traced for.
const CircuitNone = "None"

// Aggregation selects how a sensor column is collapsed to one reading.
type Aggregation string

const (
	AggregationAverage Aggregation = "Average"
	AggregationMaximum Aggregation = "Maximum"
	AggregationMinimum Aggregation = "Minimum"
	AggregationLast    Aggregation = "Last"
)

type PropertyKind string

const (
	PropertyInteger PropertyKind = "integer"
	PropertyFloat   PropertyKind = "float"
	PropertyString  PropertyKind = "string"
	PropertyEnum    PropertyKind = "enum"
)
