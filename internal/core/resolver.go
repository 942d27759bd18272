package core

import (
	"strconv"
	"strings"

	"refmap/internal/schema"
	"refmap/internal/types"
)

// Attribute is the pair of physical attributes a port can declare.
type Attribute struct {
	Fluid    types.FluidPhase
	Pressure types.PressureSide
}

var wildcardAttribute = Attribute{Fluid: types.FluidAny, Pressure: types.PressureAny}

// DeclaredAttribute resolves the schema-declared attributes of a port.
// Static ports match by exact name; dynamic ports match by group prefix
// with an index inside the count currently computed from the property
// bag. Unknown port names resolve to the wildcard, never to an error:
// a stale name is a data-quality condition the caller absorbs.
func DeclaredAttribute(t types.ComponentType, portName string, properties map[string]any) Attribute {
	if spec, ok := lookupPortSpec(t, portName, properties); ok {
		return Attribute{Fluid: spec.Fluid, Pressure: spec.Pressure}
	}
	return wildcardAttribute
}

// PortDirectionOf reports the declared direction of a port.
func PortDirectionOf(t types.ComponentType, portName string, properties map[string]any) (types.PortDirection, bool) {
	spec, ok := lookupPortSpec(t, portName, properties)
	if !ok {
		return "", false
	}
	return spec.Direction, true
}

// HasPort reports whether the port currently exists on the component,
// counting dynamic ports against the live property values.
func HasPort(t types.ComponentType, portName string, properties map[string]any) bool {
	_, ok := lookupPortSpec(t, portName, properties)
	return ok
}

func lookupPortSpec(t types.ComponentType, portName string, properties map[string]any) (schema.PortSpec, bool) {
	for _, spec := range schema.StaticPorts(t, properties) {
		if spec.Name == portName {
			return spec, true
		}
	}
	for _, group := range schema.DynamicGroups(t) {
		if !strings.HasPrefix(portName, group.Prefix) {
			continue
		}
		index, err := strconv.Atoi(portName[len(group.Prefix):])
		if err != nil {
			continue
		}
		if index < 1 || index > group.Count(properties) {
			continue
		}
		spec := group.Template
		spec.Name = portName
		return spec, true
	}
	return schema.PortSpec{}, false
}
