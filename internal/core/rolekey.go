package core

import (
	"fmt"
	"sort"
	"strings"

	"refmap/internal/schema"
	"refmap/internal/shared"
	"refmap/internal/types"
)

// PrimaryRoleKey derives the canonical role key for a component port.
func PrimaryRoleKey(t types.ComponentType, componentID, portName string) string {
	return fmt.Sprintf("%s.%s.%s", t, componentID, portName)
}

// FallbackRoleKey derives the legacy key used for roles not tied to a
// concrete type, such as free-floating sensor points from old sessions.
func FallbackRoleKey(componentID, portName string) string {
	return fmt.Sprintf("%s.%s", componentID, portName)
}

// ComponentPorts lists every port the component currently exposes:
// static ports (including conditional ones) plus dynamic ports
// materialized from the live property values. Counts are recomputed on
// every call, never cached across edits.
func ComponentPorts(c types.Component) []string {
	var ports []string
	for _, spec := range schema.StaticPorts(c.Type, c.Properties) {
		ports = append(ports, spec.Name)
	}
	for _, group := range schema.DynamicGroups(c.Type) {
		count := group.Count(c.Properties)
		for i := 1; i <= count; i++ {
			ports = append(ports, fmt.Sprintf("%s%d", group.Prefix, i))
		}
	}
	return ports
}

// EnumeratePorts walks the whole network and returns one entry per
// component port with its role keys, label, and resolved column. Output
// is ordered by component id then port name for stable exports.
func EnumeratePorts(n *Network) []types.PortEntry {
	componentIDs := make([]string, 0, len(n.Components))
	for id := range n.Components {
		componentIDs = append(componentIDs, id)
	}
	sort.Strings(componentIDs)

	var entries []types.PortEntry
	for _, id := range componentIDs {
		c := n.Components[id]
		for _, port := range ComponentPorts(*c) {
			column, _ := ResolveMappedColumn(n, c.Type, id, port)
			entries = append(entries, types.PortEntry{
				ComponentID:  id,
				Type:         c.Type,
				CircuitLabel: c.CircuitLabel(),
				Port:         port,
				Label:        PortLabel(c.Type, c.Properties, port),
				RoleKey:      PrimaryRoleKey(c.Type, id, port),
				FallbackKey:  FallbackRoleKey(id, port),
				Column:       column,
			})
		}
	}
	return entries
}

// ResolveMappedColumn finds the column mapped to a port, trying the
// primary role key first and the legacy fallback key second. A port
// that no longer exists on the component resolves to nothing rather
// than an error.
func ResolveMappedColumn(n *Network, t types.ComponentType, componentID, portName string) (string, bool) {
	if column, ok := n.MappedColumn(PrimaryRoleKey(t, componentID, portName)); ok {
		return column, true
	}
	return n.MappedColumn(FallbackRoleKey(componentID, portName))
}

// PortLabel renders the human-readable label shown for a port in
// mapping dialogs and audit exports.
func PortLabel(t types.ComponentType, properties map[string]any, portName string) string {
	side := ""
	if label := shared.StringProperty(properties, "circuit_label"); label != "" && label != types.CircuitNone {
		side = label + " "
	}

	switch t {
	case types.ComponentEvaporator:
		if idx, ok := suffixIndex(portName, "inlet_circuit_"); ok {
			return strings.TrimSpace(fmt.Sprintf("%sEvap Inlet %d", side, idx))
		}
		if idx, ok := suffixIndex(portName, "outlet_circuit_"); ok {
			return strings.TrimSpace(fmt.Sprintf("%sEvap Outlet %d", side, idx))
		}
	case types.ComponentDistributor:
		if portName == "inlet" {
			return strings.TrimSpace(side + "Distributor Inlet")
		}
		if idx, ok := suffixIndex(portName, "outlet_"); ok {
			return strings.TrimSpace(fmt.Sprintf("%sDistributor Outlet %d", side, idx))
		}
	case types.ComponentTXV:
		switch portName {
		case "inlet":
			return strings.TrimSpace("TXV " + side + "Inlet")
		case "outlet":
			return strings.TrimSpace("TXV " + side + "Outlet")
		case "bulb":
			return strings.TrimSpace("TXV " + side + "Bulb")
		}
	case types.ComponentCompressor:
		switch portName {
		case "inlet":
			return "Compressor Inlet"
		case "outlet":
			return "Compressor Outlet"
		case "SP":
			return "Suction Pressure"
		case "DP":
			return "Discharge Pressure"
		case "RPM":
			return "Compressor RPM"
		}
	case types.ComponentCondenser:
		switch portName {
		case "inlet":
			return "Condenser Inlet"
		case "outlet":
			return "Condenser Outlet"
		case "air_in_temp":
			return "Condenser Air Inlet Temp"
		case "air_out_temp":
			return "Condenser Air Outlet Temp"
		case "water_in_temp":
			return "Condenser Water Inlet Temp"
		case "water_out_temp":
			return "Condenser Water Outlet Temp"
		}
	case types.ComponentJunction:
		if idx, ok := suffixIndex(portName, "inlet_"); ok {
			return strings.TrimSpace(fmt.Sprintf("%sJunction Inlet %d", side, idx))
		}
		if idx, ok := suffixIndex(portName, "outlet_"); ok {
			return strings.TrimSpace(fmt.Sprintf("%sJunction Outlet %d", side, idx))
		}
		if portName == "sensor" {
			return strings.TrimSpace(side + "Junction Sensor")
		}
	case types.ComponentSensorBulb:
		if portName == "measurement" {
			return strings.TrimSpace("Sensor Bulb " + side + "Measurement")
		}
	}
	return strings.TrimSpace(side + portName)
}

func suffixIndex(portName, prefix string) (int, bool) {
	if !strings.HasPrefix(portName, prefix) {
		return 0, false
	}
	return shared.PortIndex(portName)
}
