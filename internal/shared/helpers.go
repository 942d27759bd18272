// Package shared provides common utility functions used across multiple
// packages in the refmap codebase.
package shared

import (
	"strconv"
	"strings"
)

// IntProperty reads an integer-valued entry from a property bag,
// accepting the numeric encodings a JSON round-trip can produce.
func IntProperty(properties map[string]any, key string) int {
	switch v := properties[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// FloatProperty reads a float-valued entry from a property bag.
func FloatProperty(properties map[string]any, key string) float64 {
	switch v := properties[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// StringProperty reads a string-valued entry from a property bag.
func StringProperty(properties map[string]any, key string) string {
	if v, ok := properties[key].(string); ok {
		return v
	}
	return ""
}

// PortIndex extracts the trailing numeric index of a generated port name
// such as "outlet_circuit_3". The second result is false when the name
// carries no numeric suffix.
func PortIndex(portName string) (int, bool) {
	idx := strings.LastIndex(portName, "_")
	if idx < 0 || idx == len(portName)-1 {
		return 0, false
	}
	n, err := strconv.Atoi(portName[idx+1:])
	if err != nil {
		return 0, false
	}
	return n, true
}
