package types

// RoleDef is one candidate binding for a required calculation role: a
// component type and port, optionally narrowed by a property filter
// (e.g. circuit_label=Left). A role may list several candidates tried in
// order.
type RoleDef struct {
	Type       ComponentType     `yaml:"type"`
	Port       string            `yaml:"port"`
	Properties map[string]string `yaml:"properties,omitempty"`
}

// Matches reports whether the component satisfies the definition's type
// and property filter.
func (d RoleDef) Matches(c Component) bool {
	if c.Type != d.Type {
		return false
	}
	for key, want := range d.Properties {
		got, ok := c.Properties[key].(string)
		if !ok || got != want {
			return false
		}
	}
	return true
}
