package types

// PortEntry is one enumerated port of one component, with its derived
// role keys and resolved sensor mapping.
type PortEntry struct {
	ComponentID  string
	Type         ComponentType
	CircuitLabel string
	Port         string
	Label        string
	RoleKey      string
	FallbackKey  string
	Column       string
}

// AuditRow is one line of the port mapping audit export: a PortEntry
// joined with the mapped column's position and current reading.
type AuditRow struct {
	PortEntry
	ColumnIndex int
	Value       float64
	HasValue    bool
}

// Conflict records two concrete, unequal attribute values meeting at one
// point of the network. Diagnostic only: the affected pipe stays wildcard.
type Conflict struct {
	PipeID    string
	Attribute string
	Left      string
	Right     string
}

// DuplicateGroup reports one column mapped under more than one role key,
// as found by the diagnostic validation pass after a bulk load.
type DuplicateGroup struct {
	Column string
	Roles  []string
}

// RequiredRoleRow is one line of the required-roles resolution export.
type RequiredRoleRow struct {
	Role   string
	Type   ComponentType
	Port   string
	Column string
}
