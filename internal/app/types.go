package app

import "refmap/internal/types"

type ValidateRequest struct {
	SessionPath string
}

type ValidateResult struct {
	Name           string
	ComponentCount int
	PipeCount      int
	Findings       []string
	Duplicates     []types.DuplicateGroup
}

type InspectRequest struct {
	SessionPath string
}

type InspectResult struct {
	Name           string
	Refrigerant    string
	ComponentCount int
	PipeCount      int
	TypeCounts     map[types.ComponentType]int
	MappedRoles    int
	ResolvedFluid  int
	ResolvedSide   int
	LabeledCircuit int
	Conflicts      []types.Conflict
}

type ResolveRequest struct {
	SessionPath string
	OutputPath  string
}

type ResolveResult struct {
	Passes     int
	Updates    int
	Conflicts  []types.Conflict
	OutputPath string
}

type AuditRequest struct {
	SessionPath string
	CSVPath     string
	OutputPath  string
	Format      string
}

type AuditResult struct {
	Rows       []types.AuditRow
	Mapped     int
	OutputPath string
}

type RolesRequest struct {
	SessionPath string
	CSVPath     string
	RolesPath   string
}

type RolesResult struct {
	Rows    []types.RequiredRoleRow
	Missing []string
}

type MapRequest struct {
	SessionPath string
	RoleKey     string
	Column      string
	Remove      bool
}

type MapResult struct {
	Displaced    []string
	MappingCount int
}

type MergeRequest struct {
	PathA      string
	PathB      string
	OutputPath string
}

type MergeResult struct {
	ComponentCount int
	PipeCount      int
	MappingCount   int
	OutputPath     string
}

// ReadingsResult carries the derived compressor and evaporator readings
// surfaced alongside an audit.
type ReadingsResult struct {
	Suction      *float64
	Discharge    *float64
	OutletGroups map[string][]float64
}
