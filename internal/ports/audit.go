package ports

import "refmap/internal/types"

// AuditWriterPort writes the flat port-mapping audit table.
type AuditWriterPort interface {
	WriteAudit(path string, rows []types.AuditRow) error
}

// RoleCatalogPort supplies the required calculation roles, either the
// built-in table or a user override file.
type RoleCatalogPort interface {
	RequiredRoles() (map[string][]types.RoleDef, error)
}
