// Package policies holds the resolution policies applied when a
// mutation would violate a model invariant.
package policies

import "sort"

// StaleRoles returns every role key that must be removed before
// installing roleKey -> column so that the sensor-role mapping stays
// injective: all other keys currently holding the same column. A column
// found under several stale keys (possible after loading a file with
// duplicates) is corrected down to one in a single operation.
//
// Duplicates already present in a loaded file are tolerated until the
// next mapping write; this function is that write's cleanup step.
func StaleRoles(roles map[string]string, roleKey, column string) []string {
	var stale []string
	for existingKey, existingColumn := range roles {
		if existingColumn == column && existingKey != roleKey {
			stale = append(stale, existingKey)
		}
	}
	sort.Strings(stale)
	return stale
}
