package ports

import "refmap/internal/types"

// ValueProviderPort wraps loaded tabular sensor data. Every lookup is
// nullable: the calculation layer decides its own defaulting policy.
type ValueProviderPort interface {
	ColumnExists(name string) bool
	ColumnIndex(name string) (int, bool)
	Value(name string, aggregation types.Aggregation) (float64, bool)
}
