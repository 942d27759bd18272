package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"refmap/internal/types"
)

func TestMapSensorToRoleKeepsInjectivity(t *testing.T) {
	n := testNetwork()
	ctx := context.Background()

	assert.Empty(t, n.MapSensorToRole(ctx, "Compressor.c1.SP", "suction_psi"))
	assert.Empty(t, n.MapSensorToRole(ctx, "Compressor.c1.DP", "discharge_psi"))

	// Moving a column displaces its previous holder.
	displaced := n.MapSensorToRole(ctx, "TXV.t1.bulb", "suction_psi")
	assert.Equal(t, []string{"Compressor.c1.SP"}, displaced)

	column, ok := n.MappedColumn("TXV.t1.bulb")
	require.True(t, ok)
	assert.Equal(t, "suction_psi", column)
	_, ok = n.MappedColumn("Compressor.c1.SP")
	assert.False(t, ok)

	// Re-mapping the same role to the same column displaces nothing.
	assert.Empty(t, n.MapSensorToRole(ctx, "TXV.t1.bulb", "suction_psi"))
	assert.Len(t, n.SensorRoles, 2)
}

func TestMapSensorToRoleCollapsesLoadedDuplicates(t *testing.T) {
	n := testNetwork()
	// Simulate a loaded file with three roles on one column.
	n.SensorRoles = map[string]string{
		"a.p1": "temp",
		"b.p2": "temp",
		"c.p3": "temp",
	}

	displaced := n.MapSensorToRole(context.Background(), "d.p4", "temp")
	assert.Equal(t, []string{"a.p1", "b.p2", "c.p3"}, displaced)
	assert.Equal(t, map[string]string{"d.p4": "temp"}, n.SensorRoles)
}

func TestUnmapRole(t *testing.T) {
	n := testNetwork()
	n.MapSensorToRole(context.Background(), "Compressor.c1.SP", "suction_psi")

	assert.True(t, n.UnmapRole("Compressor.c1.SP"))
	assert.False(t, n.UnmapRole("Compressor.c1.SP"))
	assert.Empty(t, n.SensorRoles)
}

func TestRolesForColumn(t *testing.T) {
	n := testNetwork()
	n.SensorRoles = map[string]string{
		"b.p2": "temp",
		"a.p1": "temp",
		"c.p3": "other",
	}
	assert.Equal(t, []string{"a.p1", "b.p2"}, n.RolesForColumn("temp"))
	assert.Empty(t, n.RolesForColumn("missing"))
}

func TestClearSensorRoles(t *testing.T) {
	n := testNetwork()
	n.SensorRoles = map[string]string{"a.p1": "temp", "b.p2": "psi"}
	assert.Equal(t, 2, n.ClearSensorRoles())
	assert.Equal(t, 0, n.ClearSensorRoles())
}

func TestValidateSensorRolesReportsDuplicates(t *testing.T) {
	n := testNetwork()
	n.SensorRoles = map[string]string{
		"b.p2": "temp",
		"a.p1": "temp",
		"c.p3": "psi",
		"d.p4": "amps",
		"e.p5": "amps",
	}

	groups := n.ValidateSensorRoles(context.Background())
	require.Len(t, groups, 2)
	assert.Equal(t, types.DuplicateGroup{Column: "amps", Roles: []string{"d.p4", "e.p5"}}, groups[0])
	assert.Equal(t, types.DuplicateGroup{Column: "temp", Roles: []string{"a.p1", "b.p2"}}, groups[1])

	// Diagnostic only: the duplicates survive validation untouched.
	assert.Len(t, n.SensorRoles, 5)
}
