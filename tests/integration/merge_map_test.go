package integration

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"refmap/internal/app"
	"refmap/internal/types"
	"refmap/tests/testutil"
)

// TestMergeAndRemapFlow covers the session lifecycle an operator walks
// through when combining a diagram file with a mapping-only file and
// then re-pointing a role at a different column.
func TestMergeAndRemapFlow(t *testing.T) {
	dir := t.TempDir()
	diagramPath := filepath.Join(dir, "diagram.json")
	testutil.CopyFile(t, testutil.Fixture(t, "session-sample.json"), diagramPath)

	service := app.NewService()

	mappingsOnly := types.SessionDocument{
		Name: "bench-mappings",
		SensorRoles: map[string]string{
			"Compressor.comp-1.SP": "bench_suction_psi",
			"TXV.txv-left.bulb":    "bulb_temp_l",
		},
	}
	mappingsPath := filepath.Join(dir, "mappings.json")
	require.NoError(t, service.Sessions.Save(mappingsPath, mappingsOnly))

	mergedPath := filepath.Join(dir, "merged.json")
	merged, err := service.Merge(t.Context(), app.MergeRequest{
		PathA:      mappingsPath,
		PathB:      diagramPath,
		OutputPath: mergedPath,
	})
	require.NoError(t, err)
	assert.Equal(t, 9, merged.ComponentCount)
	assert.Equal(t, 10, merged.PipeCount)

	doc, err := service.Sessions.Load(mergedPath)
	require.NoError(t, err)
	// First input wins the SP collision; the diagram's other mappings
	// survive the union.
	assert.Equal(t, "bench_suction_psi", doc.SensorRoles["Compressor.comp-1.SP"])
	assert.Equal(t, "bulb_temp_l", doc.SensorRoles["TXV.txv-left.bulb"])
	assert.Equal(t, "evap_out_l", doc.SensorRoles["Evaporator.evap-left.outlet_circuit_1"])

	// Remapping an in-use column displaces its previous holder.
	result, err := service.MapRole(t.Context(), app.MapRequest{
		SessionPath: mergedPath,
		RoleKey:     "Compressor.comp-1.DP",
		Column:      "bench_suction_psi",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Compressor.comp-1.SP"}, result.Displaced)

	doc, err = service.Sessions.Load(mergedPath)
	require.NoError(t, err)
	assert.Equal(t, "bench_suction_psi", doc.SensorRoles["Compressor.comp-1.DP"])
	assert.NotContains(t, doc.SensorRoles, "Compressor.comp-1.SP")

	validated, err := service.Validate(t.Context(), app.ValidateRequest{SessionPath: mergedPath})
	require.NoError(t, err)
	assert.Empty(t, validated.Findings)
	assert.Empty(t, validated.Duplicates)
}
