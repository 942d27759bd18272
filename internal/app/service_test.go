package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"refmap/internal/types"
)

func newTestService() Service {
	s := NewService()
	s.Clock = func() time.Time {
		return time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	}
	return s
}

// singleCircuitDocument is a complete refrigeration loop: compressor,
// condenser, filter drier, TXV and a one-circuit evaporator labeled
// Left, closed back to the compressor suction.
func singleCircuitDocument() types.SessionDocument {
	left := map[string]any{"circuit_label": "Left"}
	return types.SessionDocument{
		Name: "single-circuit",
		Components: map[string]types.SessionComponent{
			"comp-1": {Type: types.ComponentCompressor},
			"cond-1": {Type: types.ComponentCondenser},
			"fd-1":   {Type: types.ComponentFilterDrier},
			"txv-1":  {Type: types.ComponentTXV, Properties: left},
			"evap-1": {Type: types.ComponentEvaporator, Properties: left},
		},
		Pipes: map[string]types.SessionPipe{
			"p-discharge": {StartComponentID: "comp-1", StartPort: "outlet", EndComponentID: "cond-1", EndPort: "inlet"},
			"p-liquid-1":  {StartComponentID: "cond-1", StartPort: "outlet", EndComponentID: "fd-1", EndPort: "inlet"},
			"p-liquid-2":  {StartComponentID: "fd-1", StartPort: "outlet", EndComponentID: "txv-1", EndPort: "inlet"},
			"p-feed":      {StartComponentID: "txv-1", StartPort: "outlet", EndComponentID: "evap-1", EndPort: "inlet_circuit_1"},
			"p-suction":   {StartComponentID: "evap-1", StartPort: "outlet_circuit_1", EndComponentID: "comp-1", EndPort: "inlet"},
		},
		SensorRoles: map[string]string{
			"Compressor.comp-1.SP":                "suction_psi",
			"Compressor.comp-1.inlet":             "suction_temp",
			"Compressor.comp-1.outlet":            "discharge_temp",
			"TXV.txv-1.inlet":                     "liquid_temp",
			"Evaporator.evap-1.outlet_circuit_1":  "evap_out_temp",
		},
		Aggregation: types.AggregationAverage,
		Refrigerant: "R404A",
	}
}

func writeSession(t *testing.T, s Service, doc types.SessionDocument) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, s.Sessions.Save(path, doc))
	return path
}

func writeSensorCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sensors.csv")
	content := "timestamp,suction_psi,suction_temp,discharge_temp,liquid_temp,evap_out_temp\n" +
		"2026-08-20 09:00:00,21.0,4.0,78.0,30.0,-4.0\n" +
		"2026-08-20 09:01:00,23.0,6.0,82.0,32.0,-6.0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
