package adapters

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestXLSXAuditWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.xlsx")
	require.NoError(t, NewXLSXAuditAdapter().WriteAudit(path, sampleAuditRows()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	mapped, err := f.GetRows("mapped")
	require.NoError(t, err)
	require.Len(t, mapped, 2)
	assert.Equal(t, auditHeader, mapped[0])
	assert.Equal(t, "comp-1", mapped[1][0])
	assert.Equal(t, "comp-1.SP", mapped[1][6])
	assert.Equal(t, "suction_psi", mapped[1][7])

	unmapped, err := f.GetRows("unmapped")
	require.NoError(t, err)
	require.Len(t, unmapped, 2)
	assert.Equal(t, "evap-1", unmapped[1][0])
	assert.Equal(t, "Left Evap Outlet 1", unmapped[1][4])
}
