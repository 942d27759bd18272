package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"refmap/internal/app"
	"refmap/tests/testutil"
)

// TestGoldenAudit resolves the sample session and compares the audit
// CSV against a committed golden file. If the golden file does not
// exist yet (first run), it is written so it can be committed.
//
// To update the golden file after an intentional change, delete
// testdata/golden/ and re-run the test.
func TestGoldenAudit(t *testing.T) {
	root := testutil.RepoRoot(t)
	goldenDir := filepath.Join(root, "tests", "integration", "testdata", "golden")
	goldenPath := filepath.Join(goldenDir, "audit.csv")

	scratch := filepath.Join(t.TempDir(), "session.json")
	testutil.CopyFile(t, testutil.Fixture(t, "session-sample.json"), scratch)

	service := app.NewService()
	_, err := service.Resolve(t.Context(), app.ResolveRequest{SessionPath: scratch})
	require.NoError(t, err)

	auditPath := filepath.Join(t.TempDir(), "audit.csv")
	_, err = service.Audit(t.Context(), app.AuditRequest{
		SessionPath: scratch,
		CSVPath:     testutil.Fixture(t, "sensors-sample.csv"),
		OutputPath:  auditPath,
	})
	require.NoError(t, err)

	actual, err := os.ReadFile(auditPath)
	require.NoError(t, err)

	if _, statErr := os.Stat(goldenPath); os.IsNotExist(statErr) {
		require.NoError(t, os.MkdirAll(goldenDir, 0755))
		require.NoError(t, os.WriteFile(goldenPath, actual, 0644))
		t.Logf("golden file written: %s", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	if diff := cmp.Diff(string(expected), string(actual)); diff != "" {
		t.Errorf("audit csv mismatch (-golden +actual):\n%s", diff)
	}
}
