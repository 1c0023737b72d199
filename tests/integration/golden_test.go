package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chainlayout/internal/adapters"
	"chainlayout/internal/app"
	"chainlayout/internal/types"
	"chainlayout/tests/testutil"
)

// TestGoldenSolve solves the toolbar fixture and compares the outputs
// against committed golden files. If a golden file does not exist yet it is
// written so it can be committed.
//
// To update golden files after an intentional change, delete the
// testdata/golden/ directory and re-run the test.
func TestGoldenSolve(t *testing.T) {
	root := testutil.RepoRoot(t)
	goldenDir := filepath.Join(root, "tests", "integration", "testdata", "golden")
	outDir := t.TempDir()

	_, err := app.NewService().Solve(t.Context(), app.SolveRequest{
		LayoutPath: filepath.Join(root, "fixtures", "toolbar.layout.yaml"),
		OutputDir:  outDir,
	})
	require.NoError(t, err)

	for _, name := range []string{adapters.ConstraintsFile, adapters.FramesFile, adapters.ReportFile} {
		t.Run(name, func(t *testing.T) {
			actual, err := os.ReadFile(filepath.Join(outDir, name))
			require.NoError(t, err)

			goldenPath := filepath.Join(goldenDir, name)
			if _, statErr := os.Stat(goldenPath); os.IsNotExist(statErr) {
				require.NoError(t, os.MkdirAll(goldenDir, 0o755))
				require.NoError(t, os.WriteFile(goldenPath, actual, 0o644))
				t.Logf("golden file written: %s (commit it)", goldenPath)
				return
			}

			expected, err := os.ReadFile(goldenPath)
			require.NoError(t, err)
			assert.Equal(t, string(expected), string(actual),
				"golden mismatch for %s -- delete testdata/golden/ and re-run to regenerate", name)
		})
	}
}

// TestGoldenSolveStructure checks properties of the outputs that hold
// independent of exact values.
func TestGoldenSolveStructure(t *testing.T) {
	root := testutil.RepoRoot(t)
	outDir := t.TempDir()

	_, err := app.NewService().Solve(t.Context(), app.SolveRequest{
		LayoutPath: filepath.Join(root, "fixtures", "toolbar.layout.yaml"),
		OutputDir:  outDir,
	})
	require.NoError(t, err)

	reader := adapters.NewOutputReaderAdapter()
	records, err := reader.ReadConstraints(filepath.Join(outDir, adapters.ConstraintsFile))
	require.NoError(t, err)

	// Chains keep declaration order: fragments first, then the layout.
	var order []string
	for _, record := range records {
		if len(order) == 0 || order[len(order)-1] != record.Chain {
			order = append(order, record.Chain)
		}
	}
	assert.Equal(t, []string{"footer-row", "footer-stack", "badge-row", "row", "column"}, order)

	for _, record := range records {
		assert.Equal(t, types.RelationEqual, record.Constraint.Relation, record.Chain)
		if strings.HasPrefix(record.Chain, "footer") {
			assert.Equal(t, types.PriorityHigh, record.Constraint.Priority)
		} else {
			assert.Equal(t, types.PriorityRequired, record.Constraint.Priority)
		}
	}

	frames, err := reader.ReadFrames(filepath.Join(outDir, adapters.FramesFile))
	require.NoError(t, err)
	for _, frame := range frames {
		if !frame.Horizontal.Known {
			continue
		}
		assert.GreaterOrEqual(t, frame.Horizontal.Position, 0.0, frame.Element)
		assert.LessOrEqual(t, frame.Horizontal.Position+frame.Horizontal.Size, 300.0+1e-6, frame.Element)
	}
}
