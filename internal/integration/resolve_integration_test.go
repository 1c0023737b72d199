package integration

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chainlayout/internal/adapters"
	"chainlayout/internal/core"
	"chainlayout/internal/types"
)

func TestResolveIntegration(t *testing.T) {
	root := repoRoot(t)
	files := adapters.NewLayoutFileAdapter()
	layoutPath := filepath.Join(root, "fixtures", "toolbar.layout.yaml")

	layout, err := files.LoadLayout(layoutPath)
	require.NoError(t, err)
	fragments, err := adapters.NewFragmentSourceAdapter(files, filepath.Dir(layoutPath)).LoadFragments(layout, nil)
	require.NoError(t, err)
	require.Len(t, fragments, 2)

	composed, err := core.NewLayoutComposer().Compose(t.Context(), layout, fragments)
	require.NoError(t, err)
	captures, err := core.NewLayoutCompiler().BuildChains(t.Context(), composed)
	require.NoError(t, err)

	host := adapters.NewMemoryHost()
	require.NoError(t, host.AddElement("root", ""))
	for _, element := range composed.Elements {
		require.NoError(t, host.AddElement(types.ElementID(element.Name), types.ElementID(element.Parent)))
	}

	layoutCtx := core.NewLayoutContext(host)
	resolver := core.NewChainResolver(host)
	var installed []types.ConstraintHandle
	err = layoutCtx.Batch(t.Context(), func() error {
		for _, capture := range captures {
			_, handles, err := layoutCtx.Chain(t.Context(), resolver, capture)
			if err != nil {
				return err
			}
			installed = append(installed, handles...)
		}
		// Nothing is active until the outermost batch closes.
		assert.Empty(t, host.ActiveConstraints())
		return nil
	})
	require.NoError(t, err)
	assert.Len(t, host.ActiveConstraints(), 19)
	assert.Equal(t, []types.ElementID{"_placeholder1"}, host.Placeholders())

	solved, err := core.NewFrameSolver().Solve(t.Context(), core.SolveInput{
		Root:        "root",
		RootWidth:   composed.Root.Width,
		RootHeight:  composed.Root.Height,
		Constraints: host.ActiveConstraints(),
	})
	require.NoError(t, err)
	frames := map[types.ElementID]types.Frame{}
	for _, frame := range solved.Frames {
		frames[frame.Element] = frame
	}
	assert.InDelta(t, 8, frames["footer"].Horizontal.Position, 1e-6)
	assert.InDelta(t, 284, frames["footer"].Horizontal.Size, 1e-6)
	assert.InDelta(t, 280, frames["badge"].Horizontal.Position, 1e-6)

	require.NoError(t, layoutCtx.Uninstall(installed))
	assert.Empty(t, host.ActiveConstraints())
}

func TestResolveIntegrationFailedChainLeavesHostUntouched(t *testing.T) {
	root := repoRoot(t)
	files := adapters.NewLayoutFileAdapter()
	layout, err := files.LoadLayout(filepath.Join(root, "fixtures", "broken.layout.yaml"))
	require.NoError(t, err)
	captures, err := core.NewLayoutCompiler().BuildChains(t.Context(), layout)
	require.NoError(t, err)

	host := adapters.NewMemoryHost()
	require.NoError(t, host.AddElement("root", ""))
	require.NoError(t, host.AddElement("a", "root"))
	require.NoError(t, host.AddElement("b", "root"))

	layoutCtx := core.NewLayoutContext(host)
	err = layoutCtx.Batch(t.Context(), func() error {
		for _, capture := range captures {
			if _, _, err := layoutCtx.Chain(t.Context(), core.NewChainResolver(host), capture); err != nil {
				return err
			}
		}
		return nil
	})
	require.Error(t, err)
	assert.Equal(t, types.ErrAdjacentFixedPadding, core.KindOf(err))
	assert.Empty(t, host.ActiveConstraints())
	assert.Empty(t, host.Placeholders())
}

func repoRoot(t *testing.T) string {
	t.Helper()
	root, err := filepath.Abs(filepath.Join("..", ".."))
	require.NoError(t, err)
	return root
}
