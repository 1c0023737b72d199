package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chainlayout/internal/types"
)

func TestReadConstraintsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	records := []types.ConstraintRecord{
		{
			Chain: "row",
			Constraint: types.ResolvedConstraint{
				Target:     types.ElementID("v1").Attr(types.AttrWidth),
				Relation:   types.RelationEqual,
				Multiplier: 1,
				Constant:   80,
				Priority:   types.PriorityRequired,
			},
		},
		{
			Chain: "center",
			Constraint: types.ResolvedConstraint{
				Target:     types.ElementID("badge").Attr(types.AttrCenterX),
				Source:     anchorPtr(types.ElementID("root").Attr(types.AttrCenterX)),
				Relation:   types.RelationLessOrEqual,
				Multiplier: 0.5,
				Constant:   -2,
				Priority:   types.PriorityFittingSize,
			},
		},
	}
	require.NoError(t, NewOutputFileAdapter(dir).WriteConstraints(records))

	got, err := NewOutputReaderAdapter().ReadConstraints(filepath.Join(dir, ConstraintsFile))
	require.NoError(t, err)
	if diff := cmp.Diff(records, got); diff != "" {
		t.Fatalf("unexpected records (-want +got):\n%s", diff)
	}
}

func TestReadFrames(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FramesFile)
	require.NoError(t, os.WriteFile(path, []byte("badge,280,?,16,?\nv1,0,12,80,24\n\n"), 0644))

	got, err := NewOutputReaderAdapter().ReadFrames(path)
	require.NoError(t, err)
	want := []types.Frame{
		{Element: "badge", Horizontal: types.AxisSpan{Position: 280, Size: 16, Known: true}},
		{
			Element:    "v1",
			Horizontal: types.AxisSpan{Position: 0, Size: 80, Known: true},
			Vertical:   types.AxisSpan{Position: 12, Size: 24, Known: true},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected frames (-want +got):\n%s", diff)
	}
}

func TestReadInvalidLists(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "short constraint", file: ConstraintsFile, content: "row,v1.width,==,,1,80"},
		{name: "unknown attribute", file: ConstraintsFile, content: "row,v1.depth,==,,1,80,1000"},
		{name: "unknown relation", file: ConstraintsFile, content: "row,v1.width,=,,1,80,1000"},
		{name: "target without attribute", file: ConstraintsFile, content: "row,v1,==,,1,80,1000"},
		{name: "bad number", file: ConstraintsFile, content: "row,v1.width,==,,one,80,1000"},
		{name: "short frame", file: FramesFile, content: "v1,0,0,10"},
		{name: "partially known span", file: FramesFile, content: "v1,?,0,10,10"},
		{name: "bad frame number", file: FramesFile, content: "v1,x,0,10,10"},
	}
	reader := NewOutputReaderAdapter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			var err error
			if tt.file == ConstraintsFile {
				_, err = reader.ReadConstraints(path)
			} else {
				_, err = reader.ReadFrames(path)
			}
			require.Error(t, err)
			assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
			assert.Contains(t, err.Error(), "invalid "+tt.file+" format")
		})
	}
}

func TestReadMissingList(t *testing.T) {
	_, err := NewOutputReaderAdapter().ReadFrames(filepath.Join(t.TempDir(), FramesFile))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestReadListsRoundTripNamesWithCommas(t *testing.T) {
	dir := t.TempDir()
	records := []types.ConstraintRecord{
		{
			Chain: "header,row",
			Constraint: types.ResolvedConstraint{
				Target:     types.ElementID("title,main").Attr(types.AttrLeft),
				Source:     anchorPtr(types.ElementID("root").Attr(types.AttrLeft)),
				Relation:   types.RelationEqual,
				Multiplier: 1,
				Priority:   types.PriorityRequired,
			},
		},
		{
			Chain: `say "hi"`,
			Constraint: types.ResolvedConstraint{
				Target:     types.ElementID("panel.inner").Attr(types.AttrWidth),
				Relation:   types.RelationEqual,
				Multiplier: 1,
				Constant:   40,
				Priority:   types.PriorityLow,
			},
		},
	}
	frames := []types.Frame{
		{
			Element:    "title,main",
			Horizontal: types.AxisSpan{Position: 8, Size: 100, Known: true},
		},
	}
	output := NewOutputFileAdapter(dir)
	require.NoError(t, output.WriteConstraints(records))
	require.NoError(t, output.WriteFrames(frames))

	content, err := os.ReadFile(filepath.Join(dir, ConstraintsFile))
	require.NoError(t, err)
	assert.Contains(t, string(content), `"header,row","title,main.left",==,root.left,1,0,1000`)

	reader := NewOutputReaderAdapter()
	gotRecords, err := reader.ReadConstraints(filepath.Join(dir, ConstraintsFile))
	require.NoError(t, err)
	if diff := cmp.Diff(records, gotRecords); diff != "" {
		t.Fatalf("unexpected records (-want +got):\n%s", diff)
	}
	gotFrames, err := reader.ReadFrames(filepath.Join(dir, FramesFile))
	require.NoError(t, err)
	if diff := cmp.Diff(frames, gotFrames); diff != "" {
		t.Fatalf("unexpected frames (-want +got):\n%s", diff)
	}
}
