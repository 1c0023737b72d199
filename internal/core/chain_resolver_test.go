package core

import (
	"errors"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chainlayout/internal/types"
)

func eq(target types.Anchor, source *types.Anchor, multiplier float64, constant float64) types.ResolvedConstraint {
	return types.ResolvedConstraint{
		Target:     target,
		Source:     source,
		Relation:   types.RelationEqual,
		Multiplier: multiplier,
		Constant:   constant,
		Priority:   types.PriorityRequired,
	}
}

func attr(element types.ElementID, attribute types.Attribute) types.Anchor {
	return element.Attr(attribute)
}

func resolveChain(t *testing.T, host *fakeHost, builder ChainBuilder) ChainResult {
	t.Helper()
	capture, err := builder.Capture()
	require.NoError(t, err)
	result, err := NewChainResolver(host).Resolve(t.Context(), capture, 0)
	require.NoError(t, err)
	return result
}

func TestResolveThreeElementRow(t *testing.T) {
	result := resolveChain(t, newFakeHost(nil), NewChain(types.AxisHorizontal).
		In("root").
		From("root").
		Add("v1").Fixed(80).
		Add("v2").Weight(1).
		Add("v3").Weight(2).
		To("root"))

	want := []types.ResolvedConstraint{
		eq(attr("v1", types.AttrLeft), anchorRef("root", types.AttrLeft), 1, 0),
		eq(attr("v1", types.AttrWidth), nil, 1, 80),
		eq(attr("v2", types.AttrLeft), anchorRef("v1", types.AttrRight), 1, 0),
		eq(attr("v3", types.AttrLeft), anchorRef("v2", types.AttrRight), 1, 0),
		eq(attr("v3", types.AttrWidth), anchorRef("v2", types.AttrWidth), 2, 0),
		eq(attr("v3", types.AttrRight), anchorRef("root", types.AttrRight), 1, 0),
	}
	if diff := cmp.Diff(want, result.Constraints); diff != "" {
		t.Fatalf("unexpected constraints (-want +got):\n%s", diff)
	}
	assert.Empty(t, result.Placeholders)

	var rendered []string
	for _, constraint := range result.Constraints {
		rendered = append(rendered, constraint.String())
	}
	assert.Equal(t, []string{
		"v1.left == root.left",
		"v1.width == 80",
		"v2.left == v1.right",
		"v3.left == v2.right",
		"v3.width == v2.width * 2",
		"v3.right == root.right",
	}, rendered)
}

func TestResolveEdgeContinuity(t *testing.T) {
	result := resolveChain(t, newFakeHost(nil), NewChain(types.AxisHorizontal).
		From("root").
		Add("a").
		Add("b").Fixed(20).
		Add("c").
		Add("d").RelativeTo("b").
		To("root"))

	var links []types.ResolvedConstraint
	for _, constraint := range result.Constraints {
		if constraint.Source != nil && constraint.Target.Attribute != types.AttrWidth {
			links = append(links, constraint)
		}
	}
	want := []types.ResolvedConstraint{
		eq(attr("a", types.AttrLeft), anchorRef("root", types.AttrLeft), 1, 0),
		eq(attr("b", types.AttrLeft), anchorRef("a", types.AttrRight), 1, 0),
		eq(attr("c", types.AttrLeft), anchorRef("b", types.AttrRight), 1, 0),
		eq(attr("d", types.AttrLeft), anchorRef("c", types.AttrRight), 1, 0),
		eq(attr("d", types.AttrRight), anchorRef("root", types.AttrRight), 1, 0),
	}
	if diff := cmp.Diff(want, links); diff != "" {
		t.Fatalf("chain must be gap free (-want +got):\n%s", diff)
	}
}

func TestResolveWeightNormalization(t *testing.T) {
	result := resolveChain(t, newFakeHost(nil), NewChain(types.AxisHorizontal).
		From("root").
		Add("a").Weight(2).
		Add("b").Weight(3).
		Add("c").Weight(6).
		To("root"))

	var sizes []types.ResolvedConstraint
	for _, constraint := range result.Constraints {
		if constraint.Target.Attribute == types.AttrWidth {
			sizes = append(sizes, constraint)
		}
	}
	want := []types.ResolvedConstraint{
		eq(attr("b", types.AttrWidth), anchorRef("a", types.AttrWidth), 1.5, 0),
		eq(attr("c", types.AttrWidth), anchorRef("a", types.AttrWidth), 3, 0),
	}
	if diff := cmp.Diff(want, sizes); diff != "" {
		t.Fatalf("weights must normalize against the first weighted node (-want +got):\n%s", diff)
	}
}

func TestResolveFixedSizeFidelity(t *testing.T) {
	for _, length := range []float64{0, 12.5, 300} {
		result := resolveChain(t, newFakeHost(nil), NewChain(types.AxisVertical).Add("a").Fixed(length))
		want := []types.ResolvedConstraint{eq(attr("a", types.AttrHeight), nil, 1, length)}
		if diff := cmp.Diff(want, result.Constraints); diff != "" {
			t.Fatalf("unexpected constraints for %v (-want +got):\n%s", length, diff)
		}
	}
}

func TestResolvePaddingOffsets(t *testing.T) {
	result := resolveChain(t, newFakeHost(nil), NewChain(types.AxisHorizontal).
		From("root").
		Gap().
		Add("a").
		Space(10).
		Add("b").
		Space(-4).
		Add("c").
		Gap().
		To("root"))

	want := []types.ResolvedConstraint{
		eq(attr("a", types.AttrLeft), anchorRef("root", types.AttrLeft), 1, 8),
		eq(attr("b", types.AttrLeft), anchorRef("a", types.AttrRight), 1, 10),
		eq(attr("c", types.AttrLeft), anchorRef("b", types.AttrRight), 1, -4),
		eq(attr("c", types.AttrRight), anchorRef("root", types.AttrRight), 1, -8),
	}
	if diff := cmp.Diff(want, result.Constraints); diff != "" {
		t.Fatalf("unexpected constraints (-want +got):\n%s", diff)
	}
}

func TestResolveVerticalChainWithBonds(t *testing.T) {
	result := resolveChain(t, newFakeHost(nil), NewChain(types.AxisVertical).
		From("root").
		Add("header").Fixed(44).
		Gap().
		Add("title", "subtitle").
		To("root", types.AttrBottom))

	want := []types.ResolvedConstraint{
		eq(attr("header", types.AttrTop), anchorRef("root", types.AttrTop), 1, 0),
		eq(attr("header", types.AttrHeight), nil, 1, 44),
		eq(attr("title", types.AttrTop), anchorRef("header", types.AttrBottom), 1, 8),
		eq(attr("subtitle", types.AttrTop), anchorRef("title", types.AttrTop), 1, 0),
		eq(attr("subtitle", types.AttrBottom), anchorRef("title", types.AttrBottom), 1, 0),
		eq(attr("title", types.AttrBottom), anchorRef("root", types.AttrBottom), 1, 0),
	}
	if diff := cmp.Diff(want, result.Constraints); diff != "" {
		t.Fatalf("unexpected constraints (-want +got):\n%s", diff)
	}
}

func TestResolveHorizontalBondsUseSides(t *testing.T) {
	result := resolveChain(t, newFakeHost(nil), NewChain(types.AxisHorizontal).
		Add("label", "field", "hint").Fixed(100))

	want := []types.ResolvedConstraint{
		eq(attr("label", types.AttrWidth), nil, 1, 100),
		eq(attr("field", types.AttrLeft), anchorRef("label", types.AttrLeft), 1, 0),
		eq(attr("field", types.AttrRight), anchorRef("label", types.AttrRight), 1, 0),
		eq(attr("hint", types.AttrLeft), anchorRef("label", types.AttrLeft), 1, 0),
		eq(attr("hint", types.AttrRight), anchorRef("label", types.AttrRight), 1, 0),
	}
	if diff := cmp.Diff(want, result.Constraints); diff != "" {
		t.Fatalf("unexpected constraints (-want +got):\n%s", diff)
	}
}

func TestResolveExplicitBoundAttributes(t *testing.T) {
	result := resolveChain(t, newFakeHost(nil), NewChain(types.AxisHorizontal).
		From("guide", types.AttrCenterX).
		Add("a").
		To("panel", types.AttrLeft))

	want := []types.ResolvedConstraint{
		eq(attr("a", types.AttrLeft), anchorRef("guide", types.AttrCenterX), 1, 0),
		eq(attr("a", types.AttrRight), anchorRef("panel", types.AttrLeft), 1, 0),
	}
	if diff := cmp.Diff(want, result.Constraints); diff != "" {
		t.Fatalf("unexpected constraints (-want +got):\n%s", diff)
	}
}

func TestResolveOpenChain(t *testing.T) {
	result := resolveChain(t, newFakeHost(nil), NewChain(types.AxisHorizontal).Add("a").Gap().Add("b"))
	want := []types.ResolvedConstraint{
		eq(attr("b", types.AttrLeft), anchorRef("a", types.AttrRight), 1, 8),
	}
	if diff := cmp.Diff(want, result.Constraints); diff != "" {
		t.Fatalf("unexpected constraints (-want +got):\n%s", diff)
	}
}

func TestResolvePlaceholders(t *testing.T) {
	host := newFakeHost(map[types.ElementID]types.ElementID{
		"card": "screen",
		"a":    "card",
		"b":    "card",
	})
	result := resolveChain(t, host, NewChain(types.AxisHorizontal).
		From("card").
		Add("a").
		Spacer().Weight(1).
		Add("b").Weight(2).
		To("card"))

	want := []types.ResolvedConstraint{
		eq(attr("a", types.AttrLeft), anchorRef("card", types.AttrLeft), 1, 0),
		eq(attr("_placeholder1", types.AttrLeft), anchorRef("a", types.AttrRight), 1, 0),
		eq(attr("b", types.AttrLeft), anchorRef("_placeholder1", types.AttrRight), 1, 0),
		eq(attr("b", types.AttrWidth), anchorRef("_placeholder1", types.AttrWidth), 2, 0),
		eq(attr("b", types.AttrRight), anchorRef("card", types.AttrRight), 1, 0),
	}
	if diff := cmp.Diff(want, result.Constraints); diff != "" {
		t.Fatalf("unexpected constraints (-want +got):\n%s", diff)
	}
	assert.Equal(t, []types.ElementID{"_placeholder1"}, result.Placeholders)
	assert.Equal(t, types.ElementID("screen"), host.parents["_placeholder1"])
}

func TestPlaceholderParentFallbacks(t *testing.T) {
	tests := []struct {
		name       string
		parents    map[types.ElementID]types.ElementID
		builder    ChainBuilder
		wantParent types.ElementID
	}{
		{
			name:    "leading bound parent",
			parents: map[types.ElementID]types.ElementID{"left": "row", "right": "other"},
			builder: NewChain(types.AxisHorizontal).In("fallback").
				From("left", types.AttrRight).Add("a").Spacer().Weight(1).Add("b").To("right", types.AttrLeft),
			wantParent: "row",
		},
		{
			name:    "trailing bound parent",
			parents: map[types.ElementID]types.ElementID{"right": "other"},
			builder: NewChain(types.AxisHorizontal).In("fallback").
				From("left", types.AttrRight).Add("a").Spacer().Weight(1).To("right", types.AttrLeft),
			wantParent: "other",
		},
		{
			name:    "capture parent",
			parents: nil,
			builder: NewChain(types.AxisHorizontal).In("fallback").
				From("root").Add("a").Spacer().RelativeTo("a").Add("b").To("root"),
			wantParent: "fallback",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := newFakeHost(tt.parents)
			capture, err := tt.builder.Capture()
			require.NoError(t, err)
			result, err := NewChainResolver(host).Resolve(t.Context(), capture, 0)
			require.NoError(t, err)
			require.Len(t, host.created, 1)
			assert.Equal(t, host.created, result.Placeholders)
			assert.Equal(t, tt.wantParent, host.parents[host.created[0]])
		})
	}
}

func TestPlaceholderWithoutParentFails(t *testing.T) {
	host := newFakeHost(nil)
	capture, err := NewChain(types.AxisHorizontal).
		From("root").Add("a").Spacer().Weight(1).To("root").
		Capture()
	require.NoError(t, err)

	result, err := NewChainResolver(host).Resolve(t.Context(), capture, 0)
	require.Error(t, err)
	assert.Equal(t, types.ErrMissingPlaceholderParent, KindOf(err))
	assert.Empty(t, result.Constraints)
	assert.Empty(t, host.created)

	var chainErr *ChainError
	require.True(t, errors.As(err, &chainErr))
	assert.Equal(t, errbuilder.CodeFailedPrecondition, chainErr.Code())
}

func TestResolvePriority(t *testing.T) {
	base := NewChain(types.AxisHorizontal).From("root").Add("a").Fixed(10).To("root")

	tests := []struct {
		name     string
		builder  ChainBuilder
		argument types.Priority
		want     types.Priority
	}{
		{name: "defaults to required", builder: base, argument: 0, want: types.PriorityRequired},
		{name: "argument applies", builder: base, argument: types.PriorityLow, want: types.PriorityLow},
		{name: "capture wins over argument", builder: base.At(types.PriorityHigh), argument: types.PriorityLow, want: types.PriorityHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			capture, err := tt.builder.Capture()
			require.NoError(t, err)
			result, err := NewChainResolver(newFakeHost(nil)).Resolve(t.Context(), capture, tt.argument)
			require.NoError(t, err)
			require.Len(t, result.Constraints, 3)
			for _, constraint := range result.Constraints {
				assert.Equal(t, tt.want, constraint.Priority, constraint.String())
			}
		})
	}
}
