package adapters

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chainlayout/internal/types"
)

func newTestHost(t *testing.T) *MemoryHost {
	t.Helper()
	host := NewMemoryHost()
	require.NoError(t, host.AddElement("root", ""))
	require.NoError(t, host.AddElement("a", "root"))
	require.NoError(t, host.AddElement("b", "root"))
	return host
}

func TestMemoryHostElements(t *testing.T) {
	host := newTestHost(t)

	parent, ok := host.ParentOf("a")
	assert.True(t, ok)
	assert.Equal(t, types.ElementID("root"), parent)

	_, ok = host.ParentOf("root")
	assert.False(t, ok)
	_, ok = host.ParentOf("missing")
	assert.False(t, ok)

	err := host.AddElement("a", "root")
	assert.Equal(t, errbuilder.CodeAlreadyExists, errbuilder.CodeOf(err))
	err = host.AddElement("c", "missing")
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
	err = host.AddElement("", "root")
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestMemoryHostPlaceholders(t *testing.T) {
	host := newTestHost(t)

	first, err := host.CreatePlaceholder("root")
	require.NoError(t, err)
	second, err := host.CreatePlaceholder("a")
	require.NoError(t, err)
	assert.Equal(t, types.ElementID("_placeholder1"), first)
	assert.Equal(t, types.ElementID("_placeholder2"), second)

	parent, ok := host.ParentOf(second)
	assert.True(t, ok)
	assert.Equal(t, types.ElementID("a"), parent)
	assert.Equal(t, []types.ElementID{"_placeholder1", "_placeholder2"}, host.Placeholders())
	assert.Equal(t, []types.ElementID{"_placeholder1", "_placeholder2", "a", "b", "root"}, host.Elements())

	_, err = host.CreatePlaceholder("missing")
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestMemoryHostActivation(t *testing.T) {
	host := newTestHost(t)
	left := types.ResolvedConstraint{
		Target:     types.ElementID("a").Attr(types.AttrLeft),
		Source:     anchorPtr(types.ElementID("root").Attr(types.AttrLeft)),
		Relation:   types.RelationEqual,
		Multiplier: 1,
		Priority:   types.PriorityRequired,
	}
	width := types.ResolvedConstraint{
		Target:     types.ElementID("b").Attr(types.AttrWidth),
		Relation:   types.RelationEqual,
		Multiplier: 1,
		Constant:   40,
		Priority:   types.PriorityRequired,
	}

	first, err := host.MakeConstraint(left)
	require.NoError(t, err)
	second, err := host.MakeConstraint(width)
	require.NoError(t, err)
	assert.Empty(t, host.ActiveConstraints())

	require.NoError(t, host.Activate([]types.ConstraintHandle{second, first}))
	assert.Equal(t, []types.ResolvedConstraint{left, width}, host.ActiveConstraints())

	require.NoError(t, host.Deactivate([]types.ConstraintHandle{first}))
	assert.Equal(t, []types.ResolvedConstraint{width}, host.ActiveConstraints())

	// An unknown handle leaves every handle in the call untouched.
	err = host.Deactivate([]types.ConstraintHandle{second, {ID: 99}})
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
	assert.Equal(t, []types.ResolvedConstraint{width}, host.ActiveConstraints())
}

func TestMemoryHostRejectsUnknownAnchors(t *testing.T) {
	host := newTestHost(t)
	_, err := host.MakeConstraint(types.ResolvedConstraint{
		Target:   types.ElementID("a").Attr(types.AttrLeft),
		Source:   anchorPtr(types.ElementID("ghost").Attr(types.AttrLeft)),
		Relation: types.RelationEqual,
	})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "ghost")
}
