package core

import (
	"strings"

	"chainlayout/internal/types"
)

// resolveRelativeSizing replaces every RelativeTo spec with the spec of the
// node owning the referenced element, following references until they
// bottom out. owners maps each element to the index of its node.
func resolveRelativeSizing(nodes []types.ChainNode, owners map[types.ElementID]int) ([]types.SizingSpec, error) {
	resolved := make([]types.SizingSpec, len(nodes))
	for i := range nodes {
		spec, err := resolveNodeSizing(nodes, owners, i)
		if err != nil {
			return nil, err
		}
		resolved[i] = spec
	}
	return resolved, nil
}

func resolveNodeSizing(nodes []types.ChainNode, owners map[types.ElementID]int, start int) (types.SizingSpec, error) {
	spec := nodes[start].Sizing
	visited := map[int]struct{}{start: {}}
	path := []types.ElementID{nodeLabel(nodes[start])}
	for spec.Kind == types.SizingRelativeTo {
		owner, ok := owners[spec.Ref]
		if !ok {
			return types.SizingSpec{}, chainErrorf(types.ErrUnresolvableRelativeSizing,
				"relative sizing of %s references %s, which is not a node in this chain",
				nodeLabel(nodes[start]), spec.Ref)
		}
		path = append(path, spec.Ref)
		if _, seen := visited[owner]; seen {
			return types.SizingSpec{}, chainErrorf(types.ErrCyclicSizingReference,
				"cyclic sizing reference: %s", joinElements(path, " -> "))
		}
		visited[owner] = struct{}{}
		spec = nodes[owner].Sizing
	}
	return spec, nil
}

func nodeLabel(node types.ChainNode) types.ElementID {
	if len(node.Elements) == 0 {
		return "(spacer)"
	}
	return node.Elements[0]
}

func joinElements(ids []types.ElementID, sep string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, sep)
}
