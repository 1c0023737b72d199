package core

import (
	"fmt"

	"chainlayout/internal/types"
)

// fakeHost records everything the resolver and context ask of the host.
type fakeHost struct {
	parents     map[types.ElementID]types.ElementID
	created     []types.ElementID
	made        []types.ResolvedConstraint
	active      map[int]bool
	activations int
	nextID      int
	failMake    bool
}

func newFakeHost(parents map[types.ElementID]types.ElementID) *fakeHost {
	if parents == nil {
		parents = map[types.ElementID]types.ElementID{}
	}
	return &fakeHost{parents: parents, active: map[int]bool{}}
}

func (h *fakeHost) ParentOf(element types.ElementID) (types.ElementID, bool) {
	parent, ok := h.parents[element]
	return parent, ok && parent != ""
}

func (h *fakeHost) CreatePlaceholder(parent types.ElementID) (types.ElementID, error) {
	id := types.ElementID(fmt.Sprintf("_placeholder%d", len(h.created)+1))
	h.parents[id] = parent
	h.created = append(h.created, id)
	return id, nil
}

func (h *fakeHost) MakeConstraint(constraint types.ResolvedConstraint) (types.ConstraintHandle, error) {
	if h.failMake {
		return types.ConstraintHandle{}, fmt.Errorf("host rejected %s", constraint)
	}
	h.nextID++
	h.made = append(h.made, constraint)
	return types.ConstraintHandle{ID: h.nextID, Constraint: constraint}, nil
}

func (h *fakeHost) Activate(handles []types.ConstraintHandle) error {
	h.activations++
	for _, handle := range handles {
		h.active[handle.ID] = true
	}
	return nil
}

func (h *fakeHost) Deactivate(handles []types.ConstraintHandle) error {
	for _, handle := range handles {
		delete(h.active, handle.ID)
	}
	return nil
}

func anchorRef(element types.ElementID, attr types.Attribute) *types.Anchor {
	anchor := element.Attr(attr)
	return &anchor
}
