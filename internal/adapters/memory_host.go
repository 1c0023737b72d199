package adapters

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"chainlayout/internal/ports"
	"chainlayout/internal/types"
)

const placeholderPrefix = "_placeholder"

// MemoryHost is an in-memory layout host. It tracks the element tree, the
// placeholders created for padding nodes and which constraints are active.
type MemoryHost struct {
	mu           sync.Mutex
	parents      map[types.ElementID]types.ElementID
	placeholders []types.ElementID
	constraints  map[int]types.ResolvedConstraint
	active       map[int]bool
	nextID       int
}

func NewMemoryHost() *MemoryHost {
	return &MemoryHost{
		parents:     map[types.ElementID]types.ElementID{},
		constraints: map[int]types.ResolvedConstraint{},
		active:      map[int]bool{},
	}
}

// AddElement registers an element under parent. An empty parent makes it a
// root.
func (h *MemoryHost) AddElement(element types.ElementID, parent types.ElementID) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if element == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("element name is required")
	}
	if _, ok := h.parents[element]; ok {
		return errbuilder.New().
			WithCode(errbuilder.CodeAlreadyExists).
			WithMsg(fmt.Sprintf("element already registered: %s", element))
	}
	if parent != "" {
		if _, ok := h.parents[parent]; !ok {
			return errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(fmt.Sprintf("parent not registered: %s", parent))
		}
	}
	h.parents[element] = parent
	return nil
}

func (h *MemoryHost) ParentOf(element types.ElementID) (types.ElementID, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	parent, ok := h.parents[element]
	if !ok || parent == "" {
		return "", false
	}
	return parent, true
}

func (h *MemoryHost) CreatePlaceholder(parent types.ElementID) (types.ElementID, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.parents[parent]; !ok {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("placeholder parent not registered: %s", parent))
	}
	id := types.ElementID(fmt.Sprintf("%s%d", placeholderPrefix, len(h.placeholders)+1))
	h.parents[id] = parent
	h.placeholders = append(h.placeholders, id)
	return id, nil
}

func (h *MemoryHost) MakeConstraint(constraint types.ResolvedConstraint) (types.ConstraintHandle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.checkAnchor(constraint.Target); err != nil {
		return types.ConstraintHandle{}, err
	}
	if constraint.Source != nil {
		if err := h.checkAnchor(*constraint.Source); err != nil {
			return types.ConstraintHandle{}, err
		}
	}
	h.nextID++
	h.constraints[h.nextID] = constraint
	return types.ConstraintHandle{ID: h.nextID, Constraint: constraint}, nil
}

func (h *MemoryHost) checkAnchor(anchor types.Anchor) error {
	if _, ok := h.parents[anchor.Element]; !ok {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("constraint references unknown element: %s", anchor.Element))
	}
	return nil
}

func (h *MemoryHost) Activate(handles []types.ConstraintHandle) error {
	return h.setActive(handles, true)
}

func (h *MemoryHost) Deactivate(handles []types.ConstraintHandle) error {
	return h.setActive(handles, false)
}

func (h *MemoryHost) setActive(handles []types.ConstraintHandle, active bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, handle := range handles {
		if _, ok := h.constraints[handle.ID]; !ok {
			return errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(fmt.Sprintf("unknown constraint handle: %d", handle.ID))
		}
	}
	for _, handle := range handles {
		if active {
			h.active[handle.ID] = true
		} else {
			delete(h.active, handle.ID)
		}
	}
	return nil
}

// ActiveConstraints returns the active constraints in creation order.
func (h *MemoryHost) ActiveConstraints() []types.ResolvedConstraint {
	h.mu.Lock()
	defer h.mu.Unlock()
	ids := make([]int, 0, len(h.active))
	for id := range h.active {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]types.ResolvedConstraint, 0, len(ids))
	for _, id := range ids {
		out = append(out, h.constraints[id])
	}
	return out
}

func (h *MemoryHost) Placeholders() []types.ElementID {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]types.ElementID(nil), h.placeholders...)
}

// Elements lists every registered element, placeholders included, sorted by
// name.
func (h *MemoryHost) Elements() []types.ElementID {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]types.ElementID, 0, len(h.parents))
	for id := range h.parents {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

var _ ports.LayoutHostPort = (*MemoryHost)(nil)
