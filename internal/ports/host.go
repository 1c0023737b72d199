package ports

import "chainlayout/internal/types"

// PlaceholderPort creates invisible, non-interactive elements that exist only
// to anchor constraints for element-less chain nodes.
type PlaceholderPort interface {
	CreatePlaceholder(parent types.ElementID) (types.ElementID, error)
}

// HierarchyPort answers parent lookups in the host's element tree.
type HierarchyPort interface {
	ParentOf(element types.ElementID) (types.ElementID, bool)
}

// LayoutHostPort is the narrow boundary to the host constraint system.
type LayoutHostPort interface {
	PlaceholderPort
	HierarchyPort
	MakeConstraint(constraint types.ResolvedConstraint) (types.ConstraintHandle, error)
	Activate(handles []types.ConstraintHandle) error
	Deactivate(handles []types.ConstraintHandle) error
}
