package ports

// WorkspacePort discovers layout documents below a directory.
type WorkspacePort interface {
	FindLayouts(root string) ([]string, error)
}
