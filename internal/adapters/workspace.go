package adapters

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"chainlayout/internal/ports"
)

var layoutSuffixes = []string{".layout.yaml", ".layout.yml"}

type WorkspaceAdapter struct{}

func NewWorkspaceAdapter() WorkspaceAdapter {
	return WorkspaceAdapter{}
}

// FindLayouts returns every *.layout.yaml below root in lexical order.
func (a WorkspaceAdapter) FindLayouts(root string) ([]string, error) {
	var paths []string
	if root == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("workspace root is empty")
	}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && shouldSkipWorkspaceDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if isLayoutFile(d.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to scan workspace").
			WithCause(err)
	}
	sort.Strings(paths)
	return paths, nil
}

func isLayoutFile(name string) bool {
	lower := strings.ToLower(name)
	for _, suffix := range layoutSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

func shouldSkipWorkspaceDir(name string) bool {
	switch name {
	case "out", "vendor", "node_modules", ".git":
		return true
	default:
		return strings.HasPrefix(name, ".")
	}
}

var _ ports.WorkspacePort = WorkspaceAdapter{}
