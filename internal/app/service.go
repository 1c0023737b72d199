package app

import (
	"chainlayout/internal/adapters"
	"chainlayout/internal/ports"
	"chainlayout/internal/types"
)

// layoutHost is the memory host surface the service drives: the host port
// plus element registration and inspection of what ended up active.
type layoutHost interface {
	ports.LayoutHostPort
	AddElement(element types.ElementID, parent types.ElementID) error
	ActiveConstraints() []types.ResolvedConstraint
}

type Service struct {
	LayoutLoader   ports.LayoutSpecPort
	FragmentFiles  ports.FragmentSpecPort
	FragmentSource func(files ports.FragmentSpecPort, baseDir string) ports.FragmentSourcePort
	Workspace      ports.WorkspacePort
	OutputReader   ports.OutputReaderPort
	Output         func(dir string) ports.OutputPort
	NewHost        func() layoutHost
}

func NewService() Service {
	files := adapters.NewLayoutFileAdapter()
	return Service{
		LayoutLoader:  files,
		FragmentFiles: files,
		FragmentSource: func(files ports.FragmentSpecPort, baseDir string) ports.FragmentSourcePort {
			return adapters.NewFragmentSourceAdapter(files, baseDir)
		},
		Workspace:    adapters.NewWorkspaceAdapter(),
		OutputReader: adapters.NewOutputReaderAdapter(),
		Output: func(dir string) ports.OutputPort {
			return adapters.NewOutputFileAdapter(dir)
		},
		NewHost: func() layoutHost {
			return adapters.NewMemoryHost()
		},
	}
}
