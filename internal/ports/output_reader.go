package ports

import "chainlayout/internal/types"

type OutputReaderPort interface {
	ReadConstraints(path string) ([]types.ConstraintRecord, error)
	ReadFrames(path string) ([]types.Frame, error)
}
