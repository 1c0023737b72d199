package ports

import "chainlayout/internal/types"

type OutputPort interface {
	WriteConstraints(records []types.ConstraintRecord) error
	WriteFrames(frames []types.Frame) error
	WriteReport(report types.LayoutReport) error
}
