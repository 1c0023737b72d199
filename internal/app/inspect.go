package app

import (
	"os"
	"path/filepath"
	"sort"

	"chainlayout/internal/adapters"
	"chainlayout/internal/types"
)

// Inspect summarizes a resolve or solve output directory. frames.list is
// optional since only solve writes it.
func (s Service) Inspect(req InspectRequest) (InspectResult, error) {
	outputDir, err := requireOutputDir(req.OutputDir)
	if err != nil {
		return InspectResult{}, err
	}
	records, err := s.OutputReader.ReadConstraints(filepath.Join(outputDir, adapters.ConstraintsFile))
	if err != nil {
		return InspectResult{}, err
	}
	result := InspectResult{
		ConstraintCount: len(records),
		Chains:          summarizeChains(records),
	}

	framesPath := filepath.Join(outputDir, adapters.FramesFile)
	if _, err := os.Stat(framesPath); err != nil {
		return result, nil
	}
	frames, err := s.OutputReader.ReadFrames(framesPath)
	if err != nil {
		return InspectResult{}, err
	}
	result.Frames = frames
	for _, frame := range frames {
		if !frame.Horizontal.Known || !frame.Vertical.Known {
			result.Unknown = append(result.Unknown, frame.Element)
		}
	}
	return result, nil
}

// summarizeChains groups records by chain in first-seen order and lists the
// distinct priorities each chain uses, strongest first.
func summarizeChains(records []types.ConstraintRecord) []InspectChainSummary {
	index := map[string]int{}
	seen := map[string]map[types.Priority]bool{}
	var summaries []InspectChainSummary
	for _, record := range records {
		i, ok := index[record.Chain]
		if !ok {
			i = len(summaries)
			index[record.Chain] = i
			seen[record.Chain] = map[types.Priority]bool{}
			summaries = append(summaries, InspectChainSummary{Name: record.Chain})
		}
		summaries[i].Constraints++
		priority := record.Constraint.Priority
		if !seen[record.Chain][priority] {
			seen[record.Chain][priority] = true
			summaries[i].Priorities = append(summaries[i].Priorities, priority)
		}
	}
	for i := range summaries {
		priorities := summaries[i].Priorities
		sort.Slice(priorities, func(a, b int) bool { return priorities[a] > priorities[b] })
	}
	return summaries
}
