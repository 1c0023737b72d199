package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"chainlayout/internal/core"
	"chainlayout/internal/types"
)

// Solve resolves a layout like Resolve and additionally evaluates the
// installed constraints into frames.list. Width and Height override the
// root size declared in the document.
func (s Service) Solve(ctx context.Context, req SolveRequest) (SolveResult, error) {
	path, err := requireLayoutPath(req.LayoutPath)
	if err != nil {
		return SolveResult{}, err
	}
	outputDir, err := requireOutputDir(req.OutputDir)
	if err != nil {
		return SolveResult{}, err
	}
	compiled, err := s.compileLayout(ctx, path, req.Fragments, req.Priority)
	if err != nil {
		return SolveResult{}, err
	}
	resolved, err := s.resolveLayout(ctx, compiled)
	if err != nil {
		return SolveResult{}, err
	}

	input := core.SolveInput{
		Root:        types.ElementID(compiled.file.Root.Name),
		RootWidth:   compiled.file.Root.Width,
		RootHeight:  compiled.file.Root.Height,
		Intrinsic:   map[types.ElementID]core.IntrinsicSize{},
		Constraints: resolved.host.ActiveConstraints(),
	}
	if req.Width != nil {
		input.RootWidth = req.Width
	}
	if req.Height != nil {
		input.RootHeight = req.Height
	}
	for _, element := range compiled.file.Elements {
		id := types.ElementID(element.Name)
		input.Elements = append(input.Elements, id)
		if element.Width != nil || element.Height != nil {
			input.Intrinsic[id] = core.IntrinsicSize{Width: element.Width, Height: element.Height}
		}
	}
	solved, err := core.NewFrameSolver().Solve(ctx, input)
	if err != nil {
		return SolveResult{}, err
	}

	output := s.Output(outputDir)
	if err := output.WriteConstraints(resolved.records); err != nil {
		return SolveResult{}, err
	}
	if err := output.WriteReport(resolved.report); err != nil {
		return SolveResult{}, err
	}
	if err := output.WriteFrames(solved.Frames); err != nil {
		return SolveResult{}, err
	}
	for _, dropped := range solved.Dropped {
		log.Ctx(ctx).Warn().Str("constraint", dropped.String()).Msg("optional constraint dropped")
	}
	return SolveResult{
		LayoutName: compiled.file.Metadata.Name,
		OutputDir:  outputDir,
		Frames:     solved.Frames,
		Dropped:    solved.Dropped,
		Skipped:    solved.Skipped,
	}, nil
}
