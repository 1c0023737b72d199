package app

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Resolve writes constraints.list and layout.report for a layout.
func (s Service) Resolve(ctx context.Context, req ResolveRequest) (ResolveResult, error) {
	path, err := requireLayoutPath(req.LayoutPath)
	if err != nil {
		return ResolveResult{}, err
	}
	outputDir, err := requireOutputDir(req.OutputDir)
	if err != nil {
		return ResolveResult{}, err
	}
	compiled, err := s.compileLayout(ctx, path, req.Fragments, req.Priority)
	if err != nil {
		return ResolveResult{}, err
	}
	emitHints(checkResolveDefaultsHints(req, compiled.declared))

	resolved, err := s.resolveLayout(ctx, compiled)
	if err != nil {
		return ResolveResult{}, err
	}
	output := s.Output(outputDir)
	if err := output.WriteConstraints(resolved.records); err != nil {
		return ResolveResult{}, err
	}
	if err := output.WriteReport(resolved.report); err != nil {
		return ResolveResult{}, err
	}

	result := ResolveResult{
		LayoutName:  compiled.file.Metadata.Name,
		OutputDir:   outputDir,
		Constraints: len(resolved.records),
	}
	for _, chain := range resolved.report.Chains {
		result.Placeholders = append(result.Placeholders, chain.Placeholders...)
	}
	log.Ctx(ctx).Info().
		Str("layout", result.LayoutName).
		Int("constraints", result.Constraints).
		Str("output", outputDir).
		Msg("layout resolved")
	return result, nil
}
