package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"chainlayout/internal/core"
	"chainlayout/internal/policies"
	"chainlayout/internal/types"
)

// Explain parses a single format string and resolves it against a scratch
// host. Every element named in the format is registered under Parent, or
// under a synthetic root when Parent is empty.
func (s Service) Explain(ctx context.Context, req ExplainRequest) (ExplainResult, error) {
	format := strings.TrimSpace(req.Format)
	if format == "" {
		return ExplainResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("format is required")
	}
	priority, err := policies.ParsePriority(req.Priority)
	if err != nil {
		return ExplainResult{}, err
	}
	parser := core.NewFormatParser()
	if req.Padding != nil {
		parser.DefaultPadding = *req.Padding
	}
	parent := types.ElementID(strings.TrimSpace(req.Parent))
	builder, err := parser.Parse(format, parent)
	if err != nil {
		return ExplainResult{}, err
	}
	capture, err := builder.Named("explain").Capture()
	if err != nil {
		return ExplainResult{}, err
	}

	host := s.NewHost()
	root := parent
	if root == "" {
		root = "_root"
	}
	if err := host.AddElement(root, ""); err != nil {
		return ExplainResult{}, err
	}
	for _, node := range capture.Nodes {
		for _, element := range node.Elements {
			if element == root {
				continue
			}
			// A name repeated across nodes is rejected by the resolver.
			if err := host.AddElement(element, root); err != nil && errbuilder.CodeOf(err) != errbuilder.CodeAlreadyExists {
				return ExplainResult{}, err
			}
		}
	}

	layoutCtx := core.NewLayoutContext(host)
	if priority == 0 {
		priority = layoutCtx.Priority()
	}
	var result core.ChainResult
	err = layoutCtx.WithPriority(priority, func() error {
		var err error
		result, _, err = layoutCtx.Chain(ctx, core.NewChainResolver(host), capture)
		return err
	})
	if err != nil {
		return ExplainResult{}, err
	}

	explained := ExplainResult{
		Capture:      capture,
		Placeholders: result.Placeholders,
	}
	for _, constraint := range result.Constraints {
		explained.Constraints = append(explained.Constraints, constraint.String())
	}
	return explained, nil
}
