package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"chainlayout/internal/app"
	"chainlayout/internal/types"
)

type solveOptions struct {
	resolveOptions
	Width  float64
	Height float64
}

func newSolveCommand() *cobra.Command {
	opts := solveOptions{}
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Resolve a layout and evaluate element frames into frames.list",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSolve(cmd.Context(), cmd, opts)
		},
	}
	addLayoutFlags(cmd, &opts.Layout, &opts.Fragments, &opts.OutputDir, &opts.Priority)
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "Root width (overrides root.width)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "Root height (overrides root.height)")
	_ = viper.BindPFlag("width", cmd.Flags().Lookup("width"))
	_ = viper.BindPFlag("height", cmd.Flags().Lookup("height"))
	return cmd
}

func runSolve(ctx context.Context, cmd *cobra.Command, opts solveOptions) error {
	service := newAppService()
	result, err := service.Solve(ctx, app.SolveRequest{
		LayoutPath: resolveString(cmd, opts.Layout, "layout", "layout"),
		Fragments:  resolveStrings(cmd, opts.Fragments, "fragments", "fragment"),
		OutputDir:  resolveString(cmd, opts.OutputDir, "output", "output"),
		Priority:   resolveString(cmd, opts.Priority, "priority", "priority"),
		Width:      resolveFloat(cmd, opts.Width, "width", "width"),
		Height:     resolveFloat(cmd, opts.Height, "height", "height"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("solved: %s -> %s\n", result.LayoutName, result.OutputDir)
	for _, frame := range result.Frames {
		fmt.Printf("- %s x=%s y=%s w=%s h=%s\n",
			frame.Element,
			spanValue(frame.Horizontal, frame.Horizontal.Position),
			spanValue(frame.Vertical, frame.Vertical.Position),
			spanValue(frame.Horizontal, frame.Horizontal.Size),
			spanValue(frame.Vertical, frame.Vertical.Size))
	}
	if len(result.Dropped) > 0 {
		fmt.Printf("dropped optional constraints: %d\n", len(result.Dropped))
	}
	if result.Skipped > 0 {
		fmt.Printf("skipped inequalities: %d\n", result.Skipped)
	}
	return nil
}

func spanValue(span types.AxisSpan, value float64) string {
	if !span.Known {
		return "?"
	}
	return fmt.Sprintf("%.2f", value)
}
