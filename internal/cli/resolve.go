package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"chainlayout/internal/app"
)

type resolveOptions struct {
	Layout    string
	Fragments []string
	OutputDir string
	Priority  string
}

func newResolveCommand() *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve layout chains into constraints.list and layout.report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd.Context(), cmd, opts)
		},
	}
	addLayoutFlags(cmd, &opts.Layout, &opts.Fragments, &opts.OutputDir, &opts.Priority)
	return cmd
}

// addLayoutFlags registers the flags shared by resolve and solve.
func addLayoutFlags(cmd *cobra.Command, layout *string, fragments *[]string, output *string, priority *string) {
	cmd.Flags().StringVar(layout, "layout", "", "Layout document path")
	cmd.Flags().StringSliceVar(fragments, "fragment", nil, "Fragment document paths (replace compose entries)")
	cmd.Flags().StringVar(output, "output", "out", "Output directory")
	cmd.Flags().StringVar(priority, "priority", "", "Default chain priority (required, high, low, fitting or 1-1000)")
	_ = viper.BindPFlag("layout", cmd.Flags().Lookup("layout"))
	_ = viper.BindPFlag("fragments", cmd.Flags().Lookup("fragment"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("priority", cmd.Flags().Lookup("priority"))
}

func runResolve(ctx context.Context, cmd *cobra.Command, opts resolveOptions) error {
	service := newAppService()
	result, err := service.Resolve(ctx, app.ResolveRequest{
		LayoutPath: resolveString(cmd, opts.Layout, "layout", "layout"),
		Fragments:  resolveStrings(cmd, opts.Fragments, "fragments", "fragment"),
		OutputDir:  resolveString(cmd, opts.OutputDir, "output", "output"),
		Priority:   resolveString(cmd, opts.Priority, "priority", "priority"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("resolved: %s (%d constraints, %d placeholders) -> %s\n",
		result.LayoutName, result.Constraints, len(result.Placeholders), result.OutputDir)
	return nil
}
