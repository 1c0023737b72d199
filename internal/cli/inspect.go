package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"chainlayout/internal/app"
	"chainlayout/internal/types"
)

type inspectOptions struct {
	OutputDir string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect resolved constraints and solved frames",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.OutputDir, "output", "out", "Output directory")
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	return cmd
}

func runInspect(cmd *cobra.Command, opts inspectOptions) error {
	service := newAppService()
	result, err := service.Inspect(app.InspectRequest{
		OutputDir: resolveString(cmd, opts.OutputDir, "output", "output"),
	})
	if err != nil {
		return err
	}

	fmt.Printf("constraints.list entries: %d\n", result.ConstraintCount)
	for _, chain := range result.Chains {
		fmt.Printf("- %s: %d constraints (priority %s)\n", chain.Name, chain.Constraints, formatPriorities(chain.Priorities))
	}
	if len(result.Frames) == 0 {
		return nil
	}
	fmt.Printf("frames.list entries: %d\n", len(result.Frames))
	if len(result.Unknown) > 0 {
		names := make([]string, 0, len(result.Unknown))
		for _, id := range result.Unknown {
			names = append(names, string(id))
		}
		fmt.Printf("underdetermined: %s\n", strings.Join(names, ", "))
	}
	return nil
}

func formatPriorities(priorities []types.Priority) string {
	parts := make([]string, 0, len(priorities))
	for _, priority := range priorities {
		parts = append(parts, types.FormatNumber(float64(priority)))
	}
	return strings.Join(parts, ", ")
}
