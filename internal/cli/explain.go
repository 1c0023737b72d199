package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"chainlayout/internal/app"
)

type explainOptions struct {
	Parent   string
	Padding  float64
	Priority string
}

func newExplainCommand() *cobra.Command {
	opts := explainOptions{}
	cmd := &cobra.Command{
		Use:   "explain FORMAT",
		Short: "Print the constraints a single format string resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.Parent, "parent", "", "Element that | refers to")
	cmd.Flags().Float64Var(&opts.Padding, "padding", 0, "Default padding for bare -")
	cmd.Flags().StringVar(&opts.Priority, "priority", "", "Chain priority")
	_ = viper.BindPFlag("padding", cmd.Flags().Lookup("padding"))
	return cmd
}

func runExplain(cmd *cobra.Command, format string, opts explainOptions) error {
	service := newAppService()
	result, err := service.Explain(cmd.Context(), app.ExplainRequest{
		Format:   format,
		Parent:   opts.Parent,
		Padding:  resolveFloat(cmd, opts.Padding, "padding", "padding"),
		Priority: opts.Priority,
	})
	if err != nil {
		return err
	}
	fmt.Printf("%s chain, %d nodes\n", result.Capture.Axis, len(result.Capture.Nodes))
	for _, constraint := range result.Constraints {
		fmt.Println(constraint)
	}
	for _, placeholder := range result.Placeholders {
		fmt.Printf("placeholder: %s\n", placeholder)
	}
	return nil
}
