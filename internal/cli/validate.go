package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"chainlayout/internal/app"
)

type validateOptions struct {
	Layout    string
	Fragments []string
	Dir       string
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate layout documents and their chains",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Layout, "layout", "", "Layout document path")
	cmd.Flags().StringSliceVar(&opts.Fragments, "fragment", nil, "Fragment document paths (replace compose entries)")
	cmd.Flags().StringVar(&opts.Dir, "dir", "", "Validate every *.layout.yaml below this directory")
	_ = viper.BindPFlag("layout", cmd.Flags().Lookup("layout"))
	_ = viper.BindPFlag("fragments", cmd.Flags().Lookup("fragment"))
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, opts validateOptions) error {
	service := newAppService()
	result, err := service.Validate(ctx, app.ValidateRequest{
		LayoutPath: resolveString(cmd, opts.Layout, "layout", "layout"),
		Fragments:  resolveStrings(cmd, opts.Fragments, "fragments", "fragment"),
		Dir:        strings.TrimSpace(opts.Dir),
	})
	for _, layout := range result.Layouts {
		fmt.Printf("validated: %s (%d chains)\n", layout.Name, layout.Chains)
	}
	if err != nil {
		if result.Failed != "" {
			fmt.Printf("failed: %s\n", result.Failed)
		}
		return err
	}
	return nil
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

// resolveFloat returns nil when neither the flag nor the config key is set.
func resolveFloat(cmd *cobra.Command, value float64, key string, flagName string) *float64 {
	if flagChanged(cmd, flagName) {
		return &value
	}
	if viper.IsSet(key) {
		configured := viper.GetFloat64(key)
		return &configured
	}
	return nil
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
