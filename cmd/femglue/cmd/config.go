package cmd

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GoCodeAlone/femglue"
)

// NewConfigCommand creates the config command
func NewConfigCommand() *cobra.Command {
	var (
		format      string
		outputDir   string
		interactive bool
		describe    bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print or write the active configuration",
		Long: `Render the active configuration as JSON, YAML or TOML. With --dir the result is
written to femglue.<format> in that directory; femglue reads femglue.json.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := femglue.Current().Clone()
			out := cmd.OutOrStdout()

			if describe {
				desc := femglue.DescribeConfig(cfg)
				for _, name := range slices.Sorted(maps.Keys(desc)) {
					fmt.Fprintf(out, "%s: %s\n", name, desc[name])
				}
				return nil
			}

			if interactive {
				p, err := askPrecision(cfg.Precision)
				if err != nil {
					return err
				}
				cfg.Precision = p
			}
			if err := femglue.ValidateConfig(cfg); err != nil {
				return err
			}

			if outputDir == "" {
				data, err := femglue.GenerateSampleConfig(cfg, format)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			}

			path := filepath.Join(outputDir, "femglue."+strings.ToLower(format))
			if err := femglue.SaveSampleConfig(cfg, format, path); err != nil {
				return err
			}
			fmt.Fprintf(out, "Configuration written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, yaml or toml")
	cmd.Flags().StringVarP(&outputDir, "dir", "d", "", "write the configuration into this directory")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "prompt for each setting")
	cmd.Flags().BoolVar(&describe, "describe", false, "list the settings and what they do")

	return cmd
}
