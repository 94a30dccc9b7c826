// Package cmd implements CLI commands.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"firestige.xyz/plipbox/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration and print the effective settings",
	Long: `Load the configuration file (or defaults when --config is omitted),
apply PLIPBOX_* environment overrides, validate it, and print the result
as YAML under the plipbox: root key.

Examples:
  plipbox validate -c /etc/plipbox/plipbox.yml
  PLIPBOX_NODE_MAC_ADDR=02:00:00:00:00:01 plipbox validate`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd.OutOrStdout(), configFile); err != nil {
			fmt.Fprintf(os.Stderr, "INVALID: %v\n", err)
			os.Exit(1)
		}
	},
}

func runValidate(out io.Writer, path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(map[string]*config.GlobalConfig{"plipbox": cfg})
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}

	fmt.Fprintf(out, "VALID: node %s, capture %s\n", cfg.Node.MACAddr, cfg.Capture.Type)
	_, err = out.Write(data)
	return err
}
