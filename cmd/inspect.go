// Package cmd implements CLI commands.
package cmd

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"firestige.xyz/plipbox/internal/config"
	"firestige.xyz/plipbox/internal/core"
	"firestige.xyz/plipbox/internal/core/decoder"
)

var inspectMAC string

var inspectCmd = &cobra.Command{
	Use:   "inspect <hex-frame>",
	Short: "Decode a single frame given as hex and show its classification",
	Long: `Decode one Ethernet frame given as hex bytes and print the decoded view,
every predicate, and the resulting class. Colons, dashes and whitespace in
the hex string are ignored.

Examples:
  plipbox inspect ffffffffffff0200000000010806
  plipbox inspect "1a:11:af:a0:47:11 02:00:00:00:00:01 08:00" --mac 1a:11:af:a0:47:11`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runInspect(cmd.OutOrStdout(), configFile, inspectMAC, args[0]); err != nil {
			exitWithError("inspect failed", err)
		}
	},
}

func init() {
	inspectCmd.Flags().StringVar(&inspectMAC, "mac", "",
		"node hardware address, overrides node.mac_addr")
}

func runInspect(out io.Writer, path, mac, frame string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	own := cfg.Node.MACAddr
	if mac != "" {
		if own, err = core.ParseHardwareAddress(mac); err != nil {
			return err
		}
	}

	data, err := parseHexFrame(frame)
	if err != nil {
		return err
	}

	view, err := decoder.Decode(data)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "frame            %s\n", view)
	fmt.Fprintf(out, "own              %s\n", own)
	fmt.Fprintf(out, "bootp broadcast  %t\n", view.IsBootpBroadcast())
	fmt.Fprintf(out, "for me           %t\n", view.IsForMe(own))
	fmt.Fprintf(out, "magic online     %t\n", view.IsMagicOnline())
	fmt.Fprintf(out, "magic offline    %t\n", view.IsMagicOffline())
	fmt.Fprintf(out, "class            %s\n", view.Classify(own))
	return nil
}

// parseHexFrame accepts hex with optional ':', '-' and whitespace separators.
func parseHexFrame(s string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ':', '-', ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)
	clean = strings.TrimPrefix(strings.TrimPrefix(clean, "0x"), "0X")

	data, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("invalid hex frame: %w", err)
	}
	return data, nil
}
