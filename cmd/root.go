// Package cmd implements CLI commands using cobra framework.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "plipbox",
	Short: "plipbox - Ethernet frame classifier for a PLIP bridge",
	Long: `plipbox decides which Ethernet frames a bridged host should see.
Each frame is decoded from its 14-byte header and classified as one of:

  magic-online    EtherType 0xFFFF control signal
  magic-offline   EtherType 0xFFFE control signal
  for-me          unicast to the node address, broadcast ARP, or a BOOTP/DHCP broadcast
  not-for-me      everything else

Frames are read from a pcap/pcapng file or captured live via AF_PACKET.`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "",
		"config file path (defaults and PLIPBOX_* env vars when empty)")

	// Add subcommands
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(validateCmd)
}

// exitWithError prints error message and exits with code 1
func exitWithError(msg string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	}
	os.Exit(1)
}
