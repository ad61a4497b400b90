// Kvmctl is a command-line controller for network-attached KVM switches.
//
// It speaks the switch's fixed-length binary TCP protocol to query and
// change the active port, toggle the audible buzzer, and set the on-device
// display timeout. An interactive dashboard is available via 'kvmctl tui'.
//
// Usage:
//
//	kvmctl [command] [flags]
//
// Running without arguments prints the usage text.
// See 'kvmctl --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/kvmctl/internal/device"
	"github.com/muurk/kvmctl/internal/logging"
	"github.com/muurk/kvmctl/internal/version"
)

func main() {
	if err := logging.InitializeFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if device.IsCommunicationError(err) {
			fmt.Fprintln(os.Stderr)
			fmt.Fprintln(os.Stderr, device.GetTroubleshootingHint(err))
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "kvmctl",
	Short: "KVM Switch Control Utility",
	Long: `A command-line controller for network-attached KVM switches.

Queries and changes the active port, toggles the audible buzzer, and sets
the on-device display timeout over the switch's binary TCP protocol.

If no command is specified, the usage text is printed.`,
	Version: version.Version,
	// Unrecognized input falls through to the usage text with exit 0;
	// the switch tool has always behaved this way.
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("kvmctl %s (commit: %s)\n", version.Version, version.Commit)
	},
}
