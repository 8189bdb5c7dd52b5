package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "apprepogen",
		Short: "Build a static package catalog from package descriptors",
		Long: `Apprepogen reads package descriptors (.yml or .py) from a directory,
validates them, fetches each package's release and beta manifests and
produces a catalog sorted by title.

Descriptors must declare title, iconUri and manifestUrl. Descriptors that
fail validation are skipped; descriptors that cannot be parsed abort the run.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default $APPREPOGEN_CONFIG)")

	// Add subcommands
	rootCmd.AddCommand(NewGenerateCmd())
	rootCmd.AddCommand(NewListCmd())

	return rootCmd
}
