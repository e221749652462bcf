package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "conquergate",
		Short: "MMO authentication and session gateway server",
		Long: `conquergate runs the network core of the game server: the
authentication gateway that checks credentials and issues handoff
promises, and the session gateway that redeems them and keeps the
world view synchronized across connected clients.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAccountCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
