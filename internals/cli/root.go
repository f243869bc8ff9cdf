package cli

import (
	"github.com/spf13/cobra"

	"performance_backend/internals/configs"
)

// NewRootCommand builds the CLI. With no subcommand it serves HTTP.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "performances",
		Short: "Performance schedule backend",
		Long:  "Scheduling, trash/restore and approval workflow for venue performances.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configs.LoadEnv()
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewMigrateCommand())
	cmd.AddCommand(NewSeedCommand())

	return cmd
}
