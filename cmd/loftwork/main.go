package main

import (
	"os"

	"github.com/spf13/cobra"

	"loftwork/internal/interfaces/cli/migrate"
	"loftwork/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "loftwork",
		Short: "Loftwork - property management dashboard",
		Long:  `Loftwork is the property management dashboard backend with built-in server and migration tools.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
