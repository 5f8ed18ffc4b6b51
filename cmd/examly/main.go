package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configFile string

func main() {
	rootCommand := &cobra.Command{
		Use:          "examly",
		Short:        "Manage exams and review schedules from the command line",
		SilenceUsage: true,
	}
	rootCommand.PersistentFlags().StringVar(&configFile, "config", os.Getenv("EXAMLY_CONFIG"), "path to the config file")

	rootCommand.AddCommand(newMigrateCommand())
	rootCommand.AddCommand(newReviewCommand())

	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
