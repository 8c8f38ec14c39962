package main

import (
	"context"
	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/myrjola/mattepaint/cmd/cli/catalog"
	"github.com/spf13/cobra"
	"os"
	"syscall"
)

const version = "0.1.0"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{ //nolint:exhaustruct // defaults are fine
		Use:  "mattepaint-cli",
		Long: `Command line utilities for the Mattepaint gallery catalog`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			// The .env file is optional.
			_ = godotenv.Load()
		},
	}
	catalog.Register(rootCmd)
	return rootCmd
}

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		os.Exit(1)
	}
}
