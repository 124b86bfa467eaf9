package main

import (
	"os"

	"github.com/Xunop/aldiaa/internal/config"
	"github.com/Xunop/aldiaa/internal/log"
	"github.com/spf13/cobra"
)

const (
	greetingBanner = `
 █████  ██      ██████  ██  █████   █████  
██   ██ ██      ██   ██ ██ ██   ██ ██   ██ 
███████ ██      ██   ██ ██ ███████ ███████ 
██   ██ ██      ██   ██ ██ ██   ██ ██   ██ 
██   ██ ███████ ██████  ██ ██   ██ ██   ██ 
`
)

func newRootCmd() *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "aldiaa",
		Short:         "Aldiaa is a personal book catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.GetConfig(configFile); err != nil {
				return err
			}
			log.Logger = log.NewLogger()
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			log.Logger.Sync()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (toml, yaml or json)")

	rootCmd.AddCommand(
		newServeCmd(),
		newBooksCmd(),
		newStatsCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
