package main

import (
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/ezrec/asmls/config"
	"github.com/ezrec/asmls/register"
	"github.com/ezrec/asmls/server"
)

func serveCmd() *cobra.Command {
	var configPath string
	var listen string
	var verbose int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the language server over stdio, or TCP with --listen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			cfg, err := config.Load(configPath)
			if err != nil {
				return
			}

			if cmd.Flags().Changed("listen") {
				cfg.Listen = listen
			}
			if cmd.Flags().Changed("verbose") {
				cfg.LogVerbosity = verbose
			}

			commonlog.Configure(cfg.LogVerbosity, cfg.LogPath())

			srv := server.NewServer(register.Build(), cfg)
			srv.Version = version

			err = srv.Run()
			return
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML configuration file")
	cmd.Flags().StringVarP(&listen, "listen", "l", "", "TCP address to listen on instead of stdio")
	cmd.Flags().CountVarP(&verbose, "verbose", "v", "Increase log verbosity")

	return cmd
}
