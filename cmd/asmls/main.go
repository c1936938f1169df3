// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	_ "github.com/tliron/commonlog/simple"
)

var version = "0.0.1"

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "asmls",
		Short:         "Language server for x86 assembly",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(serveCmd(), registersCmd(), versionCmd())

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the server version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println(version)
		},
	}
}

func main() {
	err := rootCmd().Execute()
	if err != nil {
		log.Printf("%v: %v", os.Args[0], err)
		os.Exit(1)
	}
}
