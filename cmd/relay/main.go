//	@title			File Relay API
//	@version		1.0
//	@description	Ephemeral file relay: upload a file, share the short code, download or preview it for three hours.
//
//	@host		localhost:8080
//	@BasePath	/

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/filerelay/service/internal/config"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		port       string
	)

	root := &cobra.Command{
		Use:   "relay",
		Short: "Ephemeral file relay",
		Long: "relay accepts file uploads, hands out short share codes and serves\n" +
			"the files back for download or inline preview until they expire.\n" +
			"All state lives in memory and is lost on restart.",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			return serve(cfg)
		},
	}

	root.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file (default $CONFIG_FILE)")
	root.Flags().StringVarP(&port, "port", "p", "", "port to listen on (overrides PORT)")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "relay %s\n", version)
		},
	})

	return root
}
