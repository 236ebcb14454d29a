package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/motormarket/adminctl"
	"github.com/motormarket/adminctl/cmd/adminctl/config"
	"github.com/motormarket/adminctl/internal/logger"
	"github.com/motormarket/adminctl/internal/version"
	"github.com/motormarket/adminctl/storage/model"
)

var (
	configFile string
	backends   model.Backends
	client     *adminctl.Client
	auth       *adminctl.AuthState
)

var rootCmd = &cobra.Command{
	Use:          "adminctl",
	Version:      version.VERSION,
	Short:        "adminctl manages the motormarket admin console from the command line",
	Long:         "adminctl is the command-line front end for the motormarket marketplace admin API: session management, the metrics dashboard, and the article and auto-dealership listings.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp()
	},
}

func initApp() error {
	config.Load(configFile)
	c := config.Get()
	if err := logger.Init(c.Logging.Internal.Level, c.Logging.Internal.Dir, c.Logging.Internal.StdErr); err != nil {
		return err
	}

	backs, err := config.LoadStorageBackends(c.Storage)
	if err != nil {
		return err
	}
	backends = backs

	client = adminctl.NewClient(
		adminctl.ClientConf{
			BaseURL: c.API.BaseURL,
			Timeout: c.API.Timeout.Duration(),
		}, backends.Session,
	)
	auth = adminctl.NewAuthState(client, backends.Session)
	return auth.RestoreSession()
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "the config file to use")
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, adminctl.ErrNoToken) {
			fmt.Fprintln(os.Stderr, "Not logged in; run `adminctl login`")
		}
		os.Exit(1)
	}
}
