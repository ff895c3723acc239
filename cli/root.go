// Package cli holds the portal command tree: the server, store administration
// and a client for the FAQ and incident APIs.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"hospital-portal/client"
	"hospital-portal/core/appbootstrap"
	"hospital-portal/config"
	"hospital-portal/core/utils"

	"github.com/spf13/cobra"
)

// app is the state shared by every subcommand once the config is loaded.
type app struct {
	configPath string
	serverURL  string
	jsonOutput bool

	cfg    *config.AppConfig
	logger *utils.Logger
	out    io.Writer
}

// NewRootCommand builds the full command tree writing to stdout.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{out: os.Stdout})
}

func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "portal",
		Short:         "Hospital FAQ and incident-report portal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	rootCmd.SetOut(a.out)
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: "+config.DefaultConfigPath+" when present)")
	rootCmd.PersistentFlags().StringVar(&a.serverURL, "server", "", "API base URL for client commands (overrides client.base_url)")
	rootCmd.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "print JSON instead of tables")

	rootCmd.AddCommand(
		serveCommand(a),
		migrateCommand(a),
		seedCommand(a),
		checkCommand(a),
		faqCommand(a),
		incidentCommand(a),
		envCommand(),
	)
	return rootCmd
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	logger, err := appbootstrap.NewLogger(cfg)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) client() *client.Client {
	base := strings.TrimSpace(a.serverURL)
	if base == "" {
		base = a.cfg.Client.BaseURL
	}
	return client.New(base, a.cfg.Client.Timeout)
}

func (a *app) drafts() *client.DraftStore {
	path := strings.TrimSpace(a.cfg.Client.DraftPath)
	if path == "" {
		path = client.DefaultDraftPath()
	}
	return client.NewDraftStore(path)
}

func envCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the environment variables the config understands",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), config.Usage())
			return err
		},
	}
}
