package cmd

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"github.com/zhubert/parley/internal/app"
	"github.com/zhubert/parley/internal/config"
	"github.com/zhubert/parley/internal/im"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/protocol"
	"github.com/zhubert/parley/internal/protocol/loopback"
)

var (
	debugMode             bool
	quietMode             bool
	demoMode              bool
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "parley",
	Short: "Terminal instant messaging client",
	Long: `Parley is a terminal instant messaging client.
Every configured account is logged in at startup and its contacts and
conversations are shown in a single window.

Accounts are managed with "parley accounts". Use --demo to try parley
against a built-in loopback account.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.Flags().BoolVar(&demoMode, "demo", false, "Log in a loopback demo account when no accounts are configured")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	// Set version dynamically
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("parley %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("parley %s\n", version)
}

// buildServer creates a protocol instance for every enabled account. With
// demo set and nothing enabled, the loopback demo account is used.
func buildServer(accounts []config.Account, demo bool) (*im.Server, error) {
	if len(accounts) == 0 && demo {
		accounts = []config.Account{loopback.Account()}
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("no accounts configured\n\nAdd one with \"parley accounts add\" or run \"parley --demo\"")
	}

	server := im.NewServer()
	for _, acc := range accounts {
		p, err := protocol.New(acc)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", acc.Name, err)
		}
		id := server.AddInstance(acc.Name, p)
		logger.WithComponent("cmd").Info("account added", "account", acc.Name, "protocol", acc.Protocol, "instance", id)
	}
	return server, nil
}

// recordVersion remembers the running version so upgrades can be logged.
func recordVersion(cfg *config.Config) {
	if version == "" || version == "dev" || cfg.GetLastSeenVersion() == version {
		return
	}
	logger.WithComponent("cmd").Info("version changed", "from", cfg.GetLastSeenVersion(), "to", version)
	cfg.SetLastSeenVersion(version)
	if err := cfg.Save(); err != nil {
		logger.Warn("failed to save last seen version: %v", err)
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	accounts, err := config.LoadAccounts()
	if err != nil {
		return fmt.Errorf("error loading accounts: %w", err)
	}

	server, err := buildServer(accounts.Enabled(), demoMode)
	if err != nil {
		return err
	}

	// Ensure logger is closed on exit
	defer logger.Close()
	recordVersion(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	server.LoginAll(ctx)
	defer server.Quit()

	// Create and run the app
	m := app.New(cfg, server, version)
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
