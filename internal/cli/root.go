// Package cli implements the cobra-based command surface of dockman.
//
// The root command with no subcommand starts the interactive session;
// "list" is the scripting-friendly one-shot alternative. This file
// defines the root command, the global flags, and the error-to-exit-code
// translation in Execute.
package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/dockman/internal/config"
	"github.com/shinji-kodama/dockman/internal/docker"
	"github.com/shinji-kodama/dockman/internal/model"
	"github.com/shinji-kodama/dockman/internal/ui"
)

// Global flag variables bound to cobra persistent flags on the root
// command, so they apply to the interactive session and to "list" alike.
var (
	// configPath overrides the default config file location.
	configPath string

	// verbose raises the log level to debug regardless of the config.
	verbose bool

	// showAll includes stopped containers in every listing.
	showAll bool

	// noColor disables ANSI styling in all output.
	noColor bool
)

// version, commit, and date are set at build time via ldflags and
// injected from the main package.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
// Running it with no subcommand starts the interactive session.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dockman",
		Short: "Interactive Docker container manager",
		Long: `dockman is an interactive manager for Docker containers.

It shows a numbered list of containers and a per-container action menu:
start, stop, restart, remove, logs, stats, exec, and inspect. Destructive
actions ask for confirmation; the list refreshes after every change.

Run with no arguments for the interactive session, or use "dockman list"
for one-shot scripted output.`,

		// Errors are formatted by Execute, not by cobra.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to the config file (default: <user config dir>/dockman/config.jsonc)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&showAll, "all", "a", false, "Include stopped containers")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(NewListCommand())

	return rootCmd
}

// runSession loads the configuration, connects to the daemon, and hands
// control to the interactive menu until the user quits.
func runSession(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := docker.NewClient()
	if err != nil {
		return err // NewClient already returns a CLIError
	}
	defer func() { _ = client.Close() }()
	client.SetStopTimeout(cfg.StopTimeout)

	// A dead daemon is fatal at startup; mid-session failures are
	// recoverable and handled inside the menu loop.
	if err := client.Ping(cmd.Context()); err != nil {
		return err
	}

	menu := ui.New(client, ui.Options{
		LogTail: cfg.LogTail,
		ShowAll: cfg.ShowAll || showAll,
	}, os.Stdin, os.Stdout)

	return menu.Run(cmd.Context())
}

// loadConfig resolves the config file path, loads it, and applies the
// flag overrides that take precedence over file settings. It also
// initializes the process-wide logger, since every command needs that
// done before its first daemon call.
func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return config.Config{}, model.WrapCLIError(model.ExitGeneralError,
				"cannot resolve config path", err)
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, model.WrapCLIError(model.ExitGeneralError,
			"cannot load configuration", err)
	}

	if verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Log.Initialize(); err != nil {
		return config.Config{}, model.WrapCLIError(model.ExitGeneralError,
			"cannot initialize logging", err)
	}

	if cfg.NoColor || noColor {
		color.NoColor = true
	}

	return cfg, nil
}

// Execute runs the root command and translates errors into OS exit
// codes. CLIError carries its own code; anything else exits 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		if cliErr, ok := err.(*model.CLIError); ok {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError writes "Error: <message>" to stderr, with the underlying
// cause appended when there is one.
func printError(message string, underlying error) {
	if underlying != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
}
