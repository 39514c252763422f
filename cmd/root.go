// Package cmd defines the codex CLI commands.
package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Ameysr/codex-frontend/internal/app"
	"github.com/Ameysr/codex-frontend/internal/config"
	"github.com/Ameysr/codex-frontend/internal/log"
)

var configFlag string

var rootCmd = &cobra.Command{
	Use:   "codex",
	Short: "Terminal client for the CodeeX coding platform",
	Long: `codex is a terminal client for the CodeeX competitive-programming
platform: browse problems, edit and run solutions, and compete in timed
contests without leaving the terminal.`,
	RunE:          runRoot,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "path to config file")
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// setup loads config, initializes logging, and builds the shared services.
func setup() (app.Services, error) {
	cfg, configPath, err := config.Load(configFlag)
	if err != nil {
		return app.Services{}, err
	}
	if err := log.Init(config.LogPath(cfg, configPath), log.ParseLevel(cfg.LogLevel)); err != nil {
		return app.Services{}, fmt.Errorf("initializing log: %w", err)
	}
	log.Info(log.CatConfig, "config loaded from %q, backend %s", configPath, cfg.BaseURL)
	return app.NewServices(cfg, configPath), nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	services, err := setup()
	if err != nil {
		return err
	}
	defer log.Close()

	model := app.New(services)
	return runProgram(model)
}

// runProgram starts the Bubble Tea program with the pubsub bridge attached.
func runProgram(model *app.Model) error {
	var program *tea.Program
	model.AttachProgram(func() *tea.Program { return program })
	program = tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	return nil
}
