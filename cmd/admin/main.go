package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"

	"docmanagement/internal/admin"
	"docmanagement/internal/client"
	"docmanagement/internal/config"
	"docmanagement/internal/console"
	"docmanagement/internal/domain/models"
	"docmanagement/internal/store"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "admin.yaml"

var (
	configPath string
	apiURL     string
	forceInit  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "admin [location]",
	Short: "Folder and document administration console",
	Long: `Interactive console for the docmanagement API.

The optional location opens a view on start, e.g. /folder, /document/new
or /document?page=2&sort=title,desc. Type "help" at the prompt for commands.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		cfg, err := config.LoadAdmin(configPath, cmd.Flags().Changed("config"))
		if err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
		if apiURL != "" {
			cfg.APIBaseURL = apiURL
		}
		loc, err := cfg.Location()
		if err != nil {
			return err
		}

		logFile, err := config.SetupLogFile(cfg.LogDir, "admin", cfg.MaxLogFiles)
		if err != nil {
			return fmt.Errorf("setting up logging: %w", err)
		}
		defer logFile.Close()

		level := slog.LevelInfo
		if cfg.Debug {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level}))
		logger.Info("console starting", "api", cfg.APIBaseURL, "page_size", cfg.PageSize)

		api := client.New(cfg.APIBaseURL, cfg.RequestTimeout, logger)
		app := console.New(
			store.New[models.Folder](admin.FolderEntity, api.Folders, logger),
			store.New[models.Document](admin.DocumentEntity, api.Documents, logger),
			console.Options{
				PageSize:         cfg.PageSize,
				RelationPageSize: cfg.RelationPageSize,
				Location:         loc,
			},
			cmd.OutOrStdout(),
			logger,
		)

		start := admin.ListLocation(admin.FolderEntity, nil)
		if len(args) == 1 {
			start = args[0]
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return app.Run(ctx, cmd.InOrStdin(), start)
	},
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
		if forceInit {
			flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
		}
		f, err := os.OpenFile(configPath, flags, 0o644)
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
		}
		if err != nil {
			return fmt.Errorf("creating config: %w", err)
		}
		defer f.Close()

		if err := config.DefaultAdminConfig().Write(f); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration initialized at %s\n", configPath)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAdmin(configPath, cmd.Flags().Changed("config"))
		if err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
		if apiURL != "" {
			cfg.APIBaseURL = apiURL
		}
		return cfg.Write(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "path to the YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "API base URL (overrides config and ADMIN_API_URL)")
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "overwrite an existing file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
