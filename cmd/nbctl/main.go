package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fr0stylo/nbgate/internal/adapters/sqlite"
	"github.com/fr0stylo/nbgate/internal/config"
	"github.com/fr0stylo/nbgate/internal/db"
	"github.com/fr0stylo/nbgate/internal/netbilling"
	"github.com/fr0stylo/nbgate/internal/observability"
)

var Version = "dev"

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	rootCmd := &cobra.Command{
		Use:           "nbctl",
		Short:         "nbctl - manage NETbilling sites, reports and members",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("db", "", "Database path (defaults to NBGATE_DB_PATH)")

	rootCmd.AddCommand(siteCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(memberCmd())
	rootCmd.AddCommand(syncCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env is everything a subcommand may need, opened on demand.
type env struct {
	cfg      config.Config
	log      *slog.Logger
	database *db.Database
	store    *sqlite.Store
}

func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.LoadForTool()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if path, _ := cmd.Flags().GetString("db"); path != "" {
		cfg.Database.Path = path
	}

	log := observability.NewLogger(cmd.ErrOrStderr(), "text", cfg.Logging.Level)
	database, err := db.New(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &env{cfg: cfg, log: log, database: database, store: sqlite.NewStore(database)}, nil
}

func (e *env) Close() error {
	return e.database.Close()
}

func (e *env) client() *netbilling.Client {
	return netbilling.NewClient(netbilling.ClientConfig{
		BaseURL:   e.cfg.Netbilling.BaseURL,
		Timeout:   e.cfg.Netbilling.Timeout,
		UserAgent: e.cfg.Netbilling.UserAgent,
	}, e.log)
}

// site loads a configured site or fails with a readable error.
func (e *env) site(cmd *cobra.Command, tag string) (netbilling.SiteConfig, error) {
	site, found, err := e.store.ByTag(cmd.Context(), tag)
	if err != nil {
		return netbilling.SiteConfig{}, fmt.Errorf("load site %q: %w", tag, err)
	}
	if !found {
		return netbilling.SiteConfig{}, fmt.Errorf("unknown site %q", tag)
	}
	return site, nil
}
