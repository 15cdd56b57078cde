package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/TobiSchelling/climatenews/internal/agent"
	"github.com/TobiSchelling/climatenews/internal/collect"
	"github.com/TobiSchelling/climatenews/internal/config"
	"github.com/TobiSchelling/climatenews/internal/database"
	"github.com/TobiSchelling/climatenews/internal/favorites"
	"github.com/TobiSchelling/climatenews/internal/fetch"
	"github.com/TobiSchelling/climatenews/internal/history"
	"github.com/TobiSchelling/climatenews/internal/profile"
	"github.com/TobiSchelling/climatenews/internal/scheduler"
	"github.com/TobiSchelling/climatenews/internal/server"
	"github.com/TobiSchelling/climatenews/internal/session"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "climatenews",
	Short:   "Personalised climate news analysis",
	Long:    "climatenews explains climate news articles in plain language, tailored to your concerns, region and interests.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		} else {
			log.SetFlags(log.LstdFlags)
		}

		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		loadEnv()

		path, err := config.ResolveConfigPath(configPath)
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(newsCmd)
}

// loadEnv reads API keys from ./.env and the config directory's .env.
// Variables already set in the environment win.
func loadEnv() {
	for _, path := range []string{".env", filepath.Join(config.ConfigDir(), ".env")} {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Printf("Ignoring %s: %v", path, err)
		}
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("climatenews", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/climatenews/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Printf("Put your Kith token in %s (KITH_API_TOKEN=...) or export it.\n", filepath.Join(config.ConfigDir(), ".env"))
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show stored data and configuration status",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		stats, err := app.db.GetStats()
		if err != nil {
			return fmt.Errorf("getting stats: %w", err)
		}

		fmt.Printf("Database: %s\n", app.db.Path())
		if v, err := app.db.SchemaVersion(); err == nil {
			fmt.Printf("Schema version: %d\n", v)
		}
		keys, err := app.db.Keys()
		if err != nil {
			return fmt.Errorf("listing keys: %w", err)
		}
		fmt.Printf("Stored keys (%d): %s\n\n", stats.StoredKeys, strings.Join(keys, ", "))
		fmt.Println("Library:")
		fmt.Printf("  Analyses in history: %d\n", app.history.Len())
		fmt.Printf("  Favorite articles: %d\n", len(app.favorites.List()))
		fmt.Printf("  Favorite tags: %d\n", len(app.favorites.Tags()))
		fmt.Printf("  Profile complete: %v\n", app.profiles.IsComplete())

		fmt.Println("\nNews:")
		fmt.Printf("  Refreshes: %d (%d fell back to samples)\n", stats.RefreshRuns, stats.FallbackRuns)
		if run, err := app.db.GetLastRefreshRun(); err == nil && run != nil {
			at := ""
			if run.RefreshedAt != nil {
				at = *run.RefreshedAt
			}
			fmt.Printf("  Last refresh: %s, %s, %d articles\n", at, run.Outcome, run.ArticleCount)
			printCounts(run.Sources)
		}

		fmt.Println("\nServices:")
		fmt.Printf("  Kith agent: %s\n", configured(app.agent.IsConfigured(), cfg.Agent.TokenEnv))
		fmt.Printf("  NewsData.io: %s\n", configured(cfg.News.NewsData.Enabled && os.Getenv(cfg.News.NewsData.APIKeyEnv) != "", cfg.News.NewsData.APIKeyEnv))
		fmt.Printf("  NewsAPI: %s\n", configured(cfg.News.NewsAPI.Enabled && os.Getenv(cfg.News.NewsAPI.APIKeyEnv) != "", cfg.News.NewsAPI.APIKeyEnv))
		fmt.Printf("  RSS feeds: %d\n", len(cfg.News.Feeds))
		return nil
	},
}

func configured(ok bool, env string) string {
	if ok {
		return "configured"
	}
	return "not configured (" + env + ")"
}

func printCounts(counts map[string]int) {
	type kv struct {
		key string
		val int
	}
	var sorted []kv
	for k, v := range counts {
		sorted = append(sorted, kv{k, v})
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].val > sorted[j].val })
	for _, s := range sorted {
		fmt.Printf("    %s: %d\n", s.key, s.val)
	}
}

// --- serve command ---

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if !app.agent.IsConfigured() {
			log.Printf("Warning: %s is not set; analysis requests will fail", cfg.Agent.TokenEnv)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			if _, err := app.loader.Refresh(ctx); err != nil {
				log.Printf("Initial news refresh failed: %v", err)
			}
		}()

		if spec := cfg.News.RefreshSchedule; spec != "" {
			sched := scheduler.New()
			err := sched.Schedule(spec, func() {
				if _, err := app.loader.Refresh(ctx); err != nil && !errors.Is(err, collect.ErrCooldown) {
					log.Printf("Scheduled news refresh failed: %v", err)
				}
			})
			if err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()
		}

		port := cfg.Server.Port
		if cmd.Flags().Changed("port") || port == 0 {
			port = servePort
		}

		fmt.Printf("Starting server at http://localhost:%d\n", port)
		fmt.Println("Press Ctrl+C to stop")
		return server.Serve(ctx, server.App{
			Profiles:  app.profiles,
			History:   app.history,
			Favorites: app.favorites,
			Workspace: app.workspace,
			Assistant: app.assistant,
			News:      app.loader,
			Pages:     app.pages,
			TagNames:  tagNames(),
		}, port)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8000, "Port to run server on")
}

func tagNames() []string {
	names := make([]string, 0, len(cfg.News.Tags))
	for _, r := range cfg.News.Tags {
		names = append(names, r.Tag)
	}
	return names
}

// appEnv holds the stores and services shared by every command.
type appEnv struct {
	db        *database.DB
	agent     *agent.Client
	profiles  *profile.Store
	history   *history.Store
	favorites *favorites.Store
	workspace *session.Workspace
	assistant *session.Assistant
	loader    *collect.Loader
	pages     *fetch.Fetcher
}

func openApp() (*appEnv, error) {
	db, err := openDB()
	if err != nil {
		return nil, err
	}

	profiles, err := profile.Open(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("loading profile: %w", err)
	}

	client := agent.NewClientFromEnv(agent.Options{
		BaseURL:               cfg.Agent.BaseURL,
		AgentUUID:             cfg.Agent.AgentUUID,
		ProfileSetupPrompt:    cfg.Agent.ProfileSetupPrompt,
		ArticleAnalysisPrompt: cfg.Agent.ArticleAnalysisPrompt,
		Timeout:               cfg.AgentTimeout(),
	}, cfg.Agent.TokenEnv)

	a := &appEnv{
		db:        db,
		agent:     client,
		profiles:  profiles,
		history:   history.Open(db),
		favorites: favorites.Open(db),
		loader:    collect.NewLoader(cfg, db),
		pages:     fetch.NewFetcher(0),
	}
	a.workspace = session.NewWorkspace(client, db, a.profiles, a.history, a.favorites)
	a.assistant = session.NewAssistant(client, a.profiles)
	return a, nil
}

func (a *appEnv) Close() {
	a.workspace.Close()
	a.db.Close()
}

func openDB() (*database.DB, error) {
	dataDir := cfg.GetDataDir()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	dbPath := filepath.Join(dataDir, "climatenews.db")
	return database.Open(dbPath)
}

// noticeError turns a workspace error into the message shown in the UI.
// Rejected agent calls other than the usage limit get a setup hint.
func noticeError(err error, tokenEnv string) error {
	n := session.NoticeFor(err)
	if agent.IsAPIError(err) && !agent.IsQuotaExceeded(err) {
		return fmt.Errorf("%s: %s (check %s and the agent settings in your config)", n.Title, n.Description, tokenEnv)
	}
	return fmt.Errorf("%s: %s", n.Title, n.Description)
}
