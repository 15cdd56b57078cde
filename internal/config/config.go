package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

type Config struct {
	Agent   Agent   `yaml:"agent"`
	News    News    `yaml:"news"`
	Output  Output  `yaml:"output"`
	Server  Server  `yaml:"server"`
	Logging Logging `yaml:"logging"`
}

// Agent configures the external AI agent service.
type Agent struct {
	BaseURL               string `yaml:"base_url"`
	TokenEnv              string `yaml:"token_env"`
	AgentUUID             string `yaml:"agent_uuid"`
	ProfileSetupPrompt    string `yaml:"profile_setup_prompt"`
	ArticleAnalysisPrompt string `yaml:"article_analysis_prompt"`
	TimeoutSeconds        int    `yaml:"timeout_seconds"`
}

type News struct {
	NewsData               NewsDataConfig `yaml:"newsdata"`
	NewsAPI                NewsAPIConfig  `yaml:"newsapi"`
	Feeds                  []Feed         `yaml:"feeds"`
	MaxPerFeed             int            `yaml:"max_per_feed"`
	RefreshCooldownSeconds int            `yaml:"refresh_cooldown_seconds"`
	RefreshSchedule        string         `yaml:"refresh_schedule"`
	Tags                   []TagRule      `yaml:"tags"`
	Samples                []Sample       `yaml:"samples"`
}

type NewsDataConfig struct {
	Enabled   bool   `yaml:"enabled"`
	APIKeyEnv string `yaml:"api_key_env"`
	Query     string `yaml:"query"`
	Category  string `yaml:"category"`
	Language  string `yaml:"language"`
	Size      int    `yaml:"size"`
}

type NewsAPIConfig struct {
	Enabled   bool   `yaml:"enabled"`
	APIKeyEnv string `yaml:"api_key_env"`
	Query     string `yaml:"query"`
	PageSize  int    `yaml:"page_size"`
}

type Feed struct {
	URL  string `yaml:"url"`
	Name string `yaml:"name"`
}

// TagRule maps a topical tag to the keywords that trigger it.
// Rules are matched in list order.
type TagRule struct {
	Tag      string   `yaml:"tag"`
	Keywords []string `yaml:"keywords"`
}

// Sample is a static article used when no news source returns anything.
type Sample struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	URL         string   `yaml:"url"`
	Source      string   `yaml:"source"`
	AgeDays     int      `yaml:"age_days"`
	Tags        []string `yaml:"tags"`
}

type Output struct {
	DataDir string `yaml:"data_dir"`
}

type Server struct {
	Port int `yaml:"port"`
}

type Logging struct {
	Level string `yaml:"level"`
}

// ConfigDir returns the XDG config directory for climatenews.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "climatenews")
}

// DataDir returns the XDG data directory for climatenews.
func DataDir() string {
	return filepath.Join(homeDir(), ".local", "share", "climatenews")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/climatenews/config.yaml > ./config.yaml
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", fmt.Errorf(
		"no config file found; searched:\n  %s\n  ./config.yaml\n\nRun 'climatenews init' to create a default config",
		xdgConfig,
	)
}

// Load reads and parses a config YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// Default returns the embedded default configuration.
func Default() *Config {
	cfg, err := parse(DefaultConfigYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded default config is invalid: %v", err))
	}
	return cfg
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		Agent: Agent{
			BaseURL:               "https://agent.kith.build",
			TokenEnv:              "KITH_API_TOKEN",
			AgentUUID:             "f1fea9d9-2b20-4a85-bf47-88df0a083b13",
			ProfileSetupPrompt:    "8778afa8-3b47-4db5-acaa-d645c2d011a5",
			ArticleAnalysisPrompt: "664c3747-bae1-47f1-8afa-38e3297e68d2",
			TimeoutSeconds:        60,
		},
		News: News{
			NewsData: NewsDataConfig{
				Enabled:   true,
				APIKeyEnv: "NEWSDATA_API_KEY",
				Query:     "climate OR sustainability OR environment",
				Category:  "environment",
				Language:  "en",
				Size:      5,
			},
			NewsAPI: NewsAPIConfig{
				Enabled:   false,
				APIKeyEnv: "NEWSAPI_KEY",
				Query:     "climate change",
				PageSize:  20,
			},
			MaxPerFeed:             5,
			RefreshCooldownSeconds: 5,
		},
		Server:  Server{Port: 8000},
		Logging: Logging{Level: "INFO"},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Tag rules and samples are content; a config that omits them
	// inherits the shipped defaults.
	if len(cfg.News.Tags) == 0 || len(cfg.News.Samples) == 0 {
		var shipped struct {
			News struct {
				Tags    []TagRule `yaml:"tags"`
				Samples []Sample  `yaml:"samples"`
			} `yaml:"news"`
		}
		if err := yaml.Unmarshal(DefaultConfigYAML, &shipped); err != nil {
			return nil, fmt.Errorf("parsing default content: %w", err)
		}
		if len(cfg.News.Tags) == 0 {
			cfg.News.Tags = shipped.News.Tags
		}
		if len(cfg.News.Samples) == 0 {
			cfg.News.Samples = shipped.News.Samples
		}
	}

	return cfg, nil
}

// GetDataDir returns the effective data directory from config or XDG default.
func (c *Config) GetDataDir() string {
	if c.Output.DataDir != "" {
		return c.Output.DataDir
	}
	return DataDir()
}

// AgentTimeout returns the HTTP timeout for agent calls.
func (c *Config) AgentTimeout() time.Duration {
	if c.Agent.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.Agent.TimeoutSeconds) * time.Second
}

// RefreshCooldown returns the minimum interval between news refreshes.
func (c *Config) RefreshCooldown() time.Duration {
	if c.News.RefreshCooldownSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.News.RefreshCooldownSeconds) * time.Second
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
