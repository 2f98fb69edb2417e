package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"fortnite-bot/models"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the fully resolved process configuration.
type Config struct {
	Bot         models.BotConfig         `mapstructure:"bot"`
	Database    models.DatabaseConfig    `mapstructure:"database"`
	Log         models.LogConfig         `mapstructure:"log"`
	Scheduler   models.SchedulerConfig   `mapstructure:"scheduler"`
	HTTP        models.HTTPConfig        `mapstructure:"http"`
	DiscordBots models.DiscordBotsConfig `mapstructure:"discordbots"`
	PartyBus    models.PartyBusConfig    `mapstructure:"partybus"`
	Reddit      models.RedditConfig      `mapstructure:"reddit"`
	Fortnite    models.FortniteConfig    `mapstructure:"fortnite"`
	GRPC        models.GRPCConfig        `mapstructure:"grpc"`

	Secrets models.Secrets `mapstructure:"-"`
	// Source is the config file that was read, empty when only defaults and env apply.
	Source string `mapstructure:"-"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bot.prefix", models.DefaultPrefix)
	v.SetDefault("bot.owner_id", "")
	v.SetDefault("bot.version", "dev")
	v.SetDefault("bot.status", "")
	v.SetDefault("bot.admin_channel_id", "")
	v.SetDefault("bot.skills", []string{
		models.FeatureGeneral,
		models.FeatureSettings,
		models.FeaturePartyBus,
		models.FeatureReddit,
		models.FeatureFortnite,
		models.FeatureDiscordBots,
	})

	v.SetDefault("database.path", "data/bot.db")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "data/discordbot.log")
	v.SetDefault("log.max_size_mb", 1)
	v.SetDefault("log.max_backups", 2)

	v.SetDefault("scheduler.timezone", "US/Pacific")
	v.SetDefault("scheduler.report_spec", "@hourly")

	v.SetDefault("http.timeout", 15*time.Second)
	v.SetDefault("http.user_agent", "fortnite-bot")

	v.SetDefault("discordbots.url", "https://discordbots.org/api/bots/%s/stats")
	v.SetDefault("discordbots.vote_url", "https://discordbots.org/bot/372957548451725322")
	v.SetDefault("partybus.base_url", "https://api.partybus.gg/v1")
	v.SetDefault("reddit.base_url", "https://www.reddit.com")
	v.SetDefault("reddit.subreddits", []string{"fortnite", "fortnitebr"})
	v.SetDefault("fortnite.sales_url", "https://stormshield.one/pvp/sales")
	v.SetDefault("grpc.listen", "")
}

// Load reads configuration from, in order of increasing precedence: built-in defaults,
// the yaml config file, and environment variables (a .env file in the working directory
// is loaded into the environment first). An empty path searches for config.yaml in the
// working directory and tolerates its absence.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{Source: v.ConfigFileUsed()}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := env.Parse(&cfg.Secrets); err != nil {
		return nil, fmt.Errorf("failed to read secrets from environment: %w", err)
	}

	if cfg.Bot.Prefix == "" {
		cfg.Bot.Prefix = models.DefaultPrefix
	}
	if cfg.Bot.Status == "" {
		cfg.Bot.Status = fmt.Sprintf("Fortnite (Say %shelp)", cfg.Bot.Prefix)
	}
	return cfg, nil
}
