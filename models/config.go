package models

import "time"

// BotConfig holds the core bot settings from the `bot` section of config.yaml.
type BotConfig struct {
	Prefix         string   `mapstructure:"prefix"`
	OwnerID        string   `mapstructure:"owner_id"`
	Version        string   `mapstructure:"version"`
	Status         string   `mapstructure:"status"`
	AdminChannelID string   `mapstructure:"admin_channel_id"`
	Skills         []string `mapstructure:"skills"`
}

// DatabaseConfig points at the sqlite file holding guild settings and player links.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig controls the process logger and its rotating file.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// SchedulerConfig controls the cron runner.
type SchedulerConfig struct {
	Timezone   string `mapstructure:"timezone"`
	ReportSpec string `mapstructure:"report_spec"`
}

// HTTPConfig is shared by every outbound collaborator call.
type HTTPConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// DiscordBotsConfig describes the bot directory that receives guild counts.
type DiscordBotsConfig struct {
	URL     string `mapstructure:"url"` // contains %s for the bot user id
	VoteURL string `mapstructure:"vote_url"`
}

type PartyBusConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

type RedditConfig struct {
	BaseURL    string   `mapstructure:"base_url"`
	Subreddits []string `mapstructure:"subreddits"`
}

type FortniteConfig struct {
	SalesURL string `mapstructure:"sales_url"`
}

type GRPCConfig struct {
	Listen string `mapstructure:"listen"`
}

// Secrets are read from the environment only.
type Secrets struct {
	BotToken string `env:"BOT_TOKEN,required,notEmpty"`
	DBLToken string `env:"DBL_TOKEN"`
}
