package bot

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"fortnite-bot/command"
	"fortnite-bot/config"
	"fortnite-bot/database"
	"fortnite-bot/fetch"
	"fortnite-bot/grpc"
	"fortnite-bot/models"
	"fortnite-bot/utils"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Bot is the application context shared by handlers and skills.
type Bot struct {
	*Events

	Session    *discordgo.Session
	Config     *config.Config
	Logger     *zap.Logger
	Catalog    models.FeatureCatalog
	Settings   *database.SettingsStore
	Players    *database.PlayerStore
	Registry   *command.Registry
	Dispatcher *command.Dispatcher
	Scheduler  *Scheduler
	Fetcher    fetch.Fetcher
	Alerter    *utils.Alerter
	Health     *grpc.HealthServer // nil when disabled
	StartedAt  time.Time

	db *sql.DB
}

// New wires every component from cfg. Nothing connects until Start.
func New(cfg *config.Config, logger *zap.Logger) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.Secrets.BotToken)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages | discordgo.IntentsMessageContent

	db, err := database.InitDB(cfg.Database.Path, logger.Named("database"))
	if err != nil {
		return nil, err
	}

	b := &Bot{
		Events:    newEvents(logger),
		Session:   dg,
		Config:    cfg,
		Logger:    logger,
		Catalog:   models.DefaultFeatureCatalog(),
		Players:   database.NewPlayerStore(db),
		Fetcher:   fetch.NewClient(cfg.HTTP.Timeout, cfg.HTTP.UserAgent),
		Alerter:   utils.NewAlerter(dg, cfg.Bot.AdminChannelID, logger),
		StartedAt: time.Now(),
		db:        db,
	}
	b.Settings = database.NewSettingsStore(db, b.Catalog, b.guildName)

	b.Scheduler, err = NewScheduler(cfg.Scheduler.Timezone, logger, b.Alerter)
	if err != nil {
		db.Close()
		return nil, err
	}

	b.Registry = command.NewRegistry(b.Catalog)
	b.Dispatcher = command.NewDispatcher(command.DispatcherConfig{
		Registry:  b.Registry,
		Prefixes:  command.NewPrefixResolver(b.Settings, cfg.Bot.Prefix, b.UserID),
		Settings:  b.Settings,
		Responder: command.NewSessionResponder(dg),
		OwnerID:   cfg.Bot.OwnerID,
		Logger:    logger.Named("dispatcher"),
		Alerter:   b.Alerter,
	})

	if cfg.GRPC.Listen != "" {
		b.Health = grpc.NewHealthServer(cfg.GRPC.Listen, logger)
	}
	return b, nil
}

// UserID is the bot account id, empty until the gateway is ready.
func (b *Bot) UserID() string {
	if b.Session.State == nil || b.Session.State.User == nil {
		return ""
	}
	return b.Session.State.User.ID
}

func (b *Bot) guildName(guildID string) string {
	if g, err := b.Session.State.Guild(guildID); err == nil {
		return g.Name
	}
	return ""
}

// LoadSkills registers the configured skills, in configuration order. A skill that
// fails to register is logged and skipped.
func (b *Bot) LoadSkills(available ...command.Skill) {
	for _, name := range b.Config.Bot.Skills {
		name = models.NormalizeFeature(name)
		idx := slices.IndexFunc(available, func(s command.Skill) bool {
			return models.NormalizeFeature(s.Name()) == name
		})
		if idx < 0 {
			b.Logger.Warn("configured skill does not exist", zap.String("skill", name))
			continue
		}
		if err := b.Registry.LoadSkill(available[idx]); err != nil {
			b.Logger.Error("skill not loaded", zap.String("skill", name), zap.Error(err))
			continue
		}
		b.Logger.Info("skill loaded", zap.String("skill", name))
	}
}

// Start opens the gateway connection, then starts the scheduler and health endpoint.
func (b *Bot) Start() error {
	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}
	b.Scheduler.Start()
	if b.Health != nil {
		if err := b.Health.Start(); err != nil {
			return err
		}
	}
	b.Logger.Info("bot is now running, press CTRL-C to exit")
	return nil
}

// Stop shuts everything down. It is safe to call after a failed Start.
func (b *Bot) Stop() {
	b.Scheduler.Stop()
	if b.Health != nil {
		b.Health.Stop()
	}
	if b.Session != nil {
		if err := b.Session.Close(); err != nil {
			b.Logger.Warn("error closing session", zap.Error(err))
		}
	}
	if err := b.db.Close(); err != nil {
		b.Logger.Warn("error closing database", zap.Error(err))
	}
	b.Logger.Info("bot stopped gracefully")
}

// Run builds the bot, blocks until SIGINT/SIGTERM and shuts down. A panic on this
// goroutine still closes the session before being returned as an error.
func Run(cfg *config.Config, logger *zap.Logger, registerHandlers func(*Bot), skills func(*Bot) []command.Skill) (err error) {
	b, err := New(cfg, logger)
	if err != nil {
		return fmt.Errorf("error initializing bot: %w", err)
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Error("unhandled panic, shutting down", zap.Any("panic", r), zap.Stack("stack"))
			b.Stop()
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	registerHandlers(b)
	b.LoadSkills(skills(b)...)

	if err := b.Start(); err != nil {
		b.Stop()
		return err
	}

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	b.Stop()
	return nil
}

// Context returns a context for work triggered by a gateway event.
func (b *Bot) Context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 2*b.Config.HTTP.Timeout+5*time.Second)
}
