package skills

import (
	"context"
	"fmt"

	"fortnite-bot/bot"
	"fortnite-bot/command"
	"fortnite-bot/fetch"
	"fortnite-bot/models"
	"fortnite-bot/utils"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

type guildCountPayload struct {
	ServerCount int `json:"server_count"`
	ShardID     int `json:"shard_id"`
	ShardCount  int `json:"shard_count"`
}

// DiscordBots keeps the bot directory listing's guild count current.
type DiscordBots struct {
	Fetcher    fetch.Fetcher
	URL        string // contains %s for the bot user id
	VoteURL    string
	Token      string
	BotID      func() string
	GuildCount func() int
	Shard      func() (id, count int)
	Logger     *zap.Logger
}

func (d *DiscordBots) Name() string { return models.FeatureDiscordBots }

func (d *DiscordBots) Register(r *command.Registrar) error {
	r.Add(
		&command.Command{Name: "discordbots", Help: "Vote for this bot on DiscordBots.org.", Handler: d.vote},
		&command.Command{Name: "updatecount", Hidden: true, OwnerOnly: true, Handler: d.updateCount},
	)
	return nil
}

// Attach reports the guild count once ready, on every guild join and leave, and on the cron schedule.
func (d *DiscordBots) Attach(events *bot.Events, scheduler *bot.Scheduler, spec string) error {
	events.OnReady(func(ctx context.Context) { d.reportAndLog(ctx) })
	events.OnGuildJoin(func(ctx context.Context, _ *discordgo.Guild) { d.reportAndLog(ctx) })
	events.OnGuildLeave(func(ctx context.Context, _ string) { d.reportAndLog(ctx) })
	return scheduler.AddJob("discordbots", spec, d.ReportGuildCount)
}

// ReportGuildCount posts the current guild count to the directory.
func (d *DiscordBots) ReportGuildCount(ctx context.Context) error {
	if d.Token == "" {
		d.logger().Debug("no directory token, guild count not reported")
		return nil
	}
	botID := d.BotID()
	if botID == "" {
		return fmt.Errorf("bot user unknown, not connected yet")
	}

	payload := guildCountPayload{ServerCount: d.GuildCount(), ShardCount: 1}
	if d.Shard != nil {
		payload.ShardID, payload.ShardCount = d.Shard()
	}
	headers := map[string]string{"Authorization": d.Token}
	if err := d.Fetcher.PostJSON(ctx, fmt.Sprintf(d.URL, botID), headers, payload); err != nil {
		return fmt.Errorf("failed to report guild count: %w", err)
	}
	d.logger().Info("guild count reported",
		zap.Int("server_count", payload.ServerCount),
		zap.Int("shard_id", payload.ShardID),
		zap.Int("shard_count", payload.ShardCount))
	return nil
}

func (d *DiscordBots) reportAndLog(ctx context.Context) {
	if err := d.ReportGuildCount(ctx); err != nil {
		d.logger().Warn("guild count report failed", zap.Error(err))
	}
}

func (d *DiscordBots) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

func (d *DiscordBots) vote(c *command.Context) error {
	embed := utils.NoticeEmbed(utils.SeverityInfo, "Discord Bots Information", "Please vote for this bot on DiscordBots.org")
	embed.URL = d.VoteURL
	return c.Send(embed)
}

func (d *DiscordBots) updateCount(c *command.Context) error {
	if err := d.ReportGuildCount(c.Context()); err != nil {
		return noData(c, err, "The guild count could not be reported, see the logs.")
	}
	return c.Notifyf(utils.SeveritySuccess, "Guild Count", "Reported %s.", plural(d.GuildCount(), "guild"))
}
