// Package skills holds the command bundles the bot can load.
package skills

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"fortnite-bot/bot"
	"fortnite-bot/command"
	"fortnite-bot/fetch"
	"fortnite-bot/models"
	"fortnite-bot/utils"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// maxEmbeds is the most embeds one Discord message may carry.
const maxEmbeds = 10

// All returns every skill the bot knows, wired to b. Which of them load is decided by
// the configured skill list.
func All(b *bot.Bot) []command.Skill {
	cfg := b.Config
	reports := &DiscordBots{
		Fetcher:    b.Fetcher,
		URL:        cfg.DiscordBots.URL,
		VoteURL:    cfg.DiscordBots.VoteURL,
		Token:      cfg.Secrets.DBLToken,
		BotID:      b.UserID,
		GuildCount: b.GuildCount,
		Shard:      func() (int, int) { return b.Session.ShardID, max(b.Session.ShardCount, 1) },
		Logger:     b.Logger.Named("discordbots"),
	}
	if configured(cfg.Bot.Skills, reports.Name()) {
		if err := reports.Attach(b.Events, b.Scheduler, cfg.Scheduler.ReportSpec); err != nil {
			b.Logger.Error("guild count reports disabled", zap.Error(err))
		}
	}

	return []command.Skill{
		&General{
			State:     b.Session.State,
			StartedAt: b.StartedAt,
			Version:   cfg.Bot.Version,
			Counter:   b.Dispatcher.Counter(),
		},
		&Settings{Store: b.Settings, Catalog: b.Catalog, Fallback: cfg.Bot.Prefix},
		&PartyBus{Players: b.Players, Fetcher: b.Fetcher, BaseURL: cfg.PartyBus.BaseURL},
		&Reddit{Fetcher: b.Fetcher, BaseURL: cfg.Reddit.BaseURL, Subreddits: cfg.Reddit.Subreddits},
		&Fortnite{Fetcher: b.Fetcher, SalesURL: cfg.Fortnite.SalesURL, StreamsURL: cfg.PartyBus.BaseURL + "/streams"},
		reports,
	}
}

func configured(skills []string, name string) bool {
	return slices.ContainsFunc(skills, func(s string) bool { return models.NormalizeFeature(s) == name })
}

// sendPaged sends embeds as one message, dropping those past the per-message limit.
func sendPaged(c *command.Context, embeds []*discordgo.MessageEmbed) error {
	if len(embeds) > maxEmbeds {
		embeds = embeds[:maxEmbeds]
	}
	return c.Send(embeds...)
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// noData answers a collaborator failure with an informational notice. Other errors are
// returned to the dispatcher.
func noData(c *command.Context, err error, body string) error {
	var failure *fetch.Failure
	if !errors.As(err, &failure) {
		return err
	}
	return c.Notify(utils.SeverityInfo, "Notice", body)
}
