package handlers

import (
	"fortnite-bot/bot"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Ready sets the presence, records the guilds of the session and marks the bot healthy.
func Ready(b *bot.Bot) func(s *discordgo.Session, r *discordgo.Ready) {
	return func(s *discordgo.Session, r *discordgo.Ready) {
		b.Logger.Info("logged in",
			zap.String("user", r.User.Username),
			zap.String("id", r.User.ID),
			zap.Int("guilds", len(r.Guilds)))

		if err := s.UpdateGameStatus(0, b.Config.Bot.Status); err != nil {
			b.Logger.Warn("could not set status", zap.Error(err))
		}

		ids := make([]string, 0, len(r.Guilds))
		for _, g := range r.Guilds {
			ids = append(ids, g.ID)
		}

		ctx, cancel := b.Context()
		defer cancel()
		b.Ready(ctx, ids)

		if b.Health != nil {
			b.Health.SetServing(true)
		}
	}
}

// GuildCreate fires when a guild loads or the bot is added to one. The stored settings
// row is created on first sight.
func GuildCreate(b *bot.Bot) func(s *discordgo.Session, g *discordgo.GuildCreate) {
	return func(s *discordgo.Session, g *discordgo.GuildCreate) {
		if g.Guild == nil || g.Unavailable {
			return
		}
		ctx, cancel := b.Context()
		defer cancel()

		if _, err := b.Settings.GetOrCreate(ctx, g.ID, g.Name); err != nil {
			b.Logger.Error("could not load guild settings", zap.String("guild", g.ID), zap.Error(err))
		}
		if b.GuildAvailable(ctx, g.Guild) {
			b.Logger.Info("joined guild", zap.String("guild", g.ID), zap.String("name", g.Name))
		}
	}
}

// GuildDelete fires on removal and on outages. Outages are not leaves.
func GuildDelete(b *bot.Bot) func(s *discordgo.Session, g *discordgo.GuildDelete) {
	return func(s *discordgo.Session, g *discordgo.GuildDelete) {
		if g.Guild == nil || g.Unavailable {
			return
		}
		ctx, cancel := b.Context()
		defer cancel()

		b.Logger.Info("left guild", zap.String("guild", g.ID))
		b.GuildRemoved(ctx, g.ID)
	}
}

func Disconnect(b *bot.Bot) func(s *discordgo.Session, d *discordgo.Disconnect) {
	return func(s *discordgo.Session, d *discordgo.Disconnect) {
		b.Logger.Warn("gateway disconnected")
		if b.Health != nil {
			b.Health.SetServing(false)
		}
	}
}
