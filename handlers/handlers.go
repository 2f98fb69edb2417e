package handlers

import (
	"fortnite-bot/bot"
)

// Register all handlers to the bot.
func Register(b *bot.Bot) {
	b.Session.AddHandler(Ready(b))
	b.Session.AddHandler(MessageCreate(b))
	b.Session.AddHandler(GuildCreate(b))
	b.Session.AddHandler(GuildDelete(b))
	b.Session.AddHandler(Disconnect(b))
}
