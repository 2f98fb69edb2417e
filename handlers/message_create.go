package handlers

import (
	"fortnite-bot/bot"
	"fortnite-bot/command"
	"fortnite-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// MessageCreate will be called every time a new message is created on any channel that
// the authenticated bot has access to.
func MessageCreate(b *bot.Bot) func(s *discordgo.Session, m *discordgo.MessageCreate) {
	return func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil {
			return
		}
		ctx, cancel := b.Context()
		defer cancel()
		b.Dispatcher.Dispatch(ctx, toMessage(s.State, m.Message))
	}
}

// toMessage flattens a gateway message into the dispatcher's view, filling names and
// permissions from the state cache where it has them.
func toMessage(state *discordgo.State, m *discordgo.Message) *command.Message {
	msg := &command.Message{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		GuildID:   m.GuildID,
		Content:   m.Content,
		Author: command.User{
			ID:   m.Author.ID,
			Name: m.Author.Username,
			Bot:  m.Author.Bot,
		},
	}
	if state == nil {
		return msg
	}
	if ch, err := state.Channel(m.ChannelID); err == nil {
		msg.ChannelName = ch.Name
	}
	if msg.IsDirect() {
		return msg
	}

	guild, err := state.Guild(m.GuildID)
	if err != nil {
		return msg
	}
	msg.GuildName = guild.Name

	member := m.Member
	if cached, err := state.Member(m.GuildID, m.Author.ID); err == nil {
		member = cached
	}
	if member != nil {
		// the member attached to a message carries roles but no user
		withUser := *member
		withUser.User = m.Author
		msg.Permissions = utils.MemberPermissions(guild, &withUser)
	}
	return msg
}
