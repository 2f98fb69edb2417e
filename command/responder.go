package command

import (
	"fortnite-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// Responder sends replies into a channel.
type Responder interface {
	Notify(channelID string, severity utils.Severity, title, body string) error
	SendEmbeds(channelID string, embeds ...*discordgo.MessageEmbed) error
	SendText(channelID, text string) error
}

// SessionIFace is the part of *discordgo.Session used to reply.
type SessionIFace interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbeds(channelID string, embeds []*discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

var _ Responder = (*SessionResponder)(nil)

// SessionResponder delivers replies through a gateway session.
type SessionResponder struct {
	session SessionIFace
}

func NewSessionResponder(session SessionIFace) *SessionResponder {
	return &SessionResponder{session: session}
}

func (r *SessionResponder) Notify(channelID string, severity utils.Severity, title, body string) error {
	return r.SendEmbeds(channelID, utils.NoticeEmbed(severity, title, body))
}

func (r *SessionResponder) SendEmbeds(channelID string, embeds ...*discordgo.MessageEmbed) error {
	_, err := r.session.ChannelMessageSendEmbeds(channelID, embeds)
	return err
}

func (r *SessionResponder) SendText(channelID, text string) error {
	_, err := r.session.ChannelMessageSend(channelID, text)
	return err
}
