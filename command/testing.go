package command

import (
	"fortnite-bot/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"
)

const (
	ResponderNotifyMethod     = "Notify"
	ResponderSendEmbedsMethod = "SendEmbeds"
	ResponderSendTextMethod   = "SendText"
)

// Ensure MockResponder implements Responder
var _ Responder = (*MockResponder)(nil)

type MockResponder struct {
	mock.Mock
}

func (m *MockResponder) Notify(channelID string, severity utils.Severity, title, body string) error {
	args := m.Called(channelID, severity, title, body)
	return args.Error(0)
}

func (m *MockResponder) SendEmbeds(channelID string, embeds ...*discordgo.MessageEmbed) error {
	args := m.Called(channelID, embeds)
	return args.Error(0)
}

func (m *MockResponder) SendText(channelID, text string) error {
	args := m.Called(channelID, text)
	return args.Error(0)
}
