package command

import (
	"context"
	"strings"
	"testing"

	"fortnite-bot/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func Test_Help_Overview(t *testing.T) {
	f := newFixture(t, ".", true)

	var sent *discordgo.MessageEmbed
	f.responder.On(ResponderSendEmbedsMethod, testChannelID, mock.Anything).
		Run(func(args mock.Arguments) {
			sent = args.Get(1).([]*discordgo.MessageEmbed)[0]
		}).Return(nil).Once()

	assert.Equal(t, OutcomeHandled, f.d.Dispatch(context.Background(), guildMsg(".help")))
	f.responder.AssertExpectations(t)

	var names []string
	var all strings.Builder
	for _, field := range sent.Fields {
		names = append(names, field.Name)
		all.WriteString(field.Value)
	}
	assert.Equal(t, []string{"GENERAL", "SETTINGS", "REDDIT"}, names)
	assert.Contains(t, all.String(), "`ping`")
	assert.NotContains(t, all.String(), "`secret`")
}

func Test_Help_Command(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantTitle string
	}{
		{name: "top level", content: ".help echo", wantTitle: "`.echo <word> [times]`"},
		{name: "alias", content: ".help p", wantTitle: "`.ping`"},
		{name: "nested", content: ".help settings prefix set", wantTitle: "`.settings prefix set <prefix>`"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, ".", true)
			f.responder.On(ResponderSendEmbedsMethod, testChannelID, mock.MatchedBy(func(embeds []*discordgo.MessageEmbed) bool {
				return embeds[0].Title == tt.wantTitle
			})).Return(nil).Once()

			assert.Equal(t, OutcomeHandled, f.d.Dispatch(context.Background(), guildMsg(tt.content)))
			f.responder.AssertExpectations(t)
		})
	}
}

func Test_Help_NotFound(t *testing.T) {
	for _, content := range []string{".help nope", ".help secret", ".help settings nope"} {
		t.Run(content, func(t *testing.T) {
			f := newFixture(t, ".", true)
			f.responder.On(ResponderNotifyMethod, testChannelID, utils.SeverityInfo, "Help", mock.MatchedBy(func(body string) bool {
				return strings.HasPrefix(body, "No command called")
			})).Return(nil).Once()

			assert.Equal(t, OutcomeHandled, f.d.Dispatch(context.Background(), guildMsg(content)))
			f.responder.AssertExpectations(t)
		})
	}
}
