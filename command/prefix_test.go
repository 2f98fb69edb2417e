package command

import (
	"context"
	"errors"
	"testing"

	"fortnite-bot/database"
	"fortnite-bot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func Test_PrefixResolver_Resolve(t *testing.T) {
	tests := []struct {
		name    string
		stored  any
		present bool
		err     error
		msg     *Message
		want    []string
		wantErr bool
	}{
		{
			name: "direct message ignores guild settings",
			msg:  &Message{Content: "x"},
			want: []string{"<@!bot>", "<@bot>", "."},
		},
		{
			name:    "single guild prefix",
			stored:  "!",
			present: true,
			msg:     &Message{GuildID: "g"},
			want:    []string{"<@!bot>", "<@bot>", "!"},
		},
		{
			name:    "split and longest first",
			stored:  ".|..||fn ",
			present: true,
			msg:     &Message{GuildID: "g"},
			want:    []string{"<@!bot>", "<@bot>", "fn ", "..", "."},
		},
		{
			name:    "empty setting falls back",
			stored:  "|",
			present: true,
			msg:     &Message{GuildID: "g"},
			want:    []string{"<@!bot>", "<@bot>", "."},
		},
		{
			name:    "store error falls back",
			err:     errors.New("disk I/O error"),
			msg:     &Message{GuildID: "g"},
			want:    []string{"<@!bot>", "<@bot>", "."},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := &database.MockSettings{}
			settings.On(database.SettingsGetSettingMethod, mock.Anything, "g", models.SettingPrefix).
				Return(tt.stored, tt.present, tt.err).Maybe()

			r := NewPrefixResolver(settings, "", func() string { return "bot" })
			got, err := r.Resolve(context.Background(), tt.msg)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantErr, err != nil)
			if tt.msg.IsDirect() {
				settings.AssertNotCalled(t, database.SettingsGetSettingMethod, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func Test_MatchPrefix(t *testing.T) {
	prefixes := []string{"..", "."}

	p, ok := MatchPrefix("..help", prefixes)
	assert.True(t, ok)
	assert.Equal(t, "..", p)

	p, ok = MatchPrefix(".help", prefixes)
	assert.True(t, ok)
	assert.Equal(t, ".", p)

	_, ok = MatchPrefix("help", prefixes)
	assert.False(t, ok)
}
