package utils

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"fortnite-bot/models"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeSender struct {
	channel string
	embeds  []*discordgo.MessageEmbed
	err     error
}

func (f *fakeSender) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.channel = channelID
	f.embeds = append(f.embeds, embed)
	return &discordgo.Message{}, f.err
}

func Test_NewLogger(t *testing.T) {
	logger, err := NewLogger(models.LogConfig{
		Level:      "debug",
		File:       filepath.Join(t.TempDir(), "logs", "bot.log"),
		MaxSizeMB:  1,
		MaxBackups: 2,
	})
	require.NoError(t, err)
	logger.Info("hello")

	_, err = NewLogger(models.LogConfig{Level: "loud"})
	assert.Error(t, err)
}

func Test_Alerter_Log(t *testing.T) {
	sender := &fakeSender{}
	alerter := NewAlerter(sender, "admin", zap.NewNop())

	alerter.Error("dispatcher", "settings prefix set", "boom")
	alerter.Warn("scheduler", "report", "slow")

	require.Len(t, sender.embeds, 2)
	assert.Equal(t, "admin", sender.channel)
	assert.Equal(t, ColorError, sender.embeds[0].Color)
	assert.Equal(t, "boom", sender.embeds[0].Fields[2].Value)
	assert.Equal(t, ColorWarn, sender.embeds[1].Color)
}

func Test_Alerter_TruncatesDetails(t *testing.T) {
	tests := []struct {
		name    string
		details string
		want    string
	}{
		{name: "short", details: "héllo", want: "héllo"},
		{name: "at limit", details: strings.Repeat("é", 1024), want: strings.Repeat("é", 1024)},
		{name: "multi-byte over limit", details: strings.Repeat("é", 1500), want: strings.Repeat("é", 1021) + "..."},
		{name: "ascii over limit", details: strings.Repeat("a", 2000), want: strings.Repeat("a", 1021) + "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &fakeSender{}
			NewAlerter(sender, "admin", zap.NewNop()).Error("dispatcher", "info", tt.details)

			require.Len(t, sender.embeds, 1)
			got := sender.embeds[0].Fields[2].Value
			assert.True(t, utf8.ValidString(got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_Alerter_FallsBackToLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	NewAlerter(nil, "", zap.New(core)).Info("bot", "ready", "connected")
	assert.Equal(t, 1, logs.FilterMessage("alert [INFO]").Len())

	sender := &fakeSender{err: errors.New("missing access")}
	NewAlerter(sender, "admin", zap.New(core)).Error("bot", "ready", "x")
	assert.Equal(t, 1, logs.FilterMessage("failed to send alert to admin channel").Len())

	var nilAlerter *Alerter
	assert.NotPanics(t, func() { nilAlerter.Error("a", "b", "c") })
}
