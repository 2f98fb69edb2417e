package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"fortnite-bot/models"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// maxFieldRunes is Discord's limit on an embed field value.
const maxFieldRunes = 1024

const (
	ColorInfo  = 0x00ff00 // Green
	ColorWarn  = 0xffff00 // Yellow
	ColorError = 0xff0000 // Red
)

// NewLogger builds the process logger: JSON lines to stdout and, when cfg.File is set,
// to a size-rotated file.
func NewLogger(cfg models.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encCfg)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level),
	}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		rotating := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(rotating), level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

// EmbedSender is the part of *discordgo.Session the Alerter needs.
type EmbedSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Alerter mirrors important events into the admin channel. With no channel configured it
// only writes to the process log.
type Alerter struct {
	sender    EmbedSender
	channelID string
	logger    *zap.Logger
}

func NewAlerter(sender EmbedSender, channelID string, logger *zap.Logger) *Alerter {
	if channelID == "" {
		logger.Warn("bot.admin_channel_id is not set, admin channel alerts are disabled")
	}
	return &Alerter{sender: sender, channelID: channelID, logger: logger.Named("alert")}
}

// Log sends one alert embed to the admin channel.
func (a *Alerter) Log(level, module, operation, details string) {
	if a == nil {
		return
	}
	fields := []zap.Field{
		zap.String("module", module),
		zap.String("operation", operation),
		zap.String("details", details),
	}
	if a.sender == nil || a.channelID == "" {
		a.logger.Info("alert ["+level+"]", fields...)
		return
	}

	var color int
	switch level {
	case "WARN":
		color = ColorWarn
	case "ERROR":
		color = ColorError
	default:
		color = ColorInfo
	}

	if utf8.RuneCountInString(details) > maxFieldRunes {
		details = string([]rune(details)[:maxFieldRunes-3]) + "..."
	}
	embed := &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("Log Level: %s", level),
		Color:     color,
		Timestamp: time.Now().Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Module", Value: module, Inline: true},
			{Name: "Operation", Value: operation, Inline: true},
			{Name: "Details", Value: details},
		},
	}

	if _, err := a.sender.ChannelMessageSendEmbed(a.channelID, embed); err != nil {
		a.logger.Error("failed to send alert to admin channel", append(fields, zap.Error(err))...)
	}
}

func (a *Alerter) Info(module, operation, details string) {
	a.Log("INFO", module, operation, details)
}

func (a *Alerter) Warn(module, operation, details string) {
	a.Log("WARN", module, operation, details)
}

func (a *Alerter) Error(module, operation, details string) {
	a.Log("ERROR", module, operation, details)
}
