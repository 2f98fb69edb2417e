package database

import (
	"context"

	"fortnite-bot/models"

	"github.com/stretchr/testify/mock"
)

const (
	SettingsGetOrCreateMethod = "GetOrCreate"
	SettingsGetSettingMethod  = "GetSetting"
	SettingsSetSettingMethod  = "SetSetting"
	SettingsGetFeatureMethod  = "GetFeature"
	SettingsSetFeatureMethod  = "SetFeature"
	SettingsResetMethod       = "Reset"

	PlayerGetMethod  = "GetPlayer"
	PlayerLinkMethod = "LinkPlayer"
)

// Ensure the mocks implement their interfaces
var (
	_ SettingsIFace = (*MockSettings)(nil)
	_ PlayerIFace   = (*MockPlayers)(nil)
)

type MockSettings struct {
	mock.Mock
}

func (m *MockSettings) GetOrCreate(ctx context.Context, guildID, name string) (*models.GuildConfig, error) {
	args := m.Called(ctx, guildID, name)
	if cfg := args.Get(0); cfg != nil {
		return cfg.(*models.GuildConfig), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSettings) GetSetting(ctx context.Context, guildID, key string) (any, bool, error) {
	args := m.Called(ctx, guildID, key)
	return args.Get(0), args.Bool(1), args.Error(2)
}

func (m *MockSettings) SetSetting(ctx context.Context, guildID, key string, value any) (bool, error) {
	args := m.Called(ctx, guildID, key, value)
	return args.Bool(0), args.Error(1)
}

func (m *MockSettings) GetFeature(ctx context.Context, guildID, feature string) (bool, error) {
	args := m.Called(ctx, guildID, feature)
	return args.Bool(0), args.Error(1)
}

func (m *MockSettings) SetFeature(ctx context.Context, guildID, feature string, enabled bool) (bool, error) {
	args := m.Called(ctx, guildID, feature, enabled)
	return args.Bool(0), args.Error(1)
}

func (m *MockSettings) Reset(ctx context.Context, guildID string) (bool, error) {
	args := m.Called(ctx, guildID)
	return args.Bool(0), args.Error(1)
}

type MockPlayers struct {
	mock.Mock
}

func (m *MockPlayers) GetPlayer(ctx context.Context, discordID string) (*models.Player, bool, error) {
	args := m.Called(ctx, discordID)
	if p := args.Get(0); p != nil {
		return p.(*models.Player), args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func (m *MockPlayers) LinkPlayer(ctx context.Context, player models.Player) error {
	args := m.Called(ctx, player)
	return args.Error(0)
}
