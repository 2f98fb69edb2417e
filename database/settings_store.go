package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"fortnite-bot/models"

	"github.com/mattn/go-sqlite3"
)

// SettingsIFace is the only way the rest of the bot touches guild configuration.
type SettingsIFace interface {
	GetOrCreate(ctx context.Context, guildID, name string) (*models.GuildConfig, error)
	GetSetting(ctx context.Context, guildID, key string) (any, bool, error)
	SetSetting(ctx context.Context, guildID, key string, value any) (bool, error)
	GetFeature(ctx context.Context, guildID, feature string) (bool, error)
	SetFeature(ctx context.Context, guildID, feature string, enabled bool) (bool, error)
	Reset(ctx context.Context, guildID string) (bool, error)
}

// NameResolver supplies a display name when a record is created implicitly.
type NameResolver func(guildID string) string

var _ SettingsIFace = (*SettingsStore)(nil)

// SettingsStore persists one guild_config row per guild. Writes for a guild are
// serialized with a per-guild lock, different guilds never contend.
type SettingsStore struct {
	db       *sql.DB
	catalog  models.FeatureCatalog
	resolver NameResolver

	// guild id -> *sync.Mutex. Never pruned, it is bounded by the guilds the bot is in.
	locks sync.Map
}

func NewSettingsStore(db *sql.DB, catalog models.FeatureCatalog, resolver NameResolver) *SettingsStore {
	return &SettingsStore{db: db, catalog: catalog, resolver: resolver}
}

func (s *SettingsStore) lock(guildID string) func() {
	mu, _ := s.locks.LoadOrStore(guildID, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

func (s *SettingsStore) nameFor(guildID string) string {
	if s.resolver == nil {
		return ""
	}
	return s.resolver(guildID)
}

// GetOrCreate returns the guild's record, inserting one with default settings when none
// exists. Losing an insert race to another writer falls back to reading the winner's row.
func (s *SettingsStore) GetOrCreate(ctx context.Context, guildID, name string) (*models.GuildConfig, error) {
	cfg, err := s.read(ctx, guildID)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	cfg = &models.GuildConfig{GuildID: guildID, Name: name, Settings: s.catalog.DefaultSettings()}
	blob, err := json.Marshal(cfg.Settings)
	if err != nil {
		return nil, fmt.Errorf("failed to encode default settings: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO guild_config (guild_id, name, settings) VALUES (?, ?, ?)`,
		guildID, name, string(blob))
	if isConstraintErr(err) {
		return s.read(ctx, guildID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert guild %s: %w", guildID, err)
	}
	return cfg, nil
}

func (s *SettingsStore) read(ctx context.Context, guildID string) (*models.GuildConfig, error) {
	var (
		name sql.NullString
		blob string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT name, settings FROM guild_config WHERE guild_id = ?`, guildID).Scan(&name, &blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read guild %s: %w", guildID, err)
	}

	settings := models.Settings{}
	if err := json.Unmarshal([]byte(blob), &settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings for guild %s: %w", guildID, err)
	}
	return &models.GuildConfig{GuildID: guildID, Name: name.String, Settings: settings}, nil
}

func (s *SettingsStore) write(ctx context.Context, guildID string, settings models.Settings) error {
	blob, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings for guild %s: %w", guildID, err)
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE guild_config SET settings = ? WHERE guild_id = ?`, string(blob), guildID); err != nil {
		return fmt.Errorf("failed to update guild %s: %w", guildID, err)
	}
	return nil
}

// update runs a read-modify-write of the whole settings blob under the guild lock.
// mutate reports whether anything should be persisted.
func (s *SettingsStore) update(ctx context.Context, guildID string, mutate func(models.Settings) bool) (bool, error) {
	unlock := s.lock(guildID)
	defer unlock()

	cfg, err := s.GetOrCreate(ctx, guildID, s.nameFor(guildID))
	if err != nil {
		return false, err
	}
	settings := cfg.Settings.Clone()
	if !mutate(settings) {
		return false, nil
	}
	if err := s.write(ctx, guildID, settings); err != nil {
		return false, err
	}
	return true, nil
}

// GetSetting reports ok=false when key is not present, which is distinct from a stored
// false or empty value.
func (s *SettingsStore) GetSetting(ctx context.Context, guildID, key string) (any, bool, error) {
	cfg, err := s.GetOrCreate(ctx, guildID, s.nameFor(guildID))
	if err != nil {
		return nil, false, err
	}
	v, ok := cfg.Settings[key]
	return v, ok, nil
}

// SetSetting only replaces keys that already exist, it never adds new ones.
func (s *SettingsStore) SetSetting(ctx context.Context, guildID, key string, value any) (bool, error) {
	return s.update(ctx, guildID, func(settings models.Settings) bool {
		if _, ok := settings[key]; !ok {
			return false
		}
		settings[key] = value
		return true
	})
}

// GetFeature is fail-closed: names the guild has no flag for are disabled.
func (s *SettingsStore) GetFeature(ctx context.Context, guildID, feature string) (bool, error) {
	if s.catalog.Protected(feature) {
		return true, nil
	}
	cfg, err := s.GetOrCreate(ctx, guildID, s.nameFor(guildID))
	if err != nil {
		return false, err
	}
	return cfg.Settings.Feature(feature), nil
}

// SetFeature rejects names outside the catalog and any attempt to disable a protected
// feature.
func (s *SettingsStore) SetFeature(ctx context.Context, guildID, feature string, enabled bool) (bool, error) {
	feature = models.NormalizeFeature(feature)
	if !s.catalog.Known(feature) {
		return false, nil
	}
	if s.catalog.Protected(feature) && !enabled {
		return false, nil
	}
	return s.update(ctx, guildID, func(settings models.Settings) bool {
		cogs, ok := settings[models.SettingCogs].(map[string]any)
		if !ok {
			cogs = map[string]any{}
		}
		cogs[feature] = enabled
		settings[models.SettingCogs] = cogs
		return true
	})
}

// Reset overwrites the guild's settings with freshly generated defaults.
func (s *SettingsStore) Reset(ctx context.Context, guildID string) (bool, error) {
	return s.update(ctx, guildID, func(settings models.Settings) bool {
		for k := range settings {
			delete(settings, k)
		}
		for k, v := range s.catalog.DefaultSettings() {
			settings[k] = v
		}
		return true
	})
}

func isConstraintErr(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint
}
