package models

import (
	"errors"
	"slices"
	"strings"
)

// Keys of the settings blob stored per guild.
const (
	SettingPrefix     = "prefix"
	SettingCogs       = "cogs"
	SettingSubscribed = "subscribed"
)

const (
	DefaultPrefix   = "."
	PrefixSeparator = "|"
)

// Feature names, one per skill.
const (
	FeatureGeneral     = "GENERAL"
	FeatureSettings    = "SETTINGS"
	FeaturePartyBus    = "PARTYBUS"
	FeatureReddit      = "REDDIT"
	FeatureDiscordBots = "DISCORDBOTS"
	FeatureFortnite    = "FORTNITE"
)

var (
	ErrEmptyPrefix      = errors.New("prefix cannot be empty")
	ErrPrefixSeparator  = errors.New("prefix cannot contain " + PrefixSeparator)
	ErrPrefixMentionish = errors.New("prefix cannot start with a mention or channel reference")
)

// Settings is the JSON blob persisted in the guild_config.settings column.
type Settings map[string]any

// GuildConfig is one row of guild_config.
type GuildConfig struct {
	GuildID  string
	Name     string
	Settings Settings
}

// Prefix returns the raw prefix setting, which may hold several prefixes joined by "|".
func (s Settings) Prefix() string {
	p, _ := s[SettingPrefix].(string)
	return p
}

// Feature reports the stored flag for name. Unknown names are false.
func (s Settings) Feature(name string) bool {
	cogs, ok := s[SettingCogs].(map[string]any)
	if !ok {
		return false
	}
	enabled, _ := cogs[NormalizeFeature(name)].(bool)
	return enabled
}

// Clone copies the blob deep enough that mutating the cogs map of the copy leaves s alone.
func (s Settings) Clone() Settings {
	out := make(Settings, len(s))
	for k, v := range s {
		if m, ok := v.(map[string]any); ok {
			cp := make(map[string]any, len(m))
			for mk, mv := range m {
				cp[mk] = mv
			}
			v = cp
		}
		out[k] = v
	}
	return out
}

// SplitPrefixes turns a stored prefix setting into its individual prefixes, dropping
// empty segments.
func SplitPrefixes(raw string) []string {
	if !strings.Contains(raw, PrefixSeparator) {
		if raw == "" {
			return nil
		}
		return []string{raw}
	}
	var out []string
	for _, p := range strings.Split(raw, PrefixSeparator) {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinPrefixes is the inverse of SplitPrefixes.
func JoinPrefixes(prefixes []string) string {
	return strings.Join(prefixes, PrefixSeparator)
}

// ValidatePrefix checks a single prefix before it is stored.
func ValidatePrefix(p string) error {
	switch {
	case p == "":
		return ErrEmptyPrefix
	case strings.Contains(p, PrefixSeparator):
		return ErrPrefixSeparator
	case strings.HasPrefix(p, "@"), strings.HasPrefix(p, "#"),
		strings.HasPrefix(p, "<@"), strings.HasPrefix(p, "<#"):
		return ErrPrefixMentionish
	}
	return nil
}

func NormalizeFeature(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// FeatureCatalog is the fixed set of feature names a guild can toggle.
type FeatureCatalog struct {
	names     []string
	protected map[string]bool
}

// NewFeatureCatalog builds a catalog. Protected names are added to the known set.
func NewFeatureCatalog(known, protected []string) FeatureCatalog {
	c := FeatureCatalog{protected: make(map[string]bool, len(protected))}
	for _, n := range protected {
		n = NormalizeFeature(n)
		c.protected[n] = true
		if !slices.Contains(c.names, n) {
			c.names = append(c.names, n)
		}
	}
	for _, n := range known {
		n = NormalizeFeature(n)
		if !slices.Contains(c.names, n) {
			c.names = append(c.names, n)
		}
	}
	return c
}

// DefaultFeatureCatalog lists every skill shipped with the bot.
func DefaultFeatureCatalog() FeatureCatalog {
	return NewFeatureCatalog(
		[]string{FeaturePartyBus, FeatureReddit, FeatureDiscordBots, FeatureFortnite},
		[]string{FeatureGeneral, FeatureSettings},
	)
}

func (c FeatureCatalog) Names() []string {
	return slices.Clone(c.names)
}

func (c FeatureCatalog) Known(name string) bool {
	return slices.Contains(c.names, NormalizeFeature(name))
}

func (c FeatureCatalog) Protected(name string) bool {
	return c.protected[NormalizeFeature(name)]
}

// DefaultSettings generates a fresh settings blob: default prefix, every feature on.
func (c FeatureCatalog) DefaultSettings() Settings {
	cogs := make(map[string]any, len(c.names))
	for _, n := range c.names {
		cogs[n] = true
	}
	return Settings{
		SettingPrefix:     DefaultPrefix,
		SettingCogs:       cogs,
		SettingSubscribed: true,
	}
}
