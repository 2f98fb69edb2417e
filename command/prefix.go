package command

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"fortnite-bot/models"
)

// SettingsSource is the read side of the settings store the dispatcher relies on.
type SettingsSource interface {
	GetSetting(ctx context.Context, guildID, key string) (any, bool, error)
	GetFeature(ctx context.Context, guildID, feature string) (bool, error)
}

// PrefixResolver computes which prefixes qualify a message as a command.
type PrefixResolver struct {
	settings SettingsSource
	fallback string
	botID    func() string
}

// NewPrefixResolver builds a resolver. botID is read on every call since the bot
// identity is only known once the gateway is ready.
func NewPrefixResolver(settings SettingsSource, fallback string, botID func() string) *PrefixResolver {
	if fallback == "" {
		fallback = models.DefaultPrefix
	}
	return &PrefixResolver{settings: settings, fallback: fallback, botID: botID}
}

// Resolve returns the prefixes for msg, longest first, mention forms included.
// Direct messages use the fallback prefix. On a store error the fallback is still
// returned alongside the error.
func (r *PrefixResolver) Resolve(ctx context.Context, msg *Message) ([]string, error) {
	var (
		prefixes []string
		err      error
	)
	if msg.IsDirect() {
		prefixes = []string{r.fallback}
	} else {
		prefixes, err = r.guildPrefixes(ctx, msg.GuildID)
		if err != nil || len(prefixes) == 0 {
			prefixes = []string{r.fallback}
		}
	}

	if id := r.mentionID(); id != "" {
		prefixes = append(prefixes, "<@"+id+">", "<@!"+id+">")
	}
	sortLongestFirst(prefixes)
	return prefixes, err
}

func (r *PrefixResolver) guildPrefixes(ctx context.Context, guildID string) ([]string, error) {
	v, ok, err := r.settings.GetSetting(ctx, guildID, models.SettingPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve prefix for guild %s: %w", guildID, err)
	}
	raw, isString := v.(string)
	if !ok || !isString {
		return nil, nil
	}
	return models.SplitPrefixes(raw), nil
}

func (r *PrefixResolver) mentionID() string {
	if r.botID == nil {
		return ""
	}
	return r.botID()
}

func sortLongestFirst(prefixes []string) {
	sort.SliceStable(prefixes, func(i, j int) bool {
		return len(prefixes[i]) > len(prefixes[j])
	})
}

// MatchPrefix returns the first of prefixes that content starts with. prefixes must be
// ordered longest first for the longest match to win.
func MatchPrefix(content string, prefixes []string) (string, bool) {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(content, p) {
			return p, true
		}
	}
	return "", false
}
