package bot

import (
	"context"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

type (
	ReadyFunc      func(ctx context.Context)
	GuildJoinFunc  func(ctx context.Context, guild *discordgo.Guild)
	GuildLeaveFunc func(ctx context.Context, guildID string)
)

// Events holds named subscriptions to gateway lifecycle events, and the set of guilds
// the bot is known to be in so that a join can be told apart from a guild loading.
type Events struct {
	mu     sync.Mutex
	ready  []ReadyFunc
	join   []GuildJoinFunc
	leave  []GuildLeaveFunc
	guilds map[string]bool

	logger *zap.Logger
}

func newEvents(logger *zap.Logger) *Events {
	return &Events{guilds: map[string]bool{}, logger: logger.Named("events")}
}

func (e *Events) OnReady(fn ReadyFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ready = append(e.ready, fn)
}

func (e *Events) OnGuildJoin(fn GuildJoinFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.join = append(e.join, fn)
}

func (e *Events) OnGuildLeave(fn GuildLeaveFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.leave = append(e.leave, fn)
}

// Ready records the guilds of the ready payload and notifies subscribers.
func (e *Events) Ready(ctx context.Context, guildIDs []string) {
	e.mu.Lock()
	for _, id := range guildIDs {
		e.guilds[id] = true
	}
	subs := append([]ReadyFunc(nil), e.ready...)
	e.mu.Unlock()

	for _, fn := range subs {
		e.safely("ready", func() { fn(ctx) })
	}
}

// GuildAvailable is called for every guild create event. It reports whether the guild
// is new to the bot, notifying join subscribers if so.
func (e *Events) GuildAvailable(ctx context.Context, guild *discordgo.Guild) bool {
	e.mu.Lock()
	if e.guilds[guild.ID] {
		e.mu.Unlock()
		return false
	}
	e.guilds[guild.ID] = true
	subs := append([]GuildJoinFunc(nil), e.join...)
	e.mu.Unlock()

	for _, fn := range subs {
		e.safely("guild_join", func() { fn(ctx, guild) })
	}
	return true
}

// GuildRemoved notifies leave subscribers when the bot was removed from a guild it knew.
func (e *Events) GuildRemoved(ctx context.Context, guildID string) {
	e.mu.Lock()
	if !e.guilds[guildID] {
		e.mu.Unlock()
		return
	}
	delete(e.guilds, guildID)
	subs := append([]GuildLeaveFunc(nil), e.leave...)
	e.mu.Unlock()

	for _, fn := range subs {
		e.safely("guild_leave", func() { fn(ctx, guildID) })
	}
}

// GuildCount is the number of guilds the bot is in.
func (e *Events) GuildCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.guilds)
}

func (e *Events) safely(event string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("event subscriber panicked", zap.String("event", event), zap.String("panic", fmt.Sprint(r)))
		}
	}()
	fn()
}
