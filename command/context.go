package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fortnite-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// Context is created for one dispatch and discarded afterwards.
type Context struct {
	ctx context.Context
	d   *Dispatcher

	Message *Message
	// Prefix is the literal prefix or mention that matched.
	Prefix  string
	Command *Command
	// Path holds the words that addressed Command, as typed.
	Path []string
	Args []any
	// RawArgs is what followed the verb path.
	RawArgs string

	replies int
}

func (c *Context) Context() context.Context {
	return c.ctx
}

func (c *Context) Now() time.Time {
	return c.d.now()
}

// IsOwner reports whether the author is the configured bot owner.
func (c *Context) IsOwner() bool {
	return c.d.ownerID != "" && c.Message.Author.ID == c.d.ownerID
}

// Invocation is the full command as typed, without arguments.
func (c *Context) Invocation() string {
	return c.Prefix + strings.Join(c.Path, " ")
}

// Settings returns the guild settings source the dispatcher was built with.
func (c *Context) Settings() SettingsSource {
	return c.d.settings
}

func (c *Context) Registry() *Registry {
	return c.d.registry
}

// Arg returns the i-th parsed argument, nil when it was optional and not given.
func (c *Context) Arg(i int) any {
	if i < 0 || i >= len(c.Args) {
		return nil
	}
	return c.Args[i]
}

func (c *Context) HasArg(i int) bool {
	return c.Arg(i) != nil
}

func (c *Context) String(i int) string {
	s, _ := c.Arg(i).(string)
	return s
}

func (c *Context) Int(i int) int {
	n, _ := c.Arg(i).(int)
	return n
}

func (c *Context) Bool(i int) bool {
	b, _ := c.Arg(i).(bool)
	return b
}

func (c *Context) Notify(severity utils.Severity, title, body string) error {
	c.replies++
	return c.d.responder.Notify(c.Message.ChannelID, severity, title, body)
}

func (c *Context) Notifyf(severity utils.Severity, title, format string, args ...any) error {
	return c.Notify(severity, title, fmt.Sprintf(format, args...))
}

func (c *Context) Send(embeds ...*discordgo.MessageEmbed) error {
	c.replies++
	return c.d.responder.SendEmbeds(c.Message.ChannelID, embeds...)
}

func (c *Context) SendText(text string) error {
	c.replies++
	return c.d.responder.SendText(c.Message.ChannelID, text)
}

// Replied reports whether the handler already answered.
func (c *Context) Replied() bool {
	return c.replies > 0
}
