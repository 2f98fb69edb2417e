package command

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Outcome is what a single dispatch ended in.
type Outcome int

const (
	// OutcomeIgnored: not a command, nothing logged.
	OutcomeIgnored Outcome = iota
	// OutcomeUnknownVerb: a prefix matched but no command did, one log line.
	OutcomeUnknownVerb
	// OutcomeRejected: one error notice was sent.
	OutcomeRejected
	// OutcomeHandled: the handler ran to completion.
	OutcomeHandled
	// OutcomeFailed: the handler failed unexpectedly, logged and alerted.
	OutcomeFailed
)

func (o Outcome) String() string {
	return [...]string{"ignored", "unknown_verb", "rejected", "handled", "failed"}[o]
}

// Alerter receives unexpected failures.
type Alerter interface {
	Error(module, operation, details string)
}

// Dispatcher turns inbound messages into command invocations.
type Dispatcher struct {
	registry  *Registry
	prefixes  *PrefixResolver
	settings  SettingsSource
	responder Responder
	counter   *Counter
	ownerID   string
	logger    *zap.Logger
	alerter   Alerter
	now       func() time.Time
}

type DispatcherConfig struct {
	Registry  *Registry
	Prefixes  *PrefixResolver
	Settings  SettingsSource
	Responder Responder
	Counter   *Counter
	OwnerID   string
	Logger    *zap.Logger
	Alerter   Alerter
	// Now defaults to time.Now.
	Now func() time.Time
}

func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	d := &Dispatcher{
		registry:  cfg.Registry,
		prefixes:  cfg.Prefixes,
		settings:  cfg.Settings,
		responder: cfg.Responder,
		counter:   cfg.Counter,
		ownerID:   cfg.OwnerID,
		logger:    cfg.Logger,
		alerter:   cfg.Alerter,
		now:       cfg.Now,
	}
	if d.counter == nil {
		d.counter = NewCounter()
	}
	if d.logger == nil {
		d.logger = zap.NewNop()
	}
	if d.now == nil {
		d.now = time.Now
	}
	return d
}

func (d *Dispatcher) Counter() *Counter {
	return d.counter
}

// Dispatch handles one inbound message and produces at most one reply.
func (d *Dispatcher) Dispatch(ctx context.Context, msg *Message) Outcome {
	if msg.Author.Bot {
		return OutcomeIgnored
	}

	prefixes, err := d.prefixes.Resolve(ctx, msg)
	if err != nil {
		d.logger.Warn("falling back to default prefix", zap.String("guild_id", msg.GuildID), zap.Error(err))
	}
	prefix, ok := MatchPrefix(msg.Content, prefixes)
	if !ok {
		return OutcomeIgnored
	}

	rest := msg.Content[len(prefix):]
	words := strings.Fields(rest)
	if len(words) == 0 {
		return OutcomeIgnored
	}
	verb := words[0]
	if _, ok := d.registry.Lookup(verb); !ok {
		d.logger.Info(fmt.Sprintf("User tried to use command (%s) that does not exist!", verb),
			zap.String("author", msg.Author.Name),
			zap.String("origin", msg.Origin()))
		return OutcomeUnknownVerb
	}

	c := &Context{ctx: ctx, d: d, Message: msg, Prefix: prefix}

	tokens, err := Tokenize(rest)
	if err != nil {
		return d.translate(c, err)
	}
	cmd, depth := d.registry.Resolve(tokens)
	c.Command = cmd
	c.Path = tokens[:depth]
	c.RawArgs = strings.Join(tokens[depth:], " ")

	if err := runChecks(c, cmd); err != nil {
		return d.translate(c, err)
	}

	if cmd.Handler == nil {
		// bare group
		return d.finish(c, sendHelp(c, cmd))
	}

	args, err := parseArgs(cmd.Params, tokens[depth:])
	if err != nil {
		return d.translate(c, err)
	}
	c.Args = args

	d.counter.Inc(cmd.Root().Name)
	d.logger.Info(fmt.Sprintf("%s in %s: %s", msg.Author.Name, msg.Origin(), msg.Content),
		zap.String("command", cmd.QualifiedName()),
		zap.String("author_id", msg.Author.ID),
		zap.String("guild_id", msg.GuildID))

	return d.finish(c, d.invoke(c, cmd))
}

func (d *Dispatcher) finish(c *Context, err error) Outcome {
	if err != nil {
		return d.translate(c, err)
	}
	return OutcomeHandled
}

// invoke runs the handler, turning a panic into an ordinary error.
func (d *Dispatcher) invoke(c *Context, cmd *Command) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r, stack: debug.Stack()}
		}
	}()
	return cmd.Handler(c)
}

type panicError struct {
	value any
	stack []byte
}

func (p *panicError) Error() string {
	return fmt.Sprintf("panic: %v", p.value)
}
