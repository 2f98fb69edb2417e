package command

import (
	"errors"
	"fmt"
	"time"

	"fortnite-bot/utils"

	"go.uber.org/zap"
)

// translate is the single place a failed dispatch is turned into a reply. Classified
// errors become one notice, anything else is logged and alerted without a reply.
func (d *Dispatcher) translate(c *Context, err error) Outcome {
	cmdErr, ok := AsError(err)
	if !ok {
		d.fail(c, err)
		return OutcomeFailed
	}

	if cmdErr.Kind == KindUnknownVerb {
		d.logger.Info("unknown command", zap.String("content", c.Message.Content), zap.Error(err))
		return OutcomeUnknownVerb
	}

	title, body := "Command Error", cmdErr.Message
	switch cmdErr.Kind {
	case KindGuildOnly:
		title = "Error"
	case KindFeatureDisabled:
		title = "Command Disabled"
	case KindCooldown:
		title = "Command Cooldown"
		body = fmt.Sprintf("%s Try again in %s.", cmdErr.Message, formatWait(cmdErr.RetryAfter))
	case KindMissingArgument, KindBadArgument:
		if usage := usageLine(c); usage != "" {
			body += "\nUsage: `" + usage + "`"
		}
	}

	if c.Replied() {
		d.logger.Warn("handler already replied, dropping error notice",
			zap.String("kind", cmdErr.Kind.String()), zap.Error(err))
		return OutcomeRejected
	}
	if sendErr := c.Notify(utils.SeverityError, title, body); sendErr != nil {
		d.logger.Error("failed to send error notice", zap.Error(sendErr))
	}
	return OutcomeRejected
}

func (d *Dispatcher) fail(c *Context, err error) {
	operation := c.Message.Content
	if c.Command != nil {
		operation = c.Command.QualifiedName()
	}
	fields := []zap.Field{
		zap.String("command", operation),
		zap.String("author_id", c.Message.Author.ID),
		zap.String("guild_id", c.Message.GuildID),
		zap.Error(err),
	}

	var p *panicError
	if errors.As(err, &p) {
		fields = append(fields, zap.ByteString("stack", p.stack))
	}
	d.logger.Error("command failed", fields...)
	if d.alerter != nil {
		d.alerter.Error("dispatcher", operation, err.Error())
	}
}

func usageLine(c *Context) string {
	if c.Command == nil {
		return ""
	}
	return Usage(c.Prefix, c.Command)
}

func formatWait(d time.Duration) string {
	return fmt.Sprintf("%.2fs", d.Seconds())
}
