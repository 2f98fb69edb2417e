package command

import (
	"fmt"

	"fortnite-bot/utils"
)

// Check is evaluated before a handler runs. A non-nil error stops the dispatch; checks
// after it are not evaluated.
type Check func(c *Context) error

func permissionDenied() *Error {
	return NewError(KindPermissionDenied, "You do not have permission to use this command or it has been disabled!")
}

// IsOwner passes only for the configured bot owner.
func IsOwner() Check {
	return func(c *Context) error {
		if c.IsOwner() {
			return nil
		}
		return permissionDenied()
	}
}

// GuildOnly fails in direct messages.
func GuildOnly() Check {
	return func(c *Context) error {
		if c.Message.IsDirect() {
			return NewError(KindGuildOnly, "This command cannot be used in private messages!")
		}
		return nil
	}
}

// HasGuildPermission requires the author to hold the named guild permission, e.g.
// "administrator" or "manage-guild". The owner always passes. Fails outside a guild.
func HasGuildPermission(name string) Check {
	flag, ok := utils.PermissionByName(name)
	if !ok {
		panic(fmt.Sprintf("unknown permission %q", name))
	}
	return func(c *Context) error {
		if c.IsOwner() {
			return nil
		}
		if c.Message.IsDirect() || !utils.HasPermission(c.Message.Permissions, flag) {
			return permissionDenied()
		}
		return nil
	}
}

// FeatureEnabled requires the guild to have feature switched on. Direct messages pass.
func FeatureEnabled(feature string) Check {
	return func(c *Context) error {
		if c.Message.IsDirect() {
			return nil
		}
		enabled, err := c.Settings().GetFeature(c.Context(), c.Message.GuildID, feature)
		if err != nil {
			return fmt.Errorf("failed to read feature %s: %w", feature, err)
		}
		if !enabled {
			return NewError(KindFeatureDisabled, ":x: This command has been disabled.")
		}
		return nil
	}
}

// checksFor lists the checks that guard cmd itself, without its parents.
func checksFor(cmd *Command) []Check {
	var checks []Check
	if cmd.GuildOnly {
		checks = append(checks, GuildOnly())
	}
	if cmd.OwnerOnly {
		checks = append(checks, IsOwner())
	}
	return append(checks, cmd.Checks...)
}

// runChecks evaluates the checks of every command on the path from the root to cmd.
func runChecks(c *Context, cmd *Command) error {
	var path []*Command
	for p := cmd; p != nil; p = p.parent {
		path = append([]*Command{p}, path...)
	}
	for _, p := range path {
		for _, check := range checksFor(p) {
			if err := check(c); err != nil {
				return err
			}
		}
	}
	return nil
}
