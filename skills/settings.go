package skills

import (
	"fmt"
	"slices"
	"strings"

	"fortnite-bot/command"
	"fortnite-bot/database"
	"fortnite-bot/models"
	"fortnite-bot/utils"
)

// Settings lets guild administrators change how the bot behaves in their guild.
type Settings struct {
	Store    database.SettingsIFace
	Catalog  models.FeatureCatalog
	Fallback string
}

func (s *Settings) Name() string { return models.FeatureSettings }

func (s *Settings) Register(r *command.Registrar) error {
	prefixParam := []command.Param{{Name: "prefix"}}
	r.Add(&command.Command{
		Name:      "settings",
		Help:      "Settings and commands unique to servers.",
		GuildOnly: true,
		Checks:    []command.Check{command.HasGuildPermission("administrator")},
		Subcommands: []*command.Command{
			{
				Name: "prefix",
				Help: "View or change the command prefixes of this server.",
				Subcommands: []*command.Command{
					{Name: "get", Help: "Show the current prefixes.", Handler: s.prefixGet},
					{Name: "set", Help: "Replace every prefix with a single one.", Params: prefixParam, Handler: s.prefixSet},
					{Name: "add", Help: "Add another prefix.", Params: prefixParam, Handler: s.prefixAdd},
					{Name: "remove", Help: "Remove one of the prefixes.", Params: prefixParam, Handler: s.prefixRemove},
					{Name: "reset", Help: "Go back to the default prefix.", Handler: s.prefixReset},
				},
			},
			{
				Name: "cog",
				Help: "Enable or disable a group of commands.",
				Subcommands: []*command.Command{
					{Name: "get", Help: "Show whether a group of commands is enabled.",
						Params: []command.Param{{Name: "name"}}, Handler: s.cogGet},
					{Name: "set", Help: "Enable or disable a group of commands.",
						Params: []command.Param{{Name: "name"}, {Name: "enabled", Type: command.Bool}}, Handler: s.cogSet},
				},
			},
			{Name: "reset", Help: "Reset every setting of this server.", Handler: s.reset},
		},
	})
	return nil
}

func (s *Settings) prefixes(c *command.Context) ([]string, error) {
	v, _, err := s.Store.GetSetting(c.Context(), c.Message.GuildID, models.SettingPrefix)
	if err != nil {
		return nil, err
	}
	raw, _ := v.(string)
	if prefixes := models.SplitPrefixes(raw); len(prefixes) > 0 {
		return prefixes, nil
	}
	return []string{s.Fallback}, nil
}

func (s *Settings) storePrefixes(c *command.Context, prefixes []string) error {
	ok, err := s.Store.SetSetting(c.Context(), c.Message.GuildID, models.SettingPrefix, models.JoinPrefixes(prefixes))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("prefix setting missing for guild %s", c.Message.GuildID)
	}
	return nil
}

func quoteAll(prefixes []string) string {
	quoted := make([]string, len(prefixes))
	for i, p := range prefixes {
		quoted[i] = "`" + p + "`"
	}
	return strings.Join(quoted, " | ")
}

func invalidPrefix(c *command.Context, err error) error {
	return c.Notifyf(utils.SeverityError, "Invalid Prefix", "The prefix `%s` cannot be used: %v.", c.String(0), err)
}

func (s *Settings) prefixGet(c *command.Context) error {
	prefixes, err := s.prefixes(c)
	if err != nil {
		return err
	}
	return c.Notify(utils.SeverityInfo, "Prefix", "Current prefixes: "+quoteAll(prefixes))
}

func (s *Settings) prefixSet(c *command.Context) error {
	p := c.String(0)
	if err := models.ValidatePrefix(p); err != nil {
		return invalidPrefix(c, err)
	}
	if err := s.storePrefixes(c, []string{p}); err != nil {
		return err
	}
	return c.Notifyf(utils.SeveritySuccess, "Prefix Updated", "The prefix is now `%s`.", p)
}

func (s *Settings) prefixAdd(c *command.Context) error {
	p := c.String(0)
	if err := models.ValidatePrefix(p); err != nil {
		return invalidPrefix(c, err)
	}
	prefixes, err := s.prefixes(c)
	if err != nil {
		return err
	}
	if slices.Contains(prefixes, p) {
		return c.Notifyf(utils.SeverityError, "Error", "`%s` is already a prefix.", p)
	}
	prefixes = append(prefixes, p)
	if err := s.storePrefixes(c, prefixes); err != nil {
		return err
	}
	return c.Notify(utils.SeveritySuccess, "Prefix Added", "Current prefixes: "+quoteAll(prefixes))
}

func (s *Settings) prefixRemove(c *command.Context) error {
	p := c.String(0)
	prefixes, err := s.prefixes(c)
	if err != nil {
		return err
	}
	idx := slices.Index(prefixes, p)
	if idx < 0 {
		return c.Notifyf(utils.SeverityError, "Error", "`%s` is not a prefix.", p)
	}
	if len(prefixes) == 1 {
		return c.Notify(utils.SeverityError, "Error", "You cannot remove the only prefix!")
	}
	prefixes = slices.Delete(prefixes, idx, idx+1)
	if err := s.storePrefixes(c, prefixes); err != nil {
		return err
	}
	return c.Notify(utils.SeveritySuccess, "Prefix Removed", "Current prefixes: "+quoteAll(prefixes))
}

func (s *Settings) prefixReset(c *command.Context) error {
	if err := s.storePrefixes(c, []string{models.DefaultPrefix}); err != nil {
		return err
	}
	return c.Notifyf(utils.SeveritySuccess, "Prefix Reset", "The prefix is now `%s`.", models.DefaultPrefix)
}

func (s *Settings) cogGet(c *command.Context) error {
	name := models.NormalizeFeature(c.String(0))
	if !s.Catalog.Known(name) {
		return c.Notifyf(utils.SeverityError, "Error", "There is no cog called `%s`. Cogs: %s", name, quoteAll(s.Catalog.Names()))
	}
	enabled, err := s.Store.GetFeature(c.Context(), c.Message.GuildID, name)
	if err != nil {
		return err
	}
	state := "disabled"
	if enabled {
		state = "enabled"
	}
	return c.Notifyf(utils.SeverityInfo, "Cog", "`%s` is %s.", name, state)
}

func (s *Settings) cogSet(c *command.Context) error {
	name := models.NormalizeFeature(c.String(0))
	enabled := c.Bool(1)
	switch {
	case !s.Catalog.Known(name):
		return c.Notifyf(utils.SeverityError, "Error", "There is no cog called `%s`. Cogs: %s", name, quoteAll(s.Catalog.Names()))
	case s.Catalog.Protected(name) && !enabled:
		return c.Notifyf(utils.SeverityError, "Error", "`%s` cannot be disabled!", name)
	}

	ok, err := s.Store.SetFeature(c.Context(), c.Message.GuildID, name, enabled)
	if err != nil {
		return err
	}
	if !ok {
		return c.Notifyf(utils.SeverityError, "Error", "`%s` could not be changed.", name)
	}
	state := "disabled"
	if enabled {
		state = "enabled"
	}
	return c.Notifyf(utils.SeveritySuccess, "Cog Updated", "`%s` is now %s.", name, state)
}

func (s *Settings) reset(c *command.Context) error {
	if _, err := s.Store.Reset(c.Context(), c.Message.GuildID); err != nil {
		return err
	}
	return c.Notify(utils.SeveritySuccess, "Settings Reset", "Every setting of this server is back to its default.")
}
