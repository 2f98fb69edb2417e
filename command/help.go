package command

import (
	"fmt"
	"strings"

	"fortnite-bot/utils"

	"github.com/bwmarrin/discordgo"
)

func helpCommand() *Command {
	return &Command{
		Name:    "help",
		Help:    "Shows this message, or the usage of one command.",
		Params:  []Param{{Name: "command", Optional: true}},
		Handler: helpHandler,
	}
}

func helpHandler(c *Context) error {
	words := strings.Fields(c.RawArgs)
	if len(words) == 0 {
		return c.Send(overviewEmbed(c.Prefix, c.Registry()))
	}

	cmd, depth := c.Registry().Resolve(words)
	if cmd == nil || cmd.Hidden || depth < len(words) {
		return c.Notifyf(utils.SeverityInfo, "Help", "No command called %q found.", strings.Join(words, " "))
	}
	return c.Send(commandEmbed(c.Prefix, cmd))
}

func sendHelp(c *Context, cmd *Command) error {
	return c.Send(commandEmbed(c.Prefix, cmd))
}

// Usage renders the invocation line of cmd, e.g. ".settings prefix set <prefix>".
func Usage(prefix string, cmd *Command) string {
	parts := []string{prefix + cmd.QualifiedName()}
	if cmd.IsGroup() && cmd.Handler == nil {
		parts = append(parts, "<subcommand>")
	}
	for _, p := range cmd.Params {
		parts = append(parts, p.usage())
	}
	return strings.Join(parts, " ")
}

func overviewEmbed(prefix string, r *Registry) *discordgo.MessageEmbed {
	bySkill := map[string][]string{}
	for _, cmd := range r.Commands() {
		if cmd.Hidden {
			continue
		}
		bySkill[cmd.skill] = append(bySkill[cmd.skill], fmt.Sprintf("`%s` - %s", cmd.Name, firstLine(cmd.Help)))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Help",
		Description: fmt.Sprintf("Type `%shelp <command>` for more info on a command.", prefix),
		Color:       utils.SeverityInfo.Color(),
	}
	for _, skill := range r.Skills() {
		lines := bySkill[skill]
		if len(lines) == 0 {
			continue
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  skill,
			Value: strings.Join(lines, "\n"),
		})
	}
	return embed
}

func commandEmbed(prefix string, cmd *Command) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "`" + Usage(prefix, cmd) + "`",
		Description: cmd.Help,
		Color:       utils.SeverityInfo.Color(),
	}
	if len(cmd.Aliases) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Aliases",
			Value: strings.Join(cmd.Aliases, ", "),
		})
	}

	var subs []string
	for _, sub := range cmd.Subcommands {
		if !sub.Hidden {
			subs = append(subs, fmt.Sprintf("`%s` - %s", sub.Name, firstLine(sub.Help)))
		}
	}
	if len(subs) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Commands",
			Value: strings.Join(subs, "\n"),
		})
	}
	return embed
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	if line == "" {
		return "No description."
	}
	return line
}
