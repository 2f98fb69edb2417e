package skills

import (
	"fmt"
	"runtime"
	"slices"
	"strings"
	"time"

	"fortnite-bot/command"
	"fortnite-bot/models"
	"fortnite-bot/utils"

	"github.com/bwmarrin/discordgo"
)

const bugReportURL = "http://fortnitehelp.epicgames.com/customer/en/portal/articles/2841545-how-do-i-submit-a-bug-report-for-fortnite-"

// General is always enabled.
type General struct {
	State     *discordgo.State
	StartedAt time.Time
	Version   string
	Counter   *command.Counter
}

func (g *General) Name() string { return models.FeatureGeneral }

func (g *General) Register(r *command.Registrar) error {
	r.Add(
		&command.Command{Name: "bug", Help: "Where to report a bug found in Fortnite.", Handler: g.bug},
		&command.Command{Name: "support", Help: "Do you need support from Epic Games?", Handler: g.support},
		&command.Command{Name: "lfg", Help: "Are you looking for a game?", GuildOnly: true, Handler: g.lfg},
		&command.Command{
			Name:    "info",
			Aliases: []string{"uptime", "up"},
			Help:    "Information about the bot's status.",
			Handler: g.info,
		},
	)
	return nil
}

func (g *General) bug(c *command.Context) error {
	return c.Send(&discordgo.MessageEmbed{
		Title:       "Epic Games Support",
		Color:       utils.ColorNoticeInfo,
		Description: "How do I submit a bug report for Fortnite?",
		URL:         bugReportURL,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "Report the Bug In-game",
				Value: "• Open the game menu\n\n• Select *Feedback*\n\n• Select *Bug*\n\n" +
					"• Fill in the *Subject* and *Body* fields with your feedback\n\n• Select *Send*",
			},
			{
				Name:  "Report the Bug Online",
				Value: "Additionally you can post in the Bug Reporting section of the forums.",
			},
		},
	})
}

func (g *General) support(c *command.Context) error {
	return c.Notify(utils.SeverityInfo, "Support",
		"Our tech support page can be found at http://epic.gm/fnhelp\n"+
			"Please see if any of the issues listed on the page apply to you, if not, use the Contact Us button on the right.")
}

func (g *General) lfg(c *command.Context) error {
	var br, stw []string
	for _, ch := range g.guildChannels(c.Message.GuildID) {
		if ch.Type != discordgo.ChannelTypeGuildText || !strings.Contains(ch.Name, "lfg") {
			continue
		}
		switch {
		case strings.Contains(ch.Name, "br"):
			br = append(br, ch.Mention())
		case strings.Contains(ch.Name, "stw"):
			stw = append(stw, ch.Mention())
		}
	}

	if len(br) == 0 && len(stw) == 0 {
		return c.Notify(utils.SeverityError, "Error",
			"This server does not have any LFG channels setup!\n\n"+
				"Please add channels containing *lfg* and either *br* or *stw*.\n\n"+
				"Example: **lfg_br** or **lfg_stw_pc**.")
	}

	var sb strings.Builder
	sb.WriteString("Please use any of the #lfg channels if you're looking for people to play with:\n\n")
	if len(br) > 0 {
		sb.WriteString("**Battle Royale:** " + strings.Join(br, " | ") + "\n\n")
	}
	if len(stw) > 0 {
		sb.WriteString("**Save the World:** " + strings.Join(stw, " | ") + "\n\n")
	}
	return c.SendText(sb.String())
}

func (g *General) guildChannels(guildID string) []*discordgo.Channel {
	if g.State == nil {
		return nil
	}
	guild, err := g.State.Guild(guildID)
	if err != nil {
		return nil
	}
	g.State.RLock()
	defer g.State.RUnlock()
	channels := slices.Clone(guild.Channels)
	slices.SortFunc(channels, func(a, b *discordgo.Channel) int { return a.Position - b.Position })
	return channels
}

func (g *General) info(c *command.Context) error {
	uptime := c.Now().Sub(g.StartedAt)
	users, channels, servers := g.totals()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return c.Send(&discordgo.MessageEmbed{
		Color: utils.ColorNoticeInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Uptime", Value: formatUptime(uptime)},
			{Name: "Total Users", Value: fmt.Sprint(users), Inline: true},
			{Name: "Total Channels", Value: fmt.Sprint(channels), Inline: true},
			{Name: "Total Servers", Value: fmt.Sprint(servers), Inline: true},
			{Name: "Command Usage", Value: commandUsage(g.Counter), Inline: true},
			{Name: "Bot Version", Value: g.Version, Inline: true},
			{Name: "Discordgo Version", Value: discordgo.VERSION, Inline: true},
			{Name: "Go Version", Value: runtime.Version(), Inline: true},
			{Name: "Memory Usage", Value: fmt.Sprintf("%.3f MB", float64(mem.Sys)/(1<<20)), Inline: true},
			{Name: "Operating System", Value: runtime.GOOS + " " + runtime.GOARCH},
		},
	})
}

func (g *General) totals() (users, channels, servers int) {
	if g.State == nil {
		return 0, 0, 0
	}
	g.State.RLock()
	defer g.State.RUnlock()
	for _, guild := range g.State.Guilds {
		users += guild.MemberCount
		channels += len(guild.Channels)
	}
	return users, channels, len(g.State.Guilds)
}

func formatUptime(d time.Duration) string {
	d = d.Round(time.Second)
	hours := int(d / time.Hour)
	minutes := int(d/time.Minute) % 60
	seconds := int(d/time.Second) % 60
	return fmt.Sprintf("%s, %s, and %s", plural(hours, "Hour"), plural(minutes, "Minute"), plural(seconds, "Second"))
}

func commandUsage(counter *command.Counter) string {
	if counter == nil {
		return "0"
	}
	total := counter.Total()
	top, n := counter.Top()
	if n == 0 {
		return fmt.Sprint(total)
	}
	return fmt.Sprintf("%d (Top Command: %s [x%d])", total, top, n)
}
