package skills

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fortnite-bot/command"
	"fortnite-bot/database"
	"fortnite-bot/fetch"
	"fortnite-bot/models"
	"fortnite-bot/utils"

	"github.com/bwmarrin/discordgo"
)

const playerPageURL = "https://partybus.gg/player/"

// Partybus playlist ids.
const (
	modeSolo  = 2
	modeSquad = 9
	modeDuo   = 10
)

type modeStats struct {
	P        int    `json:"p"`
	Platform string `json:"platform"`
	Games    int    `json:"games"`
	Kills    int    `json:"kills"`
	Minutes  int    `json:"minutes"`
	PlaceA   int    `json:"placeA"`
	PlaceB   int    `json:"placeB"`
	PlaceC   int    `json:"placeC"`
}

type playerResponse struct {
	Details struct {
		DisplayName string `json:"displayName"`
	} `json:"details"`
	Stats []modeStats `json:"stats"`
}

type gameRecord struct {
	modeStats
	Modified int64 `json:"modified"`
}

type statMode struct {
	p      int
	title  string
	labelB string
	labelC string
}

var (
	soloMode  = statMode{p: modeSolo, title: "Solo", labelB: "Top 10s", labelC: "Top 25s"}
	duoMode   = statMode{p: modeDuo, title: "Duo", labelB: "Top 5s", labelC: "Top 12s"}
	squadMode = statMode{p: modeSquad, title: "Squad", labelB: "Top 3s", labelC: "Top 6s"}
)

type platformStyle struct {
	name  string
	icon  string
	color int
}

var platforms = map[string]platformStyle{
	"pc":  {name: "PC", icon: "https://upload.wikimedia.org/wikipedia/commons/thumb/5/5f/Windows_logo_-_2012.svg/768px-Windows_logo_-_2012.svg.png", color: 44527},
	"ps4": {name: "PS4", icon: "https://psmedia.playstation.com/is/image/psmedia/404-three-column-playstationlogo-01-en-19feb15", color: 0x206694},
	"xb1": {name: "XB1", icon: "https://upload.wikimedia.org/wikipedia/commons/thumb/f/f9/Xbox_one_logo.svg/2000px-Xbox_one_logo.svg.png", color: 1080335},
}

// PartyBus looks up player statistics on partybus.gg.
type PartyBus struct {
	Players database.PlayerIFace
	Fetcher fetch.Fetcher
	BaseURL string
}

func (p *PartyBus) Name() string { return models.FeaturePartyBus }

func (p *PartyBus) Register(r *command.Registrar) error {
	name := []command.Param{{Name: "name", Optional: true}}
	r.Add(
		&command.Command{Name: "stats", Help: "Return general stats for a player or yourself using Partybus.gg", Params: name, Handler: p.overall},
		&command.Command{Name: "solo", Help: "Return solo stats for a player or yourself using Partybus.gg", Params: name, Handler: p.mode(soloMode)},
		&command.Command{Name: "duo", Help: "Return duo stats for a player or yourself using Partybus.gg", Params: name, Handler: p.mode(duoMode)},
		&command.Command{Name: "squad", Help: "Return squad stats for a player or yourself using Partybus.gg", Params: name, Handler: p.mode(squadMode)},
		&command.Command{Name: "lpg", Help: "Stats for most recently played mode. Only accurate to last MODE, NOT game.", Params: name, Handler: p.lastGame},
		&command.Command{
			Name:    "ign",
			Help:    "Tag your Fortnite IGN to your Discord account. Surround names with spaces in quotes. Empty to see current.",
			Params:  []command.Param{{Name: "epic_id", Optional: true}},
			Handler: p.ign,
		},
	)
	return nil
}

func (p *PartyBus) playerURL(name string, suffix string) string {
	return p.BaseURL + "/players/" + url.PathEscape(name) + suffix
}

// player resolves whose statistics are wanted: the given name, the author's linked Epic
// id, or the author's own name. found is false when a notice was already sent.
func (p *PartyBus) player(c *command.Context, name string) (resp *playerResponse, found bool, err error) {
	given := name != ""
	if !given {
		linked, ok, err := p.Players.GetPlayer(c.Context(), c.Message.Author.ID)
		if err != nil {
			return nil, false, err
		}
		if ok {
			name = linked.PartyBusID
		} else {
			name = c.Message.Author.Name
		}
	}

	// partybus only serves players it has looked up at least once
	if _, err := p.Fetcher.FetchText(c.Context(), p.BaseURL+"/players/lookup/"+url.PathEscape(name)); err != nil && !notFound(err) {
		return nil, false, noData(c, err, "Partybus.gg could not be reached, please try again later.")
	}

	resp = &playerResponse{}
	if err := p.Fetcher.FetchJSON(c.Context(), p.playerURL(name, ""), resp); err != nil {
		if !notFound(err) {
			return nil, false, noData(c, err, "Partybus.gg could not be reached, please try again later.")
		}
		if given {
			return nil, false, c.Notify(utils.SeverityError, "Error",
				"The user you entered does not seem to exist, please re-check the name!")
		}
		return nil, false, c.Notifyf(utils.SeverityError, "Error",
			"Your Discord name does not seem to be the same as your Fortnite username, please find your IGN and "+
				"use the command again. Alternatively, tag your Epic ID to your Discord account by typing %sign <PlayerName>!",
			c.Prefix)
	}

	// a refresh failure only means slightly stale numbers
	_, _ = p.Fetcher.FetchText(c.Context(), p.playerURL(name, "/update"))
	if resp.Details.DisplayName == "" {
		resp.Details.DisplayName = name
	}
	return resp, true, nil
}

func notFound(err error) bool {
	var failure *fetch.Failure
	return errors.As(err, &failure) && failure.Status == http.StatusNotFound
}

func (p *PartyBus) overall(c *command.Context) error {
	resp, ok, err := p.player(c, c.String(0))
	if !ok {
		return err
	}

	var total modeStats
	for _, s := range resp.Stats {
		total.Games += s.Games
		total.Kills += s.Kills
		total.Minutes += s.Minutes
		total.PlaceA += s.PlaceA
		total.PlaceB += s.PlaceB
		total.PlaceC += s.PlaceC
	}
	if total.Games == 0 {
		return c.Notify(utils.SeverityInfo, "Notice", "No statistics found!")
	}

	embed := playerEmbed(resp, "Overall Statistics", total.Minutes)
	embed.Fields = []*discordgo.MessageEmbedField{
		statField("Total Games", fmt.Sprint(total.Games)),
		statField("Wins", fmt.Sprint(total.PlaceA)),
		statField("Win Rate", percent(total.PlaceA, total.Games)),
		statField("Kill Rate", ratio(total.Kills, total.Games)),
		statField("Top 25%", percent(total.PlaceC, total.Games)),
		statField("Top 10%", percent(total.PlaceB, total.Games)),
	}
	return c.Send(embed)
}

func (p *PartyBus) mode(m statMode) command.HandlerFunc {
	return func(c *command.Context) error {
		resp, ok, err := p.player(c, c.String(0))
		if !ok {
			return err
		}

		for _, s := range resp.Stats {
			if s.P != m.p || s.Games == 0 {
				continue
			}
			embed := playerEmbed(resp, m.title+" Statistics", s.Minutes)
			embed.Fields = []*discordgo.MessageEmbedField{
				statField("Total Games", fmt.Sprint(s.Games)),
				statField("Wins", fmt.Sprint(s.PlaceA)),
				statField("Win Rate", percent(s.PlaceA, s.Games)),
			}
			if m.p == modeSolo {
				embed.Fields = append(embed.Fields, statField("KD Ratio", ratio(s.Kills, s.Games-s.PlaceA)))
			} else {
				embed.Fields = append(embed.Fields, statField("Kill Rate", ratio(s.Kills, s.Games)))
			}
			embed.Fields = append(embed.Fields,
				statField(m.labelB, fmt.Sprint(s.PlaceB)),
				statField(m.labelC, fmt.Sprint(s.PlaceC)),
			)
			return c.Send(embed)
		}
		return c.Notifyf(utils.SeverityInfo, "Notice", "No %s statistics found!", strings.ToLower(m.title))
	}
}

func (p *PartyBus) lastGame(c *command.Context) error {
	resp, ok, err := p.player(c, c.String(0))
	if !ok {
		return err
	}

	var history []gameRecord
	if err := p.Fetcher.FetchJSON(c.Context(), p.playerURL(resp.Details.DisplayName, "/history?p="), &history); err != nil {
		return noData(c, err, "No game data found!")
	}
	if len(history) == 0 {
		return c.Notify(utils.SeverityError, "Error", "No game data found!")
	}

	game := history[0]
	embed := &discordgo.MessageEmbed{
		Title:       "Game Played " + time.Unix(game.Modified, 0).UTC().Format("2006-01-02") + " (UTC)",
		Description: fmt.Sprintf("Duration: %d Min.", game.Minutes),
		Color:       utils.ColorNoticeError,
		Fields: []*discordgo.MessageEmbedField{
			statField("Mode", modeTitle(game.P)),
			statField("Result", "Lost"),
			statField("Kills", fmt.Sprint(game.Kills)),
		},
	}
	if game.PlaceA > 0 {
		embed.Color = utils.ColorNoticeSuccess
		embed.Fields[1].Value = "Victory"
	}
	if style, ok := platforms[game.Platform]; ok {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: style.name, IconURL: style.icon}
	}
	return c.Send(embed)
}

func (p *PartyBus) ign(c *command.Context) error {
	epicID := c.String(0)
	if epicID == "" {
		linked, ok, err := p.Players.GetPlayer(c.Context(), c.Message.Author.ID)
		if err != nil {
			return err
		}
		if !ok {
			return c.Notifyf(utils.SeverityError, "Error",
				"No player name specified or no Epic ID was found linked to your account!\n(See '%shelp ign' for more command information!)",
				c.Prefix)
		}
		return c.Send(&discordgo.MessageEmbed{
			Title:       "Current Epic ID",
			Color:       utils.ColorNoticeInfo,
			Description: linked.PartyBusID,
			URL:         playerPageURL + url.PathEscape(linked.PartyBusID),
			Footer:      &discordgo.MessageEmbedFooter{Text: "Fortnite"},
		})
	}

	if err := p.Fetcher.FetchJSON(c.Context(), p.playerURL(epicID, ""), &playerResponse{}); err != nil {
		if notFound(err) {
			return c.Notify(utils.SeverityError, "Error",
				"The Epic ID you entered does not exist! Remember names with spaces need quotes!")
		}
		return noData(c, err, "Partybus.gg could not be reached, please try again later.")
	}

	_, existed, err := p.Players.GetPlayer(c.Context(), c.Message.Author.ID)
	if err != nil {
		return err
	}
	if err := p.Players.LinkPlayer(c.Context(), models.Player{DiscordID: c.Message.Author.ID, PartyBusID: epicID}); err != nil {
		return err
	}
	if existed {
		return c.Notify(utils.SeveritySuccess, "Epic ID Updated", "You have updated your Epic ID!")
	}
	return c.Notify(utils.SeveritySuccess, "Epic ID Updated", "You have attached your Epic ID to your Discord ID!")
}

func playerEmbed(resp *playerResponse, title string, minutes int) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       resp.Details.DisplayName,
		URL:         playerPageURL + url.PathEscape(resp.Details.DisplayName),
		Description: fmt.Sprintf("%s (%s)", title, playtime(minutes)),
		Color:       utils.ColorNoticeInfo,
	}
	if len(resp.Stats) > 0 {
		if style, ok := platforms[resp.Stats[0].Platform]; ok {
			embed.Footer = &discordgo.MessageEmbedFooter{Text: style.name, IconURL: style.icon}
			embed.Color = style.color
		}
	}
	return embed
}

func statField(name, value string) *discordgo.MessageEmbedField {
	return &discordgo.MessageEmbedField{Name: name, Value: value, Inline: true}
}

func percent(n, of int) string {
	if of == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.2f%%", float64(n)/float64(of)*100)
}

func ratio(n, of int) string {
	if of <= 0 {
		return fmt.Sprint(n)
	}
	return fmt.Sprintf("%.1f", float64(n)/float64(of))
}

// playtime renders minutes as "1D 2H 3M".
func playtime(minutes int) string {
	d := time.Duration(minutes) * time.Minute
	return fmt.Sprintf("%dD %dH %dM", int(d/(24*time.Hour)), int(d/time.Hour)%24, minutes%60)
}

func modeTitle(p int) string {
	switch p {
	case modeSolo:
		return "Solo"
	case modeDuo:
		return "Duo"
	default:
		return "Squad"
	}
}
