package skills

import (
	"fmt"
	"net/url"
	"strings"

	"fortnite-bot/command"
	"fortnite-bot/fetch"
	"fortnite-bot/models"
	"fortnite-bot/scanner"
	"fortnite-bot/utils"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

const (
	colorSale   = 8198301
	colorStream = 6570404
	maxStreams  = 10
)

type stream struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Status      string `json:"status"`
	Viewers     int    `json:"viewers"`
	Language    string `json:"language"`
}

// Fortnite serves item shop sales and live streams.
type Fortnite struct {
	Fetcher    fetch.Fetcher
	SalesURL   string
	StreamsURL string
}

func (f *Fortnite) Name() string { return models.FeatureFortnite }

func (f *Fortnite) Register(r *command.Registrar) error {
	if _, err := url.Parse(f.SalesURL); err != nil {
		return fmt.Errorf("invalid sales url: %w", err)
	}
	r.Add(
		&command.Command{Name: "daily", Help: "Get daily sale items.", Handler: f.sale(scanner.Daily)},
		&command.Command{Name: "weekly", Help: "Get weekly sale items.", Handler: f.sale(scanner.Weekly)},
		&command.Command{Name: "twitch", Help: "Get the top Fortnite Twitch streamers.", Handler: f.twitch},
	)
	return nil
}

// siteRoot is where relative image paths on the sale page point to.
func (f *Fortnite) siteRoot() string {
	u, err := url.Parse(f.SalesURL)
	if err != nil {
		return f.SalesURL
	}
	return u.Scheme + "://" + u.Host
}

func (f *Fortnite) sale(kind scanner.SaleKind) command.HandlerFunc {
	return func(c *command.Context) error {
		page, err := f.Fetcher.FetchText(c.Context(), f.SalesURL)
		if err != nil {
			return noData(c, err, "The item shop could not be reached, please try again later.")
		}
		sale, err := scanner.ParseSale(strings.NewReader(page), kind, f.siteRoot(), c.Now())
		if err != nil || len(sale.Items) == 0 {
			return c.Notify(utils.SeverityInfo, "Notice", "There is no sale right now!")
		}

		embeds := make([]*discordgo.MessageEmbed, 0, len(sale.Items))
		for _, item := range sale.Items {
			embed := &discordgo.MessageEmbed{
				Title:       "Fortnite: Item Sale",
				Description: sale.Title,
				Color:       colorSale,
				Fields: []*discordgo.MessageEmbedField{
					{Name: "Item", Value: item.Name, Inline: true},
					{Name: "Price", Value: fmt.Sprintf("%d V-Bucks", item.Price), Inline: true},
				},
			}
			if item.Image != "" {
				embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: item.Image}
			}
			embeds = append(embeds, embed)
		}
		return sendPaged(c, embeds)
	}
}

func (f *Fortnite) twitch(c *command.Context) error {
	var streams []stream
	if err := f.Fetcher.FetchJSON(c.Context(), f.StreamsURL, &streams); err != nil {
		return noData(c, err, "No streams could be found right now.")
	}
	if len(streams) == 0 {
		return c.Notify(utils.SeverityInfo, "Notice", "No streams could be found right now.")
	}
	if len(streams) > maxStreams {
		streams = streams[:maxStreams]
	}

	embeds := make([]*discordgo.MessageEmbed, 0, len(streams))
	for _, s := range streams {
		embeds = append(embeds, &discordgo.MessageEmbed{
			Title:       s.DisplayName,
			Description: s.Status,
			URL:         "https://twitch.tv/" + url.PathEscape(s.Name),
			Color:       colorStream,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Viewers", Value: fmt.Sprint(s.Viewers), Inline: true},
				{Name: "Language", Value: languageName(s.Language), Inline: true},
			},
		})
	}
	return sendPaged(c, embeds)
}

// languageName turns a stream's language code ("en", "pt-br") into an English name.
func languageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return "Unknown"
	}
	base, _ := tag.Base()
	if name := display.English.Languages().Name(base); name != "" {
		return name
	}
	return "Unknown"
}
