package skills

import (
	"fmt"
	"strings"
	"time"

	"fortnite-bot/command"
	"fortnite-bot/fetch"
	"fortnite-bot/models"
	"fortnite-bot/utils"

	"github.com/bwmarrin/discordgo"
)

const (
	redditIcon     = "http://i.imgur.com/sdO8tAw.png"
	redditCooldown = 15 * time.Second
	maxStickies    = 2
)

var officialFlairs = []string{"OFFICIAL", "EPIC RESPONSE"}

type redditPost struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	SelfText   string  `json:"selftext"`
	Author     string  `json:"author"`
	CreatedUTC float64 `json:"created_utc"`
	Flair      string  `json:"link_flair_text"`
	Stickied   bool    `json:"stickied"`
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func (l redditListing) posts() []redditPost {
	out := make([]redditPost, 0, len(l.Data.Children))
	for _, child := range l.Data.Children {
		out = append(out, child.Data)
	}
	return out
}

// Reddit reads the public listings of the Fortnite subreddits.
type Reddit struct {
	Fetcher    fetch.Fetcher
	BaseURL    string
	Subreddits []string
}

func (r *Reddit) Name() string { return models.FeatureReddit }

func (r *Reddit) Register(reg *command.Registrar) error {
	if len(r.Subreddits) == 0 {
		return fmt.Errorf("no subreddits configured")
	}
	reg.Add(&command.Command{
		Name: "reddit",
		Help: "Reddit commands. See 'help reddit'.",
		Subcommands: []*command.Command{
			{
				Name:    "sticky",
				Help:    "Get the stickied posts from one of the Fortnite subreddits.",
				Params:  []command.Param{{Name: "subreddit", Optional: true, Default: r.Subreddits[0]}},
				Checks:  []command.Check{command.Cooldown(1, redditCooldown, true)},
				Handler: r.sticky,
			},
			{
				Name:    "official",
				Help:    "Get official posts from Epic Games currently on the front page.",
				Checks:  []command.Check{command.Cooldown(1, redditCooldown, true)},
				Handler: r.official,
			},
		},
	})
	return nil
}

// subreddit maps free text onto a configured subreddit, preferring the longest name it
// contains so that "fortnitebr" is not read as "fortnite".
func (r *Reddit) subreddit(arg string) string {
	arg = strings.ToLower(arg)
	best := r.Subreddits[0]
	found := false
	for _, sub := range r.Subreddits {
		if strings.Contains(arg, strings.ToLower(sub)) && (!found || len(sub) > len(best)) {
			best, found = sub, true
		}
	}
	return best
}

func (r *Reddit) sticky(c *command.Context) error {
	sub := r.subreddit(c.String(0))

	var embeds []*discordgo.MessageEmbed
	for n := 1; n <= maxStickies; n++ {
		// the sticky endpoint answers with the post and its comment tree
		var listings []redditListing
		url := fmt.Sprintf("%s/r/%s/about/sticky.json?num=%d", r.BaseURL, sub, n)
		if err := r.Fetcher.FetchJSON(c.Context(), url, &listings); err != nil {
			if notFound(err) {
				continue
			}
			return noData(c, err, "Reddit could not be reached, please try again later.")
		}
		if len(listings) == 0 {
			continue
		}
		for _, post := range listings[0].posts() {
			embeds = append(embeds, postEmbed(post))
		}
	}

	if len(embeds) == 0 {
		return c.Notify(utils.SeverityInfo, "Notice", "There are currently no announcements!")
	}
	return sendPaged(c, embeds)
}

func (r *Reddit) official(c *command.Context) error {
	var embeds []*discordgo.MessageEmbed
	for _, sub := range r.Subreddits {
		var listing redditListing
		if err := r.Fetcher.FetchJSON(c.Context(), fmt.Sprintf("%s/r/%s/hot.json", r.BaseURL, sub), &listing); err != nil {
			return noData(c, err, "Reddit could not be reached, please try again later.")
		}
		for _, post := range listing.posts() {
			for _, flair := range officialFlairs {
				if strings.EqualFold(post.Flair, flair) {
					embeds = append(embeds, postEmbed(post))
					break
				}
			}
		}
	}

	if len(embeds) == 0 {
		return c.Notify(utils.SeverityInfo, "Notice", "There are currently no official posts!")
	}
	return sendPaged(c, embeds)
}

func postEmbed(post redditPost) *discordgo.MessageEmbed {
	created := time.Unix(int64(post.CreatedUTC), 0).UTC()
	return &discordgo.MessageEmbed{
		Title:       post.Title,
		URL:         "https://redd.it/" + post.ID,
		Description: truncate(post.SelfText, 240),
		Color:       utils.ColorNoticeInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Author", Value: post.Author},
			{Name: "Time", Value: created.Format("Mon, 02 Jan 2006 15:04 GMT")},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Reddit", IconURL: redditIcon},
	}
}
