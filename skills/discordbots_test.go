package skills

import (
	"context"
	"net/http"
	"testing"

	"fortnite-bot/command"
	"fortnite-bot/fetch"
	"fortnite-bot/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const statsURL = "https://discordbots.org/api/bots/%s/stats"

func newDiscordBots(fetcher *fetch.MockFetcher, token string) *DiscordBots {
	return &DiscordBots{
		Fetcher:    fetcher,
		URL:        statsURL,
		VoteURL:    "https://discordbots.org/bot/42",
		Token:      token,
		BotID:      func() string { return "42" },
		GuildCount: func() int { return 7 },
		Shard:      func() (int, int) { return 0, 1 },
	}
}

func Test_DiscordBots_ReportGuildCount(t *testing.T) {
	fetcher := &fetch.MockFetcher{}
	fetcher.On(fetch.FetcherPostJSONMethod, mock.Anything, "https://discordbots.org/api/bots/42/stats",
		map[string]string{"Authorization": "dbl-token"},
		guildCountPayload{ServerCount: 7, ShardID: 0, ShardCount: 1},
	).Return(nil).Once()

	require.NoError(t, newDiscordBots(fetcher, "dbl-token").ReportGuildCount(context.Background()))
	fetcher.AssertExpectations(t)
}

func Test_DiscordBots_ReportGuildCount_Skipped(t *testing.T) {
	fetcher := &fetch.MockFetcher{}

	require.NoError(t, newDiscordBots(fetcher, "").ReportGuildCount(context.Background()))

	d := newDiscordBots(fetcher, "dbl-token")
	d.BotID = func() string { return "" }
	assert.Error(t, d.ReportGuildCount(context.Background()))
	fetcher.AssertNotCalled(t, fetch.FetcherPostJSONMethod, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func Test_DiscordBots_Commands(t *testing.T) {
	fetcher := &fetch.MockFetcher{}
	fetcher.On(fetch.FetcherPostJSONMethod, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Once()
	fetcher.On(fetch.FetcherPostJSONMethod, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&fetch.Failure{URL: "stats", Status: http.StatusUnauthorized, Err: errFake}).Once()
	h := newHarness(t, func(*harness) []command.Skill { return []command.Skill{newDiscordBots(fetcher, "dbl-token")} })

	require.Equal(t, command.OutcomeHandled, h.guild(".discordbots", 0))
	vote := h.out.last(t)
	require.Len(t, vote.embeds, 1)
	assert.Equal(t, "https://discordbots.org/bot/42", vote.embeds[0].URL)

	assert.Equal(t, command.OutcomeRejected, h.guild(".updatecount", 0))

	require.Equal(t, command.OutcomeHandled, h.owner(".updatecount"))
	got := h.out.last(t)
	assert.Equal(t, utils.SeveritySuccess, got.severity)
	assert.Equal(t, "Reported 7 guilds.", got.body)

	require.Equal(t, command.OutcomeHandled, h.owner(".updatecount"))
	got = h.out.last(t)
	assert.Equal(t, utils.SeverityInfo, got.severity)
	assert.Equal(t, "The guild count could not be reported, see the logs.", got.body)
}
