package skills

import (
	"context"
	"net/http"
	"testing"

	"fortnite-bot/command"
	"fortnite-bot/fetch"
	"fortnite-bot/models"
	"fortnite-bot/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	partybusURL = "https://api.partybus.gg/v1"

	ninjaJSON = `{
		"details": {"displayName": "Ninja"},
		"stats": [
			{"p": 2, "platform": "pc", "games": 100, "kills": 450, "minutes": 1565, "placeA": 10, "placeB": 30, "placeC": 50},
			{"p": 10, "platform": "pc", "games": 50, "kills": 100, "minutes": 600, "placeA": 5, "placeB": 20, "placeC": 25},
			{"p": 9, "platform": "pc", "games": 0, "kills": 0, "minutes": 0, "placeA": 0, "placeB": 0, "placeC": 0}
		]
	}`
)

func newPartyBusHarness(t *testing.T) (*harness, *fetch.MockFetcher) {
	fetcher := &fetch.MockFetcher{}
	h := newHarness(t, func(h *harness) []command.Skill {
		return []command.Skill{&PartyBus{Players: h.players, Fetcher: fetcher, BaseURL: partybusURL}}
	})
	return h, fetcher
}

// expectPlayer sets up the lookup, profile and refresh calls for name.
func expectPlayer(fetcher *fetch.MockFetcher, name, escaped, body string) {
	fetcher.On(fetch.FetcherFetchTextMethod, mock.Anything, partybusURL+"/players/lookup/"+escaped).Return("", nil).Once()
	fetcher.On(fetch.FetcherFetchJSONMethod, mock.Anything, partybusURL+"/players/"+escaped, mock.Anything).
		Run(decodeInto(body)).Return(nil).Once()
	fetcher.On(fetch.FetcherFetchTextMethod, mock.Anything, partybusURL+"/players/"+escaped+"/update").Return("", nil).Once()
}

func fieldMap(t *testing.T, r reply) map[string]string {
	t.Helper()
	require.Len(t, r.embeds, 1)
	out := map[string]string{}
	for _, f := range r.embeds[0].Fields {
		out[f.Name] = f.Value
	}
	return out
}

func Test_PartyBus_Modes(t *testing.T) {
	tests := []struct {
		verb        string
		description string
		fields      map[string]string
	}{
		{
			verb:        "stats",
			description: "Overall Statistics (1D 12H 5M)",
			fields: map[string]string{
				"Total Games": "150", "Wins": "15", "Win Rate": "10.00%", "Kill Rate": "3.7",
				"Top 25%": "50.00%", "Top 10%": "33.33%",
			},
		},
		{
			verb:        "solo",
			description: "Solo Statistics (1D 2H 5M)",
			fields: map[string]string{
				"Total Games": "100", "Wins": "10", "Win Rate": "10.00%", "KD Ratio": "5.0",
				"Top 10s": "30", "Top 25s": "50",
			},
		},
		{
			verb:        "duo",
			description: "Duo Statistics (0D 10H 0M)",
			fields: map[string]string{
				"Total Games": "50", "Wins": "5", "Win Rate": "10.00%", "Kill Rate": "2.0",
				"Top 5s": "20", "Top 12s": "25",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.verb, func(t *testing.T) {
			h, fetcher := newPartyBusHarness(t)
			expectPlayer(fetcher, "Ninja", "Ninja", ninjaJSON)

			require.Equal(t, command.OutcomeHandled, h.guild("."+tt.verb+" Ninja", 0))
			got := h.out.last(t)
			assert.Equal(t, tt.fields, fieldMap(t, got))
			assert.Equal(t, "Ninja", got.embeds[0].Title)
			assert.Equal(t, tt.description, got.embeds[0].Description)
			assert.Equal(t, "PC", got.embeds[0].Footer.Text)
			fetcher.AssertExpectations(t)
		})
	}
}

func Test_PartyBus_NoModeStats(t *testing.T) {
	h, fetcher := newPartyBusHarness(t)
	expectPlayer(fetcher, "Ninja", "Ninja", ninjaJSON)

	h.guild(".squad Ninja", 0)
	got := h.out.last(t)
	assert.Equal(t, utils.SeverityInfo, got.severity)
	assert.Equal(t, "No squad statistics found!", got.body)
}

func Test_PartyBus_UnknownPlayer(t *testing.T) {
	h, fetcher := newPartyBusHarness(t)
	fetcher.On(fetch.FetcherFetchTextMethod, mock.Anything, partybusURL+"/players/lookup/Nobody%20Here").
		Return("", httpFailure("lookup", http.StatusNotFound))
	fetcher.On(fetch.FetcherFetchJSONMethod, mock.Anything, partybusURL+"/players/Nobody%20Here", mock.Anything).
		Return(httpFailure("player", http.StatusNotFound))

	h.guild(`.stats "Nobody Here"`, 0)
	got := h.out.last(t)
	assert.Equal(t, utils.SeverityError, got.severity)
	assert.Equal(t, "The user you entered does not seem to exist, please re-check the name!", got.body)

	// without a name the author's own name is tried
	fetcher.On(fetch.FetcherFetchTextMethod, mock.Anything, partybusURL+"/players/lookup/jonesy").
		Return("", nil)
	fetcher.On(fetch.FetcherFetchJSONMethod, mock.Anything, partybusURL+"/players/jonesy", mock.Anything).
		Return(httpFailure("player", http.StatusNotFound))
	h.guild(".stats", 0)
	assert.Contains(t, h.out.last(t).body, "tag your Epic ID to your Discord account by typing .ign <PlayerName>!")
}

func Test_PartyBus_Unreachable(t *testing.T) {
	h, fetcher := newPartyBusHarness(t)
	fetcher.On(fetch.FetcherFetchTextMethod, mock.Anything, mock.Anything).
		Return("", httpFailure("lookup", http.StatusBadGateway))

	assert.Equal(t, command.OutcomeHandled, h.guild(".stats Ninja", 0))
	got := h.out.last(t)
	assert.Equal(t, utils.SeverityInfo, got.severity)
	assert.Equal(t, "Partybus.gg could not be reached, please try again later.", got.body)
}

func Test_PartyBus_IGN(t *testing.T) {
	h, fetcher := newPartyBusHarness(t)
	ctx := context.Background()

	h.guild(".ign", 0)
	assert.Contains(t, h.out.last(t).body, "no Epic ID was found linked to your account")

	fetcher.On(fetch.FetcherFetchJSONMethod, mock.Anything, partybusURL+"/players/Ninja", mock.Anything).
		Run(decodeInto(ninjaJSON)).Return(nil)
	fetcher.On(fetch.FetcherFetchJSONMethod, mock.Anything, partybusURL+"/players/Tfue", mock.Anything).
		Run(decodeInto(ninjaJSON)).Return(nil)
	fetcher.On(fetch.FetcherFetchJSONMethod, mock.Anything, partybusURL+"/players/Ghost", mock.Anything).
		Return(httpFailure("player", http.StatusNotFound))

	h.guild(".ign Ninja", 0)
	assert.Equal(t, "You have attached your Epic ID to your Discord ID!", h.out.last(t).body)
	h.guild(".ign Tfue", 0)
	assert.Equal(t, "You have updated your Epic ID!", h.out.last(t).body)
	h.guild(".ign Ghost", 0)
	assert.Equal(t, "The Epic ID you entered does not exist! Remember names with spaces need quotes!", h.out.last(t).body)

	player, ok, err := h.players.GetPlayer(ctx, testAuthorID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.Player{DiscordID: testAuthorID, PartyBusID: "Tfue"}, *player)

	h.guild(".ign", 0)
	got := h.out.last(t)
	require.Len(t, got.embeds, 1)
	assert.Equal(t, "Tfue", got.embeds[0].Description)
	assert.Equal(t, "https://partybus.gg/player/Tfue", got.embeds[0].URL)
}

func Test_PartyBus_LinkedPlayer(t *testing.T) {
	h, fetcher := newPartyBusHarness(t)
	require.NoError(t, h.players.LinkPlayer(context.Background(), models.Player{DiscordID: testAuthorID, PartyBusID: "Ninja"}))
	expectPlayer(fetcher, "Ninja", "Ninja", ninjaJSON)
	fetcher.On(fetch.FetcherFetchJSONMethod, mock.Anything, partybusURL+"/players/Ninja/history?p=", mock.Anything).
		Run(decodeInto(`[{"p": 10, "platform": "xb1", "kills": 7, "minutes": 21, "placeA": 1, "modified": 1773446400}]`)).
		Return(nil)

	require.Equal(t, command.OutcomeHandled, h.guild(".lpg", 0))
	got := h.out.last(t)
	assert.Equal(t, map[string]string{"Mode": "Duo", "Result": "Victory", "Kills": "7"}, fieldMap(t, got))
	assert.Equal(t, "Game Played 2026-03-14 (UTC)", got.embeds[0].Title)
	assert.Equal(t, "Duration: 21 Min.", got.embeds[0].Description)
	assert.Equal(t, utils.ColorNoticeSuccess, got.embeds[0].Color)
	assert.Equal(t, "XB1", got.embeds[0].Footer.Text)
}

func Test_playtime(t *testing.T) {
	assert.Equal(t, "0D 0H 0M", playtime(0))
	assert.Equal(t, "1D 2H 5M", playtime(1565))
}
