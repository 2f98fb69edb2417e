package skills

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"fortnite-bot/command"
	"fortnite-bot/database"
	"fortnite-bot/fetch"
	"fortnite-bot/models"
	"fortnite-bot/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testGuildID   = "g1"
	testChannelID = "c1"
	testAuthorID  = "u1"
	testOwnerID   = "owner"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

type reply struct {
	severity utils.Severity
	title    string
	body     string
	embeds   []*discordgo.MessageEmbed
	text     string
}

// recorder is a Responder that keeps what was sent.
type recorder struct {
	replies []reply
}

func (r *recorder) Notify(_ string, severity utils.Severity, title, body string) error {
	r.replies = append(r.replies, reply{severity: severity, title: title, body: body})
	return nil
}

func (r *recorder) SendEmbeds(_ string, embeds ...*discordgo.MessageEmbed) error {
	r.replies = append(r.replies, reply{embeds: embeds})
	return nil
}

func (r *recorder) SendText(_, text string) error {
	r.replies = append(r.replies, reply{text: text})
	return nil
}

func (r *recorder) last(t *testing.T) reply {
	t.Helper()
	require.NotEmpty(t, r.replies, "no reply was sent")
	return r.replies[len(r.replies)-1]
}

type harness struct {
	d        *command.Dispatcher
	settings *database.SettingsStore
	players  *database.PlayerStore
	out      *recorder
}

// newHarness loads skills into a dispatcher backed by a real sqlite store.
func newHarness(t *testing.T, build func(h *harness) []command.Skill) *harness {
	t.Helper()
	db, err := database.InitDB(filepath.Join(t.TempDir(), "bot.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	h := &harness{
		settings: database.NewSettingsStore(db, models.DefaultFeatureCatalog(), nil),
		players:  database.NewPlayerStore(db),
		out:      &recorder{},
	}

	registry := command.NewRegistry(models.DefaultFeatureCatalog())
	for _, s := range build(h) {
		require.NoError(t, registry.LoadSkill(s))
	}
	h.d = command.NewDispatcher(command.DispatcherConfig{
		Registry:  registry,
		Prefixes:  command.NewPrefixResolver(h.settings, models.DefaultPrefix, func() string { return "bot" }),
		Settings:  h.settings,
		Responder: h.out,
		OwnerID:   testOwnerID,
		Logger:    zap.NewNop(),
		Now:       func() time.Time { return testNow },
	})
	return h
}

func (h *harness) message(content string) *command.Message {
	return &command.Message{
		ID:          "m1",
		ChannelID:   testChannelID,
		ChannelName: "general",
		GuildID:     testGuildID,
		GuildName:   "Tilted Towers",
		Content:     content,
		Author:      command.User{ID: testAuthorID, Name: "jonesy"},
	}
}

// guild sends content in the test guild as an author holding perms.
func (h *harness) guild(content string, perms int64) command.Outcome {
	msg := h.message(content)
	msg.Permissions = perms
	return h.d.Dispatch(context.Background(), msg)
}

func (h *harness) dm(content string) command.Outcome {
	msg := h.message(content)
	msg.GuildID, msg.GuildName = "", ""
	return h.d.Dispatch(context.Background(), msg)
}

func (h *harness) owner(content string) command.Outcome {
	msg := h.message(content)
	msg.Author = command.User{ID: testOwnerID, Name: "owner"}
	return h.d.Dispatch(context.Background(), msg)
}

// decodeInto fills the out argument of a FetchJSON expectation.
func decodeInto(body string) func(mock.Arguments) {
	return func(args mock.Arguments) {
		if err := json.Unmarshal([]byte(body), args.Get(2)); err != nil {
			panic(err)
		}
	}
}

func httpFailure(url string, status int) error {
	return &fetch.Failure{URL: url, Status: status, Err: errFake}
}

var errFake = errors.New("upstream said no")
