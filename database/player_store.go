package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fortnite-bot/models"
)

type PlayerIFace interface {
	GetPlayer(ctx context.Context, discordID string) (*models.Player, bool, error)
	LinkPlayer(ctx context.Context, player models.Player) error
}

var _ PlayerIFace = (*PlayerStore)(nil)

// PlayerStore keeps the link between a chat account and a PartyBus player name.
type PlayerStore struct {
	db *sql.DB
}

func NewPlayerStore(db *sql.DB) *PlayerStore {
	return &PlayerStore{db: db}
}

func (s *PlayerStore) GetPlayer(ctx context.Context, discordID string) (*models.Player, bool, error) {
	p := &models.Player{DiscordID: discordID}
	err := s.db.QueryRowContext(ctx,
		`SELECT partybus_id FROM player WHERE discord_id = ?`, discordID).Scan(&p.PartyBusID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read player %s: %w", discordID, err)
	}
	return p, true, nil
}

// LinkPlayer inserts or replaces the link for player.DiscordID.
func (s *PlayerStore) LinkPlayer(ctx context.Context, player models.Player) error {
	_, err := s.db.ExecContext(ctx, `
    INSERT INTO player (discord_id, partybus_id) VALUES (?, ?)
    ON CONFLICT(discord_id) DO UPDATE SET partybus_id = excluded.partybus_id`,
		player.DiscordID, player.PartyBusID)
	if err != nil {
		return fmt.Errorf("failed to link player %s: %w", player.DiscordID, err)
	}
	return nil
}
