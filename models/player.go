package models

// Player links a chat account to a PartyBus (Epic) player name.
type Player struct {
	DiscordID  string
	PartyBusID string
}
