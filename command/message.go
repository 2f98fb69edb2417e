package command

// User is the author of an inbound message.
type User struct {
	ID   string
	Name string
	Bot  bool
}

// Message is the transport-independent view of an inbound chat message.
type Message struct {
	ID          string
	ChannelID   string
	ChannelName string
	GuildID     string // empty for direct messages
	GuildName   string
	Content     string
	Author      User
	// Permissions holds the author's guild-level permission bits, zero outside a guild.
	Permissions int64
}

func (m *Message) IsDirect() bool {
	return m.GuildID == ""
}

// Origin describes where the message came from, for log lines.
func (m *Message) Origin() string {
	if m.IsDirect() {
		return "Private Message"
	}
	return "#" + m.ChannelName + " (" + m.GuildName + ")"
}
