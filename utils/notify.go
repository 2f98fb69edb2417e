package utils

import "github.com/bwmarrin/discordgo"

// Severity selects the color of a notice embed.
type Severity int

const (
	SeveritySuccess Severity = iota
	SeverityError
	SeverityInfo
)

const (
	ColorNoticeError   = 0x992d22 // Dark red
	ColorNoticeSuccess = 0x2ecc71 // Green
	ColorNoticeInfo    = 0x3498db // Blue
)

func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

func (s Severity) Color() int {
	switch s {
	case SeveritySuccess:
		return ColorNoticeSuccess
	case SeverityError:
		return ColorNoticeError
	default:
		return ColorNoticeInfo
	}
}

// NoticeEmbed renders the single embed used for every user-facing notice.
func NoticeEmbed(severity Severity, title, body string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: body,
		Color:       severity.Color(),
	}
}
