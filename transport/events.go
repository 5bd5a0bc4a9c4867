package transport

import (
	"strings"
	"time"

	"bot/domain"
)

// inboundEvent is one JSON frame from the platform gateway.
type inboundEvent struct {
	Type    string        `json:"type"`
	Message *eventMessage `json:"message,omitempty"`
}

type eventMessage struct {
	ChatID    string         `json:"chatId"`
	ChatTitle string         `json:"chatTitle,omitempty"`
	From      domain.UserRef `json:"from"`
	Text      string         `json:"text"`
	Timestamp int64          `json:"ts"`
}

// outboundMessage is one JSON frame to the platform gateway.
type outboundMessage struct {
	ChatID   string   `json:"chatId"`
	Text     string   `json:"text"`
	ImageURL string   `json:"imgUrl,omitempty"`
	Buttons  []button `json:"buttons,omitempty"`
}

type button struct {
	Label string `json:"label"`
	Query string `json:"query"`
}

// The platform exposes several aliases for the guess command, all handled
// identically.
var guessAliases = map[string]bool{
	"guess":   true,
	"collect": true,
	"grab":    true,
	"hunt":    true,
	"protecc": true,
}

// ParseCommand splits a message text into a recognized command and its
// arguments. Unknown commands and plain text both come back empty so they flow
// through the engagement counter like any other message.
func ParseCommand(text string) (command, args string) {
	if !strings.HasPrefix(text, "/") {
		return "", ""
	}
	head, rest, _ := strings.Cut(text[1:], " ")
	head = strings.ToLower(head)
	if at := strings.IndexByte(head, '@'); at >= 0 {
		head = head[:at]
	}

	args = strings.TrimSpace(rest)
	switch {
	case guessAliases[head]:
		return "guess", args
	case head == "fav":
		return "fav", args
	}
	return "", ""
}

func (m *eventMessage) toIncoming() domain.IncomingMessage {
	command, args := ParseCommand(m.Text)
	return domain.IncomingMessage{
		ChatID:    m.ChatID,
		ChatTitle: m.ChatTitle,
		From:      m.From,
		Text:      m.Text,
		Command:   command,
		Args:      args,
		Timestamp: time.Unix(m.Timestamp, 0),
	}
}
