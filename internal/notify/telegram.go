package notify

import (
	"context"
	"net/url"
	"strings"
)

// DefaultTelegramAPI is the public Bot API base URL.
const DefaultTelegramAPI = "https://api.telegram.org"

// telegramTextLimit is the sendMessage limit on text length.
const telegramTextLimit = 4096

// Telegram sends messages through the Bot API to a single chat.
type Telegram struct {
	base
	apiURL string
	token  string
	chatID string
}

// NewTelegram creates a Telegram channel. Both token and chatID are required
// for the channel to be enabled. An empty apiURL uses [DefaultTelegramAPI].
func NewTelegram(apiURL, token, chatID string, opts ...Option) *Telegram {
	if apiURL == "" {
		apiURL = DefaultTelegramAPI
	}
	return &Telegram{
		base:   newBase(PlatformTelegram, opts),
		apiURL: strings.TrimRight(apiURL, "/"),
		token:  token,
		chatID: chatID,
	}
}

// Enabled reports whether both the bot token and chat id are configured.
func (t *Telegram) Enabled() bool {
	return t.token != "" && t.chatID != ""
}

// Send calls sendMessage with the message as plain text.
func (t *Telegram) Send(ctx context.Context, title, body, group string) error {
	if !t.Enabled() {
		t.logSkip()
		return nil
	}

	values := url.Values{}
	values.Set("chat_id", t.chatID)
	values.Set("text", truncate(joinLines(group, title, body), telegramTextLimit))

	return t.postForm(ctx, t.apiURL+"/bot"+t.token+"/sendMessage", values)
}
