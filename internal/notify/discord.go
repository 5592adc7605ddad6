package notify

import "context"

// Discord embed limits.
const (
	discordTitleLimit       = 256
	discordDescriptionLimit = 4096
	discordContentLimit     = 2000
)

// Discord posts messages to a Discord channel webhook as an embed.
//
// The group string goes into the message content, above the embed, which is
// where role mentions such as "@here" take effect.
type Discord struct {
	base
	webhookURL string
}

type discordEmbed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type discordPayload struct {
	Content string         `json:"content,omitempty"`
	Embeds  []discordEmbed `json:"embeds"`
}

// NewDiscord creates a Discord channel. An empty webhookURL disables it.
func NewDiscord(webhookURL string, opts ...Option) *Discord {
	return &Discord{
		base:       newBase(PlatformDiscord, opts),
		webhookURL: webhookURL,
	}
}

// Enabled reports whether a webhook URL is configured.
func (d *Discord) Enabled() bool {
	return d.webhookURL != ""
}

// Send posts the message as a single embed.
func (d *Discord) Send(ctx context.Context, title, body, group string) error {
	if !d.Enabled() {
		d.logSkip()
		return nil
	}

	return d.postJSON(ctx, d.webhookURL, discordPayload{
		Content: truncate(group, discordContentLimit),
		Embeds: []discordEmbed{{
			Title:       truncate(title, discordTitleLimit),
			Description: truncate(body, discordDescriptionLimit),
		}},
	})
}
