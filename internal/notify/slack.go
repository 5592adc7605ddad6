package notify

import "context"

// Slack posts messages to a Slack incoming webhook.
//
// The text is rendered as "group\n*title*\nbody", with the title in bold
// using Slack mrkdwn.
type Slack struct {
	base
	webhookURL string
}

type slackPayload struct {
	Text string `json:"text"`
}

// NewSlack creates a Slack channel. An empty webhookURL disables it.
func NewSlack(webhookURL string, opts ...Option) *Slack {
	return &Slack{
		base:       newBase(PlatformSlack, opts),
		webhookURL: webhookURL,
	}
}

// Enabled reports whether a webhook URL is configured.
func (s *Slack) Enabled() bool {
	return s.webhookURL != ""
}

// Send posts the message as a single text block.
func (s *Slack) Send(ctx context.Context, title, body, group string) error {
	if !s.Enabled() {
		s.logSkip()
		return nil
	}

	return s.postJSON(ctx, s.webhookURL, slackPayload{
		Text: joinLines(group, "*"+title+"*", body),
	})
}
