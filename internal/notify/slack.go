package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/smartfinancehub/content-engine/internal/model"
)

// Notifier announces pipeline events to the review team.
type Notifier interface {
	NotifyDraft(ctx context.Context, article *model.Article) error
	NotifyPublished(ctx context.Context, article *model.Article) error
}

// SlackNotifier posts review notifications to a Slack channel.
type SlackNotifier struct {
	botToken   string
	channel    string
	httpClient *http.Client
	baseURL    string
}

// NewSlackNotifier creates a Slack notifier.
func NewSlackNotifier(botToken, channel string) *SlackNotifier {
	return &SlackNotifier{
		botToken: botToken,
		channel:  channel,
		baseURL:  "https://slack.com/api",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewSlackNotifierWithBaseURL creates a notifier against a custom endpoint.
func NewSlackNotifierWithBaseURL(botToken, channel, baseURL string) *SlackNotifier {
	n := NewSlackNotifier(botToken, channel)
	n.baseURL = baseURL
	return n
}

// chatPostMessageRequest represents a Slack chat.postMessage request
type chatPostMessageRequest struct {
	Channel   string `json:"channel"`
	Text      string `json:"text"`
	Username  string `json:"username,omitempty"`
	IconEmoji string `json:"icon_emoji,omitempty"`
}

// NotifyDraft announces a new draft awaiting review.
func (n *SlackNotifier) NotifyDraft(ctx context.Context, article *model.Article) error {
	score := "unscored"
	if article.QualityScore != nil {
		score = fmt.Sprintf("%d/100", article.QualityScore.Overall)
	}
	origin := "generated"
	if article.IsFallbackArticle {
		origin = "fallback template"
	}

	message := fmt.Sprintf(`📝 *New draft awaiting review*

*%s*
📂 Category: %s
📊 Quality score: %s
🛠 Origin: %s
🆔 %s`,
		article.Title,
		article.Category,
		score,
		origin,
		article.ID)

	return n.sendMessage(ctx, message)
}

// NotifyPublished announces that an article went live.
func (n *SlackNotifier) NotifyPublished(ctx context.Context, article *model.Article) error {
	message := fmt.Sprintf(`🚀 *Article published*

*%s*
🔗 %s
📂 Category: %s`,
		article.Title,
		article.URL,
		article.Category)

	return n.sendMessage(ctx, message)
}

// sendMessage sends a message to the configured Slack channel.
func (n *SlackNotifier) sendMessage(ctx context.Context, text string) error {
	req := chatPostMessageRequest{
		Channel:   n.channel,
		Text:      text,
		Username:  "Content Engine",
		IconEmoji: ":newspaper:",
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshaling message: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", n.baseURL+"/chat.postMessage", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+n.botToken)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack API returned status %d", resp.StatusCode)
	}

	var slackResp struct {
		OK    bool   `json:"ok"`
		Error string `json:"error,omitempty"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&slackResp); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	if !slackResp.OK {
		return fmt.Errorf("slack API error: %s", slackResp.Error)
	}

	return nil
}

// NoopNotifier is used when no Slack token is configured.
type NoopNotifier struct{}

func (NoopNotifier) NotifyDraft(ctx context.Context, article *model.Article) error     { return nil }
func (NoopNotifier) NotifyPublished(ctx context.Context, article *model.Article) error { return nil }
