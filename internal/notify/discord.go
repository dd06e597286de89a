package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/donaldgifford/deal-aggregator/internal/metrics"
)

// Embed colors by score band.
const (
	colorGreen  = 0x2ECC71 // 90 and up
	colorYellow = 0xF1C40F // 80 to 89
	colorOrange = 0xE67E22
)

// Webhook limits enforced by Discord.
const (
	maxEmbeds      = 10
	maxTitle       = 256
	maxDescription = 4096
	maxFieldValue  = 1024
)

// ErrRateLimited matches any WebhookError carrying a 429.
var ErrRateLimited = errors.New("discord rate limited")

// WebhookError is a non-2xx answer from a Discord webhook.
type WebhookError struct {
	StatusCode int
	// Code and Message come from Discord's JSON error body when present.
	Code    int
	Message string
	// RetryAfter is how long Discord asked us to back off on a 429.
	RetryAfter time.Duration
}

func (e *WebhookError) Error() string {
	if e.StatusCode == http.StatusTooManyRequests {
		if e.RetryAfter > 0 {
			return fmt.Sprintf("discord rate limited (429), retry after %s", e.RetryAfter)
		}
		return "discord rate limited (429)"
	}
	if e.Message == "" {
		return fmt.Sprintf("discord returned %d", e.StatusCode)
	}
	return fmt.Sprintf("discord returned %d: %s (code %d)", e.StatusCode, e.Message, e.Code)
}

// Is reports a 429 as ErrRateLimited.
func (e *WebhookError) Is(target error) bool {
	return target == ErrRateLimited && e.StatusCode == http.StatusTooManyRequests
}

// DiscordNotifier posts hot-deal alerts as embeds to a Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	username   string
	hc         *http.Client
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient replaces the default client, which times out after ten
// seconds.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) { d.hc = c }
}

// WithUsername overrides the name the webhook posts under.
func WithUsername(name string) DiscordOption {
	return func(d *DiscordNotifier) { d.username = name }
}

// NewDiscordNotifier returns a notifier for webhookURL.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		hc:         &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type webhookMessage struct {
	Username string  `json:"username,omitempty"`
	Content  string  `json:"content,omitempty"`
	Embeds   []embed `json:"embeds"`
}

type embed struct {
	Title       string      `json:"title"`
	URL         string      `json:"url,omitempty"`
	Color       int         `json:"color"`
	Description string      `json:"description,omitempty"`
	Fields      []field     `json:"fields,omitempty"`
	Thumbnail   *embedImage `json:"thumbnail,omitempty"`
	Footer      *footer     `json:"footer,omitempty"`
}

type field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type embedImage struct {
	URL string `json:"url"`
}

type footer struct {
	Text string `json:"text"`
}

// SendAlert posts one deal as a single embed.
func (d *DiscordNotifier) SendAlert(ctx context.Context, alert *AlertPayload) error {
	return d.post(ctx, webhookMessage{Embeds: []embed{dealEmbed(alert)}})
}

// SendBatchAlert posts alerts as one message. When they do not fit in one
// message the last embed slot counts the deals left out.
func (d *DiscordNotifier) SendBatchAlert(ctx context.Context, alerts []AlertPayload, heading string) error {
	if len(alerts) == 0 {
		return nil
	}

	shown := alerts
	if len(alerts) > maxEmbeds {
		shown = alerts[:maxEmbeds-1]
	}

	embeds := make([]embed, 0, maxEmbeds)
	for i := range shown {
		embeds = append(embeds, dealEmbed(&shown[i]))
	}
	if rest := len(alerts) - len(shown); rest > 0 {
		embeds = append(embeds, embed{
			Title:       fmt.Sprintf("... and %d more %s", rest, heading),
			Color:       colorYellow,
			Description: "Check /api/v1/deals/featured for the full list.",
		})
	}

	return d.post(ctx, webhookMessage{
		Content: fmt.Sprintf("%d %s", len(alerts), heading),
		Embeds:  embeds,
	})
}

func dealEmbed(a *AlertPayload) embed {
	e := embed{
		Title:       clip(a.Title, maxTitle),
		URL:         a.URL,
		Color:       scoreColor(a.Score),
		Description: clip(a.Summary(), maxDescription),
	}

	// Discord rejects fields with empty values.
	for _, f := range []field{
		{Name: "Score", Value: fmt.Sprintf("%d/100", a.Score)},
		{Name: "Price", Value: a.PriceLine()},
		{Name: "Source", Value: a.Source},
		{Name: "Category", Value: a.Category},
		{Name: "Condition", Value: a.Condition},
	} {
		if f.Value == "" {
			continue
		}
		f.Value = clip(f.Value, maxFieldValue)
		f.Inline = true
		e.Fields = append(e.Fields, f)
	}

	if a.ImageURL != "" {
		e.Thumbnail = &embedImage{URL: a.ImageURL}
	}
	if a.DealID != "" {
		e.Footer = &footer{Text: a.DealID}
	}
	return e
}

func scoreColor(score int) int {
	switch {
	case score >= 90:
		return colorGreen
	case score >= 80:
		return colorYellow
	default:
		return colorOrange
	}
}

// clip shortens s to at most n runes, marking the cut with an ellipsis.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func (d *DiscordNotifier) post(ctx context.Context, msg webhookMessage) error {
	defer func(start time.Time) {
		metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	}(time.Now())

	msg.Username = d.username
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding discord message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.hc.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 == 2 {
		return nil
	}
	return readWebhookError(resp)
}

// readWebhookError decodes Discord's error body. A 429 body carries
// retry_after in seconds; the Retry-After header is the fallback.
func readWebhookError(resp *http.Response) *WebhookError {
	werr := &WebhookError{StatusCode: resp.StatusCode}

	var body struct {
		Code       int     `json:"code"`
		Message    string  `json:"message"`
		RetryAfter float64 `json:"retry_after"`
	}
	if json.NewDecoder(io.LimitReader(resp.Body, 4<<10)).Decode(&body) == nil {
		werr.Code = body.Code
		werr.Message = body.Message
		werr.RetryAfter = seconds(body.RetryAfter)
	}
	if werr.RetryAfter == 0 {
		if s, err := strconv.ParseFloat(resp.Header.Get("Retry-After"), 64); err == nil {
			werr.RetryAfter = seconds(s)
		}
	}
	return werr
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
