// README: WhatsApp Cloud API client for text, button and list messages.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/PyDenTech/setrae-bot/internal/config"
)

// Button is one reply button of an interactive message (max 3 per message).
type Button struct {
	ID    string
	Title string
}

// ListRow is one selectable row of an interactive list section.
type ListRow struct {
	ID          string
	Title       string
	Description string
}

// List describes an interactive list message.
type List struct {
	Header       string
	Body         string
	Footer       string
	ButtonLabel  string
	SectionTitle string
	Rows         []ListRow
}

type Client struct {
	cfg    config.WhatsAppConfig
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg config.WhatsAppConfig, logger *slog.Logger) *Client {
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: 15 * time.Second},
		logger: logger,
	}
}

func (c *Client) SendText(ctx context.Context, to, text string) error {
	payload := map[string]any{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                to,
		"type":              "text",
		"text":              map[string]any{"body": text},
	}
	return c.post(ctx, payload)
}

func (c *Client) SendButtons(ctx context.Context, to, body, footer string, buttons ...Button) error {
	btns := make([]map[string]any, len(buttons))
	for i, b := range buttons {
		btns[i] = map[string]any{
			"type":  "reply",
			"reply": map[string]any{"id": b.ID, "title": b.Title},
		}
	}
	payload := map[string]any{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                to,
		"type":              "interactive",
		"interactive": map[string]any{
			"type":   "button",
			"body":   map[string]any{"text": body},
			"footer": map[string]any{"text": footer},
			"action": map[string]any{"buttons": btns},
		},
	}
	return c.post(ctx, payload)
}

func (c *Client) SendList(ctx context.Context, to string, list List) error {
	rows := make([]map[string]any, len(list.Rows))
	for i, r := range list.Rows {
		rows[i] = map[string]any{
			"id":          r.ID,
			"title":       r.Title,
			"description": r.Description,
		}
	}
	payload := map[string]any{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                to,
		"type":              "interactive",
		"interactive": map[string]any{
			"type":   "list",
			"header": map[string]any{"type": "text", "text": list.Header},
			"body":   map[string]any{"text": list.Body},
			"footer": map[string]any{"text": list.Footer},
			"action": map[string]any{
				"button": list.ButtonLabel,
				"sections": []map[string]any{
					{"title": list.SectionTitle, "rows": rows},
				},
			},
		},
	}
	return c.post(ctx, payload)
}

func (c *Client) post(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	url := fmt.Sprintf("%s/%s/messages", c.cfg.APIURL, c.cfg.PhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.logger.Error("whatsapp api rejected message", "status", resp.StatusCode, "body", string(detail))
		return fmt.Errorf("whatsapp api status %d", resp.StatusCode)
	}
	return nil
}
