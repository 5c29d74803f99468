package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const graphAPIBase = "https://graph.facebook.com/v18.0"

// WhatsAppMessage is the Cloud API text-message payload.
type whatsAppMessage struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Text             whatsAppText `json:"text"`
}

type whatsAppText struct {
	Body string `json:"body"`
}

// WhatsAppClient sends text messages through the Meta WhatsApp Cloud
// API. A missing token or phone id disables it; Send then reports
// success without doing anything so notification failures never block
// inventory operations.
type WhatsAppClient struct {
	token      string
	phoneID    string
	baseURL    string
	httpClient *http.Client
}

func NewWhatsAppClient(token, phoneID string) *WhatsAppClient {
	return &WhatsAppClient{
		token:      token,
		phoneID:    phoneID,
		baseURL:    graphAPIBase,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Enabled reports whether credentials are configured.
func (c *WhatsAppClient) Enabled() bool {
	return c.token != "" && c.phoneID != ""
}

// Send delivers one text message to the given phone number.
func (c *WhatsAppClient) Send(ctx context.Context, recipient, text string) error {
	if !c.Enabled() {
		return nil
	}
	if recipient == "" {
		return fmt.Errorf("whatsapp: no recipient configured")
	}

	payload := whatsAppMessage{
		MessagingProduct: "whatsapp",
		To:               recipient,
		Type:             "text",
		Text:             whatsAppText{Body: text},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("whatsapp: marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("whatsapp: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp: cloud api unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("whatsapp: cloud api returned %d: %s", resp.StatusCode, detail)
	}
	return nil
}
