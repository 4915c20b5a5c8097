package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultAPIBase is the Graph API root including the version.
const DefaultAPIBase = "https://graph.facebook.com/v21.0"

// maxTextLen is the Cloud API limit for a text body, in characters.
const maxTextLen = 4096

// Sender posts text messages through the Cloud API.
type Sender struct {
	apiBase       string
	phoneNumberID string
	accessToken   string
	client        *http.Client
}

// NewSender returns a Sender whose requests time out after timeout.
func NewSender(apiBase, phoneNumberID, accessToken string, timeout time.Duration) *Sender {
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	return &Sender{
		apiBase:       strings.TrimSuffix(apiBase, "/"),
		phoneNumberID: phoneNumberID,
		accessToken:   accessToken,
		client:        &http.Client{Timeout: timeout},
	}
}

type textMessage struct {
	MessagingProduct string `json:"messaging_product"`
	RecipientType    string `json:"recipient_type"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             struct {
		Body string `json:"body"`
	} `json:"text"`
}

// Send delivers text to the given phone number.
func (s *Sender) Send(ctx context.Context, to, text string) error {
	msg := textMessage{MessagingProduct: "whatsapp", RecipientType: "individual", To: to, Type: "text"}
	msg.Text.Body = truncate(text, maxTextLen)

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("whatsapp: marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", s.apiBase, s.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("whatsapp: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("whatsapp: HTTP %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
