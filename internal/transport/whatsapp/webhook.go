// Package whatsapp connects the bot to the WhatsApp Cloud API: a webhook for
// inbound messages and a sender for replies and reminder deliveries.
package whatsapp

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/example/remindbot/internal/bot"
)

// maxBodyBytes caps a webhook delivery.
const maxBodyBytes = 1 << 20

// MessageHandler consumes inbound text messages.
type MessageHandler interface {
	Handle(ctx context.Context, in bot.Inbound)
}

type webhookPayload struct {
	Object string `json:"object"`
	Entry  []struct {
		ID      string `json:"id"`
		Changes []struct {
			Field string `json:"field"`
			Value struct {
				MessagingProduct string `json:"messaging_product"`
				Contacts         []struct {
					WaID    string `json:"wa_id"`
					Profile struct {
						Name string `json:"name"`
					} `json:"profile"`
				} `json:"contacts,omitempty"`
				Messages []struct {
					ID        string `json:"id"`
					From      string `json:"from"`
					Timestamp string `json:"timestamp"`
					Type      string `json:"type"`
					Text      *struct {
						Body string `json:"body"`
					} `json:"text,omitempty"`
				} `json:"messages,omitempty"`
				Statuses []struct {
					ID     string `json:"id"`
					Status string `json:"status"`
				} `json:"statuses,omitempty"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// Webhook serves the Cloud API verification handshake and message deliveries.
type Webhook struct {
	verifyToken string
	appSecret   string
	handler     MessageHandler
	log         *zap.Logger
}

// NewWebhook returns a Webhook. An empty appSecret disables signature checks.
func NewWebhook(verifyToken, appSecret string, handler MessageHandler, log *zap.Logger) *Webhook {
	return &Webhook{verifyToken: verifyToken, appSecret: appSecret, handler: handler, log: log}
}

// Verify answers GET ?hub.mode=subscribe&hub.verify_token=...&hub.challenge=...
func (wh *Webhook) Verify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode := q.Get("hub.mode")
	challenge := q.Get("hub.challenge")

	if mode == "subscribe" && wh.verifyToken != "" && q.Get("hub.verify_token") == wh.verifyToken {
		wh.log.Info("whatsapp webhook verified")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(challenge))
		return
	}

	wh.log.Warn("whatsapp webhook verification failed", zap.String("mode", mode))
	http.Error(w, "forbidden", http.StatusForbidden)
}

// Receive handles each text message in the payload in order, then acknowledges.
// Anything it cannot use is acknowledged and dropped so the platform does not retry.
func (wh *Webhook) Receive(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	body, err := io.ReadAll(r.Body)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		wh.log.Warn("whatsapp: payload too large", zap.Int64("limit", tooLarge.Limit))
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		return
	}
	if err != nil {
		wh.log.Warn("whatsapp: read body failed", zap.Error(err))
		w.WriteHeader(http.StatusOK)
		return
	}

	if wh.appSecret != "" && !validSignature(wh.appSecret, body, r.Header.Get("X-Hub-Signature-256")) {
		wh.log.Warn("whatsapp: signature verification failed")
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		wh.log.Warn("whatsapp: ignoring malformed payload", zap.Error(err))
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx := context.WithoutCancel(r.Context())
	for _, in := range payload.inbound() {
		wh.handler.Handle(ctx, in)
	}
	w.WriteHeader(http.StatusOK)
}

func (p *webhookPayload) inbound() []bot.Inbound {
	var out []bot.Inbound
	for _, entry := range p.Entry {
		for _, change := range entry.Changes {
			names := make(map[string]string, len(change.Value.Contacts))
			for _, c := range change.Value.Contacts {
				names[c.WaID] = c.Profile.Name
			}
			for _, msg := range change.Value.Messages {
				if msg.Type != "text" || msg.Text == nil || msg.From == "" {
					continue
				}
				if strings.TrimSpace(msg.Text.Body) == "" {
					continue
				}
				out = append(out, bot.Inbound{
					SenderID:    msg.From,
					DisplayName: names[msg.From],
					Text:        msg.Text.Body,
				})
			}
		}
	}
	return out
}

// validSignature checks an X-Hub-Signature-256 header of the form "sha256=<hex>".
func validSignature(secret string, body []byte, header string) bool {
	sig, ok := strings.CutPrefix(header, "sha256=")
	if !ok {
		return false
	}
	provided, err := hex.DecodeString(sig)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hmac.Equal(provided, mac.Sum(nil))
}
