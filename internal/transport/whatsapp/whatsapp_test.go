package whatsapp

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/remindbot/internal/bot"
)

type recorder struct{ got []bot.Inbound }

func (r *recorder) Handle(_ context.Context, in bot.Inbound) { r.got = append(r.got, in) }

const samplePayload = `{
  "object": "whatsapp_business_account",
  "entry": [{
    "id": "1",
    "changes": [{
      "field": "messages",
      "value": {
        "messaging_product": "whatsapp",
        "contacts": [{"wa_id": "905551112233", "profile": {"name": "Sam"}}],
        "messages": [
          {"id": "m1", "from": "905551112233", "type": "text", "text": {"body": "hello"}},
          {"id": "m2", "from": "905551112233", "type": "image"},
          {"id": "m3", "from": "905551112233", "type": "text", "text": {"body": "call mom at 6pm"}}
        ]
      }
    }]
  }]
}`

func TestVerify(t *testing.T) {
	wh := NewWebhook("secret-token", "", &recorder{}, zap.NewNop())

	tests := []struct {
		name   string
		query  string
		status int
		body   string
	}{
		{"ok", "hub.mode=subscribe&hub.verify_token=secret-token&hub.challenge=12345", http.StatusOK, "12345"},
		{"wrong token", "hub.mode=subscribe&hub.verify_token=nope&hub.challenge=12345", http.StatusForbidden, ""},
		{"wrong mode", "hub.mode=unsubscribe&hub.verify_token=secret-token&hub.challenge=1", http.StatusForbidden, ""},
		{"missing", "", http.StatusForbidden, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			wh.Verify(rec, httptest.NewRequest(http.MethodGet, "/webhook?"+tt.query, nil))
			assert.Equal(t, tt.status, rec.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
			}
		})
	}
}

func TestReceive_HandlesTextMessagesInOrder(t *testing.T) {
	r := &recorder{}
	wh := NewWebhook("t", "", r, zap.NewNop())

	rec := httptest.NewRecorder()
	wh.Receive(rec, httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(samplePayload)))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, r.got, 2)
	assert.Equal(t, bot.Inbound{SenderID: "905551112233", DisplayName: "Sam", Text: "hello"}, r.got[0])
	assert.Equal(t, "call mom at 6pm", r.got[1].Text)
}

func TestReceive_IgnoresMalformed(t *testing.T) {
	for _, body := range []string{"", "not json", `{"entry": "x"}`, `{"entry":[{"changes":[{"value":{"statuses":[{"id":"s","status":"read"}]}}]}]}`} {
		r := &recorder{}
		rec := httptest.NewRecorder()
		NewWebhook("t", "", r, zap.NewNop()).Receive(rec, httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body)))

		assert.Equal(t, http.StatusOK, rec.Code, body)
		assert.Empty(t, r.got, body)
	}
}

func TestReceive_RejectsOversizedBody(t *testing.T) {
	r := &recorder{}
	rec := httptest.NewRecorder()
	body := strings.Repeat("x", maxBodyBytes+1)
	NewWebhook("t", "", r, zap.NewNop()).Receive(rec, httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Empty(t, r.got)
}

func TestReceive_Signature(t *testing.T) {
	sign := func(body string) string {
		mac := hmac.New(sha256.New, []byte("app-secret"))
		mac.Write([]byte(body))
		return "sha256=" + hex.EncodeToString(mac.Sum(nil))
	}

	r := &recorder{}
	wh := NewWebhook("t", "app-secret", r, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(samplePayload))
	req.Header.Set("X-Hub-Signature-256", "sha256=00")
	rec := httptest.NewRecorder()
	wh.Receive(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, r.got)

	req = httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(samplePayload))
	req.Header.Set("X-Hub-Signature-256", sign(samplePayload))
	rec = httptest.NewRecorder()
	wh.Receive(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, r.got, 2)
}

func TestSender_Send(t *testing.T) {
	var got textMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v21.0/PHONE/messages", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"messages":[{"id":"wamid"}]}`))
	}))
	defer srv.Close()

	s := NewSender(srv.URL+"/v21.0/", "PHONE", "tok", time.Second)
	require.NoError(t, s.Send(context.Background(), "905551112233", "hi"))
	assert.Equal(t, "whatsapp", got.MessagingProduct)
	assert.Equal(t, "905551112233", got.To)
	assert.Equal(t, "text", got.Type)
	assert.Equal(t, "hi", got.Text.Body)
}

func TestSender_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid recipient"}`))
	}))
	defer srv.Close()

	err := NewSender(srv.URL, "P", "t", time.Second).Send(context.Background(), "x", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "invalid recipient")
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("é", 5000)
	got := truncate(long, maxTextLen)
	assert.Equal(t, maxTextLen, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, "short", truncate("short", maxTextLen))
}
