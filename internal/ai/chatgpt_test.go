package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatGPT_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))

		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "hello", req.Messages[1].Content)
		require.NotNil(t, req.ResponseFormat)
		assert.Equal(t, "json_object", req.ResponseFormat.Type)

		w.Write([]byte(`{"choices":[{"message":{"content":"  {\"ok\":true}  "}}]}`))
	}))
	defer srv.Close()

	c, err := New("key", srv.URL, "gpt-4o-mini", time.Second)
	require.NoError(t, err)

	got, err := c.Complete(context.Background(), Prompt{System: "sys", User: "hello"})
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, got)
}

func TestChatGPT_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"bad key"}}`))
	}))
	defer srv.Close()

	c, err := New("key", srv.URL, "m", time.Second)
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), Prompt{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad key")
}

func TestChatGPT_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c, _ := New("key", srv.URL, "m", time.Second)
	_, err := c.Complete(context.Background(), Prompt{})
	assert.Error(t, err)
}

func TestNew_RequiresKey(t *testing.T) {
	_, err := New("", "", "m", time.Second)
	assert.Error(t, err)

	c, err := New("k", "", "m", time.Second)
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, c.apiURL)
}
