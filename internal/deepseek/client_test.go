package deepseek

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(srv.URL, "sk-test", "deepseek-chat", 600,
		WithHTTPClient(&http.Client{Timeout: 2 * time.Second}))
}

func TestChat_HappyPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var req chatRequest
		require.NoError(t, json.Unmarshal(raw, &req))
		require.Equal(t, "deepseek-chat", req.Model)
		require.Equal(t, 600, req.MaxTokens)
		require.Equal(t, []Message{
			{Role: RoleSystem, Content: "persona"},
			{Role: RoleUser, Content: "¿Por qué mi WiFi es lento?"},
		}, req.Messages)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Reinicia el router."}}]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	got, err := c.Chat(context.Background(), []Message{
		{Role: RoleSystem, Content: "persona"},
		{Role: RoleUser, Content: "¿Por qué mi WiFi es lento?"},
	})
	require.NoError(t, err)
	require.Equal(t, "Reinicia el router.", got)
}

func TestChat_Non2xxIsStatusError(t *testing.T) {
	for _, code := range []int{400, 401, 429, 500} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
			_, _ = w.Write([]byte(`{"error":{"message":"nope"}}`))
		}))

		c := newTestClient(srv)
		_, err := c.Chat(context.Background(), []Message{{Role: RoleUser, Content: "hola"}})
		require.Error(t, err)

		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr), "status %d", code)
		require.Equal(t, code, statusErr.StatusCode)

		srv.Close()
	}
}

func TestChat_UndecodableBodyIsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not-a-json`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	_, err := c.Chat(context.Background(), []Message{{Role: RoleUser, Content: "hola"}})

	var malformedErr *MalformedError
	require.True(t, errors.As(err, &malformedErr))
}

func TestChat_NoChoicesIsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	_, err := c.Chat(context.Background(), []Message{{Role: RoleUser, Content: "hola"}})

	var malformedErr *MalformedError
	require.True(t, errors.As(err, &malformedErr))
	require.Equal(t, "no choices", malformedErr.Reason)
}

func TestChat_EmptyContentIsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":""}}]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	_, err := c.Chat(context.Background(), []Message{{Role: RoleUser, Content: "hola"}})

	var malformedErr *MalformedError
	require.True(t, errors.As(err, &malformedErr))
}

func TestChat_NetworkFailureIsTransportError(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "sk-test", "deepseek-chat", 600,
		WithHTTPClient(&http.Client{Timeout: 100 * time.Millisecond}))

	_, err := c.Chat(context.Background(), []Message{{Role: RoleUser, Content: "hola"}})
	require.Error(t, err)

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
}

func TestChat_ContextCancelledIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	c := newTestClient(srv)
	_, err := c.Chat(ctx, []Message{{Role: RoleUser, Content: "hola"}})

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
}

func TestNewClient_TrimsBaseURL(t *testing.T) {
	c := NewClient("https://api.deepseek.com/v1/", "k", "m", 1)
	require.Equal(t, "https://api.deepseek.com/v1", c.baseURL)
}
