package telegram

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SendMessage(t *testing.T) {
	var path string
	var payload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	client := NewClient("test-token", server.URL, server.Client())
	err := client.SendMessage(context.Background(), 42, "hello <b>there</b>")

	require.NoError(t, err)
	assert.Equal(t, "/bottest-token/sendMessage", path)
	assert.Equal(t, float64(42), payload["chat_id"])
	assert.Equal(t, "hello <b>there</b>", payload["text"])
	assert.Equal(t, "HTML", payload["parse_mode"])
}

func TestClient_SendMessage_APIRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok": false, "description": "chat not found"}`))
	}))
	defer server.Close()

	client := NewClient("t", server.URL, server.Client())
	err := client.SendMessage(context.Background(), 42, "hi")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestClient_SendDocument(t *testing.T) {
	var filename, chatID, caption, content string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		chatID = r.FormValue("chat_id")
		caption = r.FormValue("caption")

		file, header, err := r.FormFile("document")
		require.NoError(t, err)
		defer file.Close()
		filename = header.Filename
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		content = string(data)

		w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	client := NewClient("t", server.URL, server.Client())
	err := client.SendDocument(context.Background(), 7, "accounts_3.txt", "a,b\nc,d\n", "3 accounts")

	require.NoError(t, err)
	assert.Equal(t, "7", chatID)
	assert.Equal(t, "3 accounts", caption)
	assert.Equal(t, "accounts_3.txt", filename)
	assert.Equal(t, "a,b\nc,d\n", content)
}

func TestClient_SendDocument_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("bad gateway"))
	}))
	defer server.Close()

	client := NewClient("t", server.URL, server.Client())
	err := client.SendDocument(context.Background(), 7, "f.txt", "x", "c")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 502")
}
