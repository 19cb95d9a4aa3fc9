package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/zlog"
)

func TestMain(m *testing.M) {
	zlog.Init()
	os.Exit(m.Run())
}

func TestEvolution_SendText(t *testing.T) {
	var gotPath, gotAPIKey string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("apikey")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"key":{"id":"msg-123"}}`))
	}))
	defer srv.Close()

	e := NewEvolution(srv.URL, "secret")

	res, err := e.SendText(context.Background(), SendTextParams{
		InstanceID: "inst-1",
		GroupID:    "12345@g.us",
		Text:       "hello",
	})
	require.NoError(t, err)

	assert.Equal(t, "msg-123", res.MessageID)
	assert.Equal(t, "/message/sendText/inst-1", gotPath)
	assert.Equal(t, "secret", gotAPIKey)
	assert.Equal(t, "12345@g.us", gotBody["number"])
	assert.Equal(t, "hello", gotBody["text"])
}

func TestEvolution_SendMedia(t *testing.T) {
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"key":{"id":"msg-456"}}`))
	}))
	defer srv.Close()

	e := NewEvolution(srv.URL, "secret")

	res, err := e.SendMedia(context.Background(), SendMediaParams{
		InstanceID: "inst-1",
		GroupID:    "12345@g.us",
		MediaURL:   "https://cdn.example/a.jpg",
		MediaType:  "image",
		Text:       "caption",
	})
	require.NoError(t, err)

	assert.Equal(t, "msg-456", res.MessageID)
	assert.Equal(t, "image", gotBody["mediatype"])
	assert.Equal(t, "https://cdn.example/a.jpg", gotBody["media"])
	assert.Equal(t, "caption", gotBody["caption"])
}

func TestEvolution_SendText_MissingMessageID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"key":{}}`))
	}))
	defer srv.Close()

	e := NewEvolution(srv.URL, "secret")

	_, err := e.SendText(context.Background(), SendTextParams{InstanceID: "inst-1", GroupID: "g", Text: "x"})
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestEvolution_SendText_UndecodableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>nope</html>`))
	}))
	defer srv.Close()

	e := NewEvolution(srv.URL, "secret")

	_, err := e.SendText(context.Background(), SendTextParams{InstanceID: "inst-1", GroupID: "g", Text: "x"})
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestEvolution_SendText_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "instance not connected", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	e := NewEvolution(srv.URL, "secret")

	_, err := e.SendText(context.Background(), SendTextParams{InstanceID: "inst-1", GroupID: "g", Text: "x"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
	assert.Contains(t, apiErr.Body, "instance not connected")
}

func TestEvolution_GetGroups(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/group/fetchAllGroups/inst-1", r.URL.Path)
		assert.Equal(t, "false", r.URL.Query().Get("getParticipants"))

		w.Write([]byte(`[{"id":"111@g.us","subject":"Group A"},{"id":"222@g.us","subject":"Group B"}]`))
	}))
	defer srv.Close()

	e := NewEvolution(srv.URL, "secret")

	groups, err := e.GetGroups(context.Background(), "inst-1")
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, Group{ID: "111@g.us", Name: "Group A"}, groups[0])
	assert.Equal(t, Group{ID: "222@g.us", Name: "Group B"}, groups[1])
}

func TestEvolution_Connect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/instance/connect/inst-1", r.URL.Path)
		w.Write([]byte(`{"instance":{"state":"connecting"}}`))
	}))
	defer srv.Close()

	e := NewEvolution(srv.URL, "secret")

	assert.NoError(t, e.Connect(context.Background(), "inst-1"))
}

func TestEvolution_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	e := NewEvolution(srv.URL, "secret")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.SendText(ctx, SendTextParams{InstanceID: "inst-1", GroupID: "g", Text: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMeta_NotImplemented(t *testing.T) {
	m := NewMeta()

	_, err := m.SendText(context.Background(), SendTextParams{})
	assert.ErrorIs(t, err, ErrNotImplemented)

	_, err = m.GetGroups(context.Background(), "inst-1")
	assert.ErrorIs(t, err, ErrNotImplemented)

	assert.True(t, errors.Is(m.Connect(context.Background(), "inst-1"), ErrNotImplemented))
}
