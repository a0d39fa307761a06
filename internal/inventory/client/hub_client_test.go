package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubstack/inventory-service/internal/inventory/domain"
)

func newDirectoryServer(t *testing.T, hubs map[string]*domain.Hub) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		const prefix = "/api/hubs/"
		require.True(t, len(r.URL.Path) > len(prefix))
		id := r.URL.Path[len(prefix):]

		hub, ok := hubs[id]
		w.Header().Set("Content-Type", "application/json")
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(hubResponse{Success: false, Error: "hub not found"})
			return
		}
		json.NewEncoder(w).Encode(hubResponse{Success: true, Data: hub})
	}))
}

func TestHubDirectoryClientGet(t *testing.T) {
	server := newDirectoryServer(t, map[string]*domain.Hub{
		"hub-alpha": {ID: "hub-alpha", Name: "Alpha", Code: "ALP", Location: "North"},
	})
	defer server.Close()

	client := NewHubDirectoryClient(server.URL)

	hub, err := client.Get(context.Background(), "hub-alpha")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", hub.Name)
	assert.Equal(t, "ALP", hub.Code)

	_, err = client.Get(context.Background(), "hub-ghost")
	assert.ErrorIs(t, err, ErrHubNotFound)
}

func TestHubDirectoryClientExists(t *testing.T) {
	server := newDirectoryServer(t, map[string]*domain.Hub{
		"hub-alpha": {ID: "hub-alpha", Name: "Alpha"},
	})
	defer server.Close()

	client := NewHubDirectoryClient(server.URL)

	exists, err := client.Exists(context.Background(), "hub-alpha")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = client.Exists(context.Background(), "hub-ghost")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestHubDirectoryClientServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewHubDirectoryClient(server.URL)

	_, err := client.Get(context.Background(), "hub-alpha")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrHubNotFound)

	// A directory outage must not read as "hub does not exist".
	_, err = client.Exists(context.Background(), "hub-alpha")
	assert.Error(t, err)
}

func TestCachedHubDirectoryFallsThroughWithoutRedis(t *testing.T) {
	server := newDirectoryServer(t, map[string]*domain.Hub{
		"hub-alpha": {ID: "hub-alpha", Name: "Alpha"},
	})
	defer server.Close()

	cached := NewCachedHubDirectory(NewHubDirectoryClient(server.URL), nil, 0)

	hub, err := cached.Get(context.Background(), "hub-alpha")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", hub.Name)

	exists, err := cached.Exists(context.Background(), "hub-ghost")
	require.NoError(t, err)
	assert.False(t, exists)
}
