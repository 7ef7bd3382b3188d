package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command against server and returns stdout
func run(t *testing.T, server *httptest.Server, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{
		"--server", server.URL,
		"--key-file", filepath.Join(t.TempDir(), "missing"),
	}, args...))
	err := root.Execute()
	return out.String(), err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestHealthCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/health", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}))
	defer server.Close()

	out, err := run(t, server, "health")
	require.NoError(t, err)
	assert.Contains(t, out, "Status: ok")
}

func TestAPIKeySent(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		writeJSON(w, http.StatusCreated, map[string]any{
			"id": "t1", "tagger": "z1", "taggee": "h1", "slot": "tag1",
		})
	}))
	defer server.Close()

	out, err := run(t, server, "--api-key", "abc.def", "tag", "z1", "h1-card")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", gotKey)
	assert.Contains(t, out, "z1 tagged h1 (tag1)")
}

func TestAPIErrorsSurface(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusGone, map[string]any{
			"error": map[string]string{"code": "ANTIVIRUS_EXPIRED", "message": "Antivirus code expired"},
		})
	}))
	defer server.Close()

	_, err := run(t, server, "av", "redeem", "CURE", "p1")
	require.Error(t, err)
	assert.Equal(t, "Antivirus code expired (ANTIVIRUS_EXPIRED)", err.Error())
}

func TestNonJSONErrorSurface(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := run(t, server, "timeline")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 502")
}

func TestPlayersListBuildsQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "wolves", q.Get("q"))
		assert.Equal(t, "tags", q.Get("sort"))
		assert.Equal(t, "desc", q.Get("dir"))
		assert.Equal(t, "5", q.Get("limit"))
		assert.Empty(t, q.Get("offset"))
		writeJSON(w, http.StatusOK, map[string]any{
			"players": []map[string]any{
				{"id": "p1", "display_name": "Dave", "clan": "Wolves", "status": map[string]any{"code": "z", "label": "Zombie", "num_tags": 3}},
				{"id": "p2", "display_name": "Bob", "clan": "Wolves"},
			},
			"total_matching":   2,
			"total_unfiltered": 9,
		})
	}))
	defer server.Close()

	out, err := run(t, server, "players", "list", "-q", "wolves", "--sort", "tags", "--dir", "desc", "--limit", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Dave")
	assert.Contains(t, out, "Zombie")
	assert.Contains(t, out, "Showing 2 of 2 (9 total)")
}

func TestPlayersShowByZombieID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/players/lookup", r.URL.Path)
		assert.Equal(t, "zid-1", r.URL.Query().Get("zid"))
		writeJSON(w, http.StatusOK, map[string]any{"id": "p1", "display_name": "Alice", "role": "regular"})
	}))
	defer server.Close()

	out, err := run(t, server, "players", "show", "--zid", "zid-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Player: Alice (p1)")
	assert.Contains(t, out, "not in the active game")
}

func TestPlayersShowRequiresIdentifier(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := run(t, server, "players", "show")
	assert.Error(t, err)
}

func TestJSONOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]string{{"name": "Wolves"}})
	}))
	defer server.Close()

	out, err := run(t, server, "-o", "json", "clans")
	require.NoError(t, err)

	var clans []Clan
	require.NoError(t, json.Unmarshal([]byte(out), &clans))
	require.Len(t, clans, 1)
	assert.Equal(t, "Wolves", clans[0].Name)
}

func TestReportJoinsArgs(t *testing.T) {
	var body map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, http.StatusCreated, map[string]string{"id": "r1"})
	}))
	defer server.Close()

	out, err := run(t, server, "report", "--email", "w@example.com", "tagged", "from", "a", "car")
	require.NoError(t, err)
	assert.Equal(t, "tagged from a car", body["text"])
	assert.Equal(t, "w@example.com", body["reporter_email"])
	assert.Contains(t, out, "Report r1 submitted")
}

func TestClanHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/clans/Night Owls/history", r.URL.Path)
		writeJSON(w, http.StatusOK, []map[string]any{
			{"player_id": "p1", "action": "left", "timestamp": "2026-03-02T09:00:00Z"},
		})
	}))
	defer server.Close()

	out, err := run(t, server, "clans", "history", "Night Owls")
	require.NoError(t, err)
	assert.Contains(t, out, "left")
	assert.Contains(t, out, "p1")
}

func TestArmorCreateSendsCode(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/body-armors", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, http.StatusCreated, map[string]any{"code": "SHIELD", "expires_at": "2026-03-03T09:00:00Z"})
	}))
	defer server.Close()

	out, err := run(t, server, "armor", "create", "--code", "SHIELD")
	require.NoError(t, err)
	assert.Equal(t, "SHIELD", body["code"])
	assert.NotEmpty(t, body["expires_at"])
	assert.Contains(t, out, "Body armor: SHIELD")
}

func TestScoreboardsAll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("all"))
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": "sb1", "name": "Clan points", "active": false, "rows": []map[string]any{{"label": "Wolves", "score": 7}}},
		})
	}))
	defer server.Close()

	out, err := run(t, server, "scoreboards", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Clan points (sb1)")
	assert.Contains(t, out, "Wolves")
}

func TestFeedPrintsEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/feed", r.URL.Path)
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = fmt.Fprint(w, "event: connected\ndata: {}\n\n")
		_, _ = fmt.Fprint(w, "event: tag\ndata: {\"tagger\":\"z1\"}\n\n")
	}))
	defer server.Close()

	out, err := run(t, server, "feed", "--json")
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace([]byte(out)), []byte("\n"))
	require.Len(t, lines, 2)
	var evt SSEEvent
	require.NoError(t, json.Unmarshal(lines[1], &evt))
	assert.Equal(t, "tag", evt.Event)
	assert.Equal(t, `{"tagger":"z1"}`, evt.Data)
}
