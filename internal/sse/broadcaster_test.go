package sse

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mcoot/hvztracker/internal/model"
	"github.com/mcoot/hvztracker/internal/testutil"
)

func TestFormatSSEMessage(t *testing.T) {
	tests := []struct {
		name     string
		event    string
		data     string
		expected string
	}{
		{
			name:     "single line",
			event:    "tag",
			data:     `{"seq":1}`,
			expected: "event: tag\ndata: {\"seq\":1}\n\n",
		},
		{
			name:     "empty data",
			event:    "ping",
			data:     "",
			expected: "event: ping\ndata: \n\n",
		},
		{
			name:     "multi line with carriage returns",
			event:    "status",
			data:     "a\r\nb\n",
			expected: "event: status\ndata: a\ndata: b\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(formatSSEMessage(tt.event, tt.data))
			if got != tt.expected {
				t.Errorf("formatSSEMessage(%q, %q)\ngot:  %q\nwant: %q", tt.event, tt.data, got, tt.expected)
			}
		})
	}
}

func receive(t *testing.T, client *Client) string {
	t.Helper()
	select {
	case msg := <-client.send:
		return string(msg)
	case <-time.After(time.Second):
		t.Fatal("client did not receive message")
		return ""
	}
}

func TestBroadcaster_PublishTag(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())
	defer manager.CloseAll()

	hub := manager.GetOrCreateHub("g1")
	client := NewClient(hub, "watcher-1")
	if !hub.Register(client) {
		t.Fatal("register failed")
	}

	tag := &model.Tag{GameID: "g1", Tagger: "z1", Taggee: "h1", Slot: model.TagSlotPrimary, Seq: 7, Timestamp: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)}
	broadcaster.PublishTag(tag, &model.PlayerStatus{PlayerID: "h1", Status: model.StatusZombie})

	tagMsg := receive(t, client)
	if !strings.Contains(tagMsg, "event: tag") {
		t.Errorf("expected tag event, got %s", tagMsg)
	}
	if !strings.Contains(tagMsg, `"slot":"tag1"`) || !strings.Contains(tagMsg, `"seq":7`) {
		t.Errorf("tag payload missing fields: %s", tagMsg)
	}

	statusMsg := receive(t, client)
	if !strings.Contains(statusMsg, "event: status") || !strings.Contains(statusMsg, `"status":"z"`) {
		t.Errorf("unexpected status message: %s", statusMsg)
	}
}

func TestBroadcaster_PublishRedemption(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())
	defer manager.CloseAll()

	hub := manager.GetOrCreateHub("g1")
	client := NewClient(hub, "watcher-1")
	hub.Register(client)

	usedBy := model.PlayerID("z1")
	usedAt := time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)
	av := &model.Antivirus{Code: "AV1", GameID: "g1", UsedBy: &usedBy, UsedAt: &usedAt, Seq: 3}
	broadcaster.PublishRedemption(av, &model.PlayerStatus{PlayerID: "z1", Status: model.StatusHuman})

	msg := receive(t, client)
	if !strings.Contains(msg, "event: antivirus") || !strings.Contains(msg, `"used_by":"z1"`) {
		t.Errorf("unexpected antivirus message: %s", msg)
	}
}

func TestBroadcaster_NoHubIsNoop(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	// Nobody watching g2, must not panic or create a hub
	broadcaster.PublishTag(&model.Tag{GameID: "g2"}, &model.PlayerStatus{})
	if manager.GetHub("g2") != nil {
		t.Error("publishing created a hub")
	}
}

func TestHubManager_CleanupEmptyHubs(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	manager.GetOrCreateHub("g1")
	manager.CleanupEmptyHubs()
	if manager.GetHub("g1") != nil {
		t.Error("empty hub was not removed")
	}
}

func TestServeSSE_StreamsUntilHubCloses(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	hub := manager.GetOrCreateHub("g1")

	req := httptest.NewRequest(http.MethodGet, "/feed", nil)
	rec := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		ServeSSE(rec, req, hub, "watcher-1")
		close(done)
	}()

	deadline := time.Now().Add(time.Second)
	for hub.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	manager.RemoveHub("g1")

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ServeSSE did not return after hub closed")
	}

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "event: connected") {
		t.Errorf("missing connected event: %s", rec.Body.String())
	}
}
