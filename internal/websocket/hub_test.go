package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChristianBello1/hosting/internal/models"
)

func testConn(hub *Hub, clientID string) *Conn {
	return &Conn{
		hub:      hub,
		Send:     make(chan []byte, 16),
		ClientID: clientID,
	}
}

func receive(t *testing.T, conn *Conn) []byte {
	t.Helper()
	select {
	case raw := <-conn.Send:
		return raw
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for hub message")
		return nil
	}
}

func TestHubBroadcastsAlertToSessions(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	global := testConn(hub, "")
	watcher := testConn(hub, "client-1")
	hub.Register <- global
	hub.Register <- watcher

	alert := models.ResourceAlert{
		ID:       "alert-1",
		ClientID: "client-1",
		Type:     models.MetricCPU,
		Severity: models.SeverityCritical,
		Message:  "High CPU usage: 95% (threshold: 80%)",
	}
	hub.NotifyAlert(alert)

	for _, conn := range []*Conn{global, watcher} {
		var msg Message
		require.NoError(t, json.Unmarshal(receive(t, conn), &msg))
		assert.Equal(t, ActionAlertCreated, msg.Action)

		payload, ok := msg.Payload.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "alert-1", payload["id"])
		assert.Equal(t, "client-1", payload["clientId"])
		assert.Equal(t, "critical", payload["severity"])
	}
}

// A session scoped to one client never sees another client's alerts.
func TestHubScopesAlertsToWatchedClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	global := testConn(hub, "")
	watcher := testConn(hub, "globex")
	hub.Register <- global
	hub.Register <- watcher

	hub.NotifyAlert(models.ResourceAlert{ID: "alert-1", ClientID: "acme"})

	// The unscoped session gets the alert; nothing is ever queued for the
	// session watching a different client.
	receive(t, global)
	select {
	case raw := <-watcher.Send:
		t.Fatalf("scoped session received alert for another client: %s", raw)
	default:
	}

	// The same session still gets its own client's alerts.
	hub.NotifyAlert(models.ResourceAlert{ID: "alert-2", ClientID: "globex"})
	var msg Message
	require.NoError(t, json.Unmarshal(receive(t, watcher), &msg))
	payload, ok := msg.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "alert-2", payload["id"])
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	conn := testConn(hub, "client-1")
	hub.Register <- conn
	hub.Unregister <- conn

	select {
	case _, open := <-conn.Send:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("send channel was not closed")
	}

	// Broadcasting after the session left must not panic or deliver.
	hub.NotifyAlert(models.ResourceAlert{ID: "alert-2"})
}

func TestNotifyAlertNeverBlocks(t *testing.T) {
	hub := NewHub() // Run is intentionally not started

	for i := 0; i < cap(hub.alerts)+10; i++ {
		hub.NotifyAlert(models.ResourceAlert{ID: "overflow"})
	}
	assert.Len(t, hub.alerts, cap(hub.alerts))
}
