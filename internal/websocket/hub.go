package websocket

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/ChristianBello1/hosting/internal/models"
)

// alertEvent is one alert broadcast queued for dispatch, tagged with the
// owning client so scoped sessions only see their own alerts.
type alertEvent struct {
	clientID string
	payload  []byte
}

// Hub maintains the set of connected dashboard sessions and routes
// monitoring events to them.
type Hub struct {
	// Registered connections.
	conns map[*Conn]bool

	// Queued alert broadcasts. Buffered so alert creation never blocks on
	// a slow hub.
	alerts chan alertEvent

	// Register requests from connections.
	Register chan *Conn

	// Unregister requests from connections.
	Unregister chan *Conn

	// A map of client IDs to the connections watching that client.
	subscriptions map[string]map[*Conn]bool
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		alerts:        make(chan alertEvent, 64),
		Register:      make(chan *Conn),
		Unregister:    make(chan *Conn),
		conns:         make(map[*Conn]bool),
		subscriptions: make(map[string]map[*Conn]bool),
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.conns[conn] = true
			log.Info().Int("total_sessions", len(h.conns)).Msg("Dashboard session connected")
			if conn.ClientID != "" {
				h.addSubscription(conn, conn.ClientID)
			}
		case conn := <-h.Unregister:
			if _, ok := h.conns[conn]; ok {
				delete(h.conns, conn)
				close(conn.Send)
				h.removeSubscription(conn)
				log.Info().Int("total_sessions", len(h.conns)).Msg("Dashboard session disconnected")
			}
		case ev := <-h.alerts:
			// Unscoped sessions receive every alert; scoped ones only the
			// alerts of the client they subscribed to.
			for conn := range h.conns {
				if conn.ClientID == "" {
					h.deliver(conn, ev.payload)
				}
			}
			for conn := range h.subscriptions[ev.clientID] {
				h.deliver(conn, ev.payload)
			}
		}
	}
}

// deliver sends a message to one session, evicting it if its buffer is full.
func (h *Hub) deliver(conn *Conn, message []byte) {
	select {
	case conn.Send <- message:
	default:
		close(conn.Send)
		delete(h.conns, conn)
		h.removeSubscription(conn)
	}
}

// NotifyAlert routes a newly created resource alert to the sessions watching
// its client plus all unscoped sessions. It never blocks: if the hub's buffer
// is full the event is dropped, since the dashboard re-fetches the alert list
// on its polling interval anyway.
func (h *Hub) NotifyAlert(alert models.ResourceAlert) {
	raw, err := json.Marshal(Message{Action: ActionAlertCreated, Payload: alert})
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode alert broadcast")
		return
	}
	select {
	case h.alerts <- alertEvent{clientID: alert.ClientID, payload: raw}:
	default:
		log.Warn().Str("alert_id", alert.ID).Msg("Hub broadcast buffer full, dropping alert event")
	}
}

func (h *Hub) addSubscription(conn *Conn, clientID string) {
	if h.subscriptions[clientID] == nil {
		h.subscriptions[clientID] = make(map[*Conn]bool)
	}
	h.subscriptions[clientID][conn] = true
}

func (h *Hub) removeSubscription(conn *Conn) {
	for clientID, subs := range h.subscriptions {
		if _, ok := subs[conn]; ok {
			delete(subs, conn)
			if len(subs) == 0 {
				delete(h.subscriptions, clientID)
			}
		}
	}
}
