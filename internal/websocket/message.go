package websocket

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// ActionAlertCreated is pushed to dashboard connections when a new resource
// alert materializes.
const ActionAlertCreated = "alert.created"
