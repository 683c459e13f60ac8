package realtime

// Event names emitted to connected clients. Clients that miss an event must
// re-fetch state on reconnect; there is no replay buffer.
const (
	EventOrderUpdated = "order-updated"
	EventTableUpdated = "table-updated"
)

// Order update kinds carried inside an order-updated event.
const (
	KindNew          = "new"
	KindStatusChange = "status-change"
	KindPayment      = "payment"
	KindUpdated      = "updated"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Notifier is the push channel for order and table changes. The websocket
// Hub implements it for the always-on deployment; Noop implements it for
// poll-only deployments. Selection happens at startup, never per request.
type Notifier interface {
	OrderUpdated(kind string, order interface{})
	TableUpdated(tableNumber int, status string)
}

// Noop drops every event. Clients on a stateless deployment rely purely on
// polling.
type Noop struct{}

func (Noop) OrderUpdated(kind string, order interface{}) {}

func (Noop) TableUpdated(tableNumber int, status string) {}
